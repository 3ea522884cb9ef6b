package models

import "time"

type VisitStatus string

const (
	VisitPending   VisitStatus = "pending"
	VisitCompleted VisitStatus = "completed"
	VisitCanceled  VisitStatus = "canceled"
)

// Visit records a supervisor's field visit to a student at a company on a
// given date. Ownership matters: supervisors may only see and modify their
// own visits.
type Visit struct {
	ID uint `json:"id" gorm:"primaryKey"`

	CompanyID    uint `json:"company_id" gorm:"not null;index"`
	StudentID    uint `json:"student_id" gorm:"not null;index"`
	SupervisorID uint `json:"supervisor_id" gorm:"not null;index"`

	VisitDate time.Time   `json:"visit_date" gorm:"type:date;not null;index"`
	Notes     *string     `json:"notes" gorm:"type:text"`
	Status    VisitStatus `json:"status" gorm:"default:pending;size:20;index" validate:"omitempty,oneof=pending completed canceled"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Company    Company `json:"company,omitempty" gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE"`
	Student    Student `json:"student,omitempty" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
	Supervisor User    `json:"supervisor,omitempty" gorm:"foreignKey:SupervisorID;constraint:OnDelete:CASCADE"`
}

func (Visit) TableName() string {
	return "visits"
}
