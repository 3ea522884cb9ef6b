package models

import "time"

// Company is a training host organization. Deleting a company cascades to
// its students, visits and attendance records.
type Company struct {
	ID      uint    `json:"id" gorm:"primaryKey"`
	Name    string  `json:"name" gorm:"not null;size:255;index" validate:"required,min=1,max=255"`
	Address *string `json:"address" gorm:"size:255"`
	Phone   *string `json:"phone" gorm:"size:20"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Students []Student `json:"students,omitempty" gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE"`

	// Computed fields (not stored)
	StudentCount int `json:"student_count" gorm:"-"`
}

func (Company) TableName() string {
	return "companies"
}
