package models

import "time"

type DayType string

const (
	DayStudy    DayType = "study"
	DayHoliday  DayType = "official_holiday"
	DayTraining DayType = "training"
	DayClosed   DayType = "closed"
)

// TrainingDay classifies a calendar date. One row per unique date.
type TrainingDay struct {
	ID      uint      `json:"id" gorm:"primaryKey"`
	Date    time.Time `json:"date" gorm:"type:date;uniqueIndex;not null"`
	DayType DayType   `json:"day_type" gorm:"default:training;size:20" validate:"omitempty,oneof=study official_holiday training closed"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (TrainingDay) TableName() string {
	return "training_days"
}

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
)

// AttendanceRecord holds one student's attendance for one date. The
// (student, date) pair is unique; the store enforces it and the service
// translates the violation to a conflict.
type AttendanceRecord struct {
	ID uint `json:"id" gorm:"primaryKey"`

	StudentID uint `json:"student_id" gorm:"not null;uniqueIndex:idx_attendance_student_date"`
	CompanyID uint `json:"company_id" gorm:"not null;index"`

	Date   time.Time        `json:"date" gorm:"type:date;not null;uniqueIndex:idx_attendance_student_date;index"`
	Status AttendanceStatus `json:"status" gorm:"default:present;size:10;index" validate:"omitempty,oneof=present absent"`

	Reason    *string `json:"reason" gorm:"size:255"`
	IsExcused bool    `json:"is_excused" gorm:"default:false"`

	// Reference into external file storage for absence proof documents.
	ProofURL *string `json:"proof_url" gorm:"size:500"`

	RecordedByID *uint `json:"recorded_by" gorm:"index"`
	RecordedBy   *User `json:"recorder,omitempty" gorm:"foreignKey:RecordedByID;constraint:OnDelete:SET NULL"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Student Student `json:"student,omitempty" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
	Company Company `json:"company,omitempty" gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE"`

	// Computed fields (not stored)
	StudentName string `json:"student_name" gorm:"-"`
	CompanyName string `json:"company_name" gorm:"-"`
}

func (AttendanceRecord) TableName() string {
	return "attendance_records"
}
