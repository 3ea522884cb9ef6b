package models

import "time"

type StudentStatus string

const (
	StudentActive    StudentStatus = "active"
	StudentSuspended StudentStatus = "suspended"
	StudentGraduated StudentStatus = "graduated"
)

type Student struct {
	ID         uint          `json:"id" gorm:"primaryKey"`
	Name       string        `json:"name" gorm:"not null;size:255;index" validate:"required,min=1,max=255"`
	NationalID string        `json:"national_id" gorm:"uniqueIndex;not null;size:14" validate:"required,len=14,numeric"`
	Phone      *string       `json:"phone" gorm:"size:20"`
	Status     StudentStatus `json:"status" gorm:"default:active;size:20;index" validate:"omitempty,oneof=active suspended graduated"`

	// Reference into external file storage; the service never touches the bytes.
	PhotoURL *string `json:"photo_url" gorm:"size:500"`

	CompanyID uint    `json:"company_id" gorm:"not null;index"`
	Company   Company `json:"company,omitempty" gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Student) TableName() string {
	return "students"
}
