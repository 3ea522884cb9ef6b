package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleAdmin       UserRole = "admin"
	RoleManager     UserRole = "manager"
	RoleSupervisor  UserRole = "supervisor"
	RoleInstitution UserRole = "institution"
	RoleEmployee    UserRole = "employee"
)

// Roles lists every role the system recognizes.
var Roles = []UserRole{RoleAdmin, RoleManager, RoleSupervisor, RoleInstitution, RoleEmployee}

func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleSupervisor, RoleInstitution, RoleEmployee:
		return true
	}
	return false
}

type User struct {
	ID       uint     `json:"id" gorm:"primaryKey"`
	Username string   `json:"username" gorm:"uniqueIndex;not null;size:150" validate:"required,min=1,max=150"`
	Email    *string  `json:"email" gorm:"size:255" validate:"omitempty,email"`
	Phone    *string  `json:"phone" gorm:"size:20"`
	Role     UserRole `json:"role" gorm:"not null;size:20;index" validate:"required"`

	// Never serialized; set through the password-change flow only.
	PasswordHash string `json:"-" gorm:"not null;size:255"`

	IsActive bool `json:"is_active" gorm:"default:true"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (User) TableName() string {
	return "users"
}

// Principal is the authenticated caller's identity as supplied by the
// token middleware. Services receive it explicitly; there is no ambient
// current-user lookup.
type Principal struct {
	ID       uint     `json:"id"`
	Username string   `json:"username"`
	Role     UserRole `json:"role"`
}
