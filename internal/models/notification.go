package models

import (
	"time"

	"gorm.io/datatypes"
)

// Notification is a per-user message with a read/unread flag.
type Notification struct {
	ID uint `json:"id" gorm:"primaryKey"`

	UserID uint `json:"user_id" gorm:"not null;index"`
	User   User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	Title   string `json:"title" gorm:"not null;size:255" validate:"required,max=255"`
	Message string `json:"message" gorm:"type:text" validate:"required"`
	IsRead  bool   `json:"is_read" gorm:"default:false;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

type LogAction string

const (
	ActionCreate LogAction = "create"
	ActionUpdate LogAction = "update"
	ActionDelete LogAction = "delete"
	ActionLogin  LogAction = "login"
)

// SystemLog is an immutable audit trail entry. Rows are only ever
// appended; there is no update or delete path.
type SystemLog struct {
	ID uint `json:"id" gorm:"primaryKey"`

	UserID *uint `json:"user_id" gorm:"index"`
	User   *User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL"`

	Action LogAction `json:"action" gorm:"not null;size:20;index"`
	Detail string    `json:"detail" gorm:"type:text"`

	// Structured request context (resource ids, request id).
	Context datatypes.JSON `json:"context" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at"`

	// Computed fields (not stored)
	Username string `json:"username" gorm:"-"`
}

func (SystemLog) TableName() string {
	return "system_logs"
}
