package entity

import (
	"time"
)

// User is an actor in the letter workflow. Role decides which workflow
// actions the policy table allows.
type User struct {
	ID           string     `json:"id" gorm:"primaryKey;size:32"`
	Username     string     `json:"username" gorm:"size:64;not null;uniqueIndex"`
	Name         string     `json:"name" gorm:"size:128;not null"`
	Email        string     `json:"email" gorm:"size:128"`
	PasswordHash string     `json:"-" gorm:"size:128;not null"`
	Role         string     `json:"role" gorm:"size:32;not null"`
	Company      string     `json:"company" gorm:"size:128"`
	Department   string     `json:"department" gorm:"size:128"`
	Status       string     `json:"status" gorm:"size:16;not null;default:active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty" gorm:"index"`
}

func (User) TableName() string {
	return "users"
}

// Roles
const (
	RoleAdmin      = "admin"
	RoleSupervisor = "supervisor"
	RoleVendor     = "vendor"
	RoleGarduInduk = "gardu_induk"
)

// User status
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)
