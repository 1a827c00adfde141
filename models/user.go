package models

import (
	"time"
)

// Role values stored on users. The API only distinguishes these two.
const (
	RoleStudent = "Student"
	RoleAdmin   = "Admin"
)

type User struct {
	ID                int       `gorm:"primaryKey;column:id" json:"id"`
	NetID             string    `gorm:"column:net_id;size:64;uniqueIndex" json:"net_id"`
	Password          string    `gorm:"column:password;size:64" json:"-"`
	IsDefaultPassword bool      `gorm:"column:is_default_password" json:"is_default_password"`
	Role              string    `gorm:"column:role;size:16;default:Student" json:"role"`
	Group             int       `gorm:"column:group_id" json:"group"`
	FirstName         string    `gorm:"column:first_name" json:"first_name"`
	LastName          string    `gorm:"column:last_name" json:"last_name"`
	CreatedAt         time.Time `gorm:"column:created_at" json:"created_at"`

	TimeLogs []TimeLog `gorm:"foreignKey:UserID" json:"time_logs,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// FullName joins first and last name for display in review listings.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// IsAdmin reports whether the user holds the Admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
