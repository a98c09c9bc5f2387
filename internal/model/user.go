package model

import (
	"time"
)

type UserRole string

const (
	Student UserRole = "student"
	Faculty UserRole = "faculty"
	Admin   UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Name      string     `gorm:"size:100;not null" json:"name"`
	Email     string     `gorm:"size:100;unique;not null" json:"email"`
	Password  string     `gorm:"size:100;not null" json:"-"`
	Role      UserRole   `gorm:"type:enum('student','faculty','admin');default:'student'" json:"role"`
	SchoolID  *uint      `gorm:"index" json:"schoolId,omitempty"`
	Grade     string     `gorm:"size:20" json:"grade"`
	Phone     string     `gorm:"size:20" json:"phone"`
	Disabled  bool       `gorm:"default:false" json:"disabled"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
}

func (User) TableName() string {
	return "users"
}
