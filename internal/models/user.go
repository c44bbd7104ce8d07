package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleMember UserRole = "member"
)

type User struct {
	ID           uint64 `gorm:"primarykey" json:"id"`
	Email        string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null" json:"-"`
	FullName     string `gorm:"type:varchar(255);not null;index" json:"fullName"`
	// FullNameLower is FullName folded with Unicode rules; directory search matches on it
	// because SQL LOWER() only folds ASCII on some drivers.
	FullNameLower string         `gorm:"type:varchar(255);not null;default:'';index" json:"-"`
	AvatarURL     *string        `gorm:"type:varchar(1024)" json:"avatarUrl"`
	Role          UserRole       `gorm:"type:varchar(20);not null;default:'member'" json:"role"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// BeforeSave keeps the search column in step with FullName.
func (u *User) BeforeSave(tx *gorm.DB) error {
	u.FullNameLower = strings.ToLower(u.FullName)
	return nil
}
