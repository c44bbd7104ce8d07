package models

import (
	"time"

	"gorm.io/gorm"
)

type Event struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	UserID      uint64         `gorm:"not null;index" json:"userId"`
	Title       string         `gorm:"type:varchar(255);not null" json:"title"`
	Date        time.Time      `gorm:"not null;index" json:"date"`
	Color       string         `gorm:"type:varchar(20);not null" json:"color"`
	Description string         `gorm:"type:text" json:"description"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
