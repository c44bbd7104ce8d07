package models

import "time"

const AdminBootstrapClaim = "first_admin"

// BootstrapClaim is a singleton row per claim name. The primary key lets the database
// decide which concurrent registration becomes the first admin.
type BootstrapClaim struct {
	Name      string `gorm:"primarykey;type:varchar(50)"`
	UserID    uint64 `gorm:"not null"`
	CreatedAt time.Time
}
