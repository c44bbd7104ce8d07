package models

import "time"

// TeamMember records that AddedBy put UserID on their team. Memberships are scoped to
// the owner: the (UserID, AddedBy) pair is unique, the same user may sit on many teams.
//
// Both references are plain columns without foreign key constraints, so deleting a user
// leaves their memberships dangling.
type TeamMember struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	UserID    uint64    `gorm:"not null;uniqueIndex:idx_team_members_user_owner" json:"user_id"`
	AddedBy   uint64    `gorm:"not null;uniqueIndex:idx_team_members_user_owner;index" json:"added_by"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	// Relations
	User  User `gorm:"foreignKey:UserID" json:"-"`
	Owner User `gorm:"foreignKey:AddedBy" json:"-"`
}
