package model

import "time"

type Club struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Description string    `gorm:"type:text;not null" json:"description"`
	CreatorID   uint64    `gorm:"not null;index" json:"creator_id"`
	Creator     User      `gorm:"foreignKey:CreatorID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}

// ClubListing is a club joined with its creator's username.
type ClubListing struct {
	Club
	CreatorName string `json:"creator_name"`
}
