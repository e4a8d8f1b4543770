package model

import "time"

type Event struct {
	ID            uint64    `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"size:255;not null" json:"name"`
	Description   string    `gorm:"type:text;not null" json:"description"`
	EventDatetime time.Time `gorm:"column:event_datetime;not null;index" json:"event_datetime"`
	Location      string    `gorm:"size:255;not null" json:"location"`
	UserID        uint64    `gorm:"not null;index" json:"user_id"`
	ClubID        uint64    `gorm:"not null;index" json:"club_id"`
	CreatedAt     time.Time `json:"created_at"`
	User          User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Club          Club      `gorm:"foreignKey:ClubID;constraint:OnDelete:CASCADE" json:"-"`
}

// EventView is an event joined with its creator's username.
type EventView struct {
	Event
	Username string `json:"username"`
}
