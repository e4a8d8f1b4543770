package model

import "time"

type Post struct {
	ID       uint64    `gorm:"primaryKey" json:"id"`
	Title    string    `gorm:"size:255;not null" json:"title"`
	Content  string    `gorm:"type:text;not null" json:"content"`
	UserID   uint64    `gorm:"not null;index" json:"user_id"`
	ClubID   uint64    `gorm:"not null;index:idx_club_post_date,priority:1" json:"club_id"`
	PostDate time.Time `gorm:"autoCreateTime;index:idx_club_post_date,priority:2,sort:desc" json:"post_date"`
	User     User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Club     Club      `gorm:"foreignKey:ClubID;constraint:OnDelete:CASCADE" json:"-"`
}

// PostView is a post joined with its author's username.
type PostView struct {
	Post
	Username string `json:"username"`
}
