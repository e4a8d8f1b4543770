package model

import "time"

// ClubMembership exists for every (user, club) pair where the user is in the club.
// The club creator's admin status is not stored here; it derives from Club.CreatorID.
type ClubMembership struct {
	ID       uint64    `gorm:"primaryKey" json:"id"`
	UserID   uint64    `gorm:"not null;uniqueIndex:uk_user_club" json:"user_id"`
	ClubID   uint64    `gorm:"not null;index;uniqueIndex:uk_user_club" json:"club_id"`
	CanPost  bool      `gorm:"not null;default:false" json:"can_post"`
	JoinDate time.Time `gorm:"autoCreateTime" json:"join_date"`
	User     User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Club     Club      `gorm:"foreignKey:ClubID;constraint:OnDelete:CASCADE" json:"-"`
}

// MemberRow is a membership joined with the member's account fields.
type MemberRow struct {
	UserID   uint64    `json:"user_id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	CanPost  bool      `json:"can_post"`
	JoinDate time.Time `json:"join_date"`
	IsAdmin  bool      `json:"is_admin" gorm:"-"`
}

// JoinedClub is a club the user belongs to, with the date they joined.
type JoinedClub struct {
	ClubID   uint64    `json:"club_id"`
	Name     string    `json:"name"`
	JoinDate time.Time `json:"join_date"`
}
