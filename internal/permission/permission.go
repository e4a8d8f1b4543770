// Package permission resolves what an actor may do inside a club.
package permission

import "ClubHub/internal/model"

// Actor is the authenticated user performing an operation.
type Actor struct {
	ID       uint64
	Username string
	Role     string
}

func (a Actor) IsSuperAdmin() bool { return a.Role == model.RoleSuperAdmin }

// Set is the effective permission set of one actor in one club.
type Set struct {
	IsMember     bool `json:"is_member"`
	CanPost      bool `json:"can_post"`
	IsClubAdmin  bool `json:"is_club_admin"`
	IsSuperAdmin bool `json:"is_super_admin"`

	actorID uint64
}

// Resolve computes the permission set. membership is the actor's membership
// in club, or nil when there is none. It has no side effects.
func Resolve(actor Actor, club *model.Club, membership *model.ClubMembership) Set {
	s := Set{
		IsSuperAdmin: actor.IsSuperAdmin(),
		IsMember:     membership != nil,
		actorID:      actor.ID,
	}
	if club != nil {
		s.IsClubAdmin = club.CreatorID == actor.ID
	}
	s.CanPost = s.IsClubAdmin || s.IsSuperAdmin || (s.IsMember && membership.CanPost)
	return s
}

func (s Set) CanEditContent(authorID uint64) bool {
	return authorID == s.actorID || s.IsClubAdmin || s.IsSuperAdmin
}

func (s Set) CanManageClub() bool { return s.IsClubAdmin || s.IsSuperAdmin }

func (s Set) CanManageMembers() bool { return s.CanManageClub() }

// CanDeleteClub does not cover the typed confirmation; callers ask for it.
func (s Set) CanDeleteClub() bool { return s.IsClubAdmin || s.IsSuperAdmin }

// CanTransferOwnership is true for the creator only. A superadmin who can
// delete the club still cannot hand it to someone else.
func (s Set) CanTransferOwnership() bool { return s.IsClubAdmin }

func (s Set) CanViewContent() bool { return s.IsMember || s.IsSuperAdmin }
