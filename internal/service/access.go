package service

import (
	"context"
	"errors"

	"ClubHub/internal/model"
	"ClubHub/internal/permission"
	"ClubHub/internal/repository/mysql"

	"gorm.io/gorm"
)

// clubAccess loads a club and the actor's membership and resolves the
// actor's permissions in it.
type clubAccess struct {
	clubs   *mysql.ClubRepository
	members *mysql.ClubMemberRepository
}

func newClubAccess(db *gorm.DB) clubAccess {
	return clubAccess{
		clubs:   &mysql.ClubRepository{DB: db},
		members: &mysql.ClubMemberRepository{DB: db},
	}
}

func (a clubAccess) resolve(ctx context.Context, actor permission.Actor, clubID uint64) (*model.Club, permission.Set, error) {
	club, err := a.clubs.FindByID(ctx, clubID)
	if err != nil {
		return nil, permission.Set{}, storeError(err, "Club not found.", "")
	}
	m, err := a.members.Find(ctx, clubID, actor.ID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		m = nil
	case err != nil:
		return nil, permission.Set{}, storeError(err, "", "")
	}
	return club, permission.Resolve(actor, club, m), nil
}
