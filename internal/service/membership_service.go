package service

import (
	"context"
	"errors"

	"ClubHub/internal/model"
	"ClubHub/internal/permission"
	"ClubHub/internal/pkg"
	"ClubHub/internal/repository/mysql"

	"gorm.io/gorm"
)

// MembershipService moves users in and out of clubs and manages their
// posting rights.
type MembershipService struct {
	access   clubAccess
	clubs    *mysql.ClubRepository
	members  *mysql.ClubMemberRepository
	activity *ActivityRecorder
}

func NewMembershipService(db *gorm.DB, activity *ActivityRecorder) *MembershipService {
	return &MembershipService{
		access:   newClubAccess(db),
		clubs:    &mysql.ClubRepository{DB: db},
		members:  &mysql.ClubMemberRepository{DB: db},
		activity: activity,
	}
}

// Join makes actor a member without posting rights.
func (s *MembershipService) Join(ctx context.Context, actor permission.Actor, clubID uint64) error {
	if _, err := s.clubs.FindByID(ctx, clubID); err != nil {
		return storeError(err, "Club not found.", "")
	}
	err := s.members.Join(ctx, &model.ClubMembership{UserID: actor.ID, ClubID: clubID})
	if err != nil {
		return storeError(err, "Club not found.", "You are already a member of this club.")
	}
	s.activity.Record(ctx, Activity{Type: ActivityMemberJoined, ActorID: actor.ID, ClubID: clubID, UserID: actor.ID})
	return nil
}

func (s *MembershipService) Leave(ctx context.Context, actor permission.Actor, clubID uint64) error {
	_, perms, err := s.access.resolve(ctx, actor, clubID)
	if err != nil {
		return err
	}
	if perms.IsClubAdmin {
		return pkg.Forbidden("The club creator cannot leave. Transfer ownership or delete the club first.")
	}
	if !perms.IsMember {
		return pkg.NotFound("You are not a member of this club.")
	}
	n, err := s.members.Leave(ctx, clubID, actor.ID)
	if err != nil {
		return storeError(err, "", "")
	}
	if n == 0 {
		return pkg.NotFound("You are not a member of this club.")
	}
	s.activity.Record(ctx, Activity{Type: ActivityMemberLeft, ActorID: actor.ID, ClubID: clubID, UserID: actor.ID})
	return nil
}

// manageTarget checks that actor may manage members of the club and that
// userID is an ordinary member of it.
func (s *MembershipService) manageTarget(ctx context.Context, actor permission.Actor, clubID, userID uint64) (*model.Club, error) {
	club, perms, err := s.access.resolve(ctx, actor, clubID)
	if err != nil {
		return nil, err
	}
	if !perms.CanManageMembers() {
		return nil, pkg.Forbidden("You do not have permission to manage members of this club.")
	}
	if userID == club.CreatorID {
		return nil, pkg.Forbidden("The club creator cannot be changed from the member list.")
	}
	if _, err := s.members.Find(ctx, clubID, userID); err != nil {
		return nil, storeError(err, "That user is not a member of this club.", "")
	}
	return club, nil
}

// SetPosting grants or revokes userID's permission to post.
func (s *MembershipService) SetPosting(ctx context.Context, actor permission.Actor, clubID, userID uint64, canPost bool) error {
	if _, err := s.manageTarget(ctx, actor, clubID, userID); err != nil {
		return err
	}
	if err := s.members.SetCanPost(ctx, clubID, userID, canPost); err != nil {
		return storeError(err, "", "")
	}
	kind := ActivityPostingRevoked
	if canPost {
		kind = ActivityPostingGranted
	}
	s.activity.Record(ctx, Activity{Type: kind, ActorID: actor.ID, ClubID: clubID, UserID: userID})
	return nil
}

func (s *MembershipService) Kick(ctx context.Context, actor permission.Actor, clubID, userID uint64) error {
	if _, err := s.manageTarget(ctx, actor, clubID, userID); err != nil {
		return err
	}
	n, err := s.members.Leave(ctx, clubID, userID)
	if err != nil {
		return storeError(err, "", "")
	}
	if n == 0 {
		return pkg.NotFound("That user is not a member of this club.")
	}
	s.activity.Record(ctx, Activity{Type: ActivityMemberKicked, ActorID: actor.ID, ClubID: clubID, UserID: userID})
	return nil
}

// TransferOwnership hands the club to newOwnerID, who must already be a
// member. The previous creator stays on as an ordinary member.
func (s *MembershipService) TransferOwnership(ctx context.Context, actor permission.Actor, clubID, newOwnerID uint64) error {
	club, perms, err := s.access.resolve(ctx, actor, clubID)
	if err != nil {
		return err
	}
	if !perms.CanTransferOwnership() {
		return pkg.Forbidden("Only the club creator can transfer ownership.")
	}
	if newOwnerID == club.CreatorID {
		return pkg.Validation("You already own this club.")
	}
	if _, err := s.members.Find(ctx, clubID, newOwnerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkg.Validation("The new owner must be a member of the club.")
		}
		return storeError(err, "", "")
	}
	if err := s.clubs.TransferOwnership(ctx, clubID, newOwnerID); err != nil {
		return storeError(err, "The new owner must be a member of the club.", "")
	}
	s.activity.Record(ctx, Activity{Type: ActivityOwnershipTransferred, ActorID: actor.ID, ClubID: clubID, UserID: newOwnerID})
	return nil
}

// ListMembers returns the member list shown on the management page.
func (s *MembershipService) ListMembers(ctx context.Context, actor permission.Actor, clubID uint64) ([]model.MemberRow, error) {
	club, perms, err := s.access.resolve(ctx, actor, clubID)
	if err != nil {
		return nil, err
	}
	if !perms.CanManageMembers() {
		return nil, pkg.Forbidden("You do not have permission to manage members of this club.")
	}
	rows, err := s.members.ListMembers(ctx, clubID)
	if err != nil {
		return nil, storeError(err, "", "")
	}
	for i := range rows {
		rows[i].IsAdmin = rows[i].UserID == club.CreatorID
	}
	return rows, nil
}

// TransferCandidates lists the members the creator may hand the club to.
func (s *MembershipService) TransferCandidates(ctx context.Context, actor permission.Actor, clubID uint64) ([]model.MemberRow, error) {
	club, perms, err := s.access.resolve(ctx, actor, clubID)
	if err != nil {
		return nil, err
	}
	if !perms.CanTransferOwnership() {
		return nil, pkg.Forbidden("Only the club creator can transfer ownership.")
	}
	rows, err := s.members.ListMembers(ctx, clubID)
	if err != nil {
		return nil, storeError(err, "", "")
	}
	out := rows[:0]
	for _, r := range rows {
		if r.UserID != club.CreatorID {
			out = append(out, r)
		}
	}
	return out, nil
}
