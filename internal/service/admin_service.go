package service

import (
	"context"

	"ClubHub/internal/model"
	"ClubHub/internal/permission"
	"ClubHub/internal/pkg"
	"ClubHub/internal/repository/mysql"

	"gorm.io/gorm"
)

var errNotSuperAdmin = pkg.Forbidden("Only a superadmin can do that.")

// AdminService is the platform moderation surface. Every method requires a
// superadmin actor.
type AdminService struct {
	users    *mysql.UserRepository
	clubs    *mysql.ClubRepository
	sessions SessionStore
	activity *ActivityRecorder
}

func NewAdminService(db *gorm.DB, sessions SessionStore, activity *ActivityRecorder) *AdminService {
	return &AdminService{
		users:    &mysql.UserRepository{DB: db},
		clubs:    &mysql.ClubRepository{DB: db},
		sessions: sessions,
		activity: activity,
	}
}

func (s *AdminService) ListUsers(ctx context.Context, actor permission.Actor) ([]model.User, error) {
	if !actor.IsSuperAdmin() {
		return nil, errNotSuperAdmin
	}
	list, err := s.users.List(ctx)
	if err != nil {
		return nil, storeError(err, "", "")
	}
	return list, nil
}

func (s *AdminService) ListClubs(ctx context.Context, actor permission.Actor) ([]model.ClubListing, error) {
	if !actor.IsSuperAdmin() {
		return nil, errNotSuperAdmin
	}
	list, err := s.clubs.ListByName(ctx)
	if err != nil {
		return nil, storeError(err, "", "")
	}
	return list, nil
}

// UpdateRole changes a user's platform role and ends their session so the
// new role applies from their next login.
func (s *AdminService) UpdateRole(ctx context.Context, actor permission.Actor, userID uint64, role string) (int64, error) {
	if !actor.IsSuperAdmin() {
		return 0, errNotSuperAdmin
	}
	if !model.ValidRole(role) {
		return 0, pkg.Validation("Invalid role.")
	}
	if userID == actor.ID && role != model.RoleSuperAdmin {
		return 0, pkg.Forbidden("You cannot remove your own superadmin role.")
	}
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return 0, storeError(err, "User not found.", "")
	}
	n, err := s.users.UpdateRole(ctx, userID, role)
	if err != nil {
		return 0, storeError(err, "User not found.", "")
	}
	if userID != actor.ID {
		endSession(ctx, s.sessions, userID)
	}
	s.activity.Record(ctx, Activity{Type: ActivityRoleChanged, ActorID: actor.ID, UserID: userID, Detail: role})
	return n, nil
}

func (s *AdminService) DeleteUser(ctx context.Context, actor permission.Actor, userID uint64) (int64, error) {
	if !actor.IsSuperAdmin() {
		return 0, errNotSuperAdmin
	}
	if userID == actor.ID {
		return 0, pkg.Forbidden("You cannot delete your own account from the admin panel.")
	}
	n, err := s.users.Delete(ctx, userID)
	if err != nil {
		return 0, storeError(err, "User not found.", "")
	}
	if n == 0 {
		return 0, pkg.NotFound("User not found.")
	}
	endSession(ctx, s.sessions, userID)
	s.activity.Record(ctx, Activity{Type: ActivityUserDeleted, ActorID: actor.ID, UserID: userID})
	return n, nil
}

func (s *AdminService) DeleteClub(ctx context.Context, actor permission.Actor, clubID uint64) (int64, error) {
	if !actor.IsSuperAdmin() {
		return 0, errNotSuperAdmin
	}
	n, err := s.clubs.Delete(ctx, clubID)
	if err != nil {
		return 0, storeError(err, "Club not found.", "")
	}
	if n == 0 {
		return 0, pkg.NotFound("Club not found.")
	}
	s.activity.Record(ctx, Activity{Type: ActivityClubDeleted, ActorID: actor.ID, ClubID: clubID})
	return n, nil
}
