package service

import (
	"context"
	"strings"
	"time"

	"ClubHub/internal/model"
	"ClubHub/internal/permission"
	"ClubHub/internal/pkg"
	"ClubHub/internal/repository/mysql"

	"gorm.io/gorm"
)

const clubNameTaken = "A club with that name already exists."

type ClubService struct {
	access   clubAccess
	clubs    *mysql.ClubRepository
	members  *mysql.ClubMemberRepository
	users    *mysql.UserRepository
	posts    *mysql.PostRepository
	events   *mysql.EventRepository
	activity *ActivityRecorder
	now      func() time.Time
}

func NewClubService(db *gorm.DB, activity *ActivityRecorder) *ClubService {
	return &ClubService{
		access:   newClubAccess(db),
		clubs:    &mysql.ClubRepository{DB: db},
		members:  &mysql.ClubMemberRepository{DB: db},
		users:    &mysql.UserRepository{DB: db},
		posts:    &mysql.PostRepository{DB: db},
		events:   &mysql.EventRepository{DB: db},
		activity: activity,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// ClubView is everything the club page shows. Posts and Events are only
// filled in for actors allowed to see the club's content.
type ClubView struct {
	Club        *model.Club       `json:"club"`
	CreatorName string            `json:"creator_name"`
	MemberCount int64             `json:"member_count"`
	Permissions permission.Set    `json:"permissions"`
	Posts       []model.PostView  `json:"posts"`
	Events      []model.EventView `json:"events"`
}

// Create inserts the club and makes actor its creator and first member.
func (s *ClubService) Create(ctx context.Context, actor permission.Actor, name, description string) (*model.Club, error) {
	name, description = strings.TrimSpace(name), strings.TrimSpace(description)
	if err := required(field("Club name", name), field("Description", description)); err != nil {
		return nil, err
	}
	club := &model.Club{Name: name, Description: description, CreatorID: actor.ID}
	if err := s.clubs.Create(ctx, club); err != nil {
		return nil, storeError(err, "User not found.", clubNameTaken)
	}
	s.activity.Record(ctx, Activity{Type: ActivityClubCreated, ActorID: actor.ID, ClubID: club.ID, Detail: club.Name})
	return club, nil
}

func (s *ClubService) Update(ctx context.Context, actor permission.Actor, clubID uint64, name, description string) (int64, error) {
	_, perms, err := s.access.resolve(ctx, actor, clubID)
	if err != nil {
		return 0, err
	}
	if !perms.CanManageClub() {
		return 0, pkg.Forbidden("You do not have permission to edit this club.")
	}
	name, description = strings.TrimSpace(name), strings.TrimSpace(description)
	if err := required(field("Club name", name), field("Description", description)); err != nil {
		return 0, err
	}
	n, err := s.clubs.Update(ctx, clubID, name, description)
	if err != nil {
		return 0, storeError(err, "Club not found.", clubNameTaken)
	}
	return n, nil
}

// Delete removes the club and, through the cascade, everything in it.
// Asking the user to type the club name is left to the caller.
// Delete removes the club and everything in it. confirmName must repeat the
// club's name exactly; it is checked only once the actor may delete.
func (s *ClubService) Delete(ctx context.Context, actor permission.Actor, clubID uint64, confirmName string) (int64, error) {
	club, perms, err := s.access.resolve(ctx, actor, clubID)
	if err != nil {
		return 0, err
	}
	if !perms.CanDeleteClub() {
		return 0, pkg.Forbidden("You do not have permission to delete this club.")
	}
	if confirmName != club.Name {
		return 0, pkg.Validation("Type the club name to confirm.")
	}
	n, err := s.clubs.Delete(ctx, clubID)
	if err != nil {
		return 0, storeError(err, "Club not found.", "")
	}
	if n == 0 {
		return 0, pkg.NotFound("Club not found.")
	}
	s.activity.Record(ctx, Activity{Type: ActivityClubDeleted, ActorID: actor.ID, ClubID: clubID, Detail: club.Name})
	return n, nil
}

// List returns all clubs for browsing, newest first.
func (s *ClubService) List(ctx context.Context) ([]model.ClubListing, error) {
	list, err := s.clubs.ListNewest(ctx)
	if err != nil {
		return nil, storeError(err, "", "")
	}
	return list, nil
}

func (s *ClubService) View(ctx context.Context, actor permission.Actor, clubID uint64) (*ClubView, error) {
	club, perms, err := s.access.resolve(ctx, actor, clubID)
	if err != nil {
		return nil, err
	}
	view := &ClubView{Club: club, Permissions: perms}

	creator, err := s.users.FindByID(ctx, club.CreatorID)
	if err != nil {
		return nil, storeError(err, "Club not found.", "")
	}
	view.CreatorName = creator.Username

	if view.MemberCount, err = s.members.Count(ctx, clubID); err != nil {
		return nil, storeError(err, "", "")
	}
	if !perms.CanViewContent() {
		return view, nil
	}
	if view.Posts, err = s.posts.ListByClub(ctx, clubID); err != nil {
		return nil, storeError(err, "", "")
	}
	if view.Events, err = s.events.ListUpcoming(ctx, clubID, s.now()); err != nil {
		return nil, storeError(err, "", "")
	}
	return view, nil
}
