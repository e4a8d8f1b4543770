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

const eventNotFound = "Event not found."

type EventInput struct {
	Name        string
	Description string
	Location    string
	At          time.Time
}

func (in EventInput) normalize() (EventInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.Location = strings.TrimSpace(in.Location)
	at := "set"
	if in.At.IsZero() {
		at = ""
	}
	return in, required(
		field("Event name", in.Name),
		field("Date and time", at),
		field("Location", in.Location),
		field("Description", in.Description),
	)
}

type EventService struct {
	access clubAccess
	events *mysql.EventRepository
}

func NewEventService(db *gorm.DB) *EventService {
	return &EventService{
		access: newClubAccess(db),
		events: &mysql.EventRepository{DB: db},
	}
}

func (s *EventService) Create(ctx context.Context, actor permission.Actor, clubID uint64, in EventInput) (*model.Event, error) {
	_, perms, err := s.access.resolve(ctx, actor, clubID)
	if err != nil {
		return nil, err
	}
	if !perms.CanPost {
		return nil, pkg.Forbidden("You do not have permission to create events in this club.")
	}
	in, err = in.normalize()
	if err != nil {
		return nil, err
	}
	event := &model.Event{
		Name:          in.Name,
		Description:   in.Description,
		Location:      in.Location,
		EventDatetime: in.At,
		UserID:        actor.ID,
		ClubID:        clubID,
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, storeError(err, "Club not found.", "")
	}
	return event, nil
}

func (s *EventService) editable(ctx context.Context, actor permission.Actor, eventID, clubID uint64) (*model.Event, error) {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, storeError(err, eventNotFound, "")
	}
	if clubID != 0 && event.ClubID != clubID {
		return nil, pkg.NotFound(eventNotFound)
	}
	_, perms, err := s.access.resolve(ctx, actor, event.ClubID)
	if err != nil {
		return nil, err
	}
	if !perms.CanEditContent(event.UserID) {
		return nil, pkg.Forbidden("You do not have permission to change this event.")
	}
	return event, nil
}

func (s *EventService) Update(ctx context.Context, actor permission.Actor, eventID uint64, in EventInput) (int64, error) {
	if _, err := s.editable(ctx, actor, eventID, 0); err != nil {
		return 0, err
	}
	in, err := in.normalize()
	if err != nil {
		return 0, err
	}
	n, err := s.events.Update(ctx, eventID, in.Name, in.Description, in.Location, in.At)
	if err != nil {
		return 0, storeError(err, eventNotFound, "")
	}
	return n, nil
}

// Delete removes an event of clubID. An event from another club is reported
// as not found.
func (s *EventService) Delete(ctx context.Context, actor permission.Actor, clubID, eventID uint64) (int64, error) {
	if _, err := s.editable(ctx, actor, eventID, clubID); err != nil {
		return 0, err
	}
	n, err := s.events.Delete(ctx, eventID)
	if err != nil {
		return 0, storeError(err, eventNotFound, "")
	}
	if n == 0 {
		return 0, pkg.NotFound(eventNotFound)
	}
	return n, nil
}

func (s *EventService) Get(ctx context.Context, actor permission.Actor, eventID uint64) (*model.Event, error) {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, storeError(err, eventNotFound, "")
	}
	_, perms, err := s.access.resolve(ctx, actor, event.ClubID)
	if err != nil {
		return nil, err
	}
	if !perms.CanViewContent() {
		return nil, pkg.Forbidden("Join the club to see its events.")
	}
	return event, nil
}
