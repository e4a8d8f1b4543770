package mysql

import (
	"context"
	"time"

	"ClubHub/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventRepository struct {
	DB *gorm.DB
}

func (r *EventRepository) Create(ctx context.Context, event *model.Event) error {
	return r.DB.WithContext(ctx).Omit(clause.Associations).Create(event).Error
}

func (r *EventRepository) FindByID(ctx context.Context, id uint64) (*model.Event, error) {
	var event model.Event
	err := r.DB.WithContext(ctx).First(&event, id).Error
	return &event, err
}

func (r *EventRepository) Update(ctx context.Context, id uint64, name, description, location string, at time.Time) (int64, error) {
	tx := r.DB.WithContext(ctx).Model(&model.Event{}).Where("id = ?", id).
		Updates(map[string]any{
			"name":           name,
			"description":    description,
			"location":       location,
			"event_datetime": at,
		})
	return tx.RowsAffected, tx.Error
}

func (r *EventRepository) Delete(ctx context.Context, id uint64) (int64, error) {
	tx := r.DB.WithContext(ctx).Delete(&model.Event{}, id)
	return tx.RowsAffected, tx.Error
}

// ListUpcoming returns events at or after from, soonest first.
func (r *EventRepository) ListUpcoming(ctx context.Context, clubID uint64, from time.Time) ([]model.EventView, error) {
	var list []model.EventView
	err := r.DB.WithContext(ctx).Model(&model.Event{}).
		Select("events.*, users.username").
		Joins("JOIN users ON users.id = events.user_id").
		Where("events.club_id = ? AND events.event_datetime >= ?", clubID, from).
		Order("events.event_datetime, events.id").
		Scan(&list).Error
	return list, err
}
