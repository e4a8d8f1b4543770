package mysql

import (
	"context"

	"ClubHub/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ClubMemberRepository struct {
	DB *gorm.DB
}

// Join inserts a membership. A second join for the same (user, club) fails on
// the uk_user_club index; there is no upsert.
func (r *ClubMemberRepository) Join(ctx context.Context, m *model.ClubMembership) error {
	return r.DB.WithContext(ctx).Omit(clause.Associations).Create(m).Error
}

func (r *ClubMemberRepository) Leave(ctx context.Context, clubID, userID uint64) (int64, error) {
	tx := r.DB.WithContext(ctx).Where("club_id = ? AND user_id = ?", clubID, userID).
		Delete(&model.ClubMembership{})
	return tx.RowsAffected, tx.Error
}

func (r *ClubMemberRepository) Find(ctx context.Context, clubID, userID uint64) (*model.ClubMembership, error) {
	var m model.ClubMembership
	err := r.DB.WithContext(ctx).Where("club_id = ? AND user_id = ?", clubID, userID).First(&m).Error
	return &m, err
}

func (r *ClubMemberRepository) SetCanPost(ctx context.Context, clubID, userID uint64, canPost bool) error {
	return r.DB.WithContext(ctx).Model(&model.ClubMembership{}).
		Where("club_id = ? AND user_id = ?", clubID, userID).
		Update("can_post", canPost).Error
}

func (r *ClubMemberRepository) Count(ctx context.Context, clubID uint64) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.ClubMembership{}).
		Where("club_id = ?", clubID).Count(&count).Error
	return count, err
}

// ListMembers returns the club's members ordered by username.
func (r *ClubMemberRepository) ListMembers(ctx context.Context, clubID uint64) ([]model.MemberRow, error) {
	var list []model.MemberRow
	err := r.DB.WithContext(ctx).Model(&model.ClubMembership{}).
		Select("club_memberships.user_id, users.username, users.email, club_memberships.can_post, club_memberships.join_date").
		Joins("JOIN users ON users.id = club_memberships.user_id").
		Where("club_memberships.club_id = ?", clubID).
		Order("users.username").
		Scan(&list).Error
	return list, err
}

// ListJoined returns the clubs userID belongs to, most recently joined first.
func (r *ClubMemberRepository) ListJoined(ctx context.Context, userID uint64) ([]model.JoinedClub, error) {
	var list []model.JoinedClub
	err := r.DB.WithContext(ctx).Model(&model.ClubMembership{}).
		Select("clubs.id AS club_id, clubs.name, club_memberships.join_date").
		Joins("JOIN clubs ON clubs.id = club_memberships.club_id").
		Where("club_memberships.user_id = ?", userID).
		Order("club_memberships.join_date DESC, club_memberships.id DESC").
		Scan(&list).Error
	return list, err
}
