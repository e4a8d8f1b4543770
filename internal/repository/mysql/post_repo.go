package mysql

import (
	"context"

	"ClubHub/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostRepository struct {
	DB *gorm.DB
}

func (r *PostRepository) Create(ctx context.Context, post *model.Post) error {
	return r.DB.WithContext(ctx).Omit(clause.Associations).Create(post).Error
}

func (r *PostRepository) FindByID(ctx context.Context, id uint64) (*model.Post, error) {
	var post model.Post
	err := r.DB.WithContext(ctx).First(&post, id).Error
	return &post, err
}

func (r *PostRepository) Update(ctx context.Context, id uint64, title, content string) (int64, error) {
	tx := r.DB.WithContext(ctx).Model(&model.Post{}).Where("id = ?", id).
		Updates(map[string]any{"title": title, "content": content})
	return tx.RowsAffected, tx.Error
}

func (r *PostRepository) Delete(ctx context.Context, id uint64) (int64, error) {
	tx := r.DB.WithContext(ctx).Delete(&model.Post{}, id)
	return tx.RowsAffected, tx.Error
}

// ListByClub returns the club's posts with author names, newest first.
func (r *PostRepository) ListByClub(ctx context.Context, clubID uint64) ([]model.PostView, error) {
	var list []model.PostView
	err := r.DB.WithContext(ctx).Model(&model.Post{}).
		Select("posts.*, users.username").
		Joins("JOIN users ON users.id = posts.user_id").
		Where("posts.club_id = ?", clubID).
		Order("posts.post_date DESC, posts.id DESC").
		Scan(&list).Error
	return list, err
}
