package mysql

import (
	"context"

	"ClubHub/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	return r.DB.WithContext(ctx).Create(user).Error
}

func (r *UserRepository) FindByID(ctx context.Context, id uint64) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error
	return &user, err
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error
	return &user, err
}

// List returns every account ordered by username.
func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	var list []model.User
	err := r.DB.WithContext(ctx).Order("username").Find(&list).Error
	return list, err
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id uint64, username, email string) (int64, error) {
	tx := r.DB.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).
		Updates(map[string]any{"username": username, "email": email})
	return tx.RowsAffected, tx.Error
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uint64, hash string) error {
	return r.DB.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).
		Update("password_hash", hash).Error
}

func (r *UserRepository) UpdateRole(ctx context.Context, id uint64, role string) (int64, error) {
	tx := r.DB.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update("role", role)
	return tx.RowsAffected, tx.Error
}

// Delete removes the user. Owned clubs, memberships, posts and events go
// with it through the foreign key cascade.
func (r *UserRepository) Delete(ctx context.Context, id uint64) (int64, error) {
	tx := r.DB.WithContext(ctx).Delete(&model.User{}, id)
	return tx.RowsAffected, tx.Error
}
