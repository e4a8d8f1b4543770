package mysql

import (
	"context"

	"ClubHub/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ClubRepository struct {
	DB *gorm.DB
}

// Create inserts the club and the creator's membership (can_post = true) in
// one transaction. Either both rows exist afterwards or neither does.
func (r *ClubRepository) Create(ctx context.Context, c *model.Club) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(c).Error; err != nil {
			return err
		}
		mRepo := &ClubMemberRepository{DB: tx}
		return mRepo.Join(ctx, &model.ClubMembership{
			UserID:  c.CreatorID,
			ClubID:  c.ID,
			CanPost: true,
		})
	})
}

func (r *ClubRepository) FindByID(ctx context.Context, id uint64) (*model.Club, error) {
	var club model.Club
	err := r.DB.WithContext(ctx).First(&club, id).Error
	return &club, err
}

func (r *ClubRepository) Update(ctx context.Context, id uint64, name, description string) (int64, error) {
	tx := r.DB.WithContext(ctx).Model(&model.Club{}).Where("id = ?", id).
		Updates(map[string]any{"name": name, "description": description})
	return tx.RowsAffected, tx.Error
}

// Delete removes the club together with its memberships, posts and events.
func (r *ClubRepository) Delete(ctx context.Context, id uint64) (int64, error) {
	tx := r.DB.WithContext(ctx).Delete(&model.Club{}, id)
	return tx.RowsAffected, tx.Error
}

func (r *ClubRepository) listing(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx).Model(&model.Club{}).
		Select("clubs.*, users.username AS creator_name").
		Joins("JOIN users ON users.id = clubs.creator_id")
}

// ListNewest is the browse order: newest club first.
func (r *ClubRepository) ListNewest(ctx context.Context) ([]model.ClubListing, error) {
	var list []model.ClubListing
	err := r.listing(ctx).Order("clubs.created_at DESC, clubs.id DESC").Scan(&list).Error
	return list, err
}

func (r *ClubRepository) ListByName(ctx context.Context) ([]model.ClubListing, error) {
	var list []model.ClubListing
	err := r.listing(ctx).Order("clubs.name").Scan(&list).Error
	return list, err
}

func (r *ClubRepository) ListOwned(ctx context.Context, userID uint64) ([]model.Club, error) {
	var list []model.Club
	err := r.DB.WithContext(ctx).Where("creator_id = ?", userID).
		Order("created_at DESC, id DESC").Find(&list).Error
	return list, err
}

// TransferOwnership points the club at newOwnerID and grants the new owner
// posting rights, atomically. The new owner must already be a member; if not,
// gorm.ErrRecordNotFound is returned and nothing changes.
func (r *ClubRepository) TransferOwnership(ctx context.Context, clubID, newOwnerID uint64) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		mRepo := &ClubMemberRepository{DB: tx}
		if _, err := mRepo.Find(ctx, clubID, newOwnerID); err != nil {
			return err
		}
		res := tx.Model(&model.Club{}).Where("id = ?", clubID).Update("creator_id", newOwnerID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return mRepo.SetCanPost(ctx, clubID, newOwnerID, true)
	})
}
