package albums

import (
	"context"
	"errors"
	"fmt"

	"github.com/anoixa/tripill/database"
	"github.com/anoixa/tripill/database/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrTripNotInAlbum 行程不属于该相册
var ErrTripNotInAlbum = errors.New("trip is not in album")

// Repository 相册仓库 - 封装所有相册相关的数据库操作
type Repository struct {
	db database.Provider
}

// NewRepository 创建新的相册仓库
func NewRepository(db database.Provider) *Repository {
	return &Repository{db: db}
}

// CreateAlbum 创建相册
func (r *Repository) CreateAlbum(ctx context.Context, album *models.Album) error {
	return r.db.Transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(album).Error; err != nil {
			return fmt.Errorf("failed to create album in transaction: %w", err)
		}
		return nil
	})
}

// GetAlbumByID 通过ID获取相册
func (r *Repository) GetAlbumByID(ctx context.Context, albumID uint) (*models.Album, error) {
	var album models.Album
	if err := r.db.WithContext(ctx).First(&album, albumID).Error; err != nil {
		return nil, err
	}
	return &album, nil
}

// GetAlbumWithTrips 获取相册及其行程，行程按ID倒序
func (r *Repository) GetAlbumWithTrips(ctx context.Context, albumID uint) (*models.Album, error) {
	var album models.Album
	err := r.db.WithContext(ctx).
		Preload("Trips", func(db *gorm.DB) *gorm.DB { return db.Order("id desc") }).
		First(&album, albumID).Error
	if err != nil {
		return nil, err
	}
	return &album, nil
}

// GetUserAlbums 获取用户相册列表，附带行程用于展示封面
func (r *Repository) GetUserAlbums(ctx context.Context, userID uint) ([]*models.Album, error) {
	var albums []*models.Album
	err := r.db.WithContext(ctx).
		Preload("Trips", func(db *gorm.DB) *gorm.DB { return db.Order("id desc") }).
		Where("user_id = ?", userID).
		Order("id desc").
		Find(&albums).Error
	return albums, err
}

// RenameAlbum 重命名相册
func (r *Repository) RenameAlbum(ctx context.Context, albumID uint, name string) error {
	result := r.db.WithContext(ctx).Model(&models.Album{}).Where("id = ?", albumID).Update("name", name)
	if result.Error != nil {
		return fmt.Errorf("failed to rename album %d: %w", albumID, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteAlbum 删除相册，其下行程解除关联
func (r *Repository) DeleteAlbum(ctx context.Context, albumID, userID uint) error {
	return r.db.Transaction(ctx, func(tx *gorm.DB) error {
		var album models.Album

		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&album, "id = ? AND user_id = ?", albumID, userID).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Trip{}).Where("album_id = ?", albumID).Update("album_id", nil).Error; err != nil {
			return fmt.Errorf("failed to detach trips from album %d: %w", albumID, err)
		}

		if err := tx.Delete(&album).Error; err != nil {
			return fmt.Errorf("failed to delete album %d: %w", albumID, err)
		}

		return nil
	})
}

// RemoveTrip 将行程移出相册
func (r *Repository) RemoveTrip(ctx context.Context, albumID, tripID uint) error {
	return r.db.Transaction(ctx, func(tx *gorm.DB) error {
		result := tx.Model(&models.Trip{}).
			Where("id = ? AND album_id = ?", tripID, albumID).
			Update("album_id", nil)
		if result.Error != nil {
			return fmt.Errorf("failed to remove trip %d from album %d: %w", tripID, albumID, result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrTripNotInAlbum
		}
		return nil
	})
}
