package trips

import (
	"context"
	"fmt"

	"github.com/anoixa/tripill/database"
	"github.com/anoixa/tripill/database/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Guard 在持有行程行锁后执行的校验，返回错误则事务回滚
type Guard func(trip *models.Trip) error

// LockTrip 在事务内锁定行程行（SELECT ... FOR UPDATE）
// SQLite 驱动会忽略该子句，由 BEGIN IMMEDIATE 串行化写事务
func LockTrip(tx *gorm.DB, tripID uint) (*models.Trip, error) {
	var trip models.Trip
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&trip, "id = ?", tripID).Error; err != nil {
		return nil, err
	}
	return &trip, nil
}

// Repository 行程仓库
type Repository struct {
	db database.Provider
}

// NewRepository 创建新的行程仓库
func NewRepository(db database.Provider) *Repository {
	return &Repository{db: db}
}

// CreateTrip 创建行程
func (r *Repository) CreateTrip(ctx context.Context, trip *models.Trip) error {
	return r.db.Transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(trip).Error; err != nil {
			return fmt.Errorf("failed to create trip: %w", err)
		}
		return nil
	})
}

// GetTripByID 通过ID获取行程
func (r *Repository) GetTripByID(ctx context.Context, tripID uint) (*models.Trip, error) {
	var trip models.Trip
	if err := r.db.WithContext(ctx).First(&trip, tripID).Error; err != nil {
		return nil, err
	}
	return &trip, nil
}

// GetTripsByOwner 获取用户的行程，按ID倒序
func (r *Repository) GetTripsByOwner(ctx context.Context, ownerID uint) ([]*models.Trip, error) {
	var trips []*models.Trip
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("id desc").Find(&trips).Error
	return trips, err
}

// UpdateTrip 在行锁下更新行程的可编辑字段，owner_id 永不更新
func (r *Repository) UpdateTrip(ctx context.Context, tripID uint, guard Guard, apply func(trip *models.Trip) error) (*models.Trip, error) {
	var updated *models.Trip
	err := r.db.Transaction(ctx, func(tx *gorm.DB) error {
		trip, err := LockTrip(tx, tripID)
		if err != nil {
			return err
		}
		if err := guard(trip); err != nil {
			return err
		}
		if err := apply(trip); err != nil {
			return err
		}

		err = tx.Model(trip).
			Select("name", "location", "description", "image", "start_date", "end_date").
			Updates(trip).Error
		if err != nil {
			return fmt.Errorf("failed to update trip %d: %w", tripID, err)
		}
		updated = trip
		return nil
	})
	return updated, err
}

// DeleteTrip 删除行程及其地点、点赞和协作者
func (r *Repository) DeleteTrip(ctx context.Context, tripID uint, guard Guard) error {
	return r.db.Transaction(ctx, func(tx *gorm.DB) error {
		trip, err := LockTrip(tx, tripID)
		if err != nil {
			return err
		}
		if err := guard(trip); err != nil {
			return err
		}

		itemIDs := tx.Model(&models.Item{}).Select("id").Where("trip_id = ?", tripID)
		if err := tx.Where("target_kind = ? AND target_id IN (?)", models.TargetItem, itemIDs).
			Delete(&models.Appreciation{}).Error; err != nil {
			return fmt.Errorf("failed to delete item appreciations of trip %d: %w", tripID, err)
		}
		if err := tx.Where("target_kind = ? AND target_id = ?", models.TargetTrip, tripID).
			Delete(&models.Appreciation{}).Error; err != nil {
			return fmt.Errorf("failed to delete appreciations of trip %d: %w", tripID, err)
		}
		if err := tx.Where("trip_id = ?", tripID).Delete(&models.Item{}).Error; err != nil {
			return fmt.Errorf("failed to delete items of trip %d: %w", tripID, err)
		}
		if err := tx.Where("trip_id = ?", tripID).Delete(&models.TripCollaborator{}).Error; err != nil {
			return fmt.Errorf("failed to delete collaborators of trip %d: %w", tripID, err)
		}
		if err := tx.Delete(trip).Error; err != nil {
			return fmt.Errorf("failed to delete trip %d: %w", tripID, err)
		}
		return nil
	})
}

// SetAlbum 设置或清空行程所属相册
func (r *Repository) SetAlbum(ctx context.Context, tripID uint, albumID *uint, guard Guard) (*models.Trip, error) {
	var updated *models.Trip
	err := r.db.Transaction(ctx, func(tx *gorm.DB) error {
		trip, err := LockTrip(tx, tripID)
		if err != nil {
			return err
		}
		if err := guard(trip); err != nil {
			return err
		}
		if err := tx.Model(trip).Update("album_id", albumID).Error; err != nil {
			return fmt.Errorf("failed to set album of trip %d: %w", tripID, err)
		}
		trip.AlbumID = albumID
		updated = trip
		return nil
	})
	return updated, err
}

// CountItems 统计行程下的地点数量
func (r *Repository) CountItems(ctx context.Context, tripID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Item{}).Where("trip_id = ?", tripID).Count(&count).Error
	return count, err
}

// AddCollaborator 添加协作者，重复添加视为成功
func (r *Repository) AddCollaborator(ctx context.Context, tripID, userID uint, guard Guard) error {
	return r.db.Transaction(ctx, func(tx *gorm.DB) error {
		trip, err := LockTrip(tx, tripID)
		if err != nil {
			return err
		}
		if err := guard(trip); err != nil {
			return err
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.TripCollaborator{TripID: tripID, UserID: userID}).Error
	})
}

// RemoveCollaborator 移除协作者
func (r *Repository) RemoveCollaborator(ctx context.Context, tripID, userID uint, guard Guard) error {
	return r.db.Transaction(ctx, func(tx *gorm.DB) error {
		trip, err := LockTrip(tx, tripID)
		if err != nil {
			return err
		}
		if err := guard(trip); err != nil {
			return err
		}
		return tx.Where("trip_id = ? AND user_id = ?", tripID, userID).
			Delete(&models.TripCollaborator{}).Error
	})
}

// CollaboratorIDs 批量获取行程协作者ID，按用户ID升序
func (r *Repository) CollaboratorIDs(ctx context.Context, tripIDs []uint) (map[uint][]uint, error) {
	result := make(map[uint][]uint, len(tripIDs))
	if len(tripIDs) == 0 {
		return result, nil
	}

	var rows []models.TripCollaborator
	err := r.db.WithContext(ctx).
		Where("trip_id IN ?", tripIDs).
		Order("trip_id asc, user_id asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.TripID] = append(result[row.TripID], row.UserID)
	}
	return result, nil
}
