package items

import (
	"context"
	"errors"
	"fmt"

	"github.com/anoixa/tripill/database"
	"github.com/anoixa/tripill/database/models"
	"github.com/anoixa/tripill/database/repo/trips"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrDuplicateCoordinate 同一行程中已有相同坐标的地点
	ErrDuplicateCoordinate = errors.New("an item with the same coordinate already exists in this trip")
	// ErrOrdinalOutOfRange 目标序号不在 [0, count) 内
	ErrOrdinalOutOfRange = errors.New("ordinal out of range")
	// ErrAlreadySharedHere 用户在该坐标已有其他分享的地点
	ErrAlreadySharedHere = errors.New("another item at this coordinate is already shared")
)

// Repository 地点仓库
// 所有修改序号的操作都在单个事务中执行，并先锁定所属行程行
type Repository struct {
	db database.Provider
}

// NewRepository 创建新的地点仓库
func NewRepository(db database.Provider) *Repository {
	return &Repository{db: db}
}

// GetItemByID 通过ID获取地点
func (r *Repository) GetItemByID(ctx context.Context, itemID uint) (*models.Item, error) {
	var item models.Item
	if err := r.db.WithContext(ctx).First(&item, itemID).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// ListByTrip 按序号升序列出行程地点，序号相同时按ID
func (r *Repository) ListByTrip(ctx context.Context, tripID uint) ([]*models.Item, error) {
	var items []*models.Item
	err := r.db.WithContext(ctx).
		Where("trip_id = ?", tripID).
		Order("ordinal asc, id asc").
		Find(&items).Error
	return items, err
}

// OwnerIDOf 返回地点所属行程的拥有者
func (r *Repository) OwnerIDOf(ctx context.Context, itemID uint) (uint, error) {
	var ownerIDs []uint
	err := r.db.WithContext(ctx).
		Model(&models.Item{}).
		Joins("JOIN trips ON trips.id = items.trip_id").
		Where("items.id = ?", itemID).
		Pluck("trips.owner_id", &ownerIDs).Error
	if err != nil {
		return 0, err
	}
	if len(ownerIDs) == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return ownerIDs[0], nil
}

// Append 在行程末尾追加地点，序号为当前地点数
func (r *Repository) Append(ctx context.Context, item *models.Item, guard trips.Guard) error {
	err := r.db.Transaction(ctx, func(tx *gorm.DB) error {
		trip, err := trips.LockTrip(tx, item.TripID)
		if err != nil {
			return err
		}
		if err := guard(trip); err != nil {
			return err
		}

		taken, err := coordinateTaken(tx, item.TripID, CoordinateOf(item), 0)
		if err != nil {
			return err
		}
		if taken {
			return ErrDuplicateCoordinate
		}

		var count int64
		if err := tx.Model(&models.Item{}).Where("trip_id = ?", item.TripID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to count items of trip %d: %w", item.TripID, err)
		}

		item.ID = 0
		item.IsShared = false
		item.Ordinal = int(count)
		return tx.Create(item).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateCoordinate
	}
	return err
}

// Delete 删除地点并压缩其后的序号，同时清理该地点的点赞
func (r *Repository) Delete(ctx context.Context, tripID, itemID uint, guard trips.Guard) error {
	return r.db.Transaction(ctx, func(tx *gorm.DB) error {
		trip, err := trips.LockTrip(tx, tripID)
		if err != nil {
			return err
		}
		if err := guard(trip); err != nil {
			return err
		}

		var item models.Item
		if err := tx.First(&item, "id = ? AND trip_id = ?", itemID, tripID).Error; err != nil {
			return err
		}

		if err := shiftOrdinals(tx, tripID, item.Ordinal+1, -1, -1); err != nil {
			return err
		}
		if err := tx.Where("target_kind = ? AND target_id = ?", models.TargetItem, item.ID).
			Delete(&models.Appreciation{}).Error; err != nil {
			return fmt.Errorf("failed to delete appreciations of item %d: %w", item.ID, err)
		}
		if err := tx.Delete(&item).Error; err != nil {
			return fmt.Errorf("failed to delete item %d: %w", item.ID, err)
		}
		return nil
	})
}

// Reorder 将地点移动到新序号，区间内其他地点平移一位
func (r *Repository) Reorder(ctx context.Context, tripID, itemID uint, newOrdinal int, guard trips.Guard) (*models.Item, error) {
	var moved models.Item
	err := r.db.Transaction(ctx, func(tx *gorm.DB) error {
		trip, err := trips.LockTrip(tx, tripID)
		if err != nil {
			return err
		}
		if err := guard(trip); err != nil {
			return err
		}

		if err := tx.First(&moved, "id = ? AND trip_id = ?", itemID, tripID).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.Item{}).Where("trip_id = ?", tripID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to count items of trip %d: %w", tripID, err)
		}
		if newOrdinal < 0 || int64(newOrdinal) >= count {
			return ErrOrdinalOutOfRange
		}

		old := moved.Ordinal
		switch {
		case newOrdinal == old:
			return nil
		case newOrdinal < old:
			// [new, old) 后移
			if err := shiftOrdinals(tx, tripID, newOrdinal, old-1, 1); err != nil {
				return err
			}
		default:
			// (old, new] 前移
			if err := shiftOrdinals(tx, tripID, old+1, newOrdinal, -1); err != nil {
				return err
			}
		}

		if err := tx.Model(&moved).UpdateColumn("ordinal", newOrdinal).Error; err != nil {
			return fmt.Errorf("failed to set ordinal of item %d: %w", itemID, err)
		}
		moved.Ordinal = newOrdinal
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &moved, nil
}

// Update 在行锁下修改地点内容，不允许修改所属行程和序号
func (r *Repository) Update(ctx context.Context, tripID, itemID uint, guard trips.Guard, apply func(item *models.Item) error) (*models.Item, error) {
	var item models.Item
	err := r.db.Transaction(ctx, func(tx *gorm.DB) error {
		trip, err := trips.LockTrip(tx, tripID)
		if err != nil {
			return err
		}
		if err := guard(trip); err != nil {
			return err
		}

		if err := tx.First(&item, "id = ? AND trip_id = ?", itemID, tripID).Error; err != nil {
			return err
		}
		before := CoordinateOf(&item)
		ordinal, shared := item.Ordinal, item.IsShared
		if err := apply(&item); err != nil {
			return err
		}
		item.TripID, item.Ordinal, item.IsShared = tripID, ordinal, shared

		if after := CoordinateOf(&item); !SameCoordinate(before, after) {
			taken, err := coordinateTaken(tx, tripID, after, item.ID)
			if err != nil {
				return err
			}
			if taken {
				return ErrDuplicateCoordinate
			}
			if item.IsShared {
				if err := lockUser(tx, trip.OwnerID); err != nil {
					return err
				}
				shared, err := sharedElsewhere(tx, trip.OwnerID, after, item.ID)
				if err != nil {
					return err
				}
				if shared {
					return ErrAlreadySharedHere
				}
			}
		}

		return tx.Model(&item).
			Select("lat", "lng", "location", "description", "image", "start_date", "end_date", "note").
			Updates(&item).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrDuplicateCoordinate
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// SetShared 设置地点分享状态
// 分享前在用户行锁下检查该用户是否已在同一坐标分享了其他地点
func (r *Repository) SetShared(ctx context.Context, userID, itemID uint, shared bool, guard trips.Guard) (*models.Item, error) {
	var item models.Item
	err := r.db.Transaction(ctx, func(tx *gorm.DB) error {
		if err := lockUser(tx, userID); err != nil {
			return err
		}
		if err := tx.First(&item, itemID).Error; err != nil {
			return err
		}
		var trip models.Trip
		if err := tx.First(&trip, item.TripID).Error; err != nil {
			return err
		}
		if err := guard(&trip); err != nil {
			return err
		}

		if shared {
			taken, err := sharedElsewhere(tx, userID, CoordinateOf(&item), item.ID)
			if err != nil {
				return err
			}
			if taken {
				return ErrAlreadySharedHere
			}
		}

		if item.IsShared == shared {
			return nil
		}
		if err := tx.Model(&item).Update("is_shared", shared).Error; err != nil {
			return fmt.Errorf("failed to update share state of item %d: %w", itemID, err)
		}
		item.IsShared = shared
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// SharerIDs 返回在该坐标分享了地点的用户，按用户ID升序，排除 excludingUserID
func (r *Repository) SharerIDs(ctx context.Context, c Coordinate, excludingUserID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.Item{}).
		Joins("JOIN trips ON trips.id = items.trip_id").
		Scopes(CoordinateScope(c)).
		Where("items.is_shared = ? AND trips.owner_id <> ?", true, excludingUserID).
		Order("trips.owner_id asc").
		Distinct().
		Pluck("trips.owner_id", &ids).Error
	return ids, err
}

// OwnerSharedItem 返回用户在该坐标分享的地点
func (r *Repository) OwnerSharedItem(ctx context.Context, userID uint, c Coordinate) (*models.Item, error) {
	var item models.Item
	err := r.db.WithContext(ctx).
		Select("items.*").
		Joins("JOIN trips ON trips.id = items.trip_id").
		Scopes(CoordinateScope(c)).
		Where("items.is_shared = ? AND trips.owner_id = ?", true, userID).
		Order("items.id asc").
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// SharedAt 列出该坐标上所有分享的地点，按ID升序
func (r *Repository) SharedAt(ctx context.Context, c Coordinate) ([]*models.Item, error) {
	var items []*models.Item
	err := r.db.WithContext(ctx).
		Scopes(CoordinateScope(c)).
		Where("items.is_shared = ?", true).
		Order("items.id asc").
		Find(&items).Error
	return items, err
}

// shiftOrdinals 将 [from, to] 区间内的序号整体加 delta，to 为负数表示不设上界
func shiftOrdinals(tx *gorm.DB, tripID uint, from, to, delta int) error {
	q := tx.Model(&models.Item{}).Where("trip_id = ? AND ordinal >= ?", tripID, from)
	if to >= 0 {
		q = q.Where("ordinal <= ?", to)
	}
	if err := q.UpdateColumn("ordinal", gorm.Expr("ordinal + ?", delta)).Error; err != nil {
		return fmt.Errorf("failed to shift ordinals of trip %d: %w", tripID, err)
	}
	return nil
}

// coordinateTaken 检查行程中是否已有相同坐标的地点，exceptID 为 0 时不排除
func coordinateTaken(tx *gorm.DB, tripID uint, c Coordinate, exceptID uint) (bool, error) {
	var count int64
	q := tx.Model(&models.Item{}).Scopes(CoordinateScope(c)).Where("items.trip_id = ?", tripID)
	if exceptID != 0 {
		q = q.Where("items.id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check coordinate in trip %d: %w", tripID, err)
	}
	return count > 0, nil
}

// sharedElsewhere 检查用户在任一行程中是否已在该坐标分享了其他地点
func sharedElsewhere(tx *gorm.DB, userID uint, c Coordinate, exceptID uint) (bool, error) {
	var count int64
	err := tx.Model(&models.Item{}).
		Joins("JOIN trips ON trips.id = items.trip_id").
		Scopes(CoordinateScope(c)).
		Where("items.is_shared = ? AND trips.owner_id = ? AND items.id <> ?", true, userID, exceptID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check shared items of user %d: %w", userID, err)
	}
	return count > 0, nil
}

func lockUser(tx *gorm.DB, userID uint) error {
	var user models.User
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).Select("id").First(&user, userID).Error
}
