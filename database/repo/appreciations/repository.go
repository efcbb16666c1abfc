package appreciations

import (
	"context"
	"fmt"

	"github.com/anoixa/tripill/database"
	"github.com/anoixa/tripill/database/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository 点赞仓库
type Repository struct {
	db database.Provider
}

// NewRepository 创建新的点赞仓库
func NewRepository(db database.Provider) *Repository {
	return &Repository{db: db}
}

// Toggle 切换点赞状态，返回切换后的状态和点赞总数
// 删除成功即取消点赞；否则插入，唯一索引冲突说明并发请求已经点过赞
func (r *Repository) Toggle(ctx context.Context, userID uint, kind models.TargetKind, targetID uint) (bool, int64, error) {
	var liked bool
	var total int64

	err := r.db.Transaction(ctx, func(tx *gorm.DB) error {
		if err := targetExists(tx, kind, targetID); err != nil {
			return err
		}

		removed := tx.Where("user_id = ? AND target_kind = ? AND target_id = ?", userID, kind, targetID).
			Delete(&models.Appreciation{})
		if removed.Error != nil {
			return fmt.Errorf("failed to remove appreciation: %w", removed.Error)
		}

		if removed.RowsAffected == 0 {
			row := &models.Appreciation{UserID: userID, TargetKind: kind, TargetID: targetID}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(row).Error; err != nil {
				return fmt.Errorf("failed to insert appreciation: %w", err)
			}
			liked = true
		}

		return tx.Model(&models.Appreciation{}).
			Where("target_kind = ? AND target_id = ?", kind, targetID).
			Count(&total).Error
	})
	if err != nil {
		return false, 0, err
	}
	return liked, total, nil
}

// Count 统计对象的点赞数
func (r *Repository) Count(ctx context.Context, kind models.TargetKind, targetID uint) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Appreciation{}).
		Where("target_kind = ? AND target_id = ?", kind, targetID).
		Count(&total).Error
	return total, err
}

// Exists 用户是否已点赞该对象
func (r *Repository) Exists(ctx context.Context, userID uint, kind models.TargetKind, targetID uint) (bool, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Appreciation{}).
		Where("user_id = ? AND target_kind = ? AND target_id = ?", userID, kind, targetID).
		Count(&total).Error
	return total > 0, err
}

// CountMany 批量统计点赞数，没有点赞的对象不出现在结果中
func (r *Repository) CountMany(ctx context.Context, kind models.TargetKind, targetIDs []uint) (map[uint]int64, error) {
	result := make(map[uint]int64, len(targetIDs))
	if len(targetIDs) == 0 {
		return result, nil
	}

	var rows []struct {
		TargetID uint
		Total    int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Appreciation{}).
		Select("target_id, COUNT(*) AS total").
		Where("target_kind = ? AND target_id IN ?", kind, targetIDs).
		Group("target_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.TargetID] = row.Total
	}
	return result, nil
}

// LikedSet 返回用户点赞过的对象集合
func (r *Repository) LikedSet(ctx context.Context, userID uint, kind models.TargetKind, targetIDs []uint) (map[uint]bool, error) {
	result := make(map[uint]bool, len(targetIDs))
	if len(targetIDs) == 0 {
		return result, nil
	}

	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.Appreciation{}).
		Where("user_id = ? AND target_kind = ? AND target_id IN ?", userID, kind, targetIDs).
		Pluck("target_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		result[id] = true
	}
	return result, nil
}

func targetExists(tx *gorm.DB, kind models.TargetKind, targetID uint) error {
	var model interface{}
	switch kind {
	case models.TargetTrip:
		model = &models.Trip{}
	case models.TargetItem:
		model = &models.Item{}
	default:
		return fmt.Errorf("unknown appreciation target kind %q", kind)
	}

	var count int64
	if err := tx.Model(model).Where("id = ?", targetID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
