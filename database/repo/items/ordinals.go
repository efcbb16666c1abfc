package items

import (
	"context"
	"fmt"

	"github.com/anoixa/tripill/database/models"
	"github.com/anoixa/tripill/database/repo/trips"
	"gorm.io/gorm"
)

// OrdinalReport 行程序号统计
type OrdinalReport struct {
	TripID           uint
	Count            int64
	MinOrdinal       int
	MaxOrdinal       int
	DistinctOrdinals int64
}

// Contiguous 序号集合是否恰好为 {0..count-1}
func (r OrdinalReport) Contiguous() bool {
	if r.Count == 0 {
		return true
	}
	return r.MinOrdinal == 0 && int64(r.MaxOrdinal) == r.Count-1 && r.DistinctOrdinals == r.Count
}

// BrokenOrdinals 返回序号不连续的行程，tripID 为 0 时检查全部行程
func (r *Repository) BrokenOrdinals(ctx context.Context, tripID uint) ([]OrdinalReport, error) {
	var reports []OrdinalReport
	q := r.db.WithContext(ctx).
		Model(&models.Item{}).
		Select("trip_id, COUNT(*) AS count, MIN(ordinal) AS min_ordinal, MAX(ordinal) AS max_ordinal, COUNT(DISTINCT ordinal) AS distinct_ordinals").
		Group("trip_id").
		Having("MIN(ordinal) <> 0 OR MAX(ordinal) <> COUNT(*) - 1 OR COUNT(DISTINCT ordinal) <> COUNT(*)").
		Order("trip_id asc")
	if tripID != 0 {
		q = q.Where("trip_id = ?", tripID)
	}
	if err := q.Scan(&reports).Error; err != nil {
		return nil, fmt.Errorf("failed to inspect ordinals: %w", err)
	}
	return reports, nil
}

// Renumber 按 (ordinal, id) 顺序将行程序号重排为 {0..n-1}，返回修改的地点数
func (r *Repository) Renumber(ctx context.Context, tripID uint) (int, error) {
	changed := 0
	err := r.db.Transaction(ctx, func(tx *gorm.DB) error {
		if _, err := trips.LockTrip(tx, tripID); err != nil {
			return err
		}

		var items []*models.Item
		if err := tx.Where("trip_id = ?", tripID).Order("ordinal asc, id asc").Find(&items).Error; err != nil {
			return err
		}
		for i, item := range items {
			if item.Ordinal == i {
				continue
			}
			if err := tx.Model(item).UpdateColumn("ordinal", i).Error; err != nil {
				return fmt.Errorf("failed to renumber item %d: %w", item.ID, err)
			}
			changed++
		}
		return nil
	})
	return changed, err
}
