package items

import (
	"context"

	"github.com/anoixa/tripill/database/models"
	"github.com/anoixa/tripill/internal/apperr"
	"github.com/anoixa/tripill/internal/trips"
)

// Append 在行程末尾追加地点，序号为当前地点数
func (s *Service) Append(ctx context.Context, userID, tripID uint, in Details) (*ItemView, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	trip, err := s.trips.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if !trips.CanMutateTrip(userID, trip) {
		return nil, apperr.Forbidden("you do not own trip %d", tripID)
	}

	unlock := s.tripLocks.Lock(tripID)
	defer unlock()

	item := &models.Item{TripID: tripID}
	in.applyTo(item)
	if err := s.repo.Append(ctx, item, trips.MutationGuard(userID)); err != nil {
		return nil, translate(err, "trip %d", tripID)
	}
	return newItemView(item), nil
}

// Delete 删除地点，其后的地点序号前移一位
func (s *Service) Delete(ctx context.Context, userID, tripID, itemID uint) error {
	trip, err := s.trips.GetTrip(ctx, tripID)
	if err != nil {
		return err
	}
	if !trips.CanMutateTrip(userID, trip) {
		return apperr.Forbidden("you do not own trip %d", tripID)
	}

	unlock := s.tripLocks.Lock(tripID)
	defer unlock()

	return translate(s.repo.Delete(ctx, tripID, itemID, trips.MutationGuard(userID)), "item %d in trip %d", itemID, tripID)
}

// Reorder 将地点移动到 newOrdinal，newOrdinal 必须在 [0, count) 内
func (s *Service) Reorder(ctx context.Context, userID, itemID uint, newOrdinal int) (*ItemView, error) {
	item, err := s.loadItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	unlock := s.tripLocks.Lock(item.TripID)
	defer unlock()

	moved, err := s.repo.Reorder(ctx, item.TripID, itemID, newOrdinal, trips.MutationGuard(userID))
	if err != nil {
		return nil, translate(err, "item %d", itemID)
	}
	return newItemView(moved), nil
}

// List 按序号列出行程中的地点，每次调用都重新查询
func (s *Service) List(ctx context.Context, viewerID, tripID uint) ([]*ItemView, error) {
	if _, err := s.trips.GetTrip(ctx, tripID); err != nil {
		return nil, err
	}

	items, err := s.repo.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, apperr.Internal(err, "list items of trip %d", tripID)
	}
	return s.itemViews(ctx, viewerID, items)
}

// Update 修改地点内容；坐标变化时重新执行重复坐标检查，不改变行程和序号
func (s *Service) Update(ctx context.Context, userID, itemID uint, in Details) (*ItemView, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	item, err := s.loadItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	unlock := s.tripLocks.Lock(item.TripID)
	defer unlock()
	if item.IsShared {
		unlockUser := s.userLocks.Lock(userID)
		defer unlockUser()
	}

	updated, err := s.repo.Update(ctx, item.TripID, itemID, trips.MutationGuard(userID), func(item *models.Item) error {
		in.applyTo(item)
		return nil
	})
	if err != nil {
		return nil, translate(err, "item %d", itemID)
	}

	views, err := s.itemViews(ctx, userID, []*models.Item{updated})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}
