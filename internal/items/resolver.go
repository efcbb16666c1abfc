package items

import (
	"context"

	"github.com/anoixa/tripill/database/models"
	itemsrepo "github.com/anoixa/tripill/database/repo/items"
	"github.com/anoixa/tripill/internal/accounts"
	"github.com/anoixa/tripill/internal/apperr"
	"github.com/anoixa/tripill/internal/appreciation"
	"github.com/anoixa/tripill/internal/trips"
)

// Sharer 在同一坐标分享了地点的用户
type Sharer struct {
	User          *accounts.Profile `json:"user"`
	Item          *ItemView         `json:"item"`
	NumberOfLikes int64             `json:"number_of_likes"`
}

// MarkShared 设置地点分享状态
// 同一用户在同一坐标最多分享一个地点，取消分享没有前置条件
func (s *Service) MarkShared(ctx context.Context, userID, itemID uint, shared bool) (*ItemView, error) {
	unlock := s.userLocks.Lock(userID)
	defer unlock()

	item, err := s.repo.SetShared(ctx, userID, itemID, shared, trips.MutationGuard(userID))
	if err != nil {
		return nil, translate(err, "item %d", itemID)
	}
	return newItemView(item), nil
}

// FindSharers 列出在该地点坐标分享了地点的其他用户，按用户ID升序
func (s *Service) FindSharers(ctx context.Context, itemID, excludingUserID uint) ([]*Sharer, error) {
	item, err := s.loadItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	coord := itemsrepo.CoordinateOf(item)

	userIDs, err := s.repo.SharerIDs(ctx, coord, excludingUserID)
	if err != nil {
		return nil, apperr.Internal(err, "find sharers of item %d", itemID)
	}

	sharers := make([]*Sharer, 0, len(userIDs))
	for _, userID := range userIDs {
		shared, err := s.ResolveOwnerSharedItem(ctx, userID, coord)
		if apperr.Is(err, apperr.KindNotFound) {
			// 上一步已经按存在性过滤，这里找不到说明数据不一致
			return nil, apperr.Internal(err, "sharer %d lost its shared item at %v,%v", userID, coord.Lat, coord.Lng)
		}
		if err != nil {
			return nil, err
		}

		user, err := s.accounts.GetUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		likes, err := s.ledger.CountLikes(ctx, appreciation.ItemTarget(shared.ID))
		if err != nil {
			return nil, err
		}

		view := newItemView(shared)
		view.NumberOfLikes = likes
		sharers = append(sharers, &Sharer{User: user, Item: view, NumberOfLikes: likes})
	}
	return sharers, nil
}

// ResolveOwnerSharedItem 查找用户在该坐标分享的地点
func (s *Service) ResolveOwnerSharedItem(ctx context.Context, userID uint, c Coordinate) (*models.Item, error) {
	item, err := s.repo.OwnerSharedItem(ctx, userID, c)
	if err != nil {
		return nil, translate(err, "shared item of user %d at %v,%v", userID, c.Lat, c.Lng)
	}
	return item, nil
}

// SharedAt 列出该坐标上所有分享的地点
func (s *Service) SharedAt(ctx context.Context, viewerID uint, c Coordinate) ([]*ItemView, error) {
	if err := ValidateCoordinate(c); err != nil {
		return nil, err
	}

	items, err := s.repo.SharedAt(ctx, c)
	if err != nil {
		return nil, apperr.Internal(err, "list shared items at %v,%v", c.Lat, c.Lng)
	}
	return s.itemViews(ctx, viewerID, items)
}
