package items

import (
	"context"
	"encoding/json"
	"time"

	"github.com/anoixa/tripill/database/models"
)

// ItemView 地点展示
type ItemView struct {
	ID            uint            `json:"id"`
	TripID        uint            `json:"trip"`
	Lat           float64         `json:"lat"`
	Lng           float64         `json:"lng"`
	Location      string          `json:"location"`
	Description   string          `json:"description"`
	Image         string          `json:"image"`
	StartDate     *time.Time      `json:"start_date"`
	EndDate       *time.Time      `json:"end_date"`
	Note          json.RawMessage `json:"note"`
	IsShared      bool            `json:"is_shared"`
	Ordinal       int             `json:"ordinal"`
	IsLiked       bool            `json:"is_liked"`
	NumberOfLikes int64           `json:"number_of_likes"`
}

func newItemView(item *models.Item) *ItemView {
	var note json.RawMessage
	if item.Note != "" {
		note = json.RawMessage(item.Note)
	}
	return &ItemView{
		ID:          item.ID,
		TripID:      item.TripID,
		Lat:         item.Lat,
		Lng:         item.Lng,
		Location:    item.Location,
		Description: item.Description,
		Image:       item.Image,
		StartDate:   item.StartDate,
		EndDate:     item.EndDate,
		Note:        note,
		IsShared:    item.IsShared,
		Ordinal:     item.Ordinal,
	}
}

// itemViews 批量组装地点展示，点赞数从数据库实时统计
func (s *Service) itemViews(ctx context.Context, viewerID uint, items []*models.Item) ([]*ItemView, error) {
	views := make([]*ItemView, 0, len(items))
	if len(items) == 0 {
		return views, nil
	}

	ids := make([]uint, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}

	counts, err := s.ledger.CountMany(ctx, models.TargetItem, ids)
	if err != nil {
		return nil, err
	}
	liked, err := s.ledger.LikedSet(ctx, viewerID, models.TargetItem, ids)
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		view := newItemView(item)
		view.IsLiked = liked[item.ID]
		view.NumberOfLikes = counts[item.ID]
		views = append(views, view)
	}
	return views, nil
}
