package trips

import (
	"context"
	"time"

	"github.com/anoixa/tripill/database/models"
	"github.com/anoixa/tripill/internal/accounts"
)

// TripView 行程列表展示
type TripView struct {
	ID            uint       `json:"id"`
	OwnerID       uint       `json:"owner"`
	AlbumID       *uint      `json:"album"`
	Name          string     `json:"name"`
	Location      string     `json:"location"`
	Description   string     `json:"description"`
	Image         string     `json:"image"`
	StartDate     *time.Time `json:"start_date"`
	EndDate       *time.Time `json:"end_date"`
	Collaborators []uint     `json:"collaborators"`
	Days          int        `json:"days"`
	IsLiked       bool       `json:"is_liked"`
	NumberOfLikes int64      `json:"number_of_likes"`
}

// TripDetail 行程详情，附带拥有者和协作者资料
type TripDetail struct {
	*TripView
	Owner                *accounts.Profile   `json:"owner_profile"`
	CollaboratorProfiles []*accounts.Profile `json:"collaborator_profiles"`
}

// AlbumView 相册列表展示，Images 为相册内行程的封面
type AlbumView struct {
	ID        uint     `json:"id"`
	OwnerID   uint     `json:"user"`
	Name      string   `json:"name"`
	Images    []string `json:"images"`
	TripCount int      `json:"trip_count"`
}

// AlbumDetail 相册详情
type AlbumDetail struct {
	*AlbumView
	Trips []*TripView `json:"trips"`
}

// tripViews 批量组装行程展示，点赞数和协作者各查询一次
func (s *Service) tripViews(ctx context.Context, viewerID uint, trips []*models.Trip) ([]*TripView, error) {
	views := make([]*TripView, 0, len(trips))
	if len(trips) == 0 {
		return views, nil
	}

	ids := make([]uint, 0, len(trips))
	for _, trip := range trips {
		ids = append(ids, trip.ID)
	}

	collaborators, err := s.trips.CollaboratorIDs(ctx, ids)
	if err != nil {
		return nil, translate(err, "collaborators of trips")
	}
	counts, err := s.ledger.CountMany(ctx, models.TargetTrip, ids)
	if err != nil {
		return nil, err
	}
	liked, err := s.ledger.LikedSet(ctx, viewerID, models.TargetTrip, ids)
	if err != nil {
		return nil, err
	}

	for _, trip := range trips {
		collab := collaborators[trip.ID]
		if collab == nil {
			collab = []uint{}
		}
		views = append(views, &TripView{
			ID:            trip.ID,
			OwnerID:       trip.OwnerID,
			AlbumID:       trip.AlbumID,
			Name:          trip.Name,
			Location:      trip.Location,
			Description:   trip.Description,
			Image:         trip.Image,
			StartDate:     trip.StartDate,
			EndDate:       trip.EndDate,
			Collaborators: collab,
			Days:          trip.Days(),
			IsLiked:       liked[trip.ID],
			NumberOfLikes: counts[trip.ID],
		})
	}
	return views, nil
}

func (s *Service) tripView(ctx context.Context, viewerID uint, trip *models.Trip) (*TripView, error) {
	views, err := s.tripViews(ctx, viewerID, []*models.Trip{trip})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

func albumView(album *models.Album) *AlbumView {
	images := make([]string, 0, len(album.Trips))
	for _, trip := range album.Trips {
		if trip.Image != "" {
			images = append(images, trip.Image)
		}
	}
	return &AlbumView{
		ID:        album.ID,
		OwnerID:   album.UserID,
		Name:      album.Name,
		Images:    images,
		TripCount: len(album.Trips),
	}
}
