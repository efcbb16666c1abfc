package trips

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/anoixa/tripill/database/models"
	albumsrepo "github.com/anoixa/tripill/database/repo/albums"
	tripsrepo "github.com/anoixa/tripill/database/repo/trips"
	"github.com/anoixa/tripill/internal/accounts"
	"github.com/anoixa/tripill/internal/apperr"
	"github.com/anoixa/tripill/internal/appreciation"
)

const maxNameLength = 256

// TripInput 创建或修改行程的字段
type TripInput struct {
	Name        string
	Location    string
	Description string
	Image       string
	StartDate   *time.Time
	EndDate     *time.Time
}

func (in *TripInput) validate() error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return apperr.Invalid("trip name is required")
	}
	if len(in.Name) > maxNameLength {
		return apperr.Invalid("trip name must be at most %d characters", maxNameLength)
	}
	return ValidateWindow(in.StartDate, in.EndDate)
}

// Service 行程与相册服务
type Service struct {
	trips    *tripsrepo.Repository
	albums   *albumsrepo.Repository
	accounts *accounts.Service
	ledger   *appreciation.Ledger
}

// NewService 创建行程服务
func NewService(trips *tripsrepo.Repository, albums *albumsrepo.Repository, accounts *accounts.Service, ledger *appreciation.Ledger) *Service {
	return &Service{trips: trips, albums: albums, accounts: accounts, ledger: ledger}
}

// GetTrip 获取行程
func (s *Service) GetTrip(ctx context.Context, tripID uint) (*models.Trip, error) {
	trip, err := s.trips.GetTripByID(ctx, tripID)
	if err != nil {
		return nil, translate(err, "trip %d", tripID)
	}
	return trip, nil
}

// TripOwner 返回行程拥有者
func (s *Service) TripOwner(trip *models.Trip) uint {
	return trip.OwnerID
}

// TripItemCount 统计行程地点数
func (s *Service) TripItemCount(ctx context.Context, tripID uint) (int64, error) {
	count, err := s.trips.CountItems(ctx, tripID)
	if err != nil {
		return 0, apperr.Internal(err, "count items of trip %d", tripID)
	}
	return count, nil
}

// Create 创建行程，拥有者为调用者
func (s *Service) Create(ctx context.Context, userID uint, in TripInput) (*TripView, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	trip := &models.Trip{
		OwnerID:     userID,
		Name:        in.Name,
		Location:    in.Location,
		Description: in.Description,
		Image:       in.Image,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
	}
	if err := s.trips.CreateTrip(ctx, trip); err != nil {
		return nil, apperr.Internal(err, "create trip")
	}
	return s.tripView(ctx, userID, trip)
}

// Update 修改行程内容，拥有者不可变
func (s *Service) Update(ctx context.Context, userID, tripID uint, in TripInput) (*TripView, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	trip, err := s.trips.UpdateTrip(ctx, tripID, MutationGuard(userID), func(trip *models.Trip) error {
		trip.Name = in.Name
		trip.Location = in.Location
		trip.Description = in.Description
		trip.Image = in.Image
		trip.StartDate = in.StartDate
		trip.EndDate = in.EndDate
		return nil
	})
	if err != nil {
		return nil, translate(err, "trip %d", tripID)
	}
	return s.tripView(ctx, userID, trip)
}

// Delete 删除行程，级联删除地点、点赞和协作者
func (s *Service) Delete(ctx context.Context, userID, tripID uint) error {
	return translate(s.trips.DeleteTrip(ctx, tripID, MutationGuard(userID)), "trip %d", tripID)
}

// ListByUser 列出某用户的行程
func (s *Service) ListByUser(ctx context.Context, viewerID, ownerID uint) ([]*TripView, error) {
	trips, err := s.trips.GetTripsByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperr.Internal(err, "list trips of user %d", ownerID)
	}
	return s.tripViews(ctx, viewerID, trips)
}

// Detail 行程详情
func (s *Service) Detail(ctx context.Context, viewerID, tripID uint) (*TripDetail, error) {
	trip, err := s.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	view, err := s.tripView(ctx, viewerID, trip)
	if err != nil {
		return nil, err
	}

	owner, err := s.accounts.GetUser(ctx, trip.OwnerID)
	if err != nil {
		return nil, err
	}
	collaborators, err := s.accounts.GetUsers(ctx, view.Collaborators)
	if err != nil {
		return nil, err
	}

	return &TripDetail{TripView: view, Owner: owner, CollaboratorProfiles: collaborators}, nil
}

// SetAlbum 将行程放入调用者的相册，albumID 为 nil 时移出相册
func (s *Service) SetAlbum(ctx context.Context, userID, tripID uint, albumID *uint) (*TripView, error) {
	if albumID != nil {
		album, err := s.albums.GetAlbumByID(ctx, *albumID)
		if err != nil {
			return nil, translate(err, "album %d", *albumID)
		}
		if album.UserID != userID {
			return nil, apperr.Forbidden("you do not own album %d", *albumID)
		}
	}

	trip, err := s.trips.SetAlbum(ctx, tripID, albumID, MutationGuard(userID))
	if err != nil {
		return nil, translate(err, "trip %d", tripID)
	}
	return s.tripView(ctx, userID, trip)
}

// AddCollaborator 添加协作者
func (s *Service) AddCollaborator(ctx context.Context, userID, tripID, collaboratorID uint) error {
	if collaboratorID == userID {
		return apperr.Invalid("the trip owner cannot be a collaborator")
	}
	if _, err := s.accounts.GetUser(ctx, collaboratorID); err != nil {
		return err
	}

	guard := func(trip *models.Trip) error {
		if err := MutationGuard(userID)(trip); err != nil {
			return err
		}
		if trip.OwnerID == collaboratorID {
			return apperr.Invalid("the trip owner cannot be a collaborator")
		}
		return nil
	}
	return translate(s.trips.AddCollaborator(ctx, tripID, collaboratorID, guard), "trip %d", tripID)
}

// RemoveCollaborator 移除协作者
func (s *Service) RemoveCollaborator(ctx context.Context, userID, tripID, collaboratorID uint) error {
	return translate(s.trips.RemoveCollaborator(ctx, tripID, collaboratorID, MutationGuard(userID)), "trip %d", tripID)
}

// CreateAlbum 创建相册
func (s *Service) CreateAlbum(ctx context.Context, userID uint, name string) (*AlbumView, error) {
	name, err := validAlbumName(name)
	if err != nil {
		return nil, err
	}

	album := &models.Album{UserID: userID, Name: name}
	if err := s.albums.CreateAlbum(ctx, album); err != nil {
		return nil, apperr.Internal(err, "create album")
	}
	return albumView(album), nil
}

// RenameAlbum 重命名相册
func (s *Service) RenameAlbum(ctx context.Context, userID, albumID uint, name string) (*AlbumView, error) {
	name, err := validAlbumName(name)
	if err != nil {
		return nil, err
	}

	album, err := s.albums.GetAlbumByID(ctx, albumID)
	if err != nil {
		return nil, translate(err, "album %d", albumID)
	}
	if album.UserID != userID {
		return nil, apperr.Forbidden("you do not own album %d", albumID)
	}
	if err := s.albums.RenameAlbum(ctx, albumID, name); err != nil {
		return nil, translate(err, "album %d", albumID)
	}

	detail, err := s.albums.GetAlbumWithTrips(ctx, albumID)
	if err != nil {
		return nil, translate(err, "album %d", albumID)
	}
	return albumView(detail), nil
}

// DeleteAlbum 删除相册，行程保留；对非拥有者表现为不存在
func (s *Service) DeleteAlbum(ctx context.Context, userID, albumID uint) error {
	return translate(s.albums.DeleteAlbum(ctx, albumID, userID), "album %d", albumID)
}

// ListAlbums 列出某用户的相册
func (s *Service) ListAlbums(ctx context.Context, ownerID uint) ([]*AlbumView, error) {
	albums, err := s.albums.GetUserAlbums(ctx, ownerID)
	if err != nil {
		return nil, apperr.Internal(err, "list albums of user %d", ownerID)
	}

	views := make([]*AlbumView, 0, len(albums))
	for _, album := range albums {
		views = append(views, albumView(album))
	}
	return views, nil
}

// AlbumDetail 相册详情，包含其中的行程
func (s *Service) AlbumDetail(ctx context.Context, viewerID, albumID uint) (*AlbumDetail, error) {
	album, err := s.albums.GetAlbumWithTrips(ctx, albumID)
	if err != nil {
		return nil, translate(err, "album %d", albumID)
	}

	trips, err := s.tripViews(ctx, viewerID, album.Trips)
	if err != nil {
		return nil, err
	}
	return &AlbumDetail{AlbumView: albumView(album), Trips: trips}, nil
}

// RemoveTripFromAlbum 将行程移出相册
func (s *Service) RemoveTripFromAlbum(ctx context.Context, userID, albumID, tripID uint) error {
	album, err := s.albums.GetAlbumByID(ctx, albumID)
	if err != nil {
		return translate(err, "album %d", albumID)
	}
	if album.UserID != userID {
		return apperr.Forbidden("you do not own album %d", albumID)
	}

	err = s.albums.RemoveTrip(ctx, albumID, tripID)
	if errors.Is(err, albumsrepo.ErrTripNotInAlbum) {
		return apperr.NotFound("trip %d is not in album %d", tripID, albumID)
	}
	return translate(err, "album %d", albumID)
}

func validAlbumName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperr.Invalid("album name is required")
	}
	if len(name) > maxNameLength {
		return "", apperr.Invalid("album name must be at most %d characters", maxNameLength)
	}
	return name, nil
}
