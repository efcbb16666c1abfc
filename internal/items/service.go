// Package items 管理行程中的地点：维护每个行程内连续的序号，
// 并按坐标发现其他用户分享的同一地点。
package items

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/anoixa/tripill/database/models"
	itemsrepo "github.com/anoixa/tripill/database/repo/items"
	"github.com/anoixa/tripill/internal/accounts"
	"github.com/anoixa/tripill/internal/apperr"
	"github.com/anoixa/tripill/internal/appreciation"
	"github.com/anoixa/tripill/internal/trips"
	"gorm.io/gorm"
)

const maxLocationLength = 256

// Coordinate 地理坐标
type Coordinate = itemsrepo.Coordinate

// SameCoordinate 判断两个坐标是否为同一地点
func SameCoordinate(a, b Coordinate) bool {
	return itemsrepo.SameCoordinate(a, b)
}

// ValidateCoordinate 校验坐标是有限值且在经纬度范围内
func ValidateCoordinate(c Coordinate) error {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lng) || math.IsInf(c.Lat, 0) || math.IsInf(c.Lng, 0) {
		return apperr.Invalid("coordinate must be finite")
	}
	if c.Lat < -90 || c.Lat > 90 {
		return apperr.Invalid("latitude %v out of range [-90, 90]", c.Lat)
	}
	if c.Lng < -180 || c.Lng > 180 {
		return apperr.Invalid("longitude %v out of range [-180, 180]", c.Lng)
	}
	return nil
}

// Details 地点的可编辑内容
type Details struct {
	Lat         float64
	Lng         float64
	Location    string
	Description string
	Image       string
	StartDate   *time.Time
	EndDate     *time.Time
	Note        json.RawMessage
}

func (d *Details) coordinate() Coordinate {
	return Coordinate{Lat: d.Lat, Lng: d.Lng}
}

func (d *Details) validate() error {
	if err := ValidateCoordinate(d.coordinate()); err != nil {
		return err
	}
	d.Location = strings.TrimSpace(d.Location)
	if len(d.Location) > maxLocationLength {
		return apperr.Invalid("location must be at most %d characters", maxLocationLength)
	}
	if len(d.Note) > 0 && !json.Valid(d.Note) {
		return apperr.Invalid("note must be valid JSON")
	}
	return trips.ValidateWindow(d.StartDate, d.EndDate)
}

func (d *Details) applyTo(item *models.Item) {
	item.Lat = d.Lat
	item.Lng = d.Lng
	item.Location = d.Location
	item.Description = d.Description
	item.Image = d.Image
	item.StartDate = d.StartDate
	item.EndDate = d.EndDate
	item.Note = string(d.Note)
}

// Service 地点服务
type Service struct {
	repo     *itemsrepo.Repository
	trips    *trips.Service
	accounts *accounts.Service
	ledger   *appreciation.Ledger

	tripLocks *keyedLocker[uint]
	userLocks *keyedLocker[uint]
}

// NewService 创建地点服务
func NewService(repo *itemsrepo.Repository, tripsService *trips.Service, accountsService *accounts.Service, ledger *appreciation.Ledger) *Service {
	return &Service{
		repo:      repo,
		trips:     tripsService,
		accounts:  accountsService,
		ledger:    ledger,
		tripLocks: newKeyedLocker[uint](),
		userLocks: newKeyedLocker[uint](),
	}
}

// loadItem 获取地点，不存在时返回 NotFound
func (s *Service) loadItem(ctx context.Context, itemID uint) (*models.Item, error) {
	item, err := s.repo.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, translate(err, "item %d", itemID)
	}
	return item, nil
}

// Get 获取地点，非拥有者只能查看已分享的地点
func (s *Service) Get(ctx context.Context, viewerID, itemID uint) (*ItemView, error) {
	item, err := s.loadItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if !item.IsShared {
		ownerID, err := s.repo.OwnerIDOf(ctx, itemID)
		if err != nil {
			return nil, translate(err, "item %d", itemID)
		}
		if ownerID != viewerID {
			return nil, apperr.Invalid("item has not been shared")
		}
	}

	views, err := s.itemViews(ctx, viewerID, []*models.Item{item})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

// Owner 返回地点所属行程的拥有者
func (s *Service) Owner(ctx context.Context, itemID uint) (*accounts.Profile, error) {
	ownerID, err := s.repo.OwnerIDOf(ctx, itemID)
	if err != nil {
		return nil, translate(err, "item %d", itemID)
	}
	return s.accounts.GetUser(ctx, ownerID)
}

// translate 将仓库错误转换为业务错误
func translate(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	var appErr *apperr.Error
	switch {
	case errors.As(err, &appErr):
		return err
	case errors.Is(err, itemsrepo.ErrDuplicateCoordinate):
		return apperr.Conflict("an item at this coordinate already exists in the trip")
	case errors.Is(err, itemsrepo.ErrAlreadySharedHere):
		return apperr.Conflict("you have already shared another item at this coordinate")
	case errors.Is(err, itemsrepo.ErrOrdinalOutOfRange):
		return apperr.Invalid("ordinal out of range")
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.NotFound(format+" not found", args...)
	default:
		return apperr.Internal(err, format, args...)
	}
}
