package trips

import (
	"time"

	"github.com/anoixa/tripill/internal/appreciation"
	svcItems "github.com/anoixa/tripill/internal/items"
	svcTrips "github.com/anoixa/tripill/internal/trips"
)

// Handler 行程处理器
type Handler struct {
	trips  *svcTrips.Service
	items  *svcItems.Service
	ledger *appreciation.Ledger
}

// NewHandler 创建行程处理器
func NewHandler(trips *svcTrips.Service, items *svcItems.Service, ledger *appreciation.Ledger) *Handler {
	return &Handler{trips: trips, items: items, ledger: ledger}
}

// tripRequest 创建和修改行程共用的请求体
type tripRequest struct {
	Name        string     `json:"name" binding:"required,max=256"`
	Location    string     `json:"location" binding:"max=256"`
	Description string     `json:"description"`
	Image       string     `json:"image" binding:"omitempty,url"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

func (r *tripRequest) input() svcTrips.TripInput {
	return svcTrips.TripInput{
		Name:        r.Name,
		Location:    r.Location,
		Description: r.Description,
		Image:       r.Image,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
	}
}
