package items

import (
	"encoding/json"
	"time"

	"github.com/anoixa/tripill/internal/appreciation"
	svcItems "github.com/anoixa/tripill/internal/items"
)

// Handler 地点处理器
type Handler struct {
	items  *svcItems.Service
	ledger *appreciation.Ledger
}

// NewHandler 创建地点处理器
func NewHandler(items *svcItems.Service, ledger *appreciation.Ledger) *Handler {
	return &Handler{items: items, ledger: ledger}
}

// detailsRequest 地点内容，经纬度必填
type detailsRequest struct {
	Lat         *float64        `json:"lat" binding:"required"`
	Lng         *float64        `json:"lng" binding:"required"`
	Location    string          `json:"location" binding:"max=256"`
	Description string          `json:"description"`
	Image       string          `json:"image" binding:"omitempty,url"`
	StartDate   *time.Time      `json:"start_date"`
	EndDate     *time.Time      `json:"end_date"`
	Note        json.RawMessage `json:"note"`
}

func (r *detailsRequest) details() svcItems.Details {
	return svcItems.Details{
		Lat:         *r.Lat,
		Lng:         *r.Lng,
		Location:    r.Location,
		Description: r.Description,
		Image:       r.Image,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		Note:        r.Note,
	}
}
