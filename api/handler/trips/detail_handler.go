package trips

import (
	"github.com/anoixa/tripill/api/common"
	svcItems "github.com/anoixa/tripill/internal/items"
	svcTrips "github.com/anoixa/tripill/internal/trips"
	"github.com/gin-gonic/gin"
)

// TripDetailResponse 行程详情，地点按序号排列
type TripDetailResponse struct {
	*svcTrips.TripDetail
	Items []*svcItems.ItemView `json:"items"`
}

// GetTripDetailHandler 行程详情
func (h *Handler) GetTripDetailHandler(c *gin.Context) {
	tripID, ok := common.ParamID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	viewerID := common.CurrentUserID(c)

	detail, err := h.trips.Detail(ctx, viewerID, tripID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	items, err := h.items.List(ctx, viewerID, tripID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	common.RespondSuccess(c, TripDetailResponse{TripDetail: detail, Items: items})
}
