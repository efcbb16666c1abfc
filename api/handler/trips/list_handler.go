package trips

import (
	"github.com/anoixa/tripill/api/common"
	"github.com/gin-gonic/gin"
)

// ListOwnTripsHandler 当前用户的行程，ID 降序
func (h *Handler) ListOwnTripsHandler(c *gin.Context) {
	userID := common.CurrentUserID(c)
	h.listTrips(c, userID, userID)
}

// ListUserTripsHandler 指定用户的行程
func (h *Handler) ListUserTripsHandler(c *gin.Context) {
	ownerID, ok := common.ParamID(c, "userId")
	if !ok {
		return
	}
	h.listTrips(c, common.CurrentUserID(c), ownerID)
}

func (h *Handler) listTrips(c *gin.Context, viewerID, ownerID uint) {
	views, err := h.trips.ListByUser(c.Request.Context(), viewerID, ownerID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	common.RespondSuccess(c, views)
}
