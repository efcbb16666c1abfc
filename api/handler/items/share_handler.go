package items

import (
	"net/http"
	"strconv"

	"github.com/anoixa/tripill/api/common"
	svcItems "github.com/anoixa/tripill/internal/items"
	"github.com/gin-gonic/gin"
)

type shareRequest struct {
	Shared *bool `json:"is_shared" binding:"required"`
}

// ShareItemHandler 设置或取消分享
func (h *Handler) ShareItemHandler(c *gin.Context) {
	itemID, ok := common.ParamID(c, "id")
	if !ok {
		return
	}

	var req shareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	view, err := h.items.MarkShared(c.Request.Context(), common.CurrentUserID(c), itemID, *req.Shared)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	common.RespondSuccess(c, view)
}

// ListSharersHandler 在同一坐标分享过地点的其他用户
func (h *Handler) ListSharersHandler(c *gin.Context) {
	itemID, ok := common.ParamID(c, "id")
	if !ok {
		return
	}

	sharers, err := h.items.FindSharers(c.Request.Context(), itemID, common.CurrentUserID(c))
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	common.RespondSuccess(c, sharers)
}

// SharedAtHandler 列出坐标上所有分享的地点，GET /items/shared?lat=&lng=
func (h *Handler) SharedAtHandler(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	if errLat != nil || errLng != nil {
		common.RespondError(c, http.StatusBadRequest, "lat and lng query parameters are required")
		return
	}

	views, err := h.items.SharedAt(c.Request.Context(), common.CurrentUserID(c), svcItems.Coordinate{Lat: lat, Lng: lng})
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	common.RespondSuccess(c, views)
}
