package items

import (
	"net/http"

	"github.com/anoixa/tripill/api/common"
	"github.com/gin-gonic/gin"
)

type createItemRequest struct {
	TripID uint `json:"trip" binding:"required"`
	detailsRequest
}

// CreateItemHandler 在行程末尾追加地点
func (h *Handler) CreateItemHandler(c *gin.Context) {
	var req createItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	view, err := h.items.Append(c.Request.Context(), common.CurrentUserID(c), req.TripID, req.details())
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	common.RespondCreated(c, view)
}
