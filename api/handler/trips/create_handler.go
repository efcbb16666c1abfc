package trips

import (
	"net/http"

	"github.com/anoixa/tripill/api/common"
	"github.com/gin-gonic/gin"
)

// CreateTripHandler 创建行程，拥有者为当前用户
func (h *Handler) CreateTripHandler(c *gin.Context) {
	var req tripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	view, err := h.trips.Create(c.Request.Context(), common.CurrentUserID(c), req.input())
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	common.RespondCreated(c, view)
}
