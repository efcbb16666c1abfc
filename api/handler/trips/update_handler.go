package trips

import (
	"net/http"

	"github.com/anoixa/tripill/api/common"
	"github.com/gin-gonic/gin"
)

// UpdateTripHandler 修改行程，仅拥有者
func (h *Handler) UpdateTripHandler(c *gin.Context) {
	tripID, ok := common.ParamID(c, "id")
	if !ok {
		return
	}

	var req tripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	view, err := h.trips.Update(c.Request.Context(), common.CurrentUserID(c), tripID, req.input())
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	common.RespondSuccess(c, view)
}

type setAlbumRequest struct {
	AlbumID *uint `json:"album"`
}

// SetAlbumHandler 把行程放入相册，album 为 null 时移出
func (h *Handler) SetAlbumHandler(c *gin.Context) {
	tripID, ok := common.ParamID(c, "id")
	if !ok {
		return
	}

	var req setAlbumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	view, err := h.trips.SetAlbum(c.Request.Context(), common.CurrentUserID(c), tripID, req.AlbumID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	common.RespondSuccess(c, view)
}
