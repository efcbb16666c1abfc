package albums

import (
	"log"

	"github.com/anoixa/tripill/api/common"
	"github.com/gin-gonic/gin"
)

// DeleteAlbumHandler 删除相册，相册内的行程保留
func (h *Handler) DeleteAlbumHandler(c *gin.Context) {
	albumID, ok := common.ParamID(c, "id")
	if !ok {
		return
	}
	userID := common.CurrentUserID(c)

	if err := h.svc.DeleteAlbum(c.Request.Context(), userID, albumID); err != nil {
		common.RespondAppError(c, err)
		return
	}

	log.Printf("Album %d deleted by user %d", albumID, userID)
	common.RespondSuccessMessage(c, "Album deleted successfully", nil)
}

// RemoveTripHandler 把行程移出相册
func (h *Handler) RemoveTripHandler(c *gin.Context) {
	albumID, ok := common.ParamID(c, "id")
	if !ok {
		return
	}
	tripID, ok := common.ParamID(c, "tripId")
	if !ok {
		return
	}

	if err := h.svc.RemoveTripFromAlbum(c.Request.Context(), common.CurrentUserID(c), albumID, tripID); err != nil {
		common.RespondAppError(c, err)
		return
	}
	common.RespondSuccessMessage(c, "Trip removed from album", nil)
}
