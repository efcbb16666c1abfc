package albums

import (
	"github.com/anoixa/tripill/api/common"
	"github.com/gin-gonic/gin"
)

// ListAlbumsHandler 当前用户的相册
func (h *Handler) ListAlbumsHandler(c *gin.Context) {
	h.listAlbums(c, common.CurrentUserID(c))
}

// ListUserAlbumsHandler 指定用户的相册
func (h *Handler) ListUserAlbumsHandler(c *gin.Context) {
	ownerID, ok := common.ParamID(c, "userId")
	if !ok {
		return
	}
	h.listAlbums(c, ownerID)
}

func (h *Handler) listAlbums(c *gin.Context, ownerID uint) {
	albums, err := h.svc.ListAlbums(c.Request.Context(), ownerID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	common.RespondSuccess(c, albums)
}
