package albums

import (
	"net/http"

	"github.com/anoixa/tripill/api/common"
	"github.com/gin-gonic/gin"
)

// UpdateAlbumHandler 重命名相册
func (h *Handler) UpdateAlbumHandler(c *gin.Context) {
	albumID, ok := common.ParamID(c, "id")
	if !ok {
		return
	}

	var req albumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	album, err := h.svc.RenameAlbum(c.Request.Context(), common.CurrentUserID(c), albumID, req.Name)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	common.RespondSuccess(c, album)
}
