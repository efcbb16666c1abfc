package albums

import (
	"github.com/anoixa/tripill/api/common"
	"github.com/gin-gonic/gin"
)

// GetAlbumDetailHandler 相册详情及其中的行程
func (h *Handler) GetAlbumDetailHandler(c *gin.Context) {
	albumID, ok := common.ParamID(c, "id")
	if !ok {
		return
	}

	detail, err := h.svc.AlbumDetail(c.Request.Context(), common.CurrentUserID(c), albumID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	common.RespondSuccess(c, detail)
}
