package albums

import (
	"net/http"

	"github.com/anoixa/tripill/api/common"
	"github.com/gin-gonic/gin"
)

type albumRequest struct {
	Name string `json:"name" binding:"required,max=256"`
}

func (h *Handler) CreateAlbumHandler(c *gin.Context) {
	var req albumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	album, err := h.svc.CreateAlbum(c.Request.Context(), common.CurrentUserID(c), req.Name)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	common.RespondCreated(c, album)
}
