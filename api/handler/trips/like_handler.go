package trips

import (
	"github.com/anoixa/tripill/api/common"
	"github.com/anoixa/tripill/internal/appreciation"
	"github.com/gin-gonic/gin"
)

// ToggleLikeHandler 切换当前用户对行程的点赞
func (h *Handler) ToggleLikeHandler(c *gin.Context) {
	tripID, ok := common.ParamID(c, "id")
	if !ok {
		return
	}

	result, err := h.ledger.Toggle(c.Request.Context(), common.CurrentUserID(c), appreciation.TripTarget(tripID))
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	common.RespondSuccess(c, result)
}
