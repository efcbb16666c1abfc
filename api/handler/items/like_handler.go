package items

import (
	"github.com/anoixa/tripill/api/common"
	"github.com/anoixa/tripill/internal/appreciation"
	"github.com/gin-gonic/gin"
)

// ToggleLikeHandler 切换当前用户对地点的点赞
func (h *Handler) ToggleLikeHandler(c *gin.Context) {
	itemID, ok := common.ParamID(c, "id")
	if !ok {
		return
	}

	result, err := h.ledger.Toggle(c.Request.Context(), common.CurrentUserID(c), appreciation.ItemTarget(itemID))
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	common.RespondSuccess(c, result)
}
