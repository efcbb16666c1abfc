package items

import (
	"github.com/anoixa/tripill/api/common"
	"github.com/gin-gonic/gin"
)

// GetItemHandler 获取地点，非拥有者只能查看已分享的地点
func (h *Handler) GetItemHandler(c *gin.Context) {
	itemID, ok := common.ParamID(c, "id")
	if !ok {
		return
	}

	view, err := h.items.Get(c.Request.Context(), common.CurrentUserID(c), itemID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	common.RespondSuccess(c, view)
}

// GetItemOwnerHandler 地点所属行程的拥有者
func (h *Handler) GetItemOwnerHandler(c *gin.Context) {
	itemID, ok := common.ParamID(c, "id")
	if !ok {
		return
	}

	owner, err := h.items.Owner(c.Request.Context(), itemID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	common.RespondSuccess(c, owner)
}
