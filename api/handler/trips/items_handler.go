package trips

import (
	"github.com/anoixa/tripill/api/common"
	"github.com/gin-gonic/gin"
)

// ListItemsHandler 行程内的地点，按序号升序
func (h *Handler) ListItemsHandler(c *gin.Context) {
	tripID, ok := common.ParamID(c, "id")
	if !ok {
		return
	}

	items, err := h.items.List(c.Request.Context(), common.CurrentUserID(c), tripID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	common.RespondSuccess(c, items)
}

// DeleteItemHandler 删除地点，后续地点的序号前移
func (h *Handler) DeleteItemHandler(c *gin.Context) {
	tripID, ok := common.ParamID(c, "id")
	if !ok {
		return
	}
	itemID, ok := common.ParamID(c, "itemId")
	if !ok {
		return
	}

	if err := h.items.Delete(c.Request.Context(), common.CurrentUserID(c), tripID, itemID); err != nil {
		common.RespondAppError(c, err)
		return
	}
	common.RespondSuccessMessage(c, "Item deleted successfully", nil)
}
