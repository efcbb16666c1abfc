package items

import (
	"net/http"

	"github.com/anoixa/tripill/api/common"
	"github.com/gin-gonic/gin"
)

// UpdateItemHandler 修改地点内容，不改变所属行程和序号
func (h *Handler) UpdateItemHandler(c *gin.Context) {
	itemID, ok := common.ParamID(c, "id")
	if !ok {
		return
	}

	var req detailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	view, err := h.items.Update(c.Request.Context(), common.CurrentUserID(c), itemID, req.details())
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	common.RespondSuccess(c, view)
}

type reorderRequest struct {
	Ordinal *int `json:"ordinal" binding:"required"`
}

// ReorderItemHandler 移动地点到新的序号
func (h *Handler) ReorderItemHandler(c *gin.Context) {
	itemID, ok := common.ParamID(c, "id")
	if !ok {
		return
	}

	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	view, err := h.items.Reorder(c.Request.Context(), common.CurrentUserID(c), itemID, *req.Ordinal)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	common.RespondSuccess(c, view)
}
