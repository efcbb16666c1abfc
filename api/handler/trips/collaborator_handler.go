package trips

import (
	"net/http"

	"github.com/anoixa/tripill/api/common"
	"github.com/gin-gonic/gin"
)

type addCollaboratorRequest struct {
	UserID uint `json:"user" binding:"required"`
}

// AddCollaboratorHandler 添加协作者
func (h *Handler) AddCollaboratorHandler(c *gin.Context) {
	tripID, ok := common.ParamID(c, "id")
	if !ok {
		return
	}

	var req addCollaboratorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.trips.AddCollaborator(c.Request.Context(), common.CurrentUserID(c), tripID, req.UserID); err != nil {
		common.RespondAppError(c, err)
		return
	}
	common.RespondSuccessMessage(c, "Collaborator added", nil)
}

// RemoveCollaboratorHandler 移除协作者
func (h *Handler) RemoveCollaboratorHandler(c *gin.Context) {
	tripID, ok := common.ParamID(c, "id")
	if !ok {
		return
	}
	collaboratorID, ok := common.ParamID(c, "userId")
	if !ok {
		return
	}

	if err := h.trips.RemoveCollaborator(c.Request.Context(), common.CurrentUserID(c), tripID, collaboratorID); err != nil {
		common.RespondAppError(c, err)
		return
	}
	common.RespondSuccessMessage(c, "Collaborator removed", nil)
}
