package trips

import (
	"log"

	"github.com/anoixa/tripill/api/common"
	"github.com/gin-gonic/gin"
)

// DeleteTripHandler 删除行程及其地点、点赞和协作者
func (h *Handler) DeleteTripHandler(c *gin.Context) {
	tripID, ok := common.ParamID(c, "id")
	if !ok {
		return
	}
	userID := common.CurrentUserID(c)

	if err := h.trips.Delete(c.Request.Context(), userID, tripID); err != nil {
		common.RespondAppError(c, err)
		return
	}

	log.Printf("Trip %d deleted by user %d", tripID, userID)
	common.RespondSuccessMessage(c, "Trip deleted successfully", nil)
}
