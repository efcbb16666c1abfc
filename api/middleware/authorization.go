package middleware

import (
	"net/http"

	"github.com/anoixa/tripill/api/common"
	"github.com/anoixa/tripill/internal/accounts"
	"github.com/anoixa/tripill/internal/apperr"
	"github.com/gin-gonic/gin"
)

// RequireAccount 拒绝已签发令牌但账户已不存在的请求
// 用户资料走缓存，不会每个请求都查库
func RequireAccount(accountsService *accounts.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := common.CurrentUserID(c)
		if userID == 0 {
			common.RespondErrorAbort(c, http.StatusUnauthorized, "Access denied. Not authenticated.")
			return
		}

		if _, err := accountsService.GetUser(c.Request.Context(), userID); err != nil {
			if apperr.Is(err, apperr.KindNotFound) {
				common.RespondErrorAbort(c, http.StatusUnauthorized, "Account no longer exists")
				return
			}
			common.RespondAppError(c, err)
			c.Abort()
			return
		}

		c.Next()
	}
}
