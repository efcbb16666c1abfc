package middleware

import (
	"net/http"
	"strings"

	"github.com/anoixa/tripill/api/common"
	"github.com/anoixa/tripill/internal/accounts"
	"github.com/anoixa/tripill/internal/auth"
	"github.com/gin-gonic/gin"
)

const (
	ContextUserIDKey = common.ContextUserIDKey
	ContextEmailKey  = "email"
)

// JWTAuth 校验 Bearer 访问令牌，并把用户ID写入 gin 上下文和请求 context
func JWTAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			common.RespondErrorAbort(c, http.StatusUnauthorized, "No Authorization request header")
			return
		}

		scheme, token, ok := strings.Cut(authHeader, " ")
		if !ok || strings.TrimSpace(token) == "" {
			common.RespondErrorAbort(c, http.StatusBadRequest, "Authorization field format error")
			return
		}
		if scheme != "Bearer" {
			common.RespondErrorAbort(c, http.StatusUnauthorized, "Unsupported authentication scheme")
			return
		}

		claims, err := jwtService.ExtractClaims(strings.TrimSpace(token))
		if err != nil {
			common.RespondErrorAbort(c, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextEmailKey, claims.Email)
		c.Request = c.Request.WithContext(accounts.WithUserID(c.Request.Context(), claims.UserID))

		c.Next()
	}
}
