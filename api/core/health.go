package core

import (
	"context"
	"net/http"
	"time"

	"github.com/anoixa/tripill/cache"
	"github.com/anoixa/tripill/database"
	"github.com/gin-gonic/gin"
)

var startTime = time.Now()

// HealthHandler 健康检查
type HealthHandler struct {
	db    database.Provider
	cache cache.Provider
}

func NewHealthHandler(db database.Provider, cacheProvider cache.Provider) *HealthHandler {
	return &HealthHandler{db: db, cache: cacheProvider}
}

// Handle 任一检查失败时返回 503
func (h *HealthHandler) Handle(c *gin.Context) {
	checks := gin.H{
		"database": checkDatabaseHealth(h.db),
		"cache":    checkCacheHealth(c.Request.Context(), h.cache),
	}

	httpStatus := http.StatusOK
	status := "ok"
	for _, result := range checks {
		if result != "ok" {
			httpStatus = http.StatusServiceUnavailable
			status = "degraded"
			break
		}
	}

	c.JSON(httpStatus, gin.H{
		"status": status,
		"uptime": time.Since(startTime).Round(time.Second).String(),
		"checks": checks,
	})
}

func checkDatabaseHealth(provider database.Provider) string {
	if provider == nil {
		return "not initialized"
	}
	if err := provider.Ping(); err != nil {
		return "unavailable: " + err.Error()
	}
	return "ok"
}

func checkCacheHealth(ctx context.Context, provider cache.Provider) string {
	if provider == nil {
		return "not initialized"
	}
	if _, err := provider.Exists(ctx, "tripill:health"); err != nil {
		return "unavailable: " + err.Error()
	}
	return "ok"
}
