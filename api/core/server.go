package core

import (
	"net/http"
	"time"

	"github.com/anoixa/tripill/api/middleware"
	"github.com/anoixa/tripill/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// 请求体上限，地点备注是最大的字段
const requestBodyLimit = 1 << 20

// ServerDependencies 服务器依赖项
type ServerDependencies struct {
	RouterDependencies
	Config *config.Config
}

// NewRouter 创建 gin 引擎并注册全部中间件和路由，返回的 cleanup 用于停止后台任务
func NewRouter(deps *ServerDependencies) (*gin.Engine, func()) {
	cfg := deps.Config
	router := gin.New()

	// 仅在开发版本时启用 gin 日志
	if config.IsDevelopment() {
		router.Use(gin.Logger())
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router.Use(gin.Recovery())

	origins := cfg.CorsOrigins()
	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Length", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 1 && origins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = origins
		corsConfig.AllowCredentials = true
	}
	router.Use(cors.New(corsConfig))

	_ = router.SetTrustedProxies(nil)

	router.Use(middleware.NewConcurrencyLimiter(cfg.MaxConcurrentRequests).Middleware())
	router.Use(middleware.MaxBytesReader(requestBodyLimit))
	router.Use(middleware.RequestID())
	router.Use(middleware.Metrics())
	router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/health"})))

	apiRateLimiter := middleware.NewIPRateLimiter(cfg.RateLimitApiRPS, cfg.RateLimitApiBurst, cfg.RateLimitExpireTime)
	routerDeps := deps.RouterDependencies
	routerDeps.APIRateLimiter = apiRateLimiter
	RegisterRoutes(router, &routerDeps)

	return router, apiRateLimiter.StopCleanup
}

// NewServer 创建 http.Server
func NewServer(deps *ServerDependencies) (*http.Server, func()) {
	cfg := deps.Config
	router, cleanup := NewRouter(deps)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  cfg.ServerIdleTimeout,
	}
	return srv, cleanup
}
