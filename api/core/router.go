package core

import (
	"net/http"

	"github.com/anoixa/tripill/api/common"
	handlerAlbums "github.com/anoixa/tripill/api/handler/albums"
	handlerItems "github.com/anoixa/tripill/api/handler/items"
	handlerTrips "github.com/anoixa/tripill/api/handler/trips"
	"github.com/anoixa/tripill/api/middleware"
	"github.com/anoixa/tripill/cache"
	"github.com/anoixa/tripill/config"
	"github.com/anoixa/tripill/database"
	"github.com/anoixa/tripill/internal/accounts"
	"github.com/anoixa/tripill/internal/appreciation"
	"github.com/anoixa/tripill/internal/auth"
	svcItems "github.com/anoixa/tripill/internal/items"
	svcTrips "github.com/anoixa/tripill/internal/trips"
	"github.com/gin-gonic/gin"
)

// RouterDependencies 路由注册依赖
type RouterDependencies struct {
	DB             database.Provider
	CacheProvider  cache.Provider
	JWT            *auth.JWTService
	Accounts       *accounts.Service
	Trips          *svcTrips.Service
	Items          *svcItems.Service
	Ledger         *appreciation.Ledger
	APIRateLimiter *middleware.IPRateLimiter
}

// RegisterRoutes 注册所有路由
func RegisterRoutes(router *gin.Engine, deps *RouterDependencies) {
	registerBasicRoutes(router, deps)
	registerAPIRoutes(router, deps)
}

// registerBasicRoutes 注册基础路由
func registerBasicRoutes(router *gin.Engine, deps *RouterDependencies) {
	healthHandler := NewHealthHandler(deps.DB, deps.CacheProvider)
	router.GET("/health", healthHandler.Handle)

	router.GET("/version", func(context *gin.Context) {
		common.RespondSuccess(context, gin.H{
			"version": config.Version,
			"commit":  config.CommitHash,
		})
	})

	router.GET("/metrics", func(context *gin.Context) {
		context.JSON(http.StatusOK, middleware.GetMetrics())
	})
}

// registerAPIRoutes 注册 API 路由，全部需要 Bearer 令牌
func registerAPIRoutes(router *gin.Engine, deps *RouterDependencies) {
	tripHandler := handlerTrips.NewHandler(deps.Trips, deps.Items, deps.Ledger)
	itemHandler := handlerItems.NewHandler(deps.Items, deps.Ledger)
	albumHandler := handlerAlbums.NewHandler(deps.Trips)

	apiGroup := router.Group("/api")
	apiGroup.Use(func(context *gin.Context) { // 所有API禁止缓存
		context.Header("Cache-Control", "no-store")
		context.Next()
	})

	v1 := apiGroup.Group("/v1")
	if deps.APIRateLimiter != nil {
		v1.Use(deps.APIRateLimiter.Middleware())
	}
	v1.Use(middleware.JWTAuth(deps.JWT))
	v1.Use(middleware.RequireAccount(deps.Accounts))
	{
		// trips
		tripsGroup := v1.Group("/trips")
		{
			tripsGroup.GET("", tripHandler.ListOwnTripsHandler)                 // GET /api/v1/trips
			tripsGroup.POST("", tripHandler.CreateTripHandler)                  // POST /api/v1/trips
			tripsGroup.GET("/users/:userId", tripHandler.ListUserTripsHandler)  // GET /api/v1/trips/users/{userId}
			tripsGroup.GET("/:id", tripHandler.GetTripDetailHandler)            // GET /api/v1/trips/{id}
			tripsGroup.PUT("/:id", tripHandler.UpdateTripHandler)               // PUT /api/v1/trips/{id}
			tripsGroup.DELETE("/:id", tripHandler.DeleteTripHandler)            // DELETE /api/v1/trips/{id}
			tripsGroup.PUT("/:id/album", tripHandler.SetAlbumHandler)           // PUT /api/v1/trips/{id}/album
			tripsGroup.PUT("/:id/like", tripHandler.ToggleLikeHandler)          // PUT /api/v1/trips/{id}/like
			tripsGroup.POST("/:id/collaborators", tripHandler.AddCollaboratorHandler)
			tripsGroup.DELETE("/:id/collaborators/:userId", tripHandler.RemoveCollaboratorHandler)
			tripsGroup.GET("/:id/items", tripHandler.ListItemsHandler)              // GET /api/v1/trips/{id}/items
			tripsGroup.DELETE("/:id/items/:itemId", tripHandler.DeleteItemHandler) // DELETE /api/v1/trips/{id}/items/{itemId}
		}

		// items
		itemsGroup := v1.Group("/items")
		{
			itemsGroup.POST("", itemHandler.CreateItemHandler)             // POST /api/v1/items
			itemsGroup.GET("/shared", itemHandler.SharedAtHandler)         // GET /api/v1/items/shared?lat=&lng=
			itemsGroup.GET("/:id", itemHandler.GetItemHandler)             // GET /api/v1/items/{id}
			itemsGroup.PUT("/:id", itemHandler.UpdateItemHandler)          // PUT /api/v1/items/{id}
			itemsGroup.PUT("/:id/ordinal", itemHandler.ReorderItemHandler) // PUT /api/v1/items/{id}/ordinal
			itemsGroup.PUT("/:id/share", itemHandler.ShareItemHandler)     // PUT /api/v1/items/{id}/share
			itemsGroup.GET("/:id/sharers", itemHandler.ListSharersHandler) // GET /api/v1/items/{id}/sharers
			itemsGroup.GET("/:id/user", itemHandler.GetItemOwnerHandler)   // GET /api/v1/items/{id}/user
			itemsGroup.PUT("/:id/like", itemHandler.ToggleLikeHandler)     // PUT /api/v1/items/{id}/like
		}

		// albums
		albumsGroup := v1.Group("/albums")
		{
			albumsGroup.GET("", albumHandler.ListAlbumsHandler)                     // GET /api/v1/albums
			albumsGroup.POST("", albumHandler.CreateAlbumHandler)                   // POST /api/v1/albums
			albumsGroup.GET("/users/:userId", albumHandler.ListUserAlbumsHandler)   // GET /api/v1/albums/users/{userId}
			albumsGroup.GET("/:id", albumHandler.GetAlbumDetailHandler)             // GET /api/v1/albums/{id}
			albumsGroup.PUT("/:id", albumHandler.UpdateAlbumHandler)                // PUT /api/v1/albums/{id}
			albumsGroup.DELETE("/:id", albumHandler.DeleteAlbumHandler)             // DELETE /api/v1/albums/{id}
			albumsGroup.DELETE("/:id/trips/:tripId", albumHandler.RemoveTripHandler) // DELETE /api/v1/albums/{id}/trips/{tripId}
		}
	}
}
