package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"metalpedia-backend/internal/shared/middleware"
	"metalpedia-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(c.Config.App.AllowedOrigins),
		middleware.ClientIPMiddleware(),
		middleware.Metrics(),
	)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		api.GET("/health", healthCheckHandler(c))

		setupBandRoutes(api, c)
		setupAlbumRoutes(api, c)
		setupMemberRoutes(api, c)
		setupLinkRoutes(api, c)
		setupUserRoutes(api, c)
		setupStatsRoutes(api, c)
		setupAdminRoutes(api, c)
	}

	return router
}

// ========================================
// BAND ROUTES
// ========================================
func setupBandRoutes(api *gin.RouterGroup, c *container.Container) {
	auth := middleware.RequireIdentity(c.Resolver)
	write := c.RateLimiter.Middleware("write")
	upload := c.RateLimiter.Middleware("upload")

	bands := api.Group("/bands")
	{
		// Static segments before /:id
		bands.GET("/search", c.BandHandler.Search)
		bands.GET("/recent", c.BandHandler.Recent)
		bands.GET("/check", c.BandHandler.Check)
		bands.GET("/:id", c.BandHandler.GetBand)
		bands.GET("/:id/details", c.BandHandler.GetBand)

		bands.POST("/add", auth, upload, c.BandHandler.Create)
		bands.PUT("/:id", auth, write, c.BandHandler.Update)
		bands.DELETE("/:id", auth, write, c.BandHandler.Delete)

		bands.POST("/:id/logo", auth, upload, c.BandHandler.UploadLogo)
		bands.DELETE("/:id/logo", auth, write, c.BandHandler.DeleteLogo)
		bands.POST("/:id/image", auth, upload, c.BandHandler.UploadImage)
		bands.DELETE("/:id/image", auth, write, c.BandHandler.DeleteImage)
	}
}

// ========================================
// ALBUM ROUTES
// ========================================
func setupAlbumRoutes(api *gin.RouterGroup, c *container.Container) {
	auth := middleware.RequireIdentity(c.Resolver)
	write := c.RateLimiter.Middleware("write")
	upload := c.RateLimiter.Middleware("upload")

	albums := api.Group("/albums")
	{
		albums.GET("/:id", c.AlbumHandler.GetAlbum)
		albums.POST("", auth, upload, c.AlbumHandler.Create)
		albums.PUT("/:id", auth, upload, c.AlbumHandler.Update)
		albums.DELETE("/:id", auth, write, c.AlbumHandler.Delete)
	}
}

// ========================================
// MEMBER ROUTES
// ========================================
func setupMemberRoutes(api *gin.RouterGroup, c *container.Container) {
	members := api.Group("/band-members")
	members.Use(middleware.RequireIdentity(c.Resolver), c.RateLimiter.Middleware("write"))
	{
		members.POST("", c.MemberHandler.Create)
		members.PUT("/:id", c.MemberHandler.Update)
		members.DELETE("/:id", c.MemberHandler.Delete)
	}
}

// ========================================
// LINK ROUTES
// ========================================
func setupLinkRoutes(api *gin.RouterGroup, c *container.Container) {
	links := api.Group("/band-links")
	links.Use(middleware.RequireIdentity(c.Resolver), c.RateLimiter.Middleware("write"))
	{
		links.POST("", c.LinkHandler.Create)
		links.DELETE("/:id", c.LinkHandler.Delete)
	}
}

// ========================================
// USER ROUTES
// ========================================
func setupUserRoutes(api *gin.RouterGroup, c *container.Container) {
	auth := middleware.RequireIdentity(c.Resolver)
	write := c.RateLimiter.Middleware("write")

	users := api.Group("/users")
	{
		users.GET("", c.UserHandler.GetProfile)
		users.GET("/:address", c.UserHandler.GetUser)

		users.POST("", auth, write, c.UserHandler.SaveProfile)
		users.PUT("/:address", auth, write, c.UserHandler.UpdateUser)
		users.DELETE("/:address", auth, write, c.UserHandler.DeleteUser)
	}

	api.POST("/upload-avatar", auth, c.RateLimiter.Middleware("upload"), c.UserHandler.UploadAvatar)
}

// ========================================
// STATS ROUTES
// ========================================
func setupStatsRoutes(api *gin.RouterGroup, c *container.Container) {
	api.GET("/stats", c.StatsHandler.GetStats)
}

// ========================================
// ADMIN ROUTES
// ========================================
func setupAdminRoutes(api *gin.RouterGroup, c *container.Container) {
	admin := api.Group("/admin")
	admin.Use(middleware.RequireIdentity(c.Resolver), middleware.AdminMiddleware())
	{
		admin.POST("/media/sweep", c.MediaHandler.TriggerSweep)
	}
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		health := gin.H{
			"status":  "ok",
			"version": appCtx.Config.App.Version,
			"time":    time.Now().UTC().Format(time.RFC3339),
		}

		// Check database
		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
		} else if err := appCtx.DB.Ping(ctx); err != nil {
			dbStatus = fmt.Sprintf("error: %v", err)
		}

		// Check redis
		redisStatus := "ok"
		if appCtx.Cache == nil {
			redisStatus = "disconnected"
		} else if err := appCtx.Cache.Ping(ctx); err != nil {
			redisStatus = fmt.Sprintf("error: %v", err)
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			health["status"] = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
