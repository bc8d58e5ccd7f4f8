package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reading-tracker-backend/internal/shared/middleware"
	"reading-tracker-backend/internal/shared/response"
	"reading-tracker-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthHandler(c))

		setupUserRoutes(v1, c)
		setupBookRoutes(v1, c)
	}

	return router
}

func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container) {
	users := v1.Group("/users")
	{
		users.POST("", c.UserHandler.Register)
		users.GET("/:userID", c.UserHandler.GetUser)
		users.PUT("/:userID/recommendations", c.UserHandler.SetRecommendations)
		users.GET("/:userID/history", c.BookHandler.GetHistory)
	}
}

func setupBookRoutes(v1 *gin.RouterGroup, c *container.Container) {
	books := v1.Group("/users/:userID/books")
	{
		books.POST("", c.BookHandler.AddBook)
		books.GET("", c.BookHandler.ListBooks)
		books.GET("/search", c.BookHandler.SearchBooks)

		books.GET("/:bookID", c.BookHandler.GetBook)
		books.PATCH("/:bookID", c.BookHandler.EditBook)
		books.DELETE("/:bookID", c.BookHandler.DeleteBook)
		books.PUT("/:bookID/progress", c.BookHandler.UpdateProgress)
		books.POST("/:bookID/archive", c.BookHandler.Archive)
		books.POST("/:bookID/unarchive", c.BookHandler.Unarchive)
	}
}

// healthHandler reports liveness plus the state of both backends.
func healthHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		dbStatus := "up"
		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			dbStatus = "down"
		}

		cacheStatus := "up"
		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			cacheStatus = "down"
		}

		status := http.StatusOK
		if dbStatus == "down" {
			status = http.StatusServiceUnavailable
		}

		response.Success(ctx, status, gin.H{
			"status":   "ok",
			"version":  c.Config.App.Version,
			"database": dbStatus,
			"cache":    cacheStatus,
		})
	}
}
