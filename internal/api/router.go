package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/movetrace/homerange-backend-go/internal/config"
	"github.com/movetrace/homerange-backend-go/internal/database"
	"github.com/movetrace/homerange-backend-go/internal/handler"
	"github.com/movetrace/homerange-backend-go/internal/metrics"
	"github.com/movetrace/homerange-backend-go/internal/middleware"
	"github.com/movetrace/homerange-backend-go/internal/projection"
	"github.com/movetrace/homerange-backend-go/internal/render"
	"github.com/movetrace/homerange-backend-go/internal/repository"
	"github.com/movetrace/homerange-backend-go/internal/service"
)

// SetupRouter wires repositories, services and handlers onto a gin engine
func SetupRouter(cfg *config.Config) (*gin.Engine, error) {
	transform, err := projection.NewTransform(cfg.UTMZone, cfg.UTMNorthern)
	if err != nil {
		return nil, err
	}

	db := database.GetDB()
	trackRepo := repository.NewTrackRepository(db)
	estimateRepo := repository.NewEstimateRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	trackService := service.NewTrackService(trackRepo)
	importService := service.NewImportService(trackRepo, taskRepo, transform)
	homeRangeService := service.NewHomeRangeService(trackRepo, estimateRepo, transform)
	fractalService := service.NewFractalService(trackRepo, cfg.OutputDir)
	mapper := render.NewMapper(render.NewTileFetcher(cfg.TileURL))
	mapService := service.NewMapService(trackRepo, homeRangeService, mapper, cfg.OutputDir)

	trackHandler := handler.NewTrackHandler(trackService, importService)
	homeRangeHandler := handler.NewHomeRangeHandler(homeRangeService)
	fractalHandler := handler.NewFractalHandler(fractalService)
	mapHandler := handler.NewMapHandler(mapService)
	taskHandler := handler.NewTaskHandler(taskRepo)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.RateLimit(120, time.Minute))

	// CORS
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Home Range API is running",
		})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api/v1")
	{
		tracks := api.Group("/tracks")
		{
			tracks.GET("/points", trackHandler.GetTrackPoints)
			tracks.GET("/groups", trackHandler.ListGroups)
			tracks.GET("/groups/:groupId/stats", trackHandler.GetGroupStats)

			protected := tracks.Group("", middleware.Auth(cfg.JWTSecret))
			{
				protected.POST("/import", trackHandler.Import)
				protected.DELETE("/groups/:groupId", trackHandler.DeleteGroup)
			}
		}

		hr := api.Group("/homerange")
		{
			hr.POST("/mcp", homeRangeHandler.EstimateMCP)
			hr.POST("/kde", homeRangeHandler.EstimateKDE)
			hr.GET("/:groupId", homeRangeHandler.ListEstimates)
		}

		api.POST("/fractal", fractalHandler.Estimate)
		api.POST("/maps", mapHandler.Render)

		tasks := api.Group("/tasks")
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.GET("/:id", taskHandler.GetTask)
		}
	}

	return r, nil
}
