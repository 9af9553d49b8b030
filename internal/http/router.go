package http

import (
	"github.com/gin-gonic/gin"
)

// RouterConfig carries the router's dependencies. Optional ones may be nil.
type RouterConfig struct {
	Version string

	Database Pinger
	Words    WordService
	Refill   RefillRunner

	Providers      ProviderSelector
	Catalog        ProviderCatalog
	RefillSettings RefillSettingsStore
	Schedule       RefillScheduleControl // optional

	TaskQueue TaskQueue // optional; nil serves everything synchronously
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	health := NewHealthController(cfg.Database, cfg.Version)
	words := NewWordsController(cfg.Words, cfg.Refill, cfg.TaskQueue)
	system := NewSystemController(cfg.Providers, cfg.Catalog, cfg.RefillSettings, cfg.Schedule)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Vocabulary endpoints
	api := router.Group("/api")
	api.POST("/word/create", words.Create)
	api.POST("/word/get", words.Get)
	api.POST("/word/update-batch", words.UpdateBatch)
	api.GET("/word", words.List)
	api.GET("/word/:word", words.GetByPath)
	api.DELETE("/word/:id", words.Delete)

	// Provider selection
	api.GET("/system/model", system.GetModel)
	api.POST("/system/model", system.SetModel)
	api.GET("/model/list", system.ListModels)

	// Refill schedule
	api.GET("/system/refill", system.GetRefill)
	api.PUT("/system/refill", system.UpdateRefill)

	if cfg.TaskQueue != nil {
		tasksController := NewTasksController(cfg.TaskQueue)
		api.GET("/tasks/:id", tasksController.GetTaskStatus)
	}

	return router
}
