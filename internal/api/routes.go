// Package api exposes the window engine over HTTP.
//
// Routes:
//
//	POST   /api/validate_input            parse raw input
//	POST   /api/calculate_step            evaluate one fixed window
//	POST   /api/generate_code             render a reference implementation
//	GET    /api/generate_code/combinations list renderable combinations
//	POST   /api/scans                     start a stepped run
//	GET    /api/scans/:id                 run position
//	POST   /api/scans/:id/advance         emit the next step
//	GET    /api/scans/:id/steps/:index    compute one step without moving
//	POST   /api/scans/:id/reset           rewind with a fresh scan state
//	DELETE /api/scans/:id                 drop the run
//	GET    /health                        liveness
//	GET    /metrics                       Prometheus exposition
//
// Failures are returned as ErrorResponse with a stable code.
package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes registers the API routes on a router group.
func RegisterRoutes(rg *gin.RouterGroup, handlers *Handlers) {
	rg.POST("/validate_input", handlers.HandleValidateInput)
	rg.POST("/calculate_step", handlers.HandleCalculateStep)
	rg.POST("/generate_code", handlers.HandleGenerateCode)
	rg.GET("/generate_code/combinations", handlers.HandleListCombinations)

	scans := rg.Group("/scans")
	{
		scans.POST("", handlers.HandleCreateScan)
		scans.GET("/:id", handlers.HandleGetScan)
		scans.POST("/:id/advance", handlers.HandleAdvanceScan)
		scans.GET("/:id/steps/:index", handlers.HandleGetScanStep)
		scans.POST("/:id/reset", handlers.HandleResetScan)
		scans.DELETE("/:id", handlers.HandleDeleteScan)
	}
}

// NewRouter builds the complete engine: middleware, API group, health and
// metrics.
func NewRouter(handlers *Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestMiddleware())

	RegisterRoutes(router.Group("/api"), handlers)
	router.GET("/health", handlers.HandleHealth)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return router
}
