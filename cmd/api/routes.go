package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// registerRoutes sets up all API endpoints
func (app *App) registerRoutes() {
	// Health check endpoint
	app.router.GET("/ping", app.handlePing)

	routes := app.router.Group("/routes")
	routes.POST("/plan", app.handlePlanRoute)
	routes.POST("/tailwind", app.handleTailwind)
	routes.POST("/round-trip", app.handleRoundTrip)

	app.router.POST("/activities/analyze", app.handleAnalyzeActivity)

	locations := app.router.Group("/locations")
	locations.GET("/search", app.handleSearchLocations)
	locations.GET("/reverse", app.handleReverseLocation)

	app.router.GET("/preferences", app.handleGetPreferences)
	app.router.PUT("/preferences", app.handleSetPreference)

	// Swagger documentation
	app.router.GET("/swagger/*any", func(c *gin.Context) {
		path := c.Param("any")
		if path == "/" {
			c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
			return
		}
		ginSwagger.WrapHandler(swaggerFiles.Handler)(c)
	})
}
