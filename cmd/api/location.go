package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NicoloTrevisan/WeatherMap/internal/geo"
)

// SearchLocationsInput defines the query parameters for the place search endpoint
type SearchLocationsInput struct {
	Query string `form:"q" binding:"required"`                   // Free-form place name
	Limit int    `form:"limit" binding:"omitempty,min=1,max=10"` // Maximum number of matches
}

// ReverseLocationInput defines the query parameters for the reverse lookup endpoint
type ReverseLocationInput struct {
	Latitude  *float64 `form:"lat" binding:"required,min=-90,max=90"`   // Latitude in decimal degrees
	Longitude *float64 `form:"lng" binding:"required,min=-180,max=180"` // Longitude in decimal degrees
}

// handleSearchLocations godoc
// @Summary Search places
// @Description Find places by name, for example to pick waypoints or the center of a loop
// @Tags locations
// @Produce json
// @Param q query string true "Place name" example(Nijmegen)
// @Param limit query int false "Maximum number of matches" minimum(1) maximum(10) default(5)
// @Success 200 {array} location.Place
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /locations/search [get]
func (app *App) handleSearchLocations(c *gin.Context) {
	input := SearchLocationsInput{Limit: 5}
	if err := c.ShouldBindQuery(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	places, err := app.svc.locations.Search(c.Request.Context(), input.Query, input.Limit)
	if err != nil {
		app.fail(c, err, "failed to search places")
		return
	}
	c.JSON(http.StatusOK, places)
}

// handleReverseLocation godoc
// @Summary Name a coordinate
// @Description Retrieve the place at a latitude and longitude
// @Tags locations
// @Produce json
// @Param lat query number true "Latitude in decimal degrees" minimum(-90) maximum(90) example(51.8425)
// @Param lng query number true "Longitude in decimal degrees" minimum(-180) maximum(180) example(5.8528)
// @Success 200 {object} location.Place
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /locations/reverse [get]
func (app *App) handleReverseLocation(c *gin.Context) {
	var input ReverseLocationInput
	if err := c.ShouldBindQuery(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	place, err := app.svc.locations.Reverse(c.Request.Context(), geo.NewPoint(*input.Latitude, *input.Longitude))
	if err != nil {
		app.fail(c, err, "failed to look up place")
		return
	}
	c.JSON(http.StatusOK, place)
}
