package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NicoloTrevisan/WeatherMap/internal/activity"
	"github.com/NicoloTrevisan/WeatherMap/internal/geo"
	"github.com/NicoloTrevisan/WeatherMap/internal/location"
	"github.com/NicoloTrevisan/WeatherMap/internal/planning"
	"github.com/NicoloTrevisan/WeatherMap/internal/preferences"
	"github.com/NicoloTrevisan/WeatherMap/internal/providers"
	"github.com/NicoloTrevisan/WeatherMap/internal/roundtrip"
	"github.com/NicoloTrevisan/WeatherMap/internal/routing"
	"github.com/NicoloTrevisan/WeatherMap/internal/sampling"
)

var (
	errMissingRoute  = errors.New("one of points, geojson, waypoints or places is required")
	errMissingCenter = errors.New("either center or location is required")
	errInvalidCenter = errors.New("center has invalid coordinates")
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error" example:"one of points, geojson, waypoints or places is required"`
}

func statusFor(err error) int {
	var statusErr *providers.StatusError
	switch {
	case errors.Is(err, errMissingRoute),
		errors.Is(err, errMissingCenter),
		errors.Is(err, errInvalidCenter),
		errors.Is(err, planning.ErrInvalidRequest),
		errors.Is(err, sampling.ErrInvalidRoute),
		errors.Is(err, geo.ErrInvalidGeoJSON),
		errors.Is(err, location.ErrEmptyQuery),
		errors.Is(err, routing.ErrTooFewWaypoints),
		errors.Is(err, activity.ErrInvalidActivity),
		errors.Is(err, preferences.ErrUnknownPreference),
		errors.Is(err, preferences.ErrInvalidValue):
		return http.StatusBadRequest
	case errors.Is(err, location.ErrPlaceNotFound):
		return http.StatusNotFound
	case errors.Is(err, routing.ErrNoRoute):
		return http.StatusUnprocessableEntity
	case errors.Is(err, roundtrip.ErrNoCandidates), errors.As(err, &statusErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// fail writes the error response for err. Client errors carry their message;
// everything else is logged and answered with the generic message.
func (app *App) fail(c *gin.Context, err error, message string) {
	status := statusFor(err)
	if status < http.StatusInternalServerError {
		c.JSON(status, ErrorResponse{Error: err.Error()})
		return
	}

	app.requestLog(c).Error(message, "status", status, "error", err)
	c.JSON(status, ErrorResponse{Error: message})
}
