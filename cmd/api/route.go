package main

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/NicoloTrevisan/WeatherMap/internal/geo"
	"github.com/NicoloTrevisan/WeatherMap/internal/planning"
	"github.com/NicoloTrevisan/WeatherMap/internal/roundtrip"
)

// RouteInput is a drawn route, a GeoJSON line, waypoints to route between or
// place names to route between, tried in that order.
type RouteInput struct {
	Points    geo.Route       `json:"points"`
	GeoJSON   json.RawMessage `json:"geojson" swaggertype:"object"`
	Waypoints []geo.Point     `json:"waypoints"`
	Places    []string        `json:"places" example:"Nijmegen,Arnhem"`
}

// PlanRouteInput defines the body of the plan endpoint
type PlanRouteInput struct {
	RouteInput
	Start         time.Time `json:"start" example:"2024-06-01T08:00:00Z"` // Ride start, now when omitted
	AvgSpeedKmh   float64   `json:"avgSpeedKmh" binding:"gte=0" example:"22"`
	WeatherPoints int       `json:"weatherPoints" binding:"gte=0,lte=50" example:"10"`
}

// TailwindInput defines the body of the tailwind endpoint
type TailwindInput struct {
	RouteInput
	Start       time.Time `json:"start" example:"2024-06-01T08:00:00Z"`
	AvgSpeedKmh float64   `json:"avgSpeedKmh" binding:"gte=0" example:"22"`
}

type TailwindResponse struct {
	TailwindKmh float64 `json:"tailwindKmh" example:"4.2"` // Positive is a tailwind, negative a headwind
	Policy      string  `json:"policy" example:"planned"`
}

// RoundTripInput defines the body of the round-trip endpoint
type RoundTripInput struct {
	Center        *geo.Point `json:"center"`
	Location      string     `json:"location" example:"Nijmegen"` // Place name, used when center is omitted
	LengthKm      float64    `json:"lengthKm" binding:"gte=0,lte=300" example:"50"`
	Start         time.Time  `json:"start" example:"2024-06-01T08:00:00Z"`
	AvgSpeedKmh   float64    `json:"avgSpeedKmh" binding:"gte=0" example:"22"`
	Candidates    int        `json:"candidates" binding:"gte=0,lte=10" example:"3"`
	WeatherPoints int        `json:"weatherPoints" binding:"gte=0,lte=50" example:"10"`
}

type RoundTripCandidate struct {
	Seed        int      `json:"seed"`
	DistanceKm  float64  `json:"distanceKm"`
	TailwindKmh *float64 `json:"tailwindKmh"` // null when the loop could not be scored
}

type RoundTripResponse struct {
	Plan       *planning.Plan       `json:"plan"`
	Candidates []RoundTripCandidate `json:"candidates"`
}

// handlePlanRoute godoc
// @Summary Plan a ride
// @Description Forecast weather along a route at the estimated arrival times and score the wind
// @Tags routes
// @Accept json
// @Produce json
// @Param input body PlanRouteInput true "Route and ride parameters"
// @Param format query string false "Response format" Enums(json, geojson)
// @Success 200 {object} planning.Plan
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /routes/plan [post]
func (app *App) handlePlanRoute(c *gin.Context) {
	var input PlanRouteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	ctx := c.Request.Context()
	route, err := app.resolveRoute(ctx, input.RouteInput)
	if err != nil {
		app.fail(c, err, "failed to route between waypoints")
		return
	}

	prefs := app.storedPreferences(c)
	req := planning.Request{
		Route:         route,
		Start:         startOrNow(input.Start),
		AvgSpeedKmh:   orDefault(input.AvgSpeedKmh, prefs.AvgSpeedKmh),
		WeatherPoints: orDefault(input.WeatherPoints, prefs.WeatherPoints),
	}

	plan, err := app.svc.planner.Plan(ctx, req)
	if err != nil {
		app.fail(c, err, "failed to plan route")
		return
	}

	if c.Query("format") == "geojson" {
		c.JSON(http.StatusOK, plan.GeoJSON())
		return
	}
	c.JSON(http.StatusOK, plan)
}

// handleTailwind godoc
// @Summary Score the wind along a route
// @Description Average along-track wind component over a few points of the route, in km/h
// @Tags routes
// @Accept json
// @Produce json
// @Param input body TailwindInput true "Route and ride parameters"
// @Success 200 {object} TailwindResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /routes/tailwind [post]
func (app *App) handleTailwind(c *gin.Context) {
	var input TailwindInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	ctx := c.Request.Context()
	route, err := app.resolveRoute(ctx, input.RouteInput)
	if err != nil {
		app.fail(c, err, "failed to route between waypoints")
		return
	}

	speed := orDefault(input.AvgSpeedKmh, app.storedPreferences(c).AvgSpeedKmh)
	score, err := app.svc.scorer.Score(ctx, route, startOrNow(input.Start), speed, app.policy)
	if err != nil {
		app.fail(c, err, "failed to score route")
		return
	}

	c.JSON(http.StatusOK, TailwindResponse{TailwindKmh: score, Policy: app.policy.Name})
}

// handleRoundTrip godoc
// @Summary Generate a loop with the best wind
// @Description Generate loop candidates around a center, rank them by tailwind and plan the best one
// @Tags routes
// @Accept json
// @Produce json
// @Param input body RoundTripInput true "Loop parameters"
// @Success 200 {object} RoundTripResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /routes/round-trip [post]
func (app *App) handleRoundTrip(c *gin.Context) {
	var input RoundTripInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	ctx := c.Request.Context()
	center, err := app.resolveCenter(ctx, input)
	if err != nil {
		app.fail(c, err, "failed to find round trip center")
		return
	}

	prefs := app.storedPreferences(c)
	start := startOrNow(input.Start)
	speed := orDefault(input.AvgSpeedKmh, prefs.AvgSpeedKmh)

	ranked, err := app.svc.roundTrips.Rank(ctx, roundtrip.Request{
		Center:      center,
		LengthKm:    orDefault(input.LengthKm, prefs.RoundTripLengthKm),
		Start:       start,
		AvgSpeedKmh: speed,
		Candidates:  input.Candidates,
	})
	if err != nil {
		app.fail(c, err, "failed to generate round trip")
		return
	}

	plan, err := app.svc.planner.Plan(ctx, planning.Request{
		Route:         ranked[0].Route,
		Start:         start,
		AvgSpeedKmh:   speed,
		WeatherPoints: orDefault(input.WeatherPoints, prefs.WeatherPoints),
	})
	if err != nil {
		app.fail(c, err, "failed to plan round trip")
		return
	}

	resp := RoundTripResponse{
		Plan:       plan,
		Candidates: make([]RoundTripCandidate, len(ranked)),
	}
	for i, candidate := range ranked {
		resp.Candidates[i] = RoundTripCandidate{
			Seed:       candidate.Seed,
			DistanceKm: candidate.DistanceKm,
		}
		if !math.IsInf(candidate.Score, 0) && !math.IsNaN(candidate.Score) {
			score := candidate.Score
			resp.Candidates[i].TailwindKmh = &score
		}
	}

	c.JSON(http.StatusOK, resp)
}

func (app *App) resolveRoute(ctx context.Context, input RouteInput) (geo.Route, error) {
	switch {
	case len(input.Points) > 0:
		return input.Points, nil
	case len(input.GeoJSON) > 0 && string(input.GeoJSON) != "null":
		return geo.RouteFromGeoJSON(input.GeoJSON)
	case len(input.Waypoints) > 0:
		return app.svc.router.Route(ctx, input.Waypoints)
	case len(input.Places) > 0:
		waypoints, err := app.svc.locations.Resolve(ctx, input.Places)
		if err != nil {
			return nil, err
		}
		return app.svc.router.Route(ctx, waypoints)
	default:
		return nil, errMissingRoute
	}
}

func (app *App) resolveCenter(ctx context.Context, input RoundTripInput) (geo.Point, error) {
	switch {
	case input.Center != nil:
		if !input.Center.Valid() {
			return geo.Point{}, errInvalidCenter
		}
		return *input.Center, nil
	case input.Location != "":
		points, err := app.svc.locations.Resolve(ctx, []string{input.Location})
		if err != nil {
			return geo.Point{}, err
		}
		return points[0], nil
	default:
		return geo.Point{}, errMissingCenter
	}
}

func startOrNow(start time.Time) time.Time {
	if start.IsZero() {
		return time.Now()
	}
	return start
}

func orDefault[T int | float64](value, fallback T) T {
	if value == 0 {
		return fallback
	}
	return value
}
