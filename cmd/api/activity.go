package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NicoloTrevisan/WeatherMap/internal/geo"
)

// AnalyzeActivityInput carries a recorded ride, typically parsed from a GPX file
type AnalyzeActivityInput struct {
	Points geo.Route `json:"points" binding:"required"`
}

// handleAnalyzeActivity godoc
// @Summary Analyze a recorded ride
// @Description Distance, elevation and speed metrics, plus the wind and weather at the recorded times when the ride has timestamps
// @Tags activities
// @Accept json
// @Produce json
// @Param input body AnalyzeActivityInput true "Recorded points"
// @Success 200 {object} activity.Analysis
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /activities/analyze [post]
func (app *App) handleAnalyzeActivity(c *gin.Context) {
	var input AnalyzeActivityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	analysis, err := app.svc.analyzer.Analyze(c.Request.Context(), input.Points)
	if err != nil {
		app.fail(c, err, "failed to analyze activity")
		return
	}

	c.JSON(http.StatusOK, analysis)
}
