package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NicoloTrevisan/WeatherMap/internal/preferences"
)

// SetPreferenceInput updates a single preference
type SetPreferenceInput struct {
	Key   preferences.Key `json:"key" binding:"required" example:"avgSpeedKmh"`
	Value *float64        `json:"value" binding:"required" example:"25"`
}

// handleGetPreferences godoc
// @Summary Get preferences
// @Tags preferences
// @Produce json
// @Success 200 {object} preferences.Preferences
// @Failure 500 {object} ErrorResponse
// @Router /preferences [get]
func (app *App) handleGetPreferences(c *gin.Context) {
	prefs, err := app.svc.preferences.Get(c.Request.Context())
	if err != nil {
		app.fail(c, err, "failed to read preferences")
		return
	}
	c.JSON(http.StatusOK, prefs)
}

// handleSetPreference godoc
// @Summary Update a preference
// @Description Known keys are avgSpeedKmh, weatherPoints and roundTripLengthKm. Values must be positive.
// @Tags preferences
// @Accept json
// @Produce json
// @Param input body SetPreferenceInput true "Preference to update"
// @Success 200 {object} preferences.Preferences
// @Failure 400 {object} ErrorResponse
// @Router /preferences [put]
func (app *App) handleSetPreference(c *gin.Context) {
	var input SetPreferenceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	prefs, err := app.svc.preferences.Set(c.Request.Context(), input.Key, *input.Value)
	if err != nil {
		app.fail(c, err, "failed to update preference")
		return
	}
	c.JSON(http.StatusOK, prefs)
}

// storedPreferences returns the stored preferences, or the configured
// defaults when the store cannot be read.
func (app *App) storedPreferences(c *gin.Context) preferences.Preferences {
	prefs, err := app.svc.preferences.Get(c.Request.Context())
	if err != nil {
		app.requestLog(c).Warn("failed to read preferences, using configured defaults", "error", err)
		return preferences.Defaults(app.cfg)
	}
	return prefs
}
