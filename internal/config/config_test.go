package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir runs the test from an empty directory so no stray config.yaml is picked up.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.GetServerAddr())
	assert.Equal(t, 10*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, []float64{0.25, 0.5, 0.75}, cfg.Tailwind.Fractions)
	assert.Equal(t, 500.0, cfg.Tailwind.LookAheadMeters)
	assert.Equal(t, 75*time.Millisecond, cfg.Tailwind.Stagger)
	assert.Equal(t, 60*time.Millisecond, cfg.Planning.Stagger)
	assert.Equal(t, 200*time.Millisecond, cfg.Activity.Stagger)
	assert.Equal(t, 22.0, cfg.Planning.AvgSpeedKmh)
	assert.Equal(t, 10, cfg.Planning.WeatherPoints)
	assert.Equal(t, 6, cfg.Activity.TailwindSamples)
	assert.Equal(t, 8, cfg.Activity.WeatherSamples)
	assert.Equal(t, 3, cfg.RoundTrip.Candidates)
	assert.Equal(t, 50, cfg.Elevation.MaxSamples)
	assert.Empty(t, cfg.Cache.RedisAddr)
	assert.Equal(t, "WeatherMap/1.0", cfg.Providers.Nominatim.UserAgent)
	assert.Equal(t, time.Second, cfg.Providers.Nominatim.Stagger)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("HOME", t.TempDir())

	yaml := []byte("planning:\n  avgspeedkmh: 28\n  stagger: 100ms\nlog:\n  format: json\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600))

	t.Setenv("WEATHERMAP_PROVIDERS_OPENWEATHER_APIKEY", "secret")
	t.Setenv("WEATHERMAP_SERVER_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 28.0, cfg.Planning.AvgSpeedKmh)
	assert.Equal(t, 100*time.Millisecond, cfg.Planning.Stagger)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "secret", cfg.Providers.OpenWeather.APIKey)
	assert.Equal(t, ":9090", cfg.GetServerAddr())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "zero speed", mutate: func(c *Config) { c.Planning.AvgSpeedKmh = 0 }, wantErr: true},
		{name: "no weather points", mutate: func(c *Config) { c.Planning.WeatherPoints = 0 }, wantErr: true},
		{name: "fraction out of range", mutate: func(c *Config) { c.Tailwind.Fractions = []float64{1.5} }, wantErr: true},
		{name: "no candidates", mutate: func(c *Config) { c.RoundTrip.Candidates = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Planning:  PlanningConfig{AvgSpeedKmh: 22, WeatherPoints: 10},
				Activity:  ActivityConfig{TailwindSamples: 6, WeatherSamples: 8},
				RoundTrip: RoundTripConfig{Candidates: 3},
				Tailwind:  TailwindConfig{Fractions: []float64{0.25, 0.5, 0.75}},
			}
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
