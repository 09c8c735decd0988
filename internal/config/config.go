package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server      ServerConfig
	Log         LogConfig
	HTTP        HTTPConfig
	Providers   ProvidersConfig
	Tailwind    TailwindConfig
	Planning    PlanningConfig
	Activity    ActivityConfig
	RoundTrip   RoundTripConfig
	Elevation   ElevationConfig
	Cache       CacheConfig
	Preferences PreferencesConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port            int
	GinMode         string // debug, release, test
	ShutdownTimeout time.Duration
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// HTTPConfig applies to every upstream API client
type HTTPConfig struct {
	Timeout time.Duration
}

type ProvidersConfig struct {
	OpenWeather OpenWeatherConfig
	OpenMeteo   OpenMeteoConfig
	GraphHopper GraphHopperConfig
	Nominatim   NominatimConfig
}

type OpenWeatherConfig struct {
	BaseURL string
	APIKey  string
}

type OpenMeteoConfig struct {
	ArchiveURL   string
	ElevationURL string
}

type GraphHopperConfig struct {
	BaseURL string
	APIKey  string
}

// NominatimConfig configures place search. Stagger spaces out lookups of
// several places in one request.
type NominatimConfig struct {
	BaseURL   string
	UserAgent string
	Stagger   time.Duration
}

// TailwindConfig drives scoring of planned routes
type TailwindConfig struct {
	Fractions       []float64 // positions along the route, as fractions of its length
	LookAheadMeters float64
	Stagger         time.Duration
}

// PlanningConfig drives the weather markers of planned routes
type PlanningConfig struct {
	AvgSpeedKmh   float64
	WeatherPoints int
	Stagger       time.Duration
}

// ActivityConfig drives analysis of recorded rides
type ActivityConfig struct {
	TailwindSamples  int
	LookAheadPoints  int
	WeatherSamples   int
	Stagger          time.Duration
	ProximityDegrees float64
}

type RoundTripConfig struct {
	Candidates int
	LengthKm   float64
}

type ElevationConfig struct {
	Enabled    bool
	MaxSamples int
}

// CacheConfig configures the optional redis weather cache. An empty
// RedisAddr disables caching.
type CacheConfig struct {
	RedisAddr     string
	Password      string
	DB            int
	ForecastTTL   time.Duration
	HistoricalTTL time.Duration
}

type PreferencesConfig struct {
	Path string
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	v := viper.New()

	// Set config file name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("$HOME/.weathermap")

	setDefaults(v)

	// Read from environment variables, e.g. WEATHERMAP_PROVIDERS_OPENWEATHER_APIKEY
	v.SetEnvPrefix("WEATHERMAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist, we have defaults
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Unmarshal into config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.ginmode", "release")
	v.SetDefault("server.shutdowntimeout", 5*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("http.timeout", 10*time.Second)

	v.SetDefault("providers.openweather.baseurl", "")
	v.SetDefault("providers.openweather.apikey", "")
	v.SetDefault("providers.openmeteo.archiveurl", "")
	v.SetDefault("providers.openmeteo.elevationurl", "")
	v.SetDefault("providers.graphhopper.baseurl", "")
	v.SetDefault("providers.graphhopper.apikey", "")
	v.SetDefault("providers.nominatim.baseurl", "")
	v.SetDefault("providers.nominatim.useragent", "WeatherMap/1.0")
	v.SetDefault("providers.nominatim.stagger", time.Second)

	v.SetDefault("tailwind.fractions", []float64{0.25, 0.5, 0.75})
	v.SetDefault("tailwind.lookaheadmeters", 500.0)
	v.SetDefault("tailwind.stagger", 75*time.Millisecond)

	v.SetDefault("planning.avgspeedkmh", 22.0)
	v.SetDefault("planning.weatherpoints", 10)
	v.SetDefault("planning.stagger", 60*time.Millisecond)

	v.SetDefault("activity.tailwindsamples", 6)
	v.SetDefault("activity.lookaheadpoints", 10)
	v.SetDefault("activity.weathersamples", 8)
	v.SetDefault("activity.stagger", 200*time.Millisecond)
	v.SetDefault("activity.proximitydegrees", 0.001)

	v.SetDefault("roundtrip.candidates", 3)
	v.SetDefault("roundtrip.lengthkm", 50.0)

	v.SetDefault("elevation.enabled", true)
	v.SetDefault("elevation.maxsamples", 50)

	v.SetDefault("cache.redisaddr", "")
	v.SetDefault("cache.password", "")
	v.SetDefault("cache.db", 0)
	v.SetDefault("cache.forecastttl", 30*time.Minute)
	v.SetDefault("cache.historicalttl", 24*time.Hour)

	v.SetDefault("preferences.path", "weathermap.db")
}

// Validate rejects settings the scoring pipeline cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Planning.AvgSpeedKmh <= 0 {
		errs = append(errs, fmt.Errorf("planning.avgspeedkmh must be positive, got %v", c.Planning.AvgSpeedKmh))
	}
	if c.Planning.WeatherPoints < 1 {
		errs = append(errs, fmt.Errorf("planning.weatherpoints must be at least 1, got %d", c.Planning.WeatherPoints))
	}
	if c.Activity.TailwindSamples < 1 {
		errs = append(errs, fmt.Errorf("activity.tailwindsamples must be at least 1, got %d", c.Activity.TailwindSamples))
	}
	if c.Activity.WeatherSamples < 1 {
		errs = append(errs, fmt.Errorf("activity.weathersamples must be at least 1, got %d", c.Activity.WeatherSamples))
	}
	if c.RoundTrip.Candidates < 1 {
		errs = append(errs, fmt.Errorf("roundtrip.candidates must be at least 1, got %d", c.RoundTrip.Candidates))
	}
	for _, f := range c.Tailwind.Fractions {
		if f < 0 || f > 1 {
			errs = append(errs, fmt.Errorf("tailwind.fractions must lie in [0,1], got %v", f))
		}
	}
	return errors.Join(errs...)
}

// GetServerAddr returns the server address in the format ":port"
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// NewLogger creates a new slog.Logger based on the configuration
func (c *Config) NewLogger() *slog.Logger {
	// Parse log level
	var level slog.Level
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	// Create handler options
	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Choose handler based on format
	var handler slog.Handler
	switch strings.ToLower(c.Log.Format) {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, opts)
	default: // "text" or anything else
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
