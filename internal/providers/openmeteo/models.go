package openmeteo

// ArchiveAPIResponse is the historical weather payload. Hourly values are
// parallel arrays indexed like Hourly.Time; any entry may be null.
type ArchiveAPIResponse struct {
	Latitude             float64     `json:"latitude"`
	Longitude            float64     `json:"longitude"`
	GenerationtimeMs     float64     `json:"generationtime_ms"`
	UtcOffsetSeconds     int         `json:"utc_offset_seconds"`
	Timezone             string      `json:"timezone"`
	TimezoneAbbreviation string      `json:"timezone_abbreviation"`
	Elevation            float64     `json:"elevation"`
	HourlyUnits          HourlyUnits `json:"hourly_units"`
	Hourly               HourlyData  `json:"hourly"`
}

type HourlyUnits struct {
	Time               string `json:"time"`
	Temperature2m      string `json:"temperature_2m"`
	RelativeHumidity2m string `json:"relative_humidity_2m"`
	WindSpeed10m       string `json:"wind_speed_10m"`
	WindDirection10m   string `json:"wind_direction_10m"`
	Precipitation      string `json:"precipitation"`
	WeatherCode        string `json:"weather_code"`
}

type HourlyData struct {
	Time               []string   `json:"time"`
	Temperature2m      []*float64 `json:"temperature_2m"`
	RelativeHumidity2m []*float64 `json:"relative_humidity_2m"`
	WindSpeed10m       []*float64 `json:"wind_speed_10m"`
	WindDirection10m   []*float64 `json:"wind_direction_10m"`
	Precipitation      []*float64 `json:"precipitation"`
	WeatherCode        []*int     `json:"weather_code"`
}

type ElevationAPIResponse struct {
	Elevation []float64 `json:"elevation"`
}
