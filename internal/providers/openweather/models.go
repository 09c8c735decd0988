package openweather

// ForecastAPIResponse is the 5 day / 3 hour forecast payload.
type ForecastAPIResponse struct {
	Cod  string          `json:"cod"`
	Cnt  int             `json:"cnt"`
	List []ForecastEntry `json:"list"`
	City struct {
		Name     string `json:"name"`
		Country  string `json:"country"`
		Timezone int    `json:"timezone"`
	} `json:"city"`
}

type ForecastEntry struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp     *float64 `json:"temp"`
		Humidity *float64 `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed *float64 `json:"speed"` // m/s with units=metric
		Deg   *float64 `json:"deg"`
		Gust  *float64 `json:"gust"`
	} `json:"wind"`
	Weather []Condition `json:"weather"`
	Rain    *Volume     `json:"rain,omitempty"`
	Snow    *Volume     `json:"snow,omitempty"`
	DtTxt   string      `json:"dt_txt"`
}

type Condition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
}

// Volume is the precipitation amount in mm over the last 3 hours.
type Volume struct {
	ThreeHours float64 `json:"3h"`
}
