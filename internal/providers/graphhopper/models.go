package graphhopper

// RouteAPIResponse is the /route payload with points_encoded=true.
type RouteAPIResponse struct {
	Paths []Path `json:"paths"`
	Info  struct {
		Copyrights []string `json:"copyrights"`
		Took       int      `json:"took"`
	} `json:"info"`
}

type Path struct {
	Distance      float64   `json:"distance"` // meters
	Time          int64     `json:"time"`     // milliseconds
	Ascend        float64   `json:"ascend"`
	Descend       float64   `json:"descend"`
	Points        string    `json:"points"`
	PointsEncoded bool      `json:"points_encoded"`
	BBox          []float64 `json:"bbox"`
}

// ErrorResponse is the body GraphHopper returns with 4xx statuses.
type ErrorResponse struct {
	Message string `json:"message"`
}
