package graphhopper

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NicoloTrevisan/WeatherMap/internal/geo"
)

func encodePath(t *testing.T, points [][3]float64) string {
	t.Helper()
	coords := make([][]float64, len(points))
	for i, p := range points {
		coords[i] = []float64{p[0], p[1], p[2] / elevationScale}
	}
	return string(polylineCodec.EncodeCoords(nil, coords))
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDecodePoints(t *testing.T) {
	encoded := encodePath(t, [][3]float64{
		{51.84260, 5.85280, 12.5},
		{51.85000, 5.86000, 14.0},
		{51.86000, 5.87000, 9.25},
	})

	route, err := DecodePoints(encoded)
	require.NoError(t, err)
	require.Len(t, route, 3)

	assert.InDelta(t, 51.8426, route[0].Lat, 1e-5)
	assert.InDelta(t, 5.8528, route[0].Lng, 1e-5)
	require.NotNil(t, route[0].Elevation)
	assert.InDelta(t, 12.5, *route[0].Elevation, 0.01)
	assert.InDelta(t, 9.25, *route[2].Elevation, 0.01)
}

func TestDecodePoints_Malformed(t *testing.T) {
	_, err := DecodePoints("_p~iF~ps|U_")
	assert.Error(t, err)
}

func TestClient_Route(t *testing.T) {
	encoded := encodePath(t, [][3]float64{{51.8, 5.8, 10}, {51.9, 5.9, 20}})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, []string{"51.800000,5.800000", "51.900000,5.900000"}, q["point"])
		assert.Equal(t, "bike", q.Get("vehicle"))
		assert.Equal(t, "true", q.Get("elevation"))
		assert.Equal(t, "true", q.Get("points_encoded"))
		assert.Equal(t, "k", q.Get("key"))
		assert.Empty(t, q.Get("algorithm"))
		_, _ = fmt.Fprintf(w, `{"paths":[{"distance":13000,"time":2000000,"points":%q,"points_encoded":true}]}`, encoded)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "k", time.Second, discardLogger())
	resp, err := client.Route(context.Background(), []geo.Point{geo.NewPoint(51.8, 5.8), geo.NewPoint(51.9, 5.9)})
	require.NoError(t, err)
	require.Len(t, resp.Paths, 1)
	assert.Equal(t, encoded, resp.Paths[0].Points)
}

func TestClient_RoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "round_trip", q.Get("algorithm"))
		assert.Equal(t, "50000", q.Get("round_trip.distance"))
		assert.Equal(t, "4242", q.Get("round_trip.seed"))
		assert.Equal(t, "51.800000,5.800000", q.Get("point"))
		_, _ = w.Write([]byte(`{"paths":[]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "k", time.Second, discardLogger())
	resp, err := client.RoundTrip(context.Background(), geo.NewPoint(51.8, 5.8), 50000, 4242)
	require.NoError(t, err)
	assert.Empty(t, resp.Paths)
}
