package openweather

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NicoloTrevisan/WeatherMap/internal/providers"
)

const forecastFixture = `{
  "cod": "200",
  "cnt": 2,
  "list": [
    {
      "dt": 1717228800,
      "main": {"temp": 17.3, "humidity": 71},
      "wind": {"speed": 4.2, "deg": 250, "gust": 7.1},
      "weather": [{"id": 500, "main": "Rain", "description": "light rain"}],
      "rain": {"3h": 0.6},
      "dt_txt": "2024-06-01 08:00:00"
    },
    {
      "dt": 1717239600,
      "main": {"temp": 19.0, "humidity": 60},
      "wind": {"speed": 3.1, "deg": 270},
      "weather": [{"id": 800, "main": "Clear", "description": "clear sky"}],
      "dt_txt": "2024-06-01 11:00:00"
    }
  ],
  "city": {"name": "Nijmegen", "country": "NL", "timezone": 7200}
}`

func TestClient_GetForecast(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "51.842600", q.Get("lat"))
		assert.Equal(t, "5.852800", q.Get("lon"))
		assert.Equal(t, "metric", q.Get("units"))
		assert.Equal(t, "test-key", q.Get("appid"))
		_, _ = w.Write([]byte(forecastFixture))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
	resp, err := client.GetForecast(context.Background(), 51.8426, 5.8528)
	require.NoError(t, err)

	require.Len(t, resp.List, 2)
	first := resp.List[0]
	assert.Equal(t, int64(1717228800), first.Dt)
	require.NotNil(t, first.Wind.Speed)
	assert.Equal(t, 4.2, *first.Wind.Speed)
	require.NotNil(t, first.Rain)
	assert.Equal(t, 0.6, first.Rain.ThreeHours)
	assert.Nil(t, resp.List[1].Rain)
	assert.Equal(t, "Nijmegen", resp.City.Name)
}

func TestClient_GetForecast_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"cod":401,"message":"Invalid API key"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "bad", time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
	_, err := client.GetForecast(context.Background(), 51.8, 5.8)

	var statusErr *providers.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
}
