package openmeteo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElevationClient_GetElevations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "52.520000,48.850000", r.URL.Query().Get("latitude"))
		assert.Equal(t, "13.410000,2.350000", r.URL.Query().Get("longitude"))
		_, _ = w.Write([]byte(`{"elevation":[38.0,43.0]}`))
	}))
	defer srv.Close()

	client := NewElevationClient(srv.URL, time.Second, discardLogger())
	got, err := client.GetElevations(context.Background(), []float64{52.52, 48.85}, []float64{13.41, 2.35})
	require.NoError(t, err)
	assert.Equal(t, []float64{38, 43}, got)
}

func TestElevationClient_GetElevations_Validation(t *testing.T) {
	client := NewElevationClient("http://127.0.0.1:1", time.Second, discardLogger())

	_, err := client.GetElevations(context.Background(), []float64{1, 2}, []float64{1})
	assert.Error(t, err)

	got, err := client.GetElevations(context.Background(), nil, nil)
	assert.NoError(t, err)
	assert.Empty(t, got)

	many := make([]float64, MaxElevationBatch+1)
	_, err = client.GetElevations(context.Background(), many, many)
	assert.True(t, errors.Is(err, ErrBatchTooLarge))
}

func TestElevationClient_GetElevations_LengthMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"elevation":[38.0]}`))
	}))
	defer srv.Close()

	client := NewElevationClient(srv.URL, time.Second, discardLogger())
	_, err := client.GetElevations(context.Background(), []float64{52.52, 48.85}, []float64{13.41, 2.35})
	assert.Error(t, err)
}
