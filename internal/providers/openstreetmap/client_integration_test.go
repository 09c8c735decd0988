//go:build integration

package openstreetmap

import (
	"context"
	"testing"
	"time"
)

func TestClient_Search_Integration(t *testing.T) {
	client := NewClient("", "", 10*time.Second, testLogger())

	places, err := client.Search(context.Background(), "Nijmegen", 3)
	if err != nil {
		t.Fatalf("Failed to search: %v", err)
	}
	if len(places) == 0 {
		t.Fatal("expected at least one place")
	}
	t.Logf("First match: %s (%s, %s)", places[0].DisplayName, places[0].Lat, places[0].Lon)

	// Nominatim asks for at most one request per second.
	time.Sleep(time.Second)

	resp, err := client.Reverse(context.Background(), 51.8425, 5.8528)
	if err != nil {
		t.Fatalf("Failed to reverse geocode: %v", err)
	}
	if resp.Error != "" || resp.DisplayName == "" {
		t.Errorf("unexpected reverse response: %+v", resp)
	}
	t.Logf("Reverse: %s", resp.DisplayName)
}
