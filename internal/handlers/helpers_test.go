package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestParseZonedDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantUTC  string
		wantZone string
	}{
		{"utc", "2024-01-15T10:30:00Z", "2024-01-15T10:30:00Z", "UTC"},
		{"offset", "2024-01-15T10:30:00+02:00", "2024-01-15T08:30:00Z", ""},
		{"offset_and_zone", "2024-01-15T10:30:00+01:00[Europe/Rome]", "2024-01-15T09:30:00Z", "Europe/Rome"},
		{"local_and_zone", "2024-07-15T10:30[Europe/Rome]", "2024-07-15T08:30:00Z", "Europe/Rome"},
		{"local_seconds_and_zone", "2024-01-15T10:30:15[America/New_York]", "2024-01-15T15:30:15Z", "America/New_York"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseZonedDate(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if utc := got.UTC().Format(time.RFC3339); utc != tt.wantUTC {
				t.Errorf("expected instant %s, got %s", tt.wantUTC, utc)
			}
			if tt.wantZone != "" && got.Location().String() != tt.wantZone {
				t.Errorf("expected zone %s, got %s", tt.wantZone, got.Location())
			}
		})
	}

	for _, bad := range []string{"", "yesterday", "2024-01-15", "2024-01-15T10:30[Mars/Olympus]", "2024-01-15T10:30[Europe/Rome"} {
		if _, err := parseZonedDate(bad); err == nil {
			t.Errorf("expected %q to be rejected", bad)
		}
	}
}

func TestParsePathID(t *testing.T) {
	r := gin.New()
	r.GET("/things/:id", func(c *gin.Context) {
		id, err := parsePathID(c, "id")
		if err != nil {
			respondWithError(c, err)
			return
		}
		c.String(http.StatusOK, id)
	})

	rec := doRequest(r, "GET", "/things/0190A4B2-6F00-7000-8000-0000000000AA", "")
	if rec.Code != http.StatusOK || rec.Body.String() != testUserID {
		t.Errorf("expected canonical id, got %d %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(r, "GET", "/things/42", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
}
