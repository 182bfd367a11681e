package geotracker_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fieldservice/internal/adapters/out/geotracker"
	"fieldservice/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPLocator_Capture_Success(t *testing.T) {
	recordedAt := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/technicians/tech-42/location", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"latitude": -23.55, "longitude": -46.63, "recordedAt": %q}`,
			recordedAt.Format(time.RFC3339))
	}))
	defer server.Close()

	locator := geotracker.NewHTTPLocator(server.URL, nil)

	event, err := locator.Capture(t.Context(), "tech-42")

	require.NoError(t, err)
	assert.True(t, event.OccurredAt().Equal(recordedAt))
	assert.InEpsilon(t, -23.55, event.Point().Latitude(), 1e-9)
	assert.InEpsilon(t, -46.63, event.Point().Longitude(), 1e-9)
}

func TestHTTPLocator_Capture_MissingTimestampFallsBackToNow(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"latitude": 10.0, "longitude": 20.0}`)
	}))
	defer server.Close()

	locator := geotracker.NewHTTPLocator(server.URL, nil)
	before := time.Now()

	event, err := locator.Capture(t.Context(), "tech-42")

	require.NoError(t, err)
	assert.False(t, event.OccurredAt().Before(before))
	assert.False(t, event.OccurredAt().After(time.Now()))
}

func TestHTTPLocator_Capture_PermissionDenied(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		locator := geotracker.NewHTTPLocator(server.URL, nil)

		_, err := locator.Capture(t.Context(), "tech-42")

		require.Error(t, err)
		assert.ErrorIs(t, err, ports.ErrLocationUnobtainable)

		var geoErr *ports.GeoError
		require.ErrorAs(t, err, &geoErr)
		assert.Equal(t, ports.GeoPermissionDenied, geoErr.Reason)

		server.Close()
	}
}

func TestHTTPLocator_Capture_ServiceUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	locator := geotracker.NewHTTPLocator(server.URL, nil)

	_, err := locator.Capture(t.Context(), "tech-42")

	require.Error(t, err)
	assert.ErrorIs(t, err, ports.ErrLocationUnobtainable)

	var geoErr *ports.GeoError
	require.ErrorAs(t, err, &geoErr)
	assert.Equal(t, ports.GeoUnavailable, geoErr.Reason)
}

func TestHTTPLocator_Capture_GatewayTimeoutStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusGatewayTimeout)
	}))
	defer server.Close()

	locator := geotracker.NewHTTPLocator(server.URL, nil)

	_, err := locator.Capture(t.Context(), "tech-42")

	require.Error(t, err)

	var geoErr *ports.GeoError
	require.ErrorAs(t, err, &geoErr)
	assert.Equal(t, ports.GeoTimeout, geoErr.Reason)
}

func TestHTTPLocator_Capture_DeadlineExceeded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		fmt.Fprint(w, `{"latitude": 10.0, "longitude": 20.0}`)
	}))
	defer server.Close()

	locator := geotracker.NewHTTPLocator(server.URL, nil)

	ctx, cancel := context.WithTimeout(t.Context(), 20*time.Millisecond)
	defer cancel()

	_, err := locator.Capture(ctx, "tech-42")

	require.Error(t, err)
	assert.ErrorIs(t, err, ports.ErrLocationUnobtainable)

	var geoErr *ports.GeoError
	require.ErrorAs(t, err, &geoErr)
	assert.Equal(t, ports.GeoTimeout, geoErr.Reason)
}

func TestHTTPLocator_Capture_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `not json`)
	}))
	defer server.Close()

	locator := geotracker.NewHTTPLocator(server.URL, nil)

	_, err := locator.Capture(t.Context(), "tech-42")

	require.Error(t, err)

	var geoErr *ports.GeoError
	require.ErrorAs(t, err, &geoErr)
	assert.Equal(t, ports.GeoUnavailable, geoErr.Reason)
}

func TestHTTPLocator_Capture_OutOfRangeCoordinates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"latitude": 123.0, "longitude": 20.0}`)
	}))
	defer server.Close()

	locator := geotracker.NewHTTPLocator(server.URL, nil)

	_, err := locator.Capture(t.Context(), "tech-42")

	require.Error(t, err)

	var geoErr *ports.GeoError
	require.ErrorAs(t, err, &geoErr)
	assert.Equal(t, ports.GeoUnavailable, geoErr.Reason)
}
