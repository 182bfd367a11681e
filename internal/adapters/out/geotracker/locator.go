// Package geotracker implements the Locator port against the fleet location
// tracking service. The service holds the last reported position of each
// technician's device; a capture is a one-shot read of that position.
package geotracker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/order"
	"fieldservice/internal/core/ports"
)

// defaultTimeout bounds a single location request when the caller's context
// carries no earlier deadline.
const defaultTimeout = 10 * time.Second

// HTTPLocator acquires location fixes over the tracking service's REST API.
type HTTPLocator struct {
	baseURL string
	client  *http.Client
}

// NewHTTPLocator creates a locator talking to the tracking service at the
// given base URL. A nil client falls back to a default with the package
// timeout.
func NewHTTPLocator(baseURL string, client *http.Client) *HTTPLocator {
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}

	return &HTTPLocator{
		baseURL: baseURL,
		client:  client,
	}
}

// positionResponse is the tracking service's wire format for one fix.
type positionResponse struct {
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	RecordedAt time.Time `json:"recordedAt"`
}

// Capture requests the technician's current position and returns it as a
// GeoEvent. Failures are classified into ports.GeoError reasons: denied
// access maps to permission denied, a missing or unreachable position to
// unavailable, and an expired deadline to timeout.
func (l *HTTPLocator) Capture(ctx context.Context, technicianID string) (order.GeoEvent, error) {
	url := fmt.Sprintf("%s/api/v1/technicians/%s/location", l.baseURL, technicianID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return order.GeoEvent{}, ports.NewGeoError(ports.GeoUnavailable, err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return order.GeoEvent{}, ports.NewGeoError(ports.GeoTimeout, err)
		}
		return order.GeoEvent{}, ports.NewGeoError(ports.GeoUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return order.GeoEvent{}, ports.NewGeoError(classifyStatus(resp.StatusCode),
			fmt.Errorf("tracking service returned %d", resp.StatusCode))
	}

	var position positionResponse
	if err = json.NewDecoder(resp.Body).Decode(&position); err != nil {
		return order.GeoEvent{}, ports.NewGeoError(ports.GeoUnavailable, err)
	}

	point, err := kernel.NewGeoPoint(position.Latitude, position.Longitude)
	if err != nil {
		return order.GeoEvent{}, ports.NewGeoError(ports.GeoUnavailable, err)
	}

	recordedAt := position.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}

	event, err := order.NewGeoEvent(recordedAt, point)
	if err != nil {
		return order.GeoEvent{}, ports.NewGeoError(ports.GeoUnavailable, err)
	}

	return event, nil
}

func classifyStatus(status int) ports.GeoFailureReason {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ports.GeoPermissionDenied
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return ports.GeoTimeout
	default:
		return ports.GeoUnavailable
	}
}
