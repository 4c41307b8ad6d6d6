// Package osrm is the HTTP adapter for an OSRM-compatible directions
// service.
package osrm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"waypoint/config"
	"waypoint/internal/domain/entity"
	"waypoint/internal/errors"
	"waypoint/internal/usecase"

	"github.com/paulmach/orb/geojson"
	"go.uber.org/fx"
)

// StatusError reports a non-2xx response from the routing service.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("routing service returned status %d: %s", e.Code, e.Body)
}

type routeEnvelope struct {
	Code   string         `json:"code"`
	Routes []routePayload `json:"routes"`
}

type routePayload struct {
	Distance float64           `json:"distance"`
	Duration float64           `json:"duration"`
	Geometry *geojson.Geometry `json:"geometry"`
	Legs     []legPayload      `json:"legs"`
}

type legPayload struct {
	Distance float64           `json:"distance"`
	Duration float64           `json:"duration"`
	Geometry *geojson.Geometry `json:"geometry"`
	Steps    []stepPayload     `json:"steps"`
}

type stepPayload struct {
	Distance float64           `json:"distance"`
	Name     string            `json:"name"`
	Geometry *geojson.Geometry `json:"geometry"`
	Maneuver maneuverPayload   `json:"maneuver"`
}

type maneuverPayload struct {
	Type        string `json:"type"`
	Modifier    string `json:"modifier"`
	Exit        int    `json:"exit"`
	Instruction string `json:"instruction"`
}

// ClientParams holds dependencies for the OSRM client, injected by Fx.
type ClientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// Client implements usecase.RouteFetcher against an OSRM /route/v1 endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates the routing service client.
func NewClient(params ClientParams) usecase.RouteFetcher {
	return &Client{
		baseURL:    strings.TrimRight(params.Config.Routing.BaseURL, "/"),
		httpClient: &http.Client{Timeout: params.Config.Routing.RequestTimeout},
		logger:     params.Logger,
	}
}

// FetchRoute requests driving directions through the waypoints in order.
func (c *Client) FetchRoute(ctx context.Context, waypoints []entity.LatLng, annotate bool) (*usecase.RouteResult, error) {
	if len(waypoints) < 2 {
		return nil, errors.New("at least two waypoints are required")
	}

	url := c.routeURL(waypoints, annotate)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "routing request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

		return nil, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var envelope routeEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, errors.Wrap(err, "decode routing response")
	}

	if len(envelope.Routes) == 0 {
		return nil, errors.WithStack(usecase.ErrNoRoute)
	}

	c.logger.Debug("routing response received",
		slog.Int("waypoints", len(waypoints)),
		slog.Int("legs", len(envelope.Routes[0].Legs)))

	return toRouteResult(envelope.Routes[0]), nil
}

// routeURL builds the /route/v1/driving query. Waypoints are sent in the
// service's (lon, lat) order joined by ";".
func (c *Client) routeURL(waypoints []entity.LatLng, annotate bool) string {
	var query strings.Builder
	for i, point := range waypoints {
		if i > 0 {
			query.WriteByte(';')
		}
		query.WriteString(strconv.FormatFloat(point.Lng, 'f', -1, 64))
		query.WriteByte(',')
		query.WriteString(strconv.FormatFloat(point.Lat, 'f', -1, 64))
	}

	url := c.baseURL + "/route/v1/driving/" + query.String() +
		"?overview=full&steps=true&geometries=geojson"
	if annotate {
		url += "&annotations=duration,distance"
	}

	return url
}
