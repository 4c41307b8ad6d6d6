package osrm

import (
	"waypoint/internal/domain/entity"
	"waypoint/internal/usecase"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// toLocalOrder converts a GeoJSON line (lon, lat pairs) into the
// application's (lat, lng) ordering, preserving length and order.
func toLocalOrder(line orb.LineString) []entity.LatLng {
	if len(line) == 0 {
		return nil
	}

	coords := make([]entity.LatLng, 0, len(line))
	for _, point := range line {
		coords = append(coords, entity.LatLng{Lat: point.Lat(), Lng: point.Lon()})
	}

	return coords
}

// lineCoordinates extracts the LineString from a GeoJSON geometry, nil-safe.
func lineCoordinates(g *geojson.Geometry) orb.LineString {
	if g == nil {
		return nil
	}
	line, ok := g.Geometry().(orb.LineString)
	if !ok {
		return nil
	}

	return line
}

func toRouteResult(p routePayload) *usecase.RouteResult {
	legs := make([]usecase.RouteLeg, 0, len(p.Legs))
	for _, leg := range p.Legs {
		legs = append(legs, toRouteLeg(leg))
	}

	return &usecase.RouteResult{
		Coordinates:     toLocalOrder(lineCoordinates(p.Geometry)),
		Legs:            legs,
		DistanceKm:      p.Distance / 1000,
		DurationMinutes: p.Duration / 60,
	}
}

func toRouteLeg(p legPayload) usecase.RouteLeg {
	steps := make([]usecase.RouteStep, 0, len(p.Steps))
	for _, step := range p.Steps {
		steps = append(steps, toRouteStep(step))
	}

	return usecase.RouteLeg{
		DistanceMeters:  p.Distance,
		DurationSeconds: p.Duration,
		Steps:           steps,
		Geometry:        toLocalOrder(lineCoordinates(p.Geometry)),
	}
}

// toRouteStep normalizes the service's free-form maneuver strings into the
// closed maneuver vocabulary before anything branches on them.
func toRouteStep(p stepPayload) usecase.RouteStep {
	return usecase.RouteStep{
		DistanceMeters: p.Distance,
		Name:           p.Name,
		Geometry:       toLocalOrder(lineCoordinates(p.Geometry)),
		Instruction:    p.Maneuver.Instruction,
		Maneuver: usecase.Maneuver{
			Type:     entity.ParseManeuverType(p.Maneuver.Type),
			Modifier: entity.ParseModifier(p.Maneuver.Modifier),
			Exit:     p.Maneuver.Exit,
		},
	}
}
