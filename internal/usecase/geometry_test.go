package usecase

import (
	"testing"

	"waypoint/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func TestMergeStepGeometries_DropsSharedVertices(t *testing.T) {
	steps := []RouteStep{
		{Geometry: []entity.LatLng{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 1}}},
		{Geometry: []entity.LatLng{{Lat: 0, Lng: 1}, {Lat: 0, Lng: 2}}},
	}

	merged := MergeStepGeometries(steps)
	assert.Equal(t, []entity.LatLng{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 1}, {Lat: 0, Lng: 2}}, merged)
}

func TestMergeStepGeometries_SkipsEmptySteps(t *testing.T) {
	steps := []RouteStep{
		{Geometry: []entity.LatLng{{Lat: 1, Lng: 1}, {Lat: 2, Lng: 2}}},
		{},
		{Geometry: []entity.LatLng{{Lat: 2, Lng: 2}, {Lat: 3, Lng: 3}}},
	}

	merged := MergeStepGeometries(steps)
	assert.Equal(t, []entity.LatLng{{Lat: 1, Lng: 1}, {Lat: 2, Lng: 2}, {Lat: 3, Lng: 3}}, merged)
}

func TestMergeStepGeometries_LeadingEmptyStep(t *testing.T) {
	// A non-empty step at a later position still sheds its first vertex even
	// when everything before it was empty.
	steps := []RouteStep{
		{},
		{Geometry: []entity.LatLng{{Lat: 1, Lng: 1}, {Lat: 2, Lng: 2}}},
		{Geometry: []entity.LatLng{{Lat: 2, Lng: 2}, {Lat: 3, Lng: 3}}},
	}

	merged := MergeStepGeometries(steps)
	assert.Equal(t, []entity.LatLng{{Lat: 2, Lng: 2}, {Lat: 3, Lng: 3}}, merged)
}

func TestMergeStepGeometries_AllEmpty(t *testing.T) {
	assert.Empty(t, MergeStepGeometries([]RouteStep{{}, {}}))
	assert.Empty(t, MergeStepGeometries(nil))
}

func TestLegGeometry_Preference(t *testing.T) {
	fallback := []entity.LatLng{{Lat: 0, Lng: 0}, {Lat: 1, Lng: 1}}

	// Steps win over the leg overview.
	leg := &RouteLeg{
		Steps:    []RouteStep{{Geometry: []entity.LatLng{{Lat: 5, Lng: 5}, {Lat: 6, Lng: 6}}}},
		Geometry: []entity.LatLng{{Lat: 9, Lng: 9}},
	}
	assert.Equal(t, []entity.LatLng{{Lat: 5, Lng: 5}, {Lat: 6, Lng: 6}}, LegGeometry(leg, fallback))

	// Overview when steps are empty.
	leg = &RouteLeg{Geometry: []entity.LatLng{{Lat: 9, Lng: 9}}}
	assert.Equal(t, []entity.LatLng{{Lat: 9, Lng: 9}}, LegGeometry(leg, fallback))

	// Fallback when the leg has nothing.
	assert.Equal(t, fallback, LegGeometry(&RouteLeg{}, fallback))
	assert.Equal(t, fallback, LegGeometry(nil, fallback))
}
