package impl

import (
	"context"
	"testing"
	"time"

	"waypoint/config"
	"waypoint/internal/domain/entity"
	domainerrors "waypoint/internal/domain/errors"
	"waypoint/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManual(t *testing.T, fetcher usecase.RouteFetcher, cfg *config.Config) usecase.ManualUsecase {
	t.Helper()

	traffic := NewTrafficService(TrafficServiceParams{Config: cfg})
	builder := NewSegmentService(SegmentServiceParams{
		Config:       cfg,
		Traffic:      traffic,
		Instructions: newTestSynthesizer(nil),
	})
	planner := NewPlannerService(PlannerServiceParams{
		Ctx:      context.Background(),
		Config:   cfg,
		Logger:   testLogger(),
		Fetcher:  fetcher,
		Segments: builder,
		Traffic:  traffic,
	})

	return NewManualService(ManualServiceParams{
		Ctx:      context.Background(),
		Logger:   testLogger(),
		Fetcher:  fetcher,
		Segments: builder,
		Planner:  planner,
	})
}

func TestManualService_SetMode(t *testing.T) {
	manual := newTestManual(t, newGatedFetcher(), plannerConfig())
	ctx := context.Background()

	assert.Equal(t, entity.ManualNearest, manual.Snapshot(ctx).Mode)

	require.NoError(t, manual.SetMode(ctx, entity.ManualCustom))
	assert.Equal(t, entity.ManualCustom, manual.Snapshot(ctx).Mode)

	err := manual.SetMode(ctx, entity.ManualMode("teleport"))
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "UNKNOWN_MANUAL_MODE", appErr.ErrorCode())
}

func TestManualService_NearestClickRoutesToNearestStop(t *testing.T) {
	fetcher := newGatedFetcher()
	manual := newTestManual(t, fetcher, plannerConfig())
	ctx := context.Background()

	// Closest to store-a's position.
	click := entity.LatLng{Lat: 10.0428, Lng: 105.7735}
	require.NoError(t, manual.Click(ctx, click))

	call := fetcher.await(t)
	assert.False(t, call.annotate)
	require.Len(t, call.waypoints, 2)
	assert.Equal(t, click, call.waypoints[0])
	assert.Equal(t, entity.LatLng{Lat: 10.042891, Lng: 105.773601}, call.waypoints[1])

	snapshot := manual.Snapshot(ctx)
	assert.Equal(t, entity.RouteLoading, snapshot.Status)
	require.NotNil(t, snapshot.Destination)
	assert.Equal(t, "store-a", snapshot.Destination.ID)

	call.release <- fetchOutcome{result: &usecase.RouteResult{
		Coordinates:     []entity.LatLng{click, call.waypoints[1]},
		Legs:            []usecase.RouteLeg{{DistanceMeters: 120, DurationSeconds: 30, Steps: []usecase.RouteStep{{DistanceMeters: 120, Maneuver: usecase.Maneuver{Type: entity.ManeuverDepart}}, {Maneuver: usecase.Maneuver{Type: entity.ManeuverArrive}}}}},
		DistanceKm:      0.12,
		DurationMinutes: 0.5,
	}}

	awaitStatus(t, func() entity.RouteStatus { return manual.Snapshot(ctx).Status }, entity.RouteSuccess)

	snapshot = manual.Snapshot(ctx)
	require.Len(t, snapshot.Instructions, 2)
	assert.Equal(t, "Start from Your location", snapshot.Instructions[0].Text)
	assert.Equal(t, "Arrive at Store A", snapshot.Instructions[1].Text)
	assert.InDelta(t, 0.12, snapshot.DistanceKm, 1e-9)
}

func TestManualService_NearestTieGoesToFirstRegistered(t *testing.T) {
	fetcher := newGatedFetcher()
	cfg := plannerConfig()
	cfg.Map.Stops = []config.StopSeed{
		{ID: "store-a", Name: "Store A", Latitude: 10.05, Longitude: 105.78},
		{ID: "store-b", Name: "Store B", Latitude: 10.05, Longitude: 105.78},
	}
	manual := newTestManual(t, fetcher, cfg)
	ctx := context.Background()

	require.NoError(t, manual.Click(ctx, entity.LatLng{Lat: 10.0, Lng: 105.7}))
	fetcher.await(t)

	snapshot := manual.Snapshot(ctx)
	require.NotNil(t, snapshot.Destination)
	assert.Equal(t, "store-a", snapshot.Destination.ID)
}

func TestManualService_NearestClickWithoutStops(t *testing.T) {
	cfg := plannerConfig()
	cfg.Map.Stops = nil
	manual := newTestManual(t, newGatedFetcher(), cfg)
	ctx := context.Background()

	require.NoError(t, manual.Click(ctx, entity.LatLng{Lat: 10.0, Lng: 105.7}))

	snapshot := manual.Snapshot(ctx)
	assert.Equal(t, domainerrors.ErrNoNearbyStop.Message(), snapshot.Error)
	assert.Len(t, snapshot.Points, 1)
	assert.Nil(t, snapshot.Destination)
}

func TestManualService_CustomClickCycle(t *testing.T) {
	fetcher := newGatedFetcher()
	manual := newTestManual(t, fetcher, plannerConfig())
	ctx := context.Background()

	require.NoError(t, manual.SetMode(ctx, entity.ManualCustom))

	// First click: single origin, no request.
	require.NoError(t, manual.Click(ctx, entity.LatLng{Lat: 10.01, Lng: 105.71}))
	snapshot := manual.Snapshot(ctx)
	assert.Len(t, snapshot.Points, 1)
	assert.Equal(t, entity.RouteIdle, snapshot.Status)

	// Second click: destination set, request issued.
	require.NoError(t, manual.Click(ctx, entity.LatLng{Lat: 10.02, Lng: 105.72}))
	call := fetcher.await(t)
	require.Len(t, call.waypoints, 2)

	snapshot = manual.Snapshot(ctx)
	assert.Len(t, snapshot.Points, 2)
	require.NotNil(t, snapshot.Destination)
	assert.Equal(t, "End point", snapshot.Destination.Name)
	assert.Equal(t, entity.RouteLoading, snapshot.Status)

	call.release <- fetchOutcome{result: &usecase.RouteResult{DistanceKm: 1.1, DurationMinutes: 2}}
	awaitStatus(t, func() entity.RouteStatus { return manual.Snapshot(ctx).Status }, entity.RouteSuccess)

	// Third click: back to a fresh single origin.
	require.NoError(t, manual.Click(ctx, entity.LatLng{Lat: 10.03, Lng: 105.73}))
	snapshot = manual.Snapshot(ctx)
	require.Len(t, snapshot.Points, 1)
	assert.Equal(t, entity.LatLng{Lat: 10.03, Lng: 105.73}, snapshot.Points[0])
	assert.Equal(t, entity.RouteIdle, snapshot.Status)
	assert.Nil(t, snapshot.Destination)
}

func TestManualService_RemovePoint(t *testing.T) {
	fetcher := newGatedFetcher()
	manual := newTestManual(t, fetcher, plannerConfig())
	ctx := context.Background()

	require.NoError(t, manual.SetMode(ctx, entity.ManualCustom))
	require.NoError(t, manual.Click(ctx, entity.LatLng{Lat: 10.01, Lng: 105.71}))
	require.NoError(t, manual.Click(ctx, entity.LatLng{Lat: 10.02, Lng: 105.72}))
	fetcher.await(t)

	// Removing the destination keeps the origin.
	require.NoError(t, manual.RemovePoint(ctx, 1))
	snapshot := manual.Snapshot(ctx)
	require.Len(t, snapshot.Points, 1)
	assert.Equal(t, entity.LatLng{Lat: 10.01, Lng: 105.71}, snapshot.Points[0])
	assert.Equal(t, entity.RouteIdle, snapshot.Status)

	// Removing the origin clears the session.
	require.NoError(t, manual.RemovePoint(ctx, 0))
	assert.Empty(t, manual.Snapshot(ctx).Points)

	// Out-of-range removals are a no-op.
	require.NoError(t, manual.RemovePoint(ctx, 5))
}

func TestManualService_RemovePointInNearestModeClearsAll(t *testing.T) {
	fetcher := newGatedFetcher()
	manual := newTestManual(t, fetcher, plannerConfig())
	ctx := context.Background()

	require.NoError(t, manual.Click(ctx, entity.LatLng{Lat: 10.04, Lng: 105.77}))
	call := fetcher.await(t)

	require.NoError(t, manual.RemovePoint(ctx, 1))

	select {
	case <-call.ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("in-flight request was not cancelled")
	}

	snapshot := manual.Snapshot(ctx)
	assert.Empty(t, snapshot.Points)
	assert.Nil(t, snapshot.Destination)
	assert.Equal(t, entity.RouteIdle, snapshot.Status)
}

func TestManualService_SupersededRequestIsDiscarded(t *testing.T) {
	fetcher := newGatedFetcher()
	manual := newTestManual(t, fetcher, plannerConfig())
	ctx := context.Background()

	require.NoError(t, manual.Click(ctx, entity.LatLng{Lat: 10.04, Lng: 105.77}))
	first := fetcher.await(t)

	require.NoError(t, manual.Click(ctx, entity.LatLng{Lat: 10.041, Lng: 105.771}))
	second := fetcher.await(t)

	select {
	case <-first.ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("superseded request was not cancelled")
	}

	first.release <- fetchOutcome{result: &usecase.RouteResult{DistanceKm: 99}}
	assert.Equal(t, entity.RouteLoading, manual.Snapshot(ctx).Status)

	second.release <- fetchOutcome{result: &usecase.RouteResult{DistanceKm: 2}}
	awaitStatus(t, func() entity.RouteStatus { return manual.Snapshot(ctx).Status }, entity.RouteSuccess)
	assert.InDelta(t, 2.0, manual.Snapshot(ctx).DistanceKm, 1e-9)
}

func TestManualService_RequestFailureClearsDestination(t *testing.T) {
	fetcher := newGatedFetcher()
	manual := newTestManual(t, fetcher, plannerConfig())
	ctx := context.Background()

	require.NoError(t, manual.Click(ctx, entity.LatLng{Lat: 10.04, Lng: 105.77}))
	call := fetcher.await(t)
	call.release <- fetchOutcome{err: errors.New("connection reset")}

	awaitStatus(t, func() entity.RouteStatus { return manual.Snapshot(ctx).Status }, entity.RouteError)

	snapshot := manual.Snapshot(ctx)
	assert.Equal(t, domainerrors.ErrRoutingUnavailable.Message(), snapshot.Error)
	assert.Nil(t, snapshot.Destination)
}

func TestManualService_SwitchingModeHardResets(t *testing.T) {
	fetcher := newGatedFetcher()
	manual := newTestManual(t, fetcher, plannerConfig())
	ctx := context.Background()

	require.NoError(t, manual.Click(ctx, entity.LatLng{Lat: 10.04, Lng: 105.77}))
	call := fetcher.await(t)

	require.NoError(t, manual.SetMode(ctx, entity.ManualCustom))

	select {
	case <-call.ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("in-flight request was not cancelled")
	}

	snapshot := manual.Snapshot(ctx)
	assert.Equal(t, entity.ManualCustom, snapshot.Mode)
	assert.Empty(t, snapshot.Points)
	assert.Nil(t, snapshot.Destination)
	assert.Equal(t, entity.RouteIdle, snapshot.Status)
}
