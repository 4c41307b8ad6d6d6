package impl

import (
	"context"
	"log/slog"
	"math"
	"sync"

	"waypoint/config"
	"waypoint/internal/domain/entity"
	domainerrors "waypoint/internal/domain/errors"
	"waypoint/internal/domain/geo"
	"waypoint/internal/errors"
	"waypoint/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// PlannerServiceParams holds dependencies for the route planner, injected by
// Fx. Ctx is the application-scoped context that outlives individual HTTP
// requests; in-flight routing calls are tied to it, not to the request that
// triggered them.
type PlannerServiceParams struct {
	fx.In

	Ctx      context.Context
	Config   *config.Config
	Logger   *slog.Logger
	Fetcher  usecase.RouteFetcher
	Segments usecase.SegmentBuilder
	Traffic  usecase.TrafficUsecase
}

// routeState is the main-route request machine's mutable core.
type routeState struct {
	status          entity.RouteStatus
	coordinates     []entity.LatLng
	legs            []usecase.RouteLeg
	distanceKm      float64
	durationMinutes float64
	err             string
}

type plannerService struct {
	mu  sync.Mutex
	req requester

	appCtx   context.Context
	logger   *slog.Logger
	fetcher  usecase.RouteFetcher
	segments usecase.SegmentBuilder
	traffic  usecase.TrafficUsecase

	base     entity.Stop
	stops    []entity.Stop // registration order, base excluded
	sequence []string
	route    routeState
}

// NewPlannerService creates the planner seeded with the configured base stop
// and store list.
func NewPlannerService(params PlannerServiceParams) usecase.PlannerUsecase {
	service := &plannerService{
		appCtx:   params.Ctx,
		logger:   params.Logger,
		fetcher:  params.Fetcher,
		segments: params.Segments,
		traffic:  params.Traffic,
		base:     seedToStop(params.Config.Map.Base),
		route:    routeState{status: entity.RouteIdle},
	}

	service.stops = make([]entity.Stop, 0, len(params.Config.Map.Stops))
	for _, seed := range params.Config.Map.Stops {
		service.stops = append(service.stops, seedToStop(seed))
	}

	return service
}

func seedToStop(seed config.StopSeed) entity.Stop {
	return entity.Stop{
		ID:          seed.ID,
		Name:        seed.Name,
		Description: seed.Description,
		Position:    entity.LatLng{Lat: seed.Latitude, Lng: seed.Longitude},
	}
}

func (s *plannerService) Snapshot(ctx context.Context) *usecase.PlanSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	stopsByID := s.stopsByID()
	sequence := s.knownSequence(stopsByID)

	snapshot := &usecase.PlanSnapshot{
		RouteStops:     make([]entity.Stop, 0, len(sequence)),
		AvailableStops: []entity.Stop{},
		Segments:       []entity.Segment{},
		Status:         s.route.status,
		Error:          s.route.err,
	}

	inSequence := make(map[string]bool, len(sequence))
	for _, stopID := range sequence {
		snapshot.RouteStops = append(snapshot.RouteStops, *stopsByID[stopID])
		inSequence[stopID] = true
	}
	for _, stop := range s.stops {
		if !inSequence[stop.ID] && !stop.Ephemeral {
			snapshot.AvailableStops = append(snapshot.AvailableStops, stop)
		}
	}

	if len(sequence) < 2 {
		return snapshot
	}

	if s.route.status == entity.RouteSuccess {
		snapshot.Segments = s.segments.FromResponse(s.route.legs, sequence, stopsByID)
		snapshot.Coordinates = s.route.coordinates
		snapshot.DistanceKm = s.route.distanceKm
		snapshot.DurationMinutes = s.route.durationMinutes
		for _, segment := range snapshot.Segments {
			snapshot.Instructions = append(snapshot.Instructions, segment.Instructions...)
		}
	} else {
		snapshot.Segments = s.segments.Fallback(sequence, stopsByID)
		snapshot.DistanceKm, snapshot.DurationMinutes = s.segments.Totals(snapshot.Segments)
	}

	snapshot.DistanceLabel = geo.FormatDistance(snapshot.DistanceKm)
	snapshot.DurationLabel = geo.FormatDuration(snapshot.DurationMinutes)

	return snapshot
}

func (s *plannerService) AddStop(ctx context.Context, stopID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.stopsByID()[stopID]; !ok {
		return domainerrors.ErrStopNotFound.WithDetails("id: " + stopID)
	}

	for _, existing := range s.sequence {
		if existing == stopID {
			return nil
		}
	}

	s.sequence = append(s.sequence, stopID)
	s.refresh()

	return nil
}

func (s *plannerService) CreateStop(ctx context.Context, input *usecase.CreateStopInput) (*entity.Stop, error) {
	if !isFinite(input.Latitude) || !isFinite(input.Longitude) {
		return nil, domainerrors.ErrStopPositionInvalid
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stop := entity.Stop{
		ID:          "custom-" + uuid.NewString(),
		Name:        input.Name,
		Description: input.Description,
		Position:    entity.LatLng{Lat: input.Latitude, Lng: input.Longitude},
		Ephemeral:   input.Ephemeral,
	}

	// The traffic hint only brands pairs against currently routed stops;
	// never-routed pairs keep resolving to the default level.
	s.traffic.EnsureEntries(stop.ID, s.sequence, entity.ParseTrafficLevel(input.TrafficHint))

	s.stops = append(s.stops, stop)
	s.sequence = append(s.sequence, stop.ID)
	s.refresh()

	return &stop, nil
}

func (s *plannerService) RemoveStop(ctx context.Context, stopID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.sequence[:0]
	for _, existing := range s.sequence {
		if existing != stopID {
			next = append(next, existing)
		}
	}
	if len(next) == len(s.sequence) {
		return nil
	}
	s.sequence = next

	s.pruneEphemeral()
	s.refresh()

	return nil
}

func (s *plannerService) MoveStop(ctx context.Context, fromIndex, toIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if fromIndex < 0 || fromIndex >= len(s.sequence) || toIndex < 0 || toIndex >= len(s.sequence) {
		return nil
	}
	if fromIndex == toIndex {
		return nil
	}

	moved := s.sequence[fromIndex]
	rest := append(append([]string{}, s.sequence[:fromIndex]...), s.sequence[fromIndex+1:]...)
	s.sequence = append(append(append([]string{}, rest[:toIndex]...), moved), rest[toIndex:]...)
	s.refresh()

	return nil
}

func (s *plannerService) ClearRoute(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sequence = nil
	s.pruneEphemeral()
	s.req.stop()
	s.route = routeState{status: entity.RouteIdle}

	return nil
}

func (s *plannerService) KnownStops() []entity.Stop {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]entity.Stop{}, s.stops...)
}

// refresh re-evaluates the request machine after a sequence mutation. Caller
// holds the lock.
func (s *plannerService) refresh() {
	stopsByID := s.stopsByID()
	sequence := s.knownSequence(stopsByID)

	if len(sequence) < 2 {
		s.req.stop()
		s.route = routeState{status: entity.RouteIdle}

		return
	}

	waypoints := make([]entity.LatLng, 0, len(sequence))
	for _, stopID := range sequence {
		waypoints = append(waypoints, stopsByID[stopID].Position)
	}

	reqCtx, gen := s.req.next(s.appCtx)
	s.route.status = entity.RouteLoading
	s.route.err = ""

	go s.fetch(reqCtx, gen, waypoints)
}

// fetch runs off the lock and applies its outcome only while its generation
// is still live.
func (s *plannerService) fetch(ctx context.Context, gen uint64, waypoints []entity.LatLng) {
	result, err := s.fetcher.FetchRoute(ctx, waypoints, true)

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.req.current(gen) {
		return
	}

	if err != nil {
		s.logger.Warn("main route request failed", slog.Any("error", err))
		message := domainerrors.ErrRoutingUnavailable.Message()
		if errors.Is(err, usecase.ErrNoRoute) {
			message = domainerrors.ErrNoRouteFound.Message()
		}
		s.route = routeState{status: entity.RouteError, err: message}

		return
	}

	s.route = routeState{
		status:          entity.RouteSuccess,
		coordinates:     result.Coordinates,
		legs:            result.Legs,
		distanceKm:      result.DistanceKm,
		durationMinutes: result.DurationMinutes,
	}
}

// stopsByID maps ids to private copies. Snapshots handed to callers keep
// pointing at these copies, so later registry mutation (ephemeral pruning,
// appends) never rewrites what a caller already holds.
func (s *plannerService) stopsByID() map[string]*entity.Stop {
	stopsByID := make(map[string]*entity.Stop, len(s.stops)+1)
	base := s.base
	stopsByID[base.ID] = &base
	for _, stop := range s.stops {
		stopsByID[stop.ID] = &stop
	}

	return stopsByID
}

// knownSequence filters the sequence down to ids with known positions, the
// precondition the segment builder relies on.
func (s *plannerService) knownSequence(stopsByID map[string]*entity.Stop) []string {
	sequence := make([]string, 0, len(s.sequence))
	for _, stopID := range s.sequence {
		if _, ok := stopsByID[stopID]; ok {
			sequence = append(sequence, stopID)
		}
	}

	return sequence
}

// pruneEphemeral drops ephemeral stops no longer referenced by the sequence.
// Caller holds the lock.
func (s *plannerService) pruneEphemeral() {
	inSequence := make(map[string]bool, len(s.sequence))
	for _, stopID := range s.sequence {
		inSequence[stopID] = true
	}

	kept := s.stops[:0]
	for _, stop := range s.stops {
		if !stop.Ephemeral || inSequence[stop.ID] {
			kept = append(kept, stop)
		}
	}
	s.stops = kept
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
