package impl

import (
	"context"
	"log/slog"
	"sync"

	"waypoint/internal/domain/entity"
	domainerrors "waypoint/internal/domain/errors"
	"waypoint/internal/domain/geo"
	"waypoint/internal/errors"
	"waypoint/internal/usecase"

	"go.uber.org/fx"
)

const (
	manualStartID = "manual-start"
	manualEndID   = "manual-end"
)

// ManualServiceParams holds dependencies for the manual routing session,
// injected by Fx.
type ManualServiceParams struct {
	fx.In

	Ctx      context.Context
	Logger   *slog.Logger
	Fetcher  usecase.RouteFetcher
	Segments usecase.SegmentBuilder
	Planner  usecase.PlannerUsecase
}

// manualRouteState is the session's request-machine core.
type manualRouteState struct {
	status          entity.RouteStatus
	coordinates     []entity.LatLng
	distanceKm      float64
	durationMinutes float64
	err             string
	instructions    []entity.Instruction
}

type manualService struct {
	mu  sync.Mutex
	req requester

	appCtx   context.Context
	logger   *slog.Logger
	fetcher  usecase.RouteFetcher
	segments usecase.SegmentBuilder
	planner  usecase.PlannerUsecase

	mode        entity.ManualMode
	points      []entity.LatLng
	destination *entity.Stop
	route       manualRouteState
}

// NewManualService creates the two-point routing session, starting in
// nearest mode.
func NewManualService(params ManualServiceParams) usecase.ManualUsecase {
	return &manualService{
		appCtx:   params.Ctx,
		logger:   params.Logger,
		fetcher:  params.Fetcher,
		segments: params.Segments,
		planner:  params.Planner,
		mode:     entity.ManualNearest,
		route:    manualRouteState{status: entity.RouteIdle},
	}
}

func (s *manualService) Snapshot(ctx context.Context) *usecase.ManualSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return &usecase.ManualSnapshot{
		Mode:            s.mode,
		Points:          append([]entity.LatLng{}, s.points...),
		Destination:     s.destination,
		Status:          s.route.status,
		Error:           s.route.err,
		Coordinates:     s.route.coordinates,
		DistanceKm:      s.route.distanceKm,
		DurationMinutes: s.route.durationMinutes,
		Instructions:    s.route.instructions,
	}
}

func (s *manualService) SetMode(ctx context.Context, mode entity.ManualMode) error {
	if mode != entity.ManualNearest && mode != entity.ManualCustom {
		return domainerrors.ErrUnknownManualMode.WithDetails("mode: " + string(mode))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if mode == s.mode {
		return nil
	}

	s.mode = mode
	s.reset()

	return nil
}

func (s *manualService) Click(ctx context.Context, point entity.LatLng) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode == entity.ManualNearest {
		s.clickNearest(point)

		return nil
	}

	s.clickCustom(point)

	return nil
}

// clickNearest routes from the clicked point to the nearest known stop.
// Caller holds the lock.
func (s *manualService) clickNearest(point entity.LatLng) {
	nearest := s.nearestStop(point)
	if nearest == nil {
		s.req.stop()
		s.points = []entity.LatLng{point}
		s.destination = nil
		s.route = manualRouteState{status: entity.RouteIdle, err: domainerrors.ErrNoNearbyStop.Message()}

		return
	}

	s.points = []entity.LatLng{point, nearest.Position}
	s.fetch(nearest)
}

// clickCustom cycles the two-point selection: 0→1→2→1(new). Caller holds the
// lock.
func (s *manualService) clickCustom(point entity.LatLng) {
	switch len(s.points) {
	case 0:
		s.req.stop()
		s.destination = nil
		s.route = manualRouteState{status: entity.RouteIdle}
		s.points = []entity.LatLng{point}
	case 1:
		s.points = append(s.points, point)
		s.fetch(&entity.Stop{ID: manualEndID, Name: "End point", Position: point, Ephemeral: true})
	default:
		s.req.stop()
		s.destination = nil
		s.route = manualRouteState{status: entity.RouteIdle}
		s.points = []entity.LatLng{point}
	}
}

func (s *manualService) RemovePoint(ctx context.Context, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.points) {
		return nil
	}

	s.req.stop()
	s.destination = nil
	s.route = manualRouteState{status: entity.RouteIdle}

	if s.mode == entity.ManualNearest || index == 0 {
		s.points = nil

		return nil
	}

	s.points = append(s.points[:index], s.points[index+1:]...)

	return nil
}

func (s *manualService) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reset()

	return nil
}

// reset clears all session state. Caller holds the lock.
func (s *manualService) reset() {
	s.req.stop()
	s.points = nil
	s.destination = nil
	s.route = manualRouteState{status: entity.RouteIdle}
}

// nearestStop scans the planner's known stops linearly with a strict-less
// comparator, so the first-registered stop wins distance ties. Ephemeral
// stops never qualify.
func (s *manualService) nearestStop(point entity.LatLng) *entity.Stop {
	var nearest *entity.Stop
	best := 0.0

	for _, stop := range s.planner.KnownStops() {
		if stop.Ephemeral {
			continue
		}
		distance := geo.DistanceKm(point, stop.Position)
		if nearest == nil || distance < best {
			candidate := stop
			nearest = &candidate
			best = distance
		}
	}

	return nearest
}

// fetch issues the two-point request for the current points. Caller holds
// the lock; points must hold exactly two entries.
func (s *manualService) fetch(destination *entity.Stop) {
	reqCtx, gen := s.req.next(s.appCtx)

	s.destination = destination
	s.route = manualRouteState{status: entity.RouteLoading}

	waypoints := append([]entity.LatLng{}, s.points...)

	go s.resolve(reqCtx, gen, waypoints, destination)
}

// resolve runs off the lock and applies its outcome only while its
// generation is still live.
func (s *manualService) resolve(ctx context.Context, gen uint64, waypoints []entity.LatLng, destination *entity.Stop) {
	result, err := s.fetcher.FetchRoute(ctx, waypoints, false)

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.req.current(gen) {
		return
	}

	if err != nil {
		s.logger.Warn("manual route request failed", slog.Any("error", err))
		message := domainerrors.ErrRoutingUnavailable.Message()
		if errors.Is(err, usecase.ErrNoRoute) {
			message = domainerrors.ErrNoRouteFound.Message()
		}
		s.destination = nil
		s.route = manualRouteState{status: entity.RouteError, err: message}

		return
	}

	s.route = manualRouteState{
		status:          entity.RouteSuccess,
		coordinates:     result.Coordinates,
		distanceKm:      result.DistanceKm,
		durationMinutes: result.DurationMinutes,
		instructions:    s.describeLegs(result.Legs, waypoints, destination),
	}
}

// describeLegs synthesizes turn instructions for the two-point route using
// placeholder stop records for the ad-hoc endpoints.
func (s *manualService) describeLegs(legs []usecase.RouteLeg, waypoints []entity.LatLng, destination *entity.Stop) []entity.Instruction {
	startName := "Start point"
	endName := "End point"
	if s.mode == entity.ManualNearest {
		startName = "Your location"
		endName = "Nearest store"
	}
	if destination != nil && destination.Name != "" {
		endName = destination.Name
	}

	start := &entity.Stop{ID: manualStartID, Name: startName, Position: waypoints[0], Ephemeral: true}
	end := &entity.Stop{ID: manualEndID, Name: endName, Position: waypoints[len(waypoints)-1], Ephemeral: true}

	stopsByID := map[string]*entity.Stop{manualStartID: start, manualEndID: end}

	var instructions []entity.Instruction
	for _, segment := range s.segments.FromResponse(legs, []string{manualStartID, manualEndID}, stopsByID) {
		instructions = append(instructions, segment.Instructions...)
	}

	return instructions
}
