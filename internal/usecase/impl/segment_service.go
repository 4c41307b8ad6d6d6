package impl

import (
	"waypoint/config"
	"waypoint/internal/domain/entity"
	"waypoint/internal/domain/geo"
	"waypoint/internal/usecase"

	"go.uber.org/fx"
)

// SegmentServiceParams holds dependencies for the segment builder, injected
// by Fx.
type SegmentServiceParams struct {
	fx.In

	Config       *config.Config
	Traffic      usecase.TrafficUsecase
	Instructions usecase.InstructionSynthesizer
}

type segmentService struct {
	defaultSpeedKmh float64
	traffic         usecase.TrafficUsecase
	instructions    usecase.InstructionSynthesizer
}

// NewSegmentService creates the per-edge segment builder.
func NewSegmentService(params SegmentServiceParams) usecase.SegmentBuilder {
	speedKmh := params.Config.Routing.DefaultSpeedKmh
	if speedKmh <= 0 {
		speedKmh = 45
	}

	return &segmentService{
		defaultSpeedKmh: speedKmh,
		traffic:         params.Traffic,
		instructions:    params.Instructions,
	}
}

// FromResponse pairs each consecutive edge of the sequence with the
// positionally matched leg. Edges past the last leg get the geometric
// computation individually; the rest of the sequence still uses its legs.
func (s *segmentService) FromResponse(legs []usecase.RouteLeg, sequence []string, stopsByID map[string]*entity.Stop) []entity.Segment {
	if len(sequence) < 2 {
		return []entity.Segment{}
	}

	segments := make([]entity.Segment, 0, len(sequence)-1)
	for i := 0; i < len(sequence)-1; i++ {
		from := stopsByID[sequence[i]]
		to := stopsByID[sequence[i+1]]

		var leg *usecase.RouteLeg
		if i < len(legs) {
			leg = &legs[i]
		}

		segments = append(segments, s.buildEdge(from, to, leg))
	}

	return segments
}

// Fallback builds pure-geometry segments for the whole sequence.
func (s *segmentService) Fallback(sequence []string, stopsByID map[string]*entity.Stop) []entity.Segment {
	if len(sequence) < 2 {
		return []entity.Segment{}
	}

	segments := make([]entity.Segment, 0, len(sequence)-1)
	for i := 0; i < len(sequence)-1; i++ {
		segments = append(segments, s.buildEdge(stopsByID[sequence[i]], stopsByID[sequence[i+1]], nil))
	}

	return segments
}

func (s *segmentService) Totals(segments []entity.Segment) (float64, float64) {
	var distanceKm, durationMinutes float64
	for _, segment := range segments {
		distanceKm += segment.DistanceKm
		durationMinutes += segment.DurationMinutes
	}

	return distanceKm, durationMinutes
}

// buildEdge derives one segment for the from→to edge. A nil leg, or a leg
// with zero distance/duration, falls back to haversine distance and the
// assumed-speed duration for the missing values.
func (s *segmentService) buildEdge(from, to *entity.Stop, leg *usecase.RouteLeg) entity.Segment {
	level := s.traffic.LevelFor(from.ID, to.ID)
	preset := s.traffic.PresetFor(level)

	twoPoint := []entity.LatLng{from.Position, to.Position}

	distanceKm := geo.DistanceKm(from.Position, to.Position)
	if leg != nil && leg.DistanceMeters > 0 {
		distanceKm = leg.DistanceMeters / 1000
	}

	durationMinutes := distanceKm / s.defaultSpeedKmh * 60
	if leg != nil && leg.DurationSeconds > 0 {
		durationMinutes = leg.DurationSeconds / 60
	}

	geometry := twoPoint
	if leg != nil {
		geometry = usecase.LegGeometry(leg, twoPoint)
	}

	var instructions []entity.Instruction
	if leg != nil && len(leg.Steps) > 0 {
		ctx := usecase.InstructionContext{FromName: from.Name, ToName: to.Name}
		instructions = make([]entity.Instruction, 0, len(leg.Steps))
		for _, step := range leg.Steps {
			instructions = append(instructions, s.instructions.DescribeStep(step, ctx))
		}
	}

	return entity.Segment{
		ID:              from.ID + "-" + to.ID,
		From:            from,
		To:              to,
		DistanceKm:      distanceKm,
		DurationMinutes: durationMinutes,
		Geometry:        geometry,
		Color:           preset.Color,
		Label:           preset.Label,
		TrafficLevel:    level,
		SpeedKmh:        preset.SpeedKmh,
		Instructions:    instructions,
	}
}
