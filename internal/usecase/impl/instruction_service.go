package impl

import (
	"fmt"
	"math"
	"strings"

	"waypoint/config"
	"waypoint/internal/domain/entity"
	"waypoint/internal/domain/geo"
	"waypoint/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

const unnamedRoad = "unnamed road"

// InstructionServiceParams holds dependencies for the instruction
// synthesizer, injected by Fx. The text compiler is optional; when absent the
// internal rule table does all the phrasing.
type InstructionServiceParams struct {
	fx.In

	Config   *config.Config
	Compiler usecase.TextCompiler `optional:"true"`
}

type instructionService struct {
	compiler usecase.TextCompiler
	locale   string
}

// NewInstructionService creates the step-to-instruction synthesizer.
func NewInstructionService(params InstructionServiceParams) usecase.InstructionSynthesizer {
	return &instructionService{
		compiler: params.Compiler,
		locale:   params.Config.Routing.Locale,
	}
}

// DescribeStep produces exactly one instruction per step. Text resolution
// order: literal text embedded in the response, then the locale compiler,
// then the internal rule table.
func (s *instructionService) DescribeStep(step usecase.RouteStep, ctx usecase.InstructionContext) entity.Instruction {
	text := strings.TrimSpace(step.Instruction)
	if text == "" && s.compiler != nil {
		if compiled, err := s.compiler.Compile(s.locale, step, ctx); err == nil {
			text = strings.TrimSpace(compiled)
		}
	}
	if text == "" {
		text = s.phrase(step, ctx)
	}

	return entity.Instruction{
		ID:            uuid.NewString(),
		Text:          text,
		DistanceLabel: distanceLabel(step.DistanceMeters),
		Kind:          instructionKind(step.Maneuver.Type),
		Symbol:        symbolFor(step.Maneuver.Type, step.Maneuver.Modifier),
		ManeuverType:  step.Maneuver.Type,
		Modifier:      step.Maneuver.Modifier,
	}
}

// phrase is the rule table keyed by maneuver type.
func (s *instructionService) phrase(step usecase.RouteStep, ctx usecase.InstructionContext) string {
	road := strings.TrimSpace(step.Name)
	if road == "" {
		road = unnamedRoad
	}

	switch step.Maneuver.Type {
	case entity.ManeuverDepart:
		place := strings.TrimSpace(ctx.FromName)
		if place == "" {
			place = road
		}

		return fmt.Sprintf("Start from %s", place)
	case entity.ManeuverArrive:
		place := strings.TrimSpace(ctx.ToName)
		if place == "" {
			place = road
		}

		return fmt.Sprintf("Arrive at %s", place)
	case entity.ManeuverTurn:
		if step.Maneuver.Modifier == entity.ModifierStraight {
			return fmt.Sprintf("Go straight onto %s", road)
		}
		if step.Maneuver.Modifier == entity.ModifierUTurn {
			return fmt.Sprintf("Make a U-turn onto %s", road)
		}

		return fmt.Sprintf("Turn %s onto %s", modifierText(step.Maneuver.Modifier), road)
	case entity.ManeuverMerge:
		return withModifier("Merge", step.Maneuver.Modifier, "onto "+road)
	case entity.ManeuverFork:
		return withModifier("Keep", step.Maneuver.Modifier, "at the fork onto "+road)
	case entity.ManeuverRoundabout:
		if step.Maneuver.Exit > 0 {
			return fmt.Sprintf("At the roundabout, take the %s exit onto %s", ordinal(step.Maneuver.Exit), road)
		}

		return fmt.Sprintf("Enter the roundabout and continue onto %s", road)
	case entity.ManeuverEndOfRoad:
		return fmt.Sprintf("At the end of the road, turn %s onto %s", modifierText(step.Maneuver.Modifier), road)
	case entity.ManeuverOnRamp:
		return withModifier("Take the ramp", step.Maneuver.Modifier, "onto "+road)
	case entity.ManeuverOffRamp:
		return withModifier("Take the exit", step.Maneuver.Modifier, "onto "+road)
	case entity.ManeuverNewName:
		return fmt.Sprintf("Continue onto %s", road)
	case entity.ManeuverUTurn:
		return fmt.Sprintf("Make a U-turn and continue on %s", road)
	default:
		return withModifier("Continue", step.Maneuver.Modifier, "on "+road)
	}
}

// withModifier builds "<verb> <modifier> <rest>", skipping the modifier part
// when it is empty or plain straight.
func withModifier(verb string, modifier entity.ManeuverModifier, rest string) string {
	switch modifier {
	case entity.ModifierNone, entity.ModifierStraight:
		return verb + " " + rest
	default:
		return verb + " " + modifierText(modifier) + " " + rest
	}
}

func modifierText(modifier entity.ManeuverModifier) string {
	switch modifier {
	case entity.ModifierLeft:
		return "left"
	case entity.ModifierRight:
		return "right"
	case entity.ModifierSlightLeft:
		return "slightly left"
	case entity.ModifierSlightRight:
		return "slightly right"
	case entity.ModifierSharpLeft:
		return "sharply left"
	case entity.ModifierSharpRight:
		return "sharply right"
	case entity.ModifierUTurn:
		return "around"
	default:
		return "ahead"
	}
}

func ordinal(n int) string {
	switch n {
	case 1:
		return "1st"
	case 2:
		return "2nd"
	case 3:
		return "3rd"
	default:
		return fmt.Sprintf("%dth", n)
	}
}

func instructionKind(maneuverType entity.ManeuverType) entity.InstructionKind {
	switch maneuverType {
	case entity.ManeuverDepart:
		return entity.KindDepart
	case entity.ManeuverArrive:
		return entity.KindArrive
	default:
		return entity.KindManeuver
	}
}

// symbolFor maps a (type, modifier) pair to exactly one icon tag. Priority:
// depart/arrive, then u-turns, then directional modifiers, then the maneuver
// type, then the generic continue tag.
func symbolFor(maneuverType entity.ManeuverType, modifier entity.ManeuverModifier) entity.Symbol {
	switch maneuverType {
	case entity.ManeuverDepart:
		return entity.SymbolDepart
	case entity.ManeuverArrive:
		return entity.SymbolArrive
	}

	if maneuverType == entity.ManeuverUTurn || modifier == entity.ModifierUTurn {
		if strings.Contains(string(modifier), "right") {
			return entity.SymbolUTurnRight
		}

		return entity.SymbolUTurnLeft
	}

	switch modifier {
	case entity.ModifierSlightLeft:
		return entity.SymbolSlightLeft
	case entity.ModifierSlightRight:
		return entity.SymbolSlightRight
	case entity.ModifierSharpLeft:
		return entity.SymbolSharpLeft
	case entity.ModifierSharpRight:
		return entity.SymbolSharpRight
	case entity.ModifierLeft:
		return entity.SymbolLeft
	case entity.ModifierRight:
		return entity.SymbolRight
	case entity.ModifierStraight:
		return entity.SymbolStraight
	}

	switch maneuverType {
	case entity.ManeuverMerge:
		return entity.SymbolMerge
	case entity.ManeuverFork:
		return entity.SymbolFork
	case entity.ManeuverRoundabout:
		return entity.SymbolRoundabout
	default:
		return entity.SymbolContinue
	}
}

// distanceLabel renders a per-step distance, empty when the value carries no
// information.
func distanceLabel(meters float64) string {
	if meters <= 0 || math.IsNaN(meters) || math.IsInf(meters, 0) {
		return ""
	}

	return geo.FormatDistance(meters / 1000)
}
