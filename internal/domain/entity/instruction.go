package entity

import "strings"

// ManeuverType is the closed set of maneuver kinds recognized by the
// instruction synthesizer. Free-form strings from the routing service are
// normalized into this set before any branching logic runs.
type ManeuverType string

const (
	ManeuverDepart     ManeuverType = "depart"
	ManeuverArrive     ManeuverType = "arrive"
	ManeuverTurn       ManeuverType = "turn"
	ManeuverContinue   ManeuverType = "continue"
	ManeuverMerge      ManeuverType = "merge"
	ManeuverFork       ManeuverType = "fork"
	ManeuverRoundabout ManeuverType = "roundabout"
	ManeuverEndOfRoad  ManeuverType = "end of road"
	ManeuverOnRamp     ManeuverType = "on ramp"
	ManeuverOffRamp    ManeuverType = "off ramp"
	ManeuverNewName    ManeuverType = "new name"
	ManeuverUTurn      ManeuverType = "uturn"
)

// ParseManeuverType normalizes a raw maneuver type string. Unrecognized
// values map to continue so downstream dispatch never sees an open case.
func ParseManeuverType(s string) ManeuverType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "depart":
		return ManeuverDepart
	case "arrive":
		return ManeuverArrive
	case "turn":
		return ManeuverTurn
	case "merge":
		return ManeuverMerge
	case "fork":
		return ManeuverFork
	case "roundabout", "rotary", "roundabout turn", "exit roundabout", "exit rotary":
		return ManeuverRoundabout
	case "end of road":
		return ManeuverEndOfRoad
	case "on ramp":
		return ManeuverOnRamp
	case "off ramp":
		return ManeuverOffRamp
	case "new name":
		return ManeuverNewName
	case "uturn":
		return ManeuverUTurn
	default:
		return ManeuverContinue
	}
}

// ManeuverModifier is the directional qualifier of a maneuver.
type ManeuverModifier string

const (
	ModifierNone        ManeuverModifier = ""
	ModifierLeft        ManeuverModifier = "left"
	ModifierRight       ManeuverModifier = "right"
	ModifierStraight    ManeuverModifier = "straight"
	ModifierSlightLeft  ManeuverModifier = "slight left"
	ModifierSlightRight ManeuverModifier = "slight right"
	ModifierSharpLeft   ManeuverModifier = "sharp left"
	ModifierSharpRight  ManeuverModifier = "sharp right"
	ModifierUTurn       ManeuverModifier = "uturn"
)

// ParseModifier normalizes a raw modifier string. Unrecognized values map to
// the empty modifier.
func ParseModifier(s string) ManeuverModifier {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left":
		return ModifierLeft
	case "right":
		return ModifierRight
	case "straight":
		return ModifierStraight
	case "slight left":
		return ModifierSlightLeft
	case "slight right":
		return ModifierSlightRight
	case "sharp left":
		return ModifierSharpLeft
	case "sharp right":
		return ModifierSharpRight
	case "uturn":
		return ModifierUTurn
	default:
		return ModifierNone
	}
}

// InstructionKind classifies an instruction for presentation emphasis.
type InstructionKind string

const (
	KindDepart   InstructionKind = "depart"
	KindArrive   InstructionKind = "arrive"
	KindManeuver InstructionKind = "maneuver"
)

// Symbol selects the icon shown next to an instruction. The set mirrors the
// presentation layer's icon map; SymbolContinue doubles as the default.
type Symbol string

const (
	SymbolDepart      Symbol = "depart"
	SymbolArrive      Symbol = "arrive"
	SymbolStraight    Symbol = "straight"
	SymbolContinue    Symbol = "continue"
	SymbolLeft        Symbol = "left"
	SymbolRight       Symbol = "right"
	SymbolSlightLeft  Symbol = "slight_left"
	SymbolSlightRight Symbol = "slight_right"
	SymbolSharpLeft   Symbol = "sharp_left"
	SymbolSharpRight  Symbol = "sharp_right"
	SymbolMerge       Symbol = "merge"
	SymbolFork        Symbol = "fork"
	SymbolUTurnLeft   Symbol = "uturn_left"
	SymbolUTurnRight  Symbol = "uturn_right"
	SymbolRoundabout  Symbol = "roundabout"
)

// Instruction is one human-readable turn-by-turn step. Instructions are
// produced fresh per segment build and never mutated.
type Instruction struct {
	ID            string           `json:"id"`
	Text          string           `json:"text"`
	DistanceLabel string           `json:"distance_label,omitempty"`
	Kind          InstructionKind  `json:"kind"`
	Symbol        Symbol           `json:"symbol"`
	ManeuverType  ManeuverType     `json:"maneuver_type,omitempty"`
	Modifier      ManeuverModifier `json:"modifier,omitempty"`
}
