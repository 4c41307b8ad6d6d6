package usecase

import "waypoint/internal/domain/entity"

// InstructionContext carries the leg-position context the synthesizer needs
// to phrase depart/arrive steps with human-readable stop names.
type InstructionContext struct {
	FromName string
	ToName   string
}

// TextCompiler produces a localized instruction sentence for a routing step.
// It is best-effort: any error falls back to the internal rule table.
type TextCompiler interface {
	Compile(locale string, step RouteStep, ctx InstructionContext) (string, error)
}

// InstructionSynthesizer turns one routing step into a presentation-ready
// instruction: text, distance label, kind, and icon symbol.
type InstructionSynthesizer interface {
	// DescribeStep is total: every step yields exactly one instruction.
	DescribeStep(step RouteStep, ctx InstructionContext) entity.Instruction
}
