package entity

// RouteStatus is the lifecycle phase of a routing request machine.
type RouteStatus string

const (
	RouteIdle    RouteStatus = "idle"
	RouteLoading RouteStatus = "loading"
	RouteSuccess RouteStatus = "success"
	RouteError   RouteStatus = "error"
)

// ManualMode selects the manual routing session's sub-mode.
type ManualMode string

const (
	ManualNearest ManualMode = "nearest"
	ManualCustom  ManualMode = "custom"
)
