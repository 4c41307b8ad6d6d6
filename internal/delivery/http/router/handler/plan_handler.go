package handler

import (
	"log/slog"
	"net/http"

	"waypoint/internal/delivery/http/response"
	domainerrors "waypoint/internal/domain/errors"
	"waypoint/internal/errors"
	"waypoint/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// PlanHandlerParams holds dependencies for PlanHandler, injected by Fx.
type PlanHandlerParams struct {
	fx.In

	PlannerUC usecase.PlannerUsecase
	Logger    *slog.Logger
}

// PlanHandler holds dependencies for route-plan handlers
type PlanHandler struct {
	plannerUC usecase.PlannerUsecase
	logger    *slog.Logger
}

// NewPlanHandler is the constructor for PlanHandler
func NewPlanHandler(params PlanHandlerParams) *PlanHandler {
	return &PlanHandler{
		plannerUC: params.PlannerUC,
		logger:    params.Logger,
	}
}

// AddStopRequest represents the request body for appending a known stop
type AddStopRequest struct {
	StopID string `json:"stop_id" validate:"required"`
}

// CreateStopRequest represents the request body for creating a new stop
type CreateStopRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Latitude    float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude   float64 `json:"longitude" validate:"min=-180,max=180"`
	TrafficHint string  `json:"traffic_hint" validate:"omitempty,oneof=light moderate heavy"`
	Ephemeral   bool    `json:"ephemeral"`
}

// MoveStopRequest represents the request body for a positional move
type MoveStopRequest struct {
	ToIndex *int `json:"to_index" validate:"required"`
}

// GetPlan returns the current plan snapshot
func (h *PlanHandler) GetPlan(c echo.Context) error {
	snapshot := h.plannerUC.Snapshot(c.Request().Context())

	return response.Success(c, http.StatusOK, snapshot, "Plan retrieved successfully")
}

// AddStop appends a known stop to the route sequence
func (h *PlanHandler) AddStop(c echo.Context) error {
	var req AddStopRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid stop input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	if err := h.plannerUC.AddStop(c.Request().Context(), req.StopID); err != nil {
		return h.handleAppError(c, err)
	}

	snapshot := h.plannerUC.Snapshot(c.Request().Context())

	return response.Success(c, http.StatusOK, snapshot, "Stop added to route")
}

// CreateStop registers a new stop and appends it to the route
func (h *PlanHandler) CreateStop(c echo.Context) error {
	var req CreateStopRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid stop input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	input := &usecase.CreateStopInput{
		Name:        req.Name,
		Description: req.Description,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		TrafficHint: req.TrafficHint,
		Ephemeral:   req.Ephemeral,
	}

	stop, err := h.plannerUC.CreateStop(c.Request().Context(), input)
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, stop, "Stop created successfully")
}

// RemoveStop removes a stop from the route sequence
func (h *PlanHandler) RemoveStop(c echo.Context) error {
	stopID := c.Param("id")
	if stopID == "" {
		return response.BadRequest(c, "INVALID_ID", "Stop id is required")
	}

	if err := h.plannerUC.RemoveStop(c.Request().Context(), stopID); err != nil {
		return h.handleAppError(c, err)
	}

	snapshot := h.plannerUC.Snapshot(c.Request().Context())

	return response.Success(c, http.StatusOK, snapshot, "Stop removed from route")
}

// MoveStop moves a routed stop to a new position in the sequence
func (h *PlanHandler) MoveStop(c echo.Context) error {
	stopID := c.Param("id")

	var req MoveStopRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid move input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	ctx := c.Request().Context()

	fromIndex := -1
	for i, stop := range h.plannerUC.Snapshot(ctx).RouteStops {
		if stop.ID == stopID {
			fromIndex = i

			break
		}
	}
	if fromIndex < 0 {
		return h.handleAppError(c, domainerrors.ErrStopNotFound.WithDetails("id: "+stopID))
	}

	if err := h.plannerUC.MoveStop(ctx, fromIndex, *req.ToIndex); err != nil {
		return h.handleAppError(c, err)
	}

	snapshot := h.plannerUC.Snapshot(ctx)

	return response.Success(c, http.StatusOK, snapshot, "Stop moved")
}

// ClearPlan empties the route sequence
func (h *PlanHandler) ClearPlan(c echo.Context) error {
	if err := h.plannerUC.ClearRoute(c.Request().Context()); err != nil {
		return h.handleAppError(c, err)
	}

	snapshot := h.plannerUC.Snapshot(c.Request().Context())

	return response.Success(c, http.StatusOK, snapshot, "Route cleared")
}

func (h *PlanHandler) handleAppError(c echo.Context, err error) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), appErr.Details())
	}

	return errors.WithStack(err)
}
