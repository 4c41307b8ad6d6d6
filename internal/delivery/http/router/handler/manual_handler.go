package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"waypoint/internal/delivery/http/response"
	"waypoint/internal/domain/entity"
	domainerrors "waypoint/internal/domain/errors"
	"waypoint/internal/errors"
	"waypoint/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ManualHandlerParams holds dependencies for ManualHandler, injected by Fx.
type ManualHandlerParams struct {
	fx.In

	ManualUC usecase.ManualUsecase
	Logger   *slog.Logger
}

// ManualHandler holds dependencies for manual-routing handlers
type ManualHandler struct {
	manualUC usecase.ManualUsecase
	logger   *slog.Logger
}

// NewManualHandler is the constructor for ManualHandler
func NewManualHandler(params ManualHandlerParams) *ManualHandler {
	return &ManualHandler{
		manualUC: params.ManualUC,
		logger:   params.Logger,
	}
}

// SetModeRequest represents the request body for switching sub-modes
type SetModeRequest struct {
	Mode string `json:"mode" validate:"required,oneof=nearest custom"`
}

// ClickRequest represents one map click
type ClickRequest struct {
	Latitude  float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude float64 `json:"longitude" validate:"min=-180,max=180"`
}

// GetSession returns the manual session snapshot
func (h *ManualHandler) GetSession(c echo.Context) error {
	snapshot := h.manualUC.Snapshot(c.Request().Context())

	return response.Success(c, http.StatusOK, snapshot, "Manual session retrieved successfully")
}

// SetMode switches between nearest and custom sub-modes
func (h *ManualHandler) SetMode(c echo.Context) error {
	var req SetModeRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid mode input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	if err := h.manualUC.SetMode(c.Request().Context(), entity.ManualMode(req.Mode)); err != nil {
		return h.handleAppError(c, err)
	}

	snapshot := h.manualUC.Snapshot(c.Request().Context())

	return response.Success(c, http.StatusOK, snapshot, "Manual mode updated")
}

// Click handles one map click in the active sub-mode
func (h *ManualHandler) Click(c echo.Context) error {
	var req ClickRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid click input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	point := entity.LatLng{Lat: req.Latitude, Lng: req.Longitude}
	if err := h.manualUC.Click(c.Request().Context(), point); err != nil {
		return h.handleAppError(c, err)
	}

	snapshot := h.manualUC.Snapshot(c.Request().Context())

	return response.Success(c, http.StatusOK, snapshot, "Click applied")
}

// RemovePoint removes one selected point
func (h *ManualHandler) RemovePoint(c echo.Context) error {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INDEX", "Point index must be an integer")
	}

	if err := h.manualUC.RemovePoint(c.Request().Context(), index); err != nil {
		return h.handleAppError(c, err)
	}

	snapshot := h.manualUC.Snapshot(c.Request().Context())

	return response.Success(c, http.StatusOK, snapshot, "Point removed")
}

// Reset clears the manual session
func (h *ManualHandler) Reset(c echo.Context) error {
	if err := h.manualUC.Reset(c.Request().Context()); err != nil {
		return h.handleAppError(c, err)
	}

	snapshot := h.manualUC.Snapshot(c.Request().Context())

	return response.Success(c, http.StatusOK, snapshot, "Manual session reset")
}

func (h *ManualHandler) handleAppError(c echo.Context, err error) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), appErr.Details())
	}

	return errors.WithStack(err)
}
