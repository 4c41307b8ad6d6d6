package handler

import (
	"log/slog"
	"net/http"

	"waypoint/internal/delivery/http/response"
	"waypoint/internal/domain/entity"
	"waypoint/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// TrafficHandlerParams holds dependencies for TrafficHandler, injected by Fx.
type TrafficHandlerParams struct {
	fx.In

	TrafficUC usecase.TrafficUsecase
	Logger    *slog.Logger
}

// TrafficHandler holds dependencies for traffic overlay handlers
type TrafficHandler struct {
	trafficUC usecase.TrafficUsecase
	logger    *slog.Logger
}

// NewTrafficHandler is the constructor for TrafficHandler
func NewTrafficHandler(params TrafficHandlerParams) *TrafficHandler {
	return &TrafficHandler{
		trafficUC: params.TrafficUC,
		logger:    params.Logger,
	}
}

// trafficView pairs overlay entries with the presets the legend renders with
type trafficView struct {
	Entries []usecase.TrafficEntry                       `json:"entries"`
	Presets map[entity.TrafficLevel]entity.TrafficPreset `json:"presets"`
}

// GetTraffic returns all overlay entries and their rendering presets
func (h *TrafficHandler) GetTraffic(c echo.Context) error {
	view := trafficView{
		Entries: h.trafficUC.Snapshot(),
		Presets: h.trafficUC.Presets(),
	}

	return response.Success(c, http.StatusOK, view, "Traffic retrieved successfully")
}

// Refresh applies one randomized drift pass to the overlay
func (h *TrafficHandler) Refresh(c echo.Context) error {
	h.trafficUC.Refresh()

	view := trafficView{
		Entries: h.trafficUC.Snapshot(),
		Presets: h.trafficUC.Presets(),
	}

	return response.Success(c, http.StatusOK, view, "Traffic refreshed")
}
