// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"waypoint/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	PlanHandler    *handler.PlanHandler
	ManualHandler  *handler.ManualHandler
	TrafficHandler *handler.TrafficHandler
}

// router holds all the handlers that need to be registered.
type router struct {
	planHandler    *handler.PlanHandler
	manualHandler  *handler.ManualHandler
	trafficHandler *handler.TrafficHandler
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		planHandler:    params.PlanHandler,
		manualHandler:  params.ManualHandler,
		trafficHandler: params.TrafficHandler,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Route plan
	planGroup := e.Group("/plan")
	{
		planGroup.GET("", r.planHandler.GetPlan)
		planGroup.DELETE("", r.planHandler.ClearPlan)
		planGroup.POST("/stops", r.planHandler.AddStop)
		planGroup.POST("/stops/custom", r.planHandler.CreateStop)
		planGroup.DELETE("/stops/:id", r.planHandler.RemoveStop)
		planGroup.POST("/stops/:id/move", r.planHandler.MoveStop)
	}

	// Traffic overlay
	trafficGroup := e.Group("/traffic")
	{
		trafficGroup.GET("", r.trafficHandler.GetTraffic)
		trafficGroup.POST("/refresh", r.trafficHandler.Refresh)
	}

	// Manual two-point routing session
	manualGroup := e.Group("/manual")
	{
		manualGroup.GET("", r.manualHandler.GetSession)
		manualGroup.DELETE("", r.manualHandler.Reset)
		manualGroup.POST("/mode", r.manualHandler.SetMode)
		manualGroup.POST("/click", r.manualHandler.Click)
		manualGroup.DELETE("/points/:index", r.manualHandler.RemovePoint)
	}
}
