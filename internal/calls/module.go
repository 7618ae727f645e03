// Package calls provides the calls bounded context module: listing,
// artifacts and the batch scheduling pipeline.
package calls

import (
	"callportal_backend/internal/calls/handler"
	"callportal_backend/internal/calls/service"
	apphttp "callportal_backend/internal/http"
	"callportal_backend/platform/logger"
	"callportal_backend/platform/validator"
)

// Module is the calls bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the calls module.
func NewModule(val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "calls"
}

// RegisterRoutes mounts call routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.API.Group("/calls")
	group.GET("", m.handler.List)
	group.GET("/:id", m.handler.Get)
	group.GET("/:id/artifacts", m.handler.Artifacts)
	group.POST("/schedule/upload", m.handler.ScheduleUpload)
	group.POST("/schedule/single", m.handler.ScheduleSingle)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
