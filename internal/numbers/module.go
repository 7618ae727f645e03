// Package numbers provides the phone-number bounded context module.
package numbers

import (
	apphttp "callportal_backend/internal/http"
	"callportal_backend/platform/logger"
)

// Module is the numbers bounded context module implementing http.Module.
type Module struct {
	handler *Handler
	service *Service
}

// NewModule creates and initializes the numbers module.
func NewModule(log *logger.Logger) *Module {
	svc := NewService(log)
	h := NewHandler(svc)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "numbers"
}

// RegisterRoutes mounts number routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.API.Group("/numbers")
	group.GET("", m.handler.List)
	group.PUT("/:id/assistant", m.handler.AssignAssistant)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
