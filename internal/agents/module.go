// Package agents provides the assistants bounded context module.
package agents

import (
	"callportal_backend/internal/agents/handler"
	"callportal_backend/internal/agents/service"
	apphttp "callportal_backend/internal/http"
	"callportal_backend/platform/logger"
	"callportal_backend/platform/validator"
)

// Module is the agents bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the agents module.
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
	return "agents"
}

// RegisterRoutes mounts agent routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.API.Group("/agents")
	group.GET("", m.handler.List)
	group.GET("/:id", m.handler.Get)
	group.PUT("/:id/system-prompt", m.handler.UpdateSystemPrompt)
	group.PUT("/:id/knowledge-base", m.handler.UpdateKnowledgeBase)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
