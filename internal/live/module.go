// Package live provides the live-session bounded context module:
// monitoring info, termination and human escalation.
package live

import (
	apphttp "callportal_backend/internal/http"
	"callportal_backend/platform/config"
	"callportal_backend/platform/logger"
)

// Module is the live bounded context module implementing http.Module.
type Module struct {
	handler *Handler
	service *Service
}

// NewModule creates and initializes the live module.
func NewModule(cfg config.EscalationConfig, log *logger.Logger) *Module {
	svc := NewService(NewEscalationNotifier(cfg), log)
	h := NewHandler(svc)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "live"
}

// RegisterRoutes mounts live-session routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.API.Group("/live")
	group.GET("/session/:callId", m.handler.SessionInfo)
	group.POST("/session/:callId/terminate", m.handler.Terminate)
	group.POST("/session/:callId/escalate", m.handler.Escalate)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
