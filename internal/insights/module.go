package insights

import (
	apphttp "callportal_backend/internal/http"
	"callportal_backend/platform/config"
	"callportal_backend/platform/logger"
)

// Module wires the insights routes.
type Module struct {
	handler *Handler
}

var _ apphttp.Module = (*Module)(nil)

// NewModule constructs the insights module. The compare route answers
// 501 until Azure OpenAI is configured.
func NewModule(cfg config.InsightsConfig, log *logger.Logger) (*Module, error) {
	coach, err := NewCoach(cfg, log)
	if err != nil {
		return nil, err
	}
	return &Module{handler: NewHandler(coach)}, nil
}

// Name returns the module name.
func (m *Module) Name() string { return "insights" }

// RegisterRoutes registers the insights routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.API.Group("/insights")
	{
		group.POST("/compare", m.handler.Compare)
	}
}
