package kb

import (
	apphttp "callportal_backend/internal/http"
	"callportal_backend/platform/config"
	"callportal_backend/platform/logger"
)

// Module wires the knowledge-base routes.
type Module struct {
	handler *Handler
}

var _ apphttp.Module = (*Module)(nil)

// NewModule constructs the kb module. Document routes answer 501 until
// the docs webhook is configured.
func NewModule(cfg config.KBDocsConfig, log *logger.Logger) *Module {
	svc := NewService(NewDocsWebhook(cfg), log)
	return &Module{handler: NewHandler(svc)}
}

// Name returns the module name.
func (m *Module) Name() string { return "kb" }

// RegisterRoutes registers the knowledge-base routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.API.Group("/kb")
	{
		group.GET("", m.handler.List)
		group.GET("/:kbId/documents", m.handler.ListDocuments)
		group.POST("/:kbId/documents", m.handler.UploadDocument)
		group.DELETE("/:kbId/documents/:docId", m.handler.DeleteDocument)
	}
}
