package numbers

import (
	"net/http"

	"callportal_backend/internal/auth"
	"callportal_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for phone numbers.
type Handler struct {
	svc *Service
}

// NewHandler creates a new numbers handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type assignAssistantRequest struct {
	AssistantID *string `json:"assistant_id"`
}

// List returns the provisioned phone numbers.
// GET /api/numbers
func (h *Handler) List(c *gin.Context) {
	result, err := h.svc.List(c.Request.Context(), auth.ClientFrom(c))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// AssignAssistant binds a number to an assistant.
// PUT /api/numbers/:id/assistant
func (h *Handler) AssignAssistant(c *gin.Context) {
	var req assignAssistantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}

	result, err := h.svc.AssignAssistant(c.Request.Context(), auth.ClientFrom(c), c.Param("id"), req.AssistantID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.RawJSON(c, result)
}
