package live

import (
	"net/http"

	"callportal_backend/internal/auth"
	"callportal_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for live session monitoring and control.
type Handler struct {
	svc *Service
}

// NewHandler creates a new live handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type escalateRequest struct {
	Destination string `json:"destination"`
}

// SessionInfo returns monitoring info for an in-flight call.
// GET /api/live/session/:callId
func (h *Handler) SessionInfo(c *gin.Context) {
	result, err := h.svc.SessionInfo(c.Request.Context(), auth.ClientFrom(c), c.Param("callId"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Terminate ends a session.
// POST /api/live/session/:callId/terminate
func (h *Handler) Terminate(c *gin.Context) {
	result, err := h.svc.Terminate(c.Request.Context(), auth.ClientFrom(c), c.Param("callId"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.RawJSON(c, result)
}

// Escalate flags a session for human takeover.
// POST /api/live/session/:callId/escalate
func (h *Handler) Escalate(c *gin.Context) {
	// Body is optional; malformed JSON is still rejected.
	var req escalateRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
			return
		}
	}

	result, err := h.svc.Escalate(c.Request.Context(), auth.ClientFrom(c), c.Param("callId"), req.Destination)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.RawJSON(c, result)
}
