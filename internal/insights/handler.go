package insights

import (
	"net/http"

	"callportal_backend/platform/apperr"
	"callportal_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

const msgNotConfigured = "insights analysis not configured"

// CompareRequest carries the responses to score. Either a transcript
// or a human/AI response pair must be present.
type CompareRequest struct {
	HumanResponse string `json:"human_response"`
	AIResponse    string `json:"ai_response"`
	Transcript    string `json:"transcript"`
}

// CompareResponse wraps the generated analysis text.
type CompareResponse struct {
	Analysis string `json:"analysis"`
}

// Handler handles HTTP requests for call insights.
type Handler struct {
	coach *Coach
}

// NewHandler creates a new insights handler. coach may be nil when the
// analysis backend is disabled.
func NewHandler(coach *Coach) *Handler {
	return &Handler{coach: coach}
}

// Compare scores a human response against an AI response.
// POST /api/insights/compare
func (h *Handler) Compare(c *gin.Context) {
	if h.coach == nil {
		httpkit.HandleError(c, apperr.NotImplemented(msgNotConfigured))
		return
	}

	var req CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if req.Transcript == "" && (req.HumanResponse == "" || req.AIResponse == "") {
		httpkit.Error(c, http.StatusBadRequest, "provide a transcript or both human_response and ai_response", nil)
		return
	}

	analysis, err := h.coach.Compare(c.Request.Context(), req.HumanResponse, req.AIResponse, req.Transcript)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, CompareResponse{Analysis: analysis})
}
