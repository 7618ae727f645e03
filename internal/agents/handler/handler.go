// Package handler exposes the agents module's HTTP endpoints.
package handler

import (
	"net/http"

	"callportal_backend/internal/agents/service"
	"callportal_backend/internal/agents/transport"
	"callportal_backend/internal/auth"
	"callportal_backend/platform/httpkit"
	"callportal_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for agents.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new agents handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// List retrieves all assistants.
// GET /api/agents
func (h *Handler) List(c *gin.Context) {
	result, err := h.svc.List(c.Request.Context(), auth.ClientFrom(c))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.RawJSON(c, result)
}

// Get retrieves one assistant.
// GET /api/agents/:id
func (h *Handler) Get(c *gin.Context) {
	result, err := h.svc.Get(c.Request.Context(), auth.ClientFrom(c), c.Param("id"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.RawJSON(c, result)
}

// UpdateSystemPrompt replaces the assistant's system prompt.
// PUT /api/agents/:id/system-prompt
func (h *Handler) UpdateSystemPrompt(c *gin.Context) {
	var req transport.UpdateSystemPromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.UpdateSystemPrompt(c.Request.Context(), auth.ClientFrom(c), c.Param("id"), req.Prompt)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.RawJSON(c, result)
}

// UpdateKnowledgeBase points the assistant's model at a knowledge base.
// PUT /api/agents/:id/knowledge-base
func (h *Handler) UpdateKnowledgeBase(c *gin.Context) {
	var req transport.UpdateKnowledgeBaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	result, err := h.svc.UpdateKnowledgeBase(c.Request.Context(), auth.ClientFrom(c), c.Param("id"), req.KnowledgeBaseID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.RawJSON(c, result)
}
