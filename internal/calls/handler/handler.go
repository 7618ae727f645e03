// Package handler exposes the calls module's HTTP endpoints.
package handler

import (
	"io"
	"net/http"

	"callportal_backend/internal/auth"
	"callportal_backend/internal/calls/service"
	"callportal_backend/internal/calls/transport"
	"callportal_backend/platform/httpkit"
	"callportal_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for calls.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new calls handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// List retrieves call records.
// GET /api/calls
func (h *Handler) List(c *gin.Context) {
	var query transport.ListCallsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(query); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.List(c.Request.Context(), auth.ClientFrom(c), query.Limit)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.RawJSON(c, result)
}

// Get retrieves one call record.
// GET /api/calls/:id
func (h *Handler) Get(c *gin.Context) {
	result, err := h.svc.Get(c.Request.Context(), auth.ClientFrom(c), c.Param("id"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.RawJSON(c, result)
}

// Artifacts retrieves the transcript and recording fields of a call.
// GET /api/calls/:id/artifacts
func (h *Handler) Artifacts(c *gin.Context) {
	result, err := h.svc.Artifacts(c.Request.Context(), auth.ClientFrom(c), c.Param("id"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// ScheduleUpload schedules a batch of calls from an uploaded workbook.
// POST /api/calls/schedule/upload (multipart: assistant_id, file)
func (h *Handler) ScheduleUpload(c *gin.Context) {
	assistantID := c.Query("assistant_id")
	if assistantID == "" {
		assistantID = c.PostForm("assistant_id")
	}
	if assistantID == "" {
		httpkit.Error(c, http.StatusBadRequest, "assistant_id is required", nil)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "file is required", nil)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "unreadable file upload", nil)
		return
	}
	defer func() {
		_ = file.Close()
	}()
	data, err := io.ReadAll(file)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "unreadable file upload", nil)
		return
	}

	result, err := h.svc.ScheduleUpload(c.Request.Context(), auth.ClientFrom(c), assistantID, data)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.RawJSON(c, result)
}

// ScheduleSingle schedules one call.
// POST /api/calls/schedule/single
func (h *Handler) ScheduleSingle(c *gin.Context) {
	var req transport.ScheduleSingleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.ScheduleSingle(c.Request.Context(), auth.ClientFrom(c), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.RawJSON(c, result)
}
