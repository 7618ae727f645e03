package kb

import (
	"net/http"

	"callportal_backend/internal/auth"
	"callportal_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for knowledge bases.
type Handler struct {
	svc *Service
}

// NewHandler creates a new kb handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// List returns all knowledge bases.
// GET /api/kb
func (h *Handler) List(c *gin.Context) {
	result, err := h.svc.List(c.Request.Context(), auth.ClientFrom(c))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.RawJSON(c, result)
}

// ListDocuments returns the documents of a knowledge base.
// GET /api/kb/:kbId/documents
func (h *Handler) ListDocuments(c *gin.Context) {
	result, err := h.svc.ListDocuments(c.Request.Context(), c.Param("kbId"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.RawJSON(c, result)
}

// UploadDocument adds a document to a knowledge base.
// POST /api/kb/:kbId/documents (multipart: file)
func (h *Handler) UploadDocument(c *gin.Context) {
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

	result, err := h.svc.UploadDocument(
		c.Request.Context(),
		c.Param("kbId"),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		file,
	)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.RawJSON(c, result)
}

// DeleteDocument removes a document from a knowledge base.
// DELETE /api/kb/:kbId/documents/:docId
func (h *Handler) DeleteDocument(c *gin.Context) {
	result, err := h.svc.DeleteDocument(c.Request.Context(), c.Param("kbId"), c.Param("docId"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.RawJSON(c, result)
}
