package kb

import (
	"context"
	"encoding/json"
	"io"

	"callportal_backend/platform/apperr"
	"callportal_backend/platform/logger"
)

const msgWebhookNotConfigured = "knowledge base docs webhook not configured"

// Upstream is the slice of the provider client the kb module uses.
type Upstream interface {
	ListKnowledgeBases(ctx context.Context) (json.RawMessage, error)
}

// Service implements knowledge-base listing and document forwarding.
type Service struct {
	docs *DocsWebhook
	log  *logger.Logger
}

// NewService creates the kb service. docs may be nil when the webhook
// integration is disabled; document operations then report 501.
func NewService(docs *DocsWebhook, log *logger.Logger) *Service {
	return &Service{docs: docs, log: log}
}

// List returns all knowledge bases, passed through from upstream.
func (s *Service) List(ctx context.Context, client Upstream) (json.RawMessage, error) {
	return client.ListKnowledgeBases(ctx)
}

// ListDocuments returns a knowledge base's document listing via the
// configured webhook.
func (s *Service) ListDocuments(ctx context.Context, kbID string) (json.RawMessage, error) {
	if s.docs == nil {
		return nil, apperr.NotImplemented(msgWebhookNotConfigured)
	}
	return s.docs.ListDocuments(ctx, kbID)
}

// UploadDocument forwards a document file to the configured webhook.
func (s *Service) UploadDocument(ctx context.Context, kbID, filename, contentType string, file io.Reader) (json.RawMessage, error) {
	if s.docs == nil {
		return nil, apperr.NotImplemented(msgWebhookNotConfigured)
	}

	result, err := s.docs.UploadDocument(ctx, kbID, filename, contentType, file)
	if err != nil {
		return nil, err
	}

	s.log.WithContext(ctx).Info("knowledge base document uploaded",
		"knowledge_base_id", kbID,
		"filename", filename,
	)
	return result, nil
}

// DeleteDocument removes a document via the configured webhook.
func (s *Service) DeleteDocument(ctx context.Context, kbID, docID string) (json.RawMessage, error) {
	if s.docs == nil {
		return nil, apperr.NotImplemented(msgWebhookNotConfigured)
	}
	return s.docs.DeleteDocument(ctx, kbID, docID)
}
