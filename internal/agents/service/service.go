// Package service implements assistant management. Updates are
// read-modify-write over the assistant's model document: fetch, replace
// exactly one field, resubmit everything else verbatim.
package service

import (
	"context"
	"encoding/json"

	"callportal_backend/platform/apperr"
	"callportal_backend/platform/logger"
	"callportal_backend/platform/vapi"
)

// Upstream is the slice of the provider client the agents module uses.
type Upstream interface {
	ListAssistants(ctx context.Context) (json.RawMessage, error)
	GetAssistant(ctx context.Context, id string) (*vapi.Assistant, error)
	UpdateAssistant(ctx context.Context, id string, update vapi.AssistantUpdate) (json.RawMessage, error)
}

// Service holds the agents module's behavior.
type Service struct {
	log *logger.Logger
}

// New creates the agents service.
func New(log *logger.Logger) *Service {
	return &Service{log: log}
}

// List returns all assistants, passed through from upstream.
func (s *Service) List(ctx context.Context, client Upstream) (json.RawMessage, error) {
	return client.ListAssistants(ctx)
}

// Get returns one assistant, passed through from upstream.
func (s *Service) Get(ctx context.Context, client Upstream, id string) (json.RawMessage, error) {
	assistant, err := client.GetAssistant(ctx, id)
	if err != nil {
		return nil, err
	}
	return assistant.Raw, nil
}

// UpdateSystemPrompt replaces the model's message list with a single
// system message carrying the new prompt.
func (s *Service) UpdateSystemPrompt(ctx context.Context, client Upstream, id, prompt string) (json.RawMessage, error) {
	messages := []map[string]string{{"role": "system", "content": prompt}}
	return s.updateModelField(ctx, client, id, "messages", messages)
}

// UpdateKnowledgeBase sets the model's knowledge base reference. A nil ID
// clears it.
func (s *Service) UpdateKnowledgeBase(ctx context.Context, client Upstream, id string, knowledgeBaseID *string) (json.RawMessage, error) {
	return s.updateModelField(ctx, client, id, "knowledgeBaseId", knowledgeBaseID)
}

func (s *Service) updateModelField(ctx context.Context, client Upstream, id, field string, value any) (json.RawMessage, error) {
	assistant, err := client.GetAssistant(ctx, id)
	if err != nil {
		return nil, err
	}
	if assistant.Model == nil {
		return nil, apperr.BadRequest("assistant has no model configured")
	}

	if err := assistant.Model.Set(field, value); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to encode model update", err)
	}

	result, err := client.UpdateAssistant(ctx, id, vapi.AssistantUpdate{Model: assistant.Model})
	if err != nil {
		return nil, err
	}

	s.log.WithContext(ctx).Info("assistant model updated",
		"assistant_id", id,
		"field", field,
	)
	return result, nil
}
