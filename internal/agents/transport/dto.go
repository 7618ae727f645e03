// Package transport defines the agents module's request shapes.
package transport

// UpdateSystemPromptRequest replaces the assistant's system prompt.
type UpdateSystemPromptRequest struct {
	Prompt string `json:"prompt" validate:"required"`
}

// UpdateKnowledgeBaseRequest points the assistant's model at a knowledge
// base. A null ID detaches the current one.
type UpdateKnowledgeBaseRequest struct {
	KnowledgeBaseID *string `json:"knowledge_base_id"`
}
