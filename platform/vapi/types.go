package vapi

import (
	"encoding/json"
	"time"
)

// Assistant is an upstream AI calling agent. Only the fields the gateway
// addresses are typed; Raw carries the full upstream body for passthrough.
type Assistant struct {
	ID    string          `json:"id"`
	Name  string          `json:"name,omitempty"`
	Model Document        `json:"model,omitempty"`
	Raw   json.RawMessage `json:"-"`
}

// AssistantUpdate is a partial assistant update. The model document is
// resubmitted whole so unrelated fields survive a read-modify-write.
type AssistantUpdate struct {
	Model Document `json:"model,omitempty"`
}

// Artifact holds recording and transcript outputs of a finished call.
type Artifact struct {
	Transcript         string          `json:"transcript,omitempty"`
	RecordingURL       string          `json:"recordingUrl,omitempty"`
	StereoRecordingURL string          `json:"stereoRecordingUrl,omitempty"`
	VideoRecordingURL  string          `json:"videoRecordingUrl,omitempty"`
	Recording          json.RawMessage `json:"recording,omitempty"`
}

// Monitor holds the live-monitoring URLs of an in-flight call, present
// when the assistant's monitor plan enables them.
type Monitor struct {
	ListenURL  string `json:"listenUrl,omitempty"`
	ControlURL string `json:"controlUrl,omitempty"`
}

// Call is an upstream call record.
type Call struct {
	ID       string          `json:"id"`
	Status   string          `json:"status,omitempty"`
	Artifact *Artifact       `json:"artifact,omitempty"`
	Monitor  *Monitor        `json:"monitor,omitempty"`
	Raw      json.RawMessage `json:"-"`
}

// Customer identifies one callee in a batch-call request.
type Customer struct {
	Name   string `json:"name,omitempty"`
	Number string `json:"number"`
}

// SchedulePlan bounds when scheduled calls may be placed. One plan covers
// the whole batch.
type SchedulePlan struct {
	EarliestAt time.Time  `json:"earliestAt"`
	LatestAt   *time.Time `json:"latestAt,omitempty"`
}

// AssistantOverrides carries per-call template variables.
type AssistantOverrides struct {
	VariableValues map[string]any `json:"variableValues,omitempty"`
}

// BatchCallRequest is the single scheduling submission for an upload:
// one assistant, many customers, one schedule plan.
type BatchCallRequest struct {
	AssistantID        string              `json:"assistantId"`
	Customers          []Customer          `json:"customers"`
	SchedulePlan       *SchedulePlan       `json:"schedulePlan,omitempty"`
	AssistantOverrides *AssistantOverrides `json:"assistantOverrides,omitempty"`
}

// SessionMessage is one message appended to a live session.
type SessionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// SessionUpdate is a partial session update.
type SessionUpdate struct {
	Status   string           `json:"status,omitempty"`
	Messages []SessionMessage `json:"messages,omitempty"`
}

// AssistantRef is the nested assistant reference some number records carry.
type AssistantRef struct {
	ID string `json:"id"`
}

// PhoneNumber is an upstream phone-number record. AssistantID is the
// documented field; Assistant is the one known alternate shape.
type PhoneNumber struct {
	ID          string        `json:"id"`
	Number      string        `json:"number,omitempty"`
	Name        string        `json:"name,omitempty"`
	Provider    string        `json:"provider,omitempty"`
	AssistantID string        `json:"assistantId,omitempty"`
	Assistant   *AssistantRef `json:"assistant,omitempty"`
}

// ResolveAssistantID returns the assistant bound to the number, falling
// back to the nested reference shape when the flat field is absent.
func (n PhoneNumber) ResolveAssistantID() string {
	if n.AssistantID != "" {
		return n.AssistantID
	}
	if n.Assistant != nil {
		return n.Assistant.ID
	}
	return ""
}

// PhoneNumberUpdate is a partial phone-number update. A nil AssistantID
// is serialized as null, which detaches the assistant upstream.
type PhoneNumberUpdate struct {
	AssistantID *string `json:"assistantId"`
}
