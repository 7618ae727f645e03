package live

import (
	"context"
	"encoding/json"
	"strings"

	"callportal_backend/platform/logger"
	"callportal_backend/platform/vapi"
)

// Upstream is the slice of the provider client the live module uses.
type Upstream interface {
	GetCall(ctx context.Context, id string) (*vapi.Call, error)
	UpdateSession(ctx context.Context, id string, update vapi.SessionUpdate) (json.RawMessage, error)
}

// SessionInfo carries the monitoring URLs for an in-flight call.
type SessionInfo struct {
	Monitor *vapi.Monitor `json:"monitor"`
}

// Service implements live-session monitoring and control.
type Service struct {
	notifier *EscalationNotifier
	log      *logger.Logger
}

// NewService creates the live service. notifier may be nil when no
// escalation webhook is configured.
func NewService(notifier *EscalationNotifier, log *logger.Logger) *Service {
	return &Service{notifier: notifier, log: log}
}

// SessionInfo returns the call's monitor block, when the assistant's
// monitor plan enables one.
func (s *Service) SessionInfo(ctx context.Context, client Upstream, callID string) (SessionInfo, error) {
	call, err := client.GetCall(ctx, callID)
	if err != nil {
		return SessionInfo{}, err
	}
	monitor := call.Monitor
	if monitor == nil {
		monitor = &vapi.Monitor{}
	}
	return SessionInfo{Monitor: monitor}, nil
}

// Terminate ends a session by marking it completed. The upstream exposes
// no dedicated terminate action.
func (s *Service) Terminate(ctx context.Context, client Upstream, sessionID string) (json.RawMessage, error) {
	result, err := client.UpdateSession(ctx, sessionID, vapi.SessionUpdate{Status: "completed"})
	if err != nil {
		return nil, err
	}
	s.log.WithContext(ctx).Info("session terminated", "session_id", sessionID)
	return result, nil
}

// Escalate appends a system message the assistant reacts to via its tools
// or server webhook, then notifies the escalation webhook when configured.
func (s *Service) Escalate(ctx context.Context, client Upstream, sessionID, destination string) (json.RawMessage, error) {
	content := strings.TrimSpace("ESCALATE " + destination)
	result, err := client.UpdateSession(ctx, sessionID, vapi.SessionUpdate{
		Messages: []vapi.SessionMessage{{Role: "system", Content: content}},
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		if err := s.notifier.Notify(ctx, sessionID, destination); err != nil {
			return nil, err
		}
	}

	s.log.WithContext(ctx).Info("session escalated", "session_id", sessionID, "destination", destination)
	return result, nil
}
