package live

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"callportal_backend/platform/apperr"
	"callportal_backend/platform/config"
)

// EscalationNotifier forwards escalation events to an externally hosted
// webhook. Webhook failures propagate like any other auxiliary-service
// failure; there are no retries.
type EscalationNotifier struct {
	url  string
	http *http.Client
}

type escalationEvent struct {
	SessionID   string `json:"sessionId"`
	Destination string `json:"destination,omitempty"`
}

// NewEscalationNotifier builds the notifier, or nil when no webhook URL is
// configured.
func NewEscalationNotifier(cfg config.EscalationConfig) *EscalationNotifier {
	if !cfg.IsEscalationEnabled() {
		return nil
	}

	return &EscalationNotifier{
		url:  cfg.GetEscalateWebhookURL(),
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

// Notify posts the escalation event to the webhook.
func (n *EscalationNotifier) Notify(ctx context.Context, sessionID, destination string) error {
	payload, err := json.Marshal(escalationEvent{SessionID: sessionID, Destination: destination})
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to marshal escalation event", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(payload))
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to build escalation request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.http.Do(req)
	if err != nil {
		return apperr.Wrap(apperr.KindUpstream, fmt.Sprintf("escalation webhook request failed: %v", err), err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(resp.Body)
		return apperr.Upstream(resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return nil
}
