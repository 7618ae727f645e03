package live

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"callportal_backend/platform/apperr"
	"callportal_backend/platform/logger"
	"callportal_backend/platform/vapi"
)

type fakeUpstream struct {
	call       *vapi.Call
	getErr     error
	updates    int
	lastID     string
	lastUpdate vapi.SessionUpdate
	updateErr  error
}

func (f *fakeUpstream) GetCall(ctx context.Context, id string) (*vapi.Call, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.call, nil
}

func (f *fakeUpstream) UpdateSession(ctx context.Context, id string, update vapi.SessionUpdate) (json.RawMessage, error) {
	f.updates++
	f.lastID = id
	f.lastUpdate = update
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return json.RawMessage(`{}`), nil
}

func newTestService(notifier *EscalationNotifier) *Service {
	return NewService(notifier, logger.New("development"))
}

func TestSessionInfoReturnsMonitorBlock(t *testing.T) {
	upstream := &fakeUpstream{call: &vapi.Call{
		ID: "call-1",
		Monitor: &vapi.Monitor{
			ListenURL:  "wss://listen.example/call-1",
			ControlURL: "https://control.example/call-1",
		},
	}}

	info, err := newTestService(nil).SessionInfo(context.Background(), upstream, "call-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Monitor == nil || info.Monitor.ListenURL != "wss://listen.example/call-1" {
		t.Fatalf("unexpected monitor: %+v", info.Monitor)
	}
}

func TestSessionInfoWithoutMonitorReturnsEmptyBlock(t *testing.T) {
	upstream := &fakeUpstream{call: &vapi.Call{ID: "call-1"}}

	info, err := newTestService(nil).SessionInfo(context.Background(), upstream, "call-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Monitor == nil {
		t.Fatal("expected empty monitor block rather than nil")
	}
	if info.Monitor.ListenURL != "" || info.Monitor.ControlURL != "" {
		t.Fatalf("expected empty monitor, got %+v", info.Monitor)
	}
}

func TestTerminateMarksSessionCompleted(t *testing.T) {
	upstream := &fakeUpstream{}

	if _, err := newTestService(nil).Terminate(context.Background(), upstream, "sess-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if upstream.lastID != "sess-1" {
		t.Fatalf("unexpected session id %q", upstream.lastID)
	}
	if upstream.lastUpdate.Status != "completed" {
		t.Fatalf("expected status completed, got %q", upstream.lastUpdate.Status)
	}
}

func TestEscalateSendsSystemMessage(t *testing.T) {
	upstream := &fakeUpstream{}

	if _, err := newTestService(nil).Escalate(context.Background(), upstream, "sess-1", "+15550009999"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(upstream.lastUpdate.Messages) != 1 {
		t.Fatalf("expected one session message, got %d", len(upstream.lastUpdate.Messages))
	}
	msg := upstream.lastUpdate.Messages[0]
	if msg.Role != "system" {
		t.Fatalf("expected system role, got %q", msg.Role)
	}
	if msg.Content != "ESCALATE +15550009999" {
		t.Fatalf("unexpected message content %q", msg.Content)
	}
}

func TestEscalateWithoutDestinationTrimsMessage(t *testing.T) {
	upstream := &fakeUpstream{}

	if _, err := newTestService(nil).Escalate(context.Background(), upstream, "sess-1", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if upstream.lastUpdate.Messages[0].Content != "ESCALATE" {
		t.Fatalf("unexpected message content %q", upstream.lastUpdate.Messages[0].Content)
	}
}

func TestEscalateNotifiesConfiguredWebhook(t *testing.T) {
	var received escalationEvent
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("failed to decode webhook payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	notifier := &EscalationNotifier{url: server.URL, http: server.Client()}
	upstream := &fakeUpstream{}

	if _, err := newTestService(notifier).Escalate(context.Background(), upstream, "sess-1", "+15550009999"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if received.SessionID != "sess-1" || received.Destination != "+15550009999" {
		t.Fatalf("unexpected webhook event: %+v", received)
	}
}

func TestEscalateWebhookFailurePropagates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "downstream unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	notifier := &EscalationNotifier{url: server.URL, http: server.Client()}
	upstream := &fakeUpstream{}

	_, err := newTestService(notifier).Escalate(context.Background(), upstream, "sess-1", "+15550009999")
	if err == nil {
		t.Fatal("expected webhook failure to propagate")
	}
	domainErr, ok := err.(*apperr.Error)
	if !ok || domainErr.HTTPStatus() != http.StatusServiceUnavailable {
		t.Fatalf("expected upstream 503, got %v", err)
	}
}
