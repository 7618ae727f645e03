package vapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"callportal_backend/platform/apperr"
)

func TestClientSendsBearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient("token-1", Config{BaseURL: server.URL})
	if _, err := client.ListAssistants(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer token-1" {
		t.Fatalf("unexpected authorization header %q", gotAuth)
	}
}

func TestClientKeepsUpstreamStatusAndBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"invalid token"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient("bad-token", Config{BaseURL: server.URL})
	_, err := client.ListAssistants(context.Background())
	if err == nil {
		t.Fatal("expected error for upstream rejection")
	}

	domainErr, ok := err.(*apperr.Error)
	if !ok {
		t.Fatalf("expected typed error, got %T", err)
	}
	if domainErr.Kind != apperr.KindUpstream {
		t.Fatalf("expected upstream kind, got %v", domainErr.Kind)
	}
	if domainErr.HTTPStatus() != http.StatusUnauthorized {
		t.Fatalf("expected 401 to survive, got %d", domainErr.HTTPStatus())
	}
	if domainErr.Message != `{"message":"invalid token"}` {
		t.Fatalf("expected body text to survive, got %q", domainErr.Message)
	}
}

func TestListCallsSetsLimitQuery(t *testing.T) {
	var gotLimit string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLimit = r.URL.Query().Get("limit")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient("token-1", Config{BaseURL: server.URL})
	if _, err := client.ListCalls(context.Background(), 25); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotLimit != "25" {
		t.Fatalf("unexpected limit query %q", gotLimit)
	}
}

func TestGetAssistantKeepsRawBody(t *testing.T) {
	const body = `{"id":"asst-1","name":"Support","model":{"provider":"openai"},"undocumentedField":42}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/assistant/asst-1" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(body))
	}))
	defer server.Close()

	client := NewClient("token-1", Config{BaseURL: server.URL})
	assistant, err := client.GetAssistant(context.Background(), "asst-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if assistant.ID != "asst-1" {
		t.Fatalf("unexpected id %q", assistant.ID)
	}
	if string(assistant.Raw) != body {
		t.Fatalf("expected raw body to survive, got %s", assistant.Raw)
	}
	var provider string
	if ok, err := assistant.Model.Get("provider", &provider); err != nil || !ok || provider != "openai" {
		t.Fatalf("unexpected model document (provider=%q ok=%v err=%v)", provider, ok, err)
	}
}

func TestUpdateSessionSendsPatchWithBody(t *testing.T) {
	var gotMethod string
	var gotUpdate SessionUpdate
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		if err := json.NewDecoder(r.Body).Decode(&gotUpdate); err != nil {
			t.Errorf("failed to decode update body: %v", err)
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient("token-1", Config{BaseURL: server.URL})
	if _, err := client.UpdateSession(context.Background(), "sess-1", SessionUpdate{Status: "completed"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotMethod != http.MethodPatch {
		t.Fatalf("expected PATCH, got %s", gotMethod)
	}
	if gotUpdate.Status != "completed" {
		t.Fatalf("unexpected update: %+v", gotUpdate)
	}
}
