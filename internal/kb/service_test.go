package kb

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"callportal_backend/platform/apperr"
	"callportal_backend/platform/logger"
)

type fakeUpstream struct {
	lists int
}

func (f *fakeUpstream) ListKnowledgeBases(ctx context.Context) (json.RawMessage, error) {
	f.lists++
	return json.RawMessage(`[{"id":"kb-1"}]`), nil
}

func newTestService(docs *DocsWebhook) *Service {
	return NewService(docs, logger.New("development"))
}

func expectNotImplemented(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error for unconfigured webhook")
	}
	domainErr, ok := err.(*apperr.Error)
	if !ok || domainErr.Kind != apperr.KindNotImplemented {
		t.Fatalf("expected not-implemented error, got %v", err)
	}
}

func TestListPassesThroughUpstream(t *testing.T) {
	upstream := &fakeUpstream{}
	result, err := newTestService(nil).List(context.Background(), upstream)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(result) != `[{"id":"kb-1"}]` {
		t.Fatalf("unexpected result: %s", result)
	}
}

func TestDocumentOperationsWithoutWebhook(t *testing.T) {
	svc := newTestService(nil)
	ctx := context.Background()

	_, err := svc.ListDocuments(ctx, "kb-1")
	expectNotImplemented(t, err)

	_, err = svc.UploadDocument(ctx, "kb-1", "notes.pdf", "application/pdf", strings.NewReader("data"))
	expectNotImplemented(t, err)

	_, err = svc.DeleteDocument(ctx, "kb-1", "doc-1")
	expectNotImplemented(t, err)
}

func TestListDocumentsSendsListAction(t *testing.T) {
	var received docsAction
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("failed to decode action payload: %v", err)
		}
		_, _ = w.Write([]byte(`{"documents":[]}`))
	}))
	defer server.Close()

	docs := &DocsWebhook{url: server.URL, http: server.Client(), uploadHTTP: server.Client()}
	result, err := newTestService(docs).ListDocuments(context.Background(), "kb-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if received.Action != "list" || received.KnowledgeBaseID != "kb-1" {
		t.Fatalf("unexpected action payload: %+v", received)
	}
	if string(result) != `{"documents":[]}` {
		t.Fatalf("unexpected result: %s", result)
	}
}

func TestDeleteDocumentSendsDeleteAction(t *testing.T) {
	var received docsAction
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("failed to decode action payload: %v", err)
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	docs := &DocsWebhook{url: server.URL, http: server.Client(), uploadHTTP: server.Client()}
	if _, err := newTestService(docs).DeleteDocument(context.Background(), "kb-1", "doc-9"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if received.Action != "delete" || received.DocumentID != "doc-9" {
		t.Fatalf("unexpected action payload: %+v", received)
	}
}

func TestUploadDocumentSendsMultipartForm(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("expected multipart form: %v", err)
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		if got := r.FormValue("action"); got != "upload" {
			t.Errorf("unexpected action %q", got)
		}
		if got := r.FormValue("knowledgeBaseId"); got != "kb-1" {
			t.Errorf("unexpected knowledge base id %q", got)
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("expected file part: %v", err)
			http.Error(w, "missing file", http.StatusBadRequest)
			return
		}
		defer file.Close()
		if header.Filename != "notes.pdf" {
			t.Errorf("unexpected filename %q", header.Filename)
		}
		if ct := header.Header.Get("Content-Type"); ct != "application/pdf" {
			t.Errorf("unexpected content type %q", ct)
		}
		content, _ := io.ReadAll(file)
		if string(content) != "file-bytes" {
			t.Errorf("unexpected file content %q", content)
		}

		_, _ = w.Write([]byte(`{"id":"doc-1"}`))
	}))
	defer server.Close()

	docs := &DocsWebhook{url: server.URL, http: server.Client(), uploadHTTP: server.Client()}
	result, err := newTestService(docs).UploadDocument(context.Background(), "kb-1", "notes.pdf", "application/pdf", strings.NewReader("file-bytes"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(result) != `{"id":"doc-1"}` {
		t.Fatalf("unexpected result: %s", result)
	}
}

func TestUploadDocumentDefaultsFilenameAndContentType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("expected multipart form: %v", err)
		}
		_, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("expected file part: %v", err)
			http.Error(w, "missing file", http.StatusBadRequest)
			return
		}
		if header.Filename != "upload.bin" {
			t.Errorf("unexpected default filename %q", header.Filename)
		}
		if ct := header.Header.Get("Content-Type"); ct != "application/octet-stream" {
			t.Errorf("unexpected default content type %q", ct)
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	docs := &DocsWebhook{url: server.URL, http: server.Client(), uploadHTTP: server.Client()}
	if _, err := newTestService(docs).UploadDocument(context.Background(), "kb-1", "", "", strings.NewReader("x")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestWebhookFailureKeepsStatusAndBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "kb not found", http.StatusNotFound)
	}))
	defer server.Close()

	docs := &DocsWebhook{url: server.URL, http: server.Client(), uploadHTTP: server.Client()}
	_, err := newTestService(docs).ListDocuments(context.Background(), "kb-missing")
	if err == nil {
		t.Fatal("expected error for failing webhook")
	}
	domainErr, ok := err.(*apperr.Error)
	if !ok {
		t.Fatalf("expected typed error, got %T", err)
	}
	if domainErr.HTTPStatus() != http.StatusNotFound {
		t.Fatalf("expected 404 to survive, got %d", domainErr.HTTPStatus())
	}
	if domainErr.Message != "kb not found" {
		t.Fatalf("expected body text to survive, got %q", domainErr.Message)
	}
}
