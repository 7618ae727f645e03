package kb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"callportal_backend/platform/apperr"
	"callportal_backend/platform/config"
)

// DocsWebhook forwards document operations to an externally hosted
// webhook. The action discriminator selects the operation; uploads are
// multipart, everything else is JSON.
type DocsWebhook struct {
	url        string
	http       *http.Client
	uploadHTTP *http.Client
}

// NewDocsWebhook builds the forwarder, or nil when no webhook URL is
// configured.
func NewDocsWebhook(cfg config.KBDocsConfig) *DocsWebhook {
	if !cfg.IsKBDocsEnabled() {
		return nil
	}

	return &DocsWebhook{
		url:        cfg.GetKBDocsWebhookURL(),
		http:       &http.Client{Timeout: 20 * time.Second},
		uploadHTTP: &http.Client{Timeout: 60 * time.Second},
	}
}

type docsAction struct {
	Action          string `json:"action"`
	KnowledgeBaseID string `json:"knowledgeBaseId"`
	DocumentID      string `json:"documentId,omitempty"`
}

// ListDocuments fetches the document listing for a knowledge base.
func (w *DocsWebhook) ListDocuments(ctx context.Context, kbID string) (json.RawMessage, error) {
	return w.postJSON(ctx, w.http, docsAction{Action: "list", KnowledgeBaseID: kbID})
}

// DeleteDocument removes one document from a knowledge base.
func (w *DocsWebhook) DeleteDocument(ctx context.Context, kbID, docID string) (json.RawMessage, error) {
	return w.postJSON(ctx, w.http, docsAction{Action: "delete", KnowledgeBaseID: kbID, DocumentID: docID})
}

// UploadDocument streams a document file to the webhook.
func (w *DocsWebhook) UploadDocument(ctx context.Context, kbID, filename, contentType string, file io.Reader) (json.RawMessage, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	if err := form.WriteField("action", "upload"); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to build upload form", err)
	}
	if err := form.WriteField("knowledgeBaseId", kbID); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to build upload form", err)
	}

	if filename == "" {
		filename = "upload.bin"
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	partHeader := textproto.MIMEHeader{}
	partHeader.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	partHeader.Set("Content-Type", contentType)
	part, err := form.CreatePart(partHeader)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to build upload form", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to read uploaded file", err)
	}
	if err := form.Close(); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to build upload form", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, &buf)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to build upload request", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	return w.send(w.uploadHTTP, req)
}

func (w *DocsWebhook) postJSON(ctx context.Context, client *http.Client, payload docsAction) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to marshal webhook payload", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to build webhook request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return w.send(client, req)
}

func (w *DocsWebhook) send(client *http.Client, req *http.Request) (json.RawMessage, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUpstream, fmt.Sprintf("docs webhook request failed: %v", err), err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUpstream, "failed to read docs webhook response", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, apperr.Upstream(resp.StatusCode, strings.TrimSpace(string(data)))
	}

	return data, nil
}
