// Package vapi provides a client for the upstream voice-AI call-management
// provider's REST API. A Client is bound to a single caller token and is
// built per request; it is never cached or shared across requests.
package vapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"callportal_backend/platform/apperr"
)

// Config configures the upstream API client.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client is an HTTP client for the upstream provider, bound to one token.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a client bound to the given caller token. The token is
// not validated here; the upstream rejects invalid tokens on first use.
func NewClient(token string, cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ListAssistants returns all assistants visible to the token.
func (c *Client) ListAssistants(ctx context.Context) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/assistant", nil, nil)
}

// GetAssistant returns one assistant, keeping the raw upstream body
// alongside the fields the gateway addresses.
func (c *Client) GetAssistant(ctx context.Context, id string) (*Assistant, error) {
	body, err := c.do(ctx, http.MethodGet, "/assistant/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return nil, err
	}

	var assistant Assistant
	if err := json.Unmarshal(body, &assistant); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to decode assistant", err)
	}
	assistant.Raw = body
	return &assistant, nil
}

// UpdateAssistant patches an assistant. Only the fields present in the
// update are changed upstream.
func (c *Client) UpdateAssistant(ctx context.Context, id string, update AssistantUpdate) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPatch, "/assistant/"+url.PathEscape(id), nil, update)
}

// ListCalls returns up to limit calls.
func (c *Client) ListCalls(ctx context.Context, limit int) (json.RawMessage, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	return c.do(ctx, http.MethodGet, "/call", query, nil)
}

// GetCall returns one call, keeping the raw upstream body alongside the
// artifact and monitor fields the gateway reshapes.
func (c *Client) GetCall(ctx context.Context, id string) (*Call, error) {
	body, err := c.do(ctx, http.MethodGet, "/call/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return nil, err
	}

	var call Call
	if err := json.Unmarshal(body, &call); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to decode call", err)
	}
	call.Raw = body
	return &call, nil
}

// CreateCalls submits one batch-call creation request. The scheduling
// pipeline calls this exactly once per upload; failures are not retried.
func (c *Client) CreateCalls(ctx context.Context, req BatchCallRequest) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, "/call", nil, req)
}

// UpdateSession patches a live session (status change or appended messages).
func (c *Client) UpdateSession(ctx context.Context, id string, update SessionUpdate) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPatch, "/session/"+url.PathEscape(id), nil, update)
}

// ListPhoneNumbers returns the provisioned phone numbers.
func (c *Client) ListPhoneNumbers(ctx context.Context) ([]PhoneNumber, error) {
	body, err := c.do(ctx, http.MethodGet, "/phone-number", nil, nil)
	if err != nil {
		return nil, err
	}

	var numbers []PhoneNumber
	if err := json.Unmarshal(body, &numbers); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to decode phone numbers", err)
	}
	return numbers, nil
}

// UpdatePhoneNumber patches a phone number record.
func (c *Client) UpdatePhoneNumber(ctx context.Context, id string, update PhoneNumberUpdate) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPatch, "/phone-number/"+url.PathEscape(id), nil, update)
}

// ListKnowledgeBases returns all knowledge bases visible to the token.
func (c *Client) ListKnowledgeBases(ctx context.Context) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/knowledge-base", nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, apperr.Wrap(apperr.KindInternal, fmt.Sprintf("failed to marshal %s %s request", method, path), err)
		}
		reader = bytes.NewReader(payload)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	request, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, fmt.Sprintf("failed to build %s %s request", method, path), err)
	}

	request.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(request)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUpstream, "upstream request failed", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUpstream, "failed to read upstream response", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, apperr.Upstream(resp.StatusCode, strings.TrimSpace(string(data)))
	}

	return data, nil
}
