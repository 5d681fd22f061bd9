package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pskill9/PreclinicalResearch/model"
)

// fetchModeHeader is read by the js/wasm HTTP transport to pick the
// browser fetch mode. It is not a valid header name on other transports.
const fetchModeHeader = "js.fetch:mode"

// WebhookClient posts form submissions to the spreadsheet webhook.
type WebhookClient struct {
	url        string
	noCORS     bool
	httpClient *http.Client
}

// NewWebhookClient creates a client for url. A zero timeout leaves the
// request bounded only by ctx and the transport.
func NewWebhookClient(url string, timeout time.Duration) *WebhookClient {
	return &WebhookClient{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// NewBrowserWebhookClient creates a client whose requests are issued in
// no-cors mode, so the response can never be inspected.
func NewBrowserWebhookClient(url string) *WebhookClient {
	c := NewWebhookClient(url, 0)
	c.noCORS = true
	return c
}

// URL returns the webhook endpoint.
func (c *WebhookClient) URL() string {
	return c.url
}

// Submit posts sub and reports only transport failures. The response
// status and body are deliberately ignored.
func (c *WebhookClient) Submit(ctx context.Context, sub model.FormSubmission) error {
	resp, err := c.post(ctx, sub)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return nil
}

// Deliver posts sub and decodes the webhook's reply. When the reply is not
// a webhook response, the HTTP status decides success.
func (c *WebhookClient) Deliver(ctx context.Context, sub model.FormSubmission) (*model.WebhookResponse, error) {
	resp, err := c.post(ctx, sub)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var result model.WebhookResponse
	if err := json.Unmarshal(body, &result); err == nil && result.Status != "" {
		return &result, nil
	}

	result = model.WebhookResponse{Status: model.StatusSuccess, Message: http.StatusText(resp.StatusCode)}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		result.Status = model.StatusError
	}
	return &result, nil
}

func (c *WebhookClient) post(ctx context.Context, sub model.FormSubmission) (*http.Response, error) {
	jsonData, err := json.Marshal(sub)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.noCORS && browserTransport {
		req.Header.Set(fetchModeHeader, "no-cors")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return resp, nil
}
