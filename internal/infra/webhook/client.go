package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	domwebhook "visa-booking/internal/domain/webhook"
	"visa-booking/internal/pkg/errs"
	"visa-booking/internal/usecase/shared"

	"github.com/tidwall/gjson"
)

// maxResponseBytes caps how much of a receiver's response is kept for audit.
const maxResponseBytes = 64 << 10

type Client struct {
	http *http.Client
}

func NewClient(timeout time.Duration) *Client {
	return &Client{http: &http.Client{Timeout: timeout}}
}

var _ shared.WebhookSender = (*Client)(nil)

func (c *Client) Send(ctx context.Context, url string, body []byte, signature string) (shared.SendResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return shared.SendResult{}, errs.Wrap(err, "failed to build webhook request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(domwebhook.SignatureHeader, signature)

	resp, err := c.http.Do(req)
	if err != nil {
		return shared.SendResult{}, errs.Wrap(err, "webhook request failed")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return shared.SendResult{StatusCode: resp.StatusCode}, errs.Wrap(err, "failed to read webhook response")
	}
	return shared.SendResult{StatusCode: resp.StatusCode, Body: captureBody(raw)}, nil
}

// captureBody keeps JSON responses as they are and wraps anything else in a JSON string.
func captureBody(raw []byte) json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil
	}
	if gjson.ValidBytes(trimmed) {
		return json.RawMessage(trimmed)
	}
	quoted, err := json.Marshal(string(trimmed))
	if err != nil {
		return nil
	}
	return quoted
}
