// Package hoaxapi talks to the remote hoax classification service.
package hoaxapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"hoax-detector/client/internal/apperr"
	"hoax-detector/client/internal/config"
)

const maxBodyBytes = 1 << 20

// Payload is the raw, untrusted JSON body returned by /predict.
type Payload []byte

// Config holds client configuration parameters.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client performs health checks and predictions against the service.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient constructs a Client. An empty base URL is accepted; every call on
// such a client fails with a configuration error without touching the network.
func NewClient(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    config.Resolve(cfg.BaseURL),
	}
}

// BaseURL returns the normalized service root.
func (c *Client) BaseURL() string {
	if c == nil {
		return ""
	}
	return c.baseURL
}

// CheckHealth issues GET {base}/health and succeeds on any 2xx status.
func (c *Client) CheckHealth(ctx context.Context) error {
	if c == nil || c.baseURL == "" {
		return apperr.Configuration(MsgMissingBaseURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logrus.WithError(err).WithField("base_url", c.baseURL).Warn("backend health check failed")
		return apperr.Connectivity(MsgHealthUnreachable, err)
	}
	defer drain(resp.Body)

	if !isSuccess(resp.StatusCode) {
		logrus.WithFields(logrus.Fields{
			"base_url": c.baseURL,
			"status":   resp.StatusCode,
		}).Warn("backend health check returned error status")
		return apperr.Server(resp.StatusCode, "", fmt.Sprintf(MsgHealthStatus, resp.StatusCode))
	}
	return nil
}

// Predict sends the text to POST {base}/predict and returns the raw JSON body.
// The caller is responsible for rejecting empty text.
func (c *Client) Predict(ctx context.Context, text string) (Payload, error) {
	if c == nil || c.baseURL == "" {
		return nil, apperr.Configuration(MsgMissingBaseURL)
	}

	body, err := json.Marshal(predictRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logrus.WithError(err).WithField("base_url", c.baseURL).Error("predict request failed")
		return nil, apperr.Connectivity(MsgPredictUnreachable, err)
	}
	defer resp.Body.Close()

	data, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if readErr != nil {
		logrus.WithError(readErr).Warn("read predict response body")
	}

	parsed := readErr == nil && len(bytes.TrimSpace(data)) > 0 && gjson.ValidBytes(data)
	if !isSuccess(resp.StatusCode) || !parsed {
		detail := ""
		if parsed {
			detail = extractDetail(data)
		}
		message := detail
		if message == "" {
			message = statusReason(resp)
		}
		if message == "" {
			message = MsgPredictFallback
		}
		logrus.WithFields(logrus.Fields{
			"status": resp.StatusCode,
			"detail": detail,
		}).Warn("predict returned an error")
		return nil, apperr.Server(resp.StatusCode, detail, fmt.Sprintf("API error (%d): %s", resp.StatusCode, message))
	}

	logrus.WithFields(logrus.Fields{
		"status":      resp.StatusCode,
		"bytes":       len(data),
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("predict succeeded")
	return Payload(data), nil
}

type predictRequest struct {
	Text string `json:"text"`
}

// extractDetail pulls the FastAPI style "detail" field. Non-string details
// (validation error lists) are returned as their raw JSON.
func extractDetail(data []byte) string {
	detail := gjson.GetBytes(data, "detail")
	switch {
	case !detail.Exists(), detail.Type == gjson.Null:
		return ""
	case detail.Type == gjson.String:
		return strings.TrimSpace(detail.String())
	case detail.Type == gjson.False:
		return ""
	default:
		return strings.TrimSpace(detail.Raw)
	}
}

// statusReason returns the reason phrase the server sent, or the standard text
// for the code when it sent none.
func statusReason(resp *http.Response) string {
	reason := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if reason == "" {
		reason = http.StatusText(resp.StatusCode)
	}
	return reason
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

func drain(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, maxBodyBytes))
	_ = body.Close()
}
