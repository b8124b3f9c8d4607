package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// HTTPConfig configures the HTTP gateway client.
type HTTPConfig struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// HTTPClient talks to a live WhatsApp gateway via its REST endpoints.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPClient builds a client capable of hitting a running gateway.
func NewHTTPClient(cfg HTTPConfig) (*HTTPClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("gateway: base url is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  httpClient,
	}, nil
}

// Send implements Sender by calling the message send endpoint.
func (c *HTTPClient) Send(ctx context.Context, req SendRequest) (SendReceipt, error) {
	if req.To == "" {
		return SendReceipt{}, fmt.Errorf("gateway: send requires a destination")
	}
	var resp sendResponse
	if err := c.do(ctx, http.MethodPost, "/messages/send", req, &resp); err != nil {
		return SendReceipt{}, err
	}
	return resp.toReceipt()
}

// Status implements InstanceClient via the instance status endpoint.
func (c *HTTPClient) Status(ctx context.Context, instanceID string) (InstanceStatus, error) {
	if instanceID == "" {
		return InstanceStatus{}, fmt.Errorf("gateway: instance id is required")
	}
	path := "/instances/" + url.PathEscape(instanceID) + "/status"
	var resp statusResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return InstanceStatus{}, err
	}
	return resp.toStatus()
}

// FetchStats implements StatsClient via the stats endpoint.
func (c *HTTPClient) FetchStats(ctx context.Context, query StatsQuery) (StatsReport, error) {
	var resp statsResponse
	if err := c.do(ctx, http.MethodPost, "/messages/stats", query, &resp); err != nil {
		return StatsReport{}, err
	}
	return resp.toReport()
}

func (c *HTTPClient) do(ctx context.Context, method, path string, payload any, target any) error {
	var reader *bytes.Reader
	if payload != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("gateway: encode payload: %w", err)
		}
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("gateway: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("gateway: http request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(resp.Body)
		return fmt.Errorf("gateway: remote error %d: %s", resp.StatusCode, buf.String())
	}
	if target == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("gateway: decode response: %w", err)
	}
	return nil
}

type sendResponse struct {
	MessageID string `json:"message_id"`
	Status    string `json:"status"`
	QueuedAt  string `json:"queued_at"`
}

func (r sendResponse) toReceipt() (SendReceipt, error) {
	receipt := SendReceipt{MessageID: r.MessageID, Status: r.Status}
	if r.QueuedAt != "" {
		queued, err := time.Parse(time.RFC3339, r.QueuedAt)
		if err != nil {
			return SendReceipt{}, fmt.Errorf("gateway: parse queued_at %q: %w", r.QueuedAt, err)
		}
		receipt.QueuedAt = queued
	}
	return receipt, nil
}

type statusResponse struct {
	InstanceID string `json:"instance_id"`
	State      string `json:"state"`
	Phone      string `json:"phone"`
	LastSeen   string `json:"last_seen"`
}

func (r statusResponse) toStatus() (InstanceStatus, error) {
	status := InstanceStatus{
		InstanceID: r.InstanceID,
		State:      r.State,
		Phone:      r.Phone,
	}
	if r.LastSeen != "" {
		seen, err := time.Parse(time.RFC3339, r.LastSeen)
		if err != nil {
			return InstanceStatus{}, fmt.Errorf("gateway: parse last_seen %q: %w", r.LastSeen, err)
		}
		status.LastSeen = seen
	}
	return status, nil
}

type statsDay struct {
	Day    string         `json:"day"`
	Counts map[string]int `json:"counts"`
}

type statsResponse struct {
	InstanceID string     `json:"instance_id"`
	Series     []statsDay `json:"series"`
}

func (r statsResponse) toReport() (StatsReport, error) {
	series := make([]DayStats, len(r.Series))
	totals := map[string]int{}
	for i, bucket := range r.Series {
		parsedDay, err := time.Parse(time.DateOnly, bucket.Day)
		if err != nil {
			return StatsReport{}, fmt.Errorf("gateway: parse stats day %q: %w", bucket.Day, err)
		}
		counts := make(map[string]int, len(bucket.Counts))
		for outcome, count := range bucket.Counts {
			counts[outcome] = count
			totals[outcome] += count
		}
		series[i] = DayStats{Day: parsedDay, Counts: counts}
	}
	return StatsReport{InstanceID: r.InstanceID, Series: series, Totals: totals}, nil
}
