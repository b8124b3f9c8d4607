package gateway

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MockData seeds deterministic gateway responses for tests or local demos.
type MockData struct {
	Status InstanceStatus
	Stats  StatsReport
}

// MockClient implements Client using in-memory fixtures. Send returns a fresh
// receipt per call and remembers every request.
type MockClient struct {
	data MockData
	mu   sync.RWMutex
	sent []SendRequest
}

// NewMockClient builds a mock gateway client from the provided fixtures.
func NewMockClient(data MockData) *MockClient {
	return &MockClient{data: data}
}

// Send records the request and returns a queued receipt.
func (c *MockClient) Send(_ context.Context, req SendRequest) (SendReceipt, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, req)
	return SendReceipt{MessageID: uuid.NewString(), Status: "queued"}, nil
}

// Sent returns a copy of every request passed to Send.
func (c *MockClient) Sent() []SendRequest {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]SendRequest, len(c.sent))
	copy(out, c.sent)
	return out
}

// Status returns the configured instance status ignoring the id.
func (c *MockClient) Status(context.Context, string) (InstanceStatus, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.Status, nil
}

// FetchStats returns the configured stats report ignoring query filters.
func (c *MockClient) FetchStats(context.Context, StatsQuery) (StatsReport, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneStats(c.data.Stats), nil
}

func cloneStats(report StatsReport) StatsReport {
	out := StatsReport{
		InstanceID: report.InstanceID,
		Series:     make([]DayStats, len(report.Series)),
		Totals:     map[string]int{},
	}
	for i, day := range report.Series {
		counts := make(map[string]int, len(day.Counts))
		for k, v := range day.Counts {
			counts[k] = v
		}
		out.Series[i] = DayStats{Day: day.Day, Counts: counts}
	}
	for k, v := range report.Totals {
		out.Totals[k] = v
	}
	return out
}
