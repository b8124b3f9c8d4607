package gateway

import (
	"context"
	"time"
)

// SendRequest asks the gateway to deliver one message through an instance.
type SendRequest struct {
	InstanceID string `json:"instance_id"`
	To         string `json:"to"`
	Body       string `json:"body"`
}

// SendReceipt acknowledges a queued message.
type SendReceipt struct {
	MessageID string    `json:"message_id"`
	Status    string    `json:"status"`
	QueuedAt  time.Time `json:"queued_at"`
}

// InstanceStatus is the connection state of one WhatsApp instance.
type InstanceStatus struct {
	InstanceID string    `json:"instance_id"`
	State      string    `json:"state"`
	Phone      string    `json:"phone,omitempty"`
	LastSeen   time.Time `json:"last_seen,omitempty"`
}

// Instance connection states reported by the gateway.
const (
	StateConnected    = "connected"
	StateDisconnected = "disconnected"
	StateQRPending    = "qr_pending"
)

// StatsQuery selects the delivery statistics window.
type StatsQuery struct {
	InstanceID string `json:"instance_id,omitempty"`
	Days       int    `json:"days"`
}

// DayStats aggregates delivery outcomes for one day.
type DayStats struct {
	Day    time.Time      `json:"day"`
	Counts map[string]int `json:"counts"`
}

// StatsReport is the per-day delivery breakdown with running totals.
type StatsReport struct {
	InstanceID string         `json:"instance_id"`
	Series     []DayStats     `json:"series"`
	Totals     map[string]int `json:"totals"`
}

// Sender queues outbound messages on the gateway.
type Sender interface {
	Send(ctx context.Context, req SendRequest) (SendReceipt, error)
}

// InstanceClient reports the connection state of gateway instances.
type InstanceClient interface {
	Status(ctx context.Context, instanceID string) (InstanceStatus, error)
}

// StatsClient fetches delivery statistics for the metrics dashboards.
type StatsClient interface {
	FetchStats(ctx context.Context, query StatsQuery) (StatsReport, error)
}

// Client is a convenience union for services that implement all gateway calls.
type Client interface {
	Sender
	InstanceClient
	StatsClient
}
