package console

import (
	"testing"
	"time"
)

func mustParse(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse %q: %v", value, err)
	}
	return parsed
}

func TestDefaultFeaturesForPlan(t *testing.T) {
	cases := []struct {
		plan     string
		feature  Feature
		expected bool
	}{
		{"free", FeatureWebhooks, true},
		{"free", FeatureVariations, false},
		{"starter", FeatureKanban, true},
		{"starter", FeatureMetrics, false},
		{"pro", FeatureVariations, true},
		{"business", FeatureMetrics, true},
		{"unknown-plan", FeatureWebhooks, false},
	}
	for _, tc := range cases {
		features := DefaultFeaturesForPlan(tc.plan)
		if features[tc.feature] != tc.expected {
			t.Fatalf("plan %q feature %q: expected %v", tc.plan, tc.feature, tc.expected)
		}
	}
}

func TestSubscriptionActive(t *testing.T) {
	now := mustParse(t, "2026-08-24T12:00:00Z")
	future := mustParse(t, "2026-12-31T00:00:00Z")
	past := mustParse(t, "2026-01-01T00:00:00Z")

	cases := []struct {
		name     string
		sub      Subscription
		expected bool
	}{
		{"active no expiry", Subscription{Status: StatusActive}, true},
		{"trial before expiry", Subscription{Status: StatusTrial, ExpiresAt: &future}, true},
		{"active past expiry", Subscription{Status: StatusActive, ExpiresAt: &past}, false},
		{"canceled", Subscription{Status: StatusCanceled}, false},
		{"expired status", Subscription{Status: StatusExpired, ExpiresAt: &future}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.sub.Active(now) != tc.expected {
				t.Fatalf("expected Active=%v for %+v", tc.expected, tc.sub)
			}
		})
	}
}

func TestQuotaRemainingNeverNegative(t *testing.T) {
	if remaining := (Quota{Limit: 10, Used: 25}).Remaining(); remaining != 0 {
		t.Fatalf("expected 0 remaining, got %d", remaining)
	}
	if remaining := (Quota{Limit: 10, Used: 4}).Remaining(); remaining != 6 {
		t.Fatalf("expected 6 remaining, got %d", remaining)
	}
}
