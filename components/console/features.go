package console

// Feature identifies a gated capability of the gateway console.
type Feature string

// Features gated per plan.
const (
	FeatureWebhooks   Feature = "webhooks"
	FeatureVariations Feature = "message_variations"
	FeatureKanban     Feature = "kanban_view"
	FeatureCalendar   Feature = "calendar_view"
	FeatureMetrics    Feature = "metrics_dashboard"
)

// planFeatures is the default entitlement matrix. Tenant-level overrides in
// the FeatureStore win over the plan defaults.
var planFeatures = map[string][]Feature{
	"free":     {FeatureWebhooks},
	"starter":  {FeatureWebhooks, FeatureKanban, FeatureCalendar},
	"pro":      {FeatureWebhooks, FeatureVariations, FeatureKanban, FeatureCalendar, FeatureMetrics},
	"business": {FeatureWebhooks, FeatureVariations, FeatureKanban, FeatureCalendar, FeatureMetrics},
}

// DefaultFeaturesForPlan returns the features a plan enables out of the box.
func DefaultFeaturesForPlan(plan string) map[Feature]bool {
	features := map[Feature]bool{}
	for _, feature := range planFeatures[plan] {
		features[feature] = true
	}
	return features
}
