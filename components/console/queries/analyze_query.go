package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-waconsole/components/variations"
)

// AnalyzeTemplateQuery runs the variation analyzer as a read-only query so
// transports can expose live template feedback.
type AnalyzeTemplateQuery struct {
	analyzer *variations.Analyzer
}

// NewAnalyzeTemplateQuery builds the query. A nil analyzer falls back to the
// default limits.
func NewAnalyzeTemplateQuery(analyzer *variations.Analyzer) *AnalyzeTemplateQuery {
	if analyzer == nil {
		analyzer = variations.New(variations.DefaultLimits())
	}
	return &AnalyzeTemplateQuery{analyzer: analyzer}
}

var _ gocommand.Querier[string, variations.Analysis] = (*AnalyzeTemplateQuery)(nil)

// Query analyzes the template text.
func (q *AnalyzeTemplateQuery) Query(_ context.Context, template string) (variations.Analysis, error) {
	return q.analyzer.Analyze(template), nil
}
