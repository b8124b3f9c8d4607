package variations

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Default ceilings applied when Limits fields are left zero.
const (
	DefaultMaxCombinations    = 500
	DefaultMaxVariationLength = 280
)

// combinationCap bounds the running product so pathological templates cannot
// overflow before the ceiling check runs.
const combinationCap = 1 << 31

// Limits bounds what the analyzer accepts before a template is rejected.
type Limits struct {
	MaxCombinations    int
	MaxVariationLength int
}

// DefaultLimits returns the package defaults.
func DefaultLimits() Limits {
	return Limits{
		MaxCombinations:    DefaultMaxCombinations,
		MaxVariationLength: DefaultMaxVariationLength,
	}
}

func (l Limits) normalized() Limits {
	if l.MaxCombinations <= 0 {
		l.MaxCombinations = DefaultMaxCombinations
	}
	if l.MaxVariationLength <= 0 {
		l.MaxVariationLength = DefaultMaxVariationLength
	}
	return l
}

// Analyzer evaluates message templates against configured limits. The zero
// value is not usable; build instances through New.
type Analyzer struct {
	limits Limits
}

// New builds an analyzer, filling zero limits with defaults.
func New(limits Limits) *Analyzer {
	return &Analyzer{limits: limits.normalized()}
}

// Analyze runs the default analyzer over a template.
func Analyze(template string) Analysis {
	return New(DefaultLimits()).Analyze(template)
}

// AnalyzeValue guards transport boundaries where the payload type is not
// statically known. Non-string input is the only hard failure the analyzer
// produces; everything else surfaces as issues inside the Analysis.
func (a *Analyzer) AnalyzeValue(value any) (Analysis, error) {
	template, ok := value.(string)
	if !ok {
		return Analysis{}, fmt.Errorf("variations: %s: template must be a string, got %T", KindInvalidInput, value)
	}
	return a.Analyze(template), nil
}

// Analyze detects alternation blocks inside the template and validates them.
// Pure function of the input string.
func (a *Analyzer) Analyze(template string) Analysis {
	result := Analysis{
		Raw:               template,
		TotalCombinations: 1,
	}

	for _, token := range strings.Fields(template) {
		if !strings.Contains(token, "|") {
			continue
		}
		block := Block{
			Index:      len(result.Blocks),
			Raw:        token,
			Variations: splitVariations(token),
		}
		block.VariationCount = len(block.Variations)
		result.Blocks = append(result.Blocks, block)
		a.validateBlock(&result, block)
		if block.VariationCount > 0 {
			if result.TotalCombinations > combinationCap/block.VariationCount {
				result.TotalCombinations = combinationCap
			} else {
				result.TotalCombinations *= block.VariationCount
			}
		}
	}

	if result.TotalCombinations > a.limits.MaxCombinations {
		result.Errors = append(result.Errors, Issue{
			Kind: KindCombinationLimit,
			Message: fmt.Sprintf("template expands to %d message variations, the limit is %d",
				result.TotalCombinations, a.limits.MaxCombinations),
			Suggestion: "remove alternation blocks or reduce the alternatives inside them",
		})
	}
	return result
}

// splitVariations breaks an alternation run into trimmed variations. Matching
// the whitespace-bounded block pattern, a trailing fragment shorter than two
// runes belongs to the surrounding static text rather than the block, so it
// is not counted as a variation. Empty segments are discarded.
func splitVariations(token string) []string {
	segments := strings.Split(token, "|")
	variations := make([]string, 0, len(segments))
	for i, segment := range segments {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		if i == len(segments)-1 && utf8.RuneCountInString(segment) < 2 {
			continue
		}
		variations = append(variations, segment)
	}
	return variations
}

func (a *Analyzer) validateBlock(result *Analysis, block Block) {
	idx := block.Index
	if block.VariationCount < 2 {
		result.Errors = append(result.Errors, Issue{
			Kind:       KindTooFewVariations,
			Message:    fmt.Sprintf("block %d needs at least 2 variations, found %d", idx, block.VariationCount),
			BlockIndex: intPtr(idx),
			Suggestion: "separate alternatives with | (e.g. Oi|Olá)",
		})
	}
	seen := make(map[string]bool, block.VariationCount)
	for _, variation := range block.Variations {
		if utf8.RuneCountInString(variation) > a.limits.MaxVariationLength {
			result.Warnings = append(result.Warnings, Issue{
				Kind:       KindVariationTooLong,
				Message:    fmt.Sprintf("block %d has a variation longer than %d characters", idx, a.limits.MaxVariationLength),
				BlockIndex: intPtr(idx),
			})
		}
		if seen[variation] {
			result.Warnings = append(result.Warnings, Issue{
				Kind:       KindDuplicateVariation,
				Message:    fmt.Sprintf("block %d repeats the variation %q", idx, variation),
				BlockIndex: intPtr(idx),
				Suggestion: "duplicated variations do not add variety to the send",
			})
			continue
		}
		seen[variation] = true
	}
}

func intPtr(v int) *int {
	return &v
}
