package variations

// Issue kinds reported by the analyzer. Errors block template use, warnings
// do not.
const (
	KindInvalidInput       = "invalid_input"
	KindTooFewVariations   = "too_few_variations"
	KindCombinationLimit   = "combination_limit"
	KindVariationTooLong   = "variation_too_long"
	KindDuplicateVariation = "duplicate_variation"
)

// Issue describes a single validation finding tied to an optional block.
type Issue struct {
	Kind       string `json:"kind"`
	Message    string `json:"message"`
	BlockIndex *int   `json:"block_index,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Block is one alternation group detected inside a template.
type Block struct {
	Index          int      `json:"index"`
	Raw            string   `json:"raw"`
	Variations     []string `json:"variations"`
	VariationCount int      `json:"variation_count"`
}

// Analysis is the full breakdown of a message template. It is derived from
// the raw string on every invocation and carries no state.
type Analysis struct {
	Raw               string  `json:"raw"`
	Blocks            []Block `json:"blocks"`
	TotalCombinations int     `json:"total_combinations"`
	Errors            []Issue `json:"errors"`
	Warnings          []Issue `json:"warnings"`
}

// IsValid reports whether the template can be used for a send. Warnings do
// not affect validity.
func (a Analysis) IsValid() bool {
	return len(a.Errors) == 0
}
