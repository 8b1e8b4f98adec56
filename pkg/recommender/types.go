package recommender

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Rule is one mined association rule.
type Rule struct {
	// Antecedents are the items whose presence in the basket triggers the rule.
	Antecedents []string `json:"antecedents" yaml:"antecedents" toml:"antecedents"`

	// Consequents are the items suggested when the rule fires.
	Consequents []string `json:"consequents" yaml:"consequents" toml:"consequents"`

	// Confidence is P(consequents | antecedents), normally within [0,1].
	Confidence float64 `json:"confidence" yaml:"confidence" toml:"confidence"`

	// Lift is the association strength relative to independence, normally >= 0.
	Lift float64 `json:"lift" yaml:"lift" toml:"lift"`
}

// Recommendation is a suggested product with the scores of the rule that produced it.
type Recommendation struct {
	Item       string  `json:"item" yaml:"item"`
	Confidence float64 `json:"confidence" yaml:"confidence"`
	Lift       float64 `json:"lift" yaml:"lift"`
}

// Result is the outcome of a single evaluation.
type Result struct {
	// Recommendations is the ranked, deduplicated and truncated list. Never nil.
	Recommendations []Recommendation `json:"recommendations" yaml:"recommendations"`

	// Fallback is true when the primary pass emitted nothing and the
	// threshold-free fallback pass ran.
	Fallback bool `json:"fallback" yaml:"fallback"`

	// Candidates is the number of candidates emitted before deduplication.
	Candidates int `json:"candidates" yaml:"candidates"`
}

// ItemSet is a set of canonical item names.
type ItemSet map[string]struct{}

// NewItemSet returns the set of canonical forms of items.
// Names that are empty after trimming are dropped.
func NewItemSet(items ...string) ItemSet {
	return newNormalizer().set(items)
}

// Contains reports whether the canonical form of item is in the set.
func (s ItemSet) Contains(item string) bool {
	_, ok := s[Normalize(item)]
	return ok
}

// Intersects reports whether the two sets share at least one item.
func (s ItemSet) Intersects(other ItemSet) bool {
	small, large := s, other
	if len(small) > len(large) {
		small, large = large, small
	}
	for item := range small {
		if _, ok := large[item]; ok {
			return true
		}
	}
	return false
}

// Len returns the number of items in the set.
func (s ItemSet) Len() int {
	return len(s)
}

// Items returns the items in ascending order.
func (s ItemSet) Items() []string {
	items := make([]string, 0, len(s))
	for item := range s {
		items = append(items, item)
	}
	sort.Strings(items)
	return items
}

// Normalize returns the canonical form of an item name: surrounding
// whitespace trimmed, then uppercased.
func Normalize(name string) string {
	return newNormalizer().normalize(name)
}

// normalizer holds a Caser, which is stateful and must not be shared
// between goroutines.
type normalizer struct {
	upper cases.Caser
}

func newNormalizer() *normalizer {
	return &normalizer{upper: cases.Upper(language.Und)}
}

func (n *normalizer) normalize(name string) string {
	return n.upper.String(strings.TrimSpace(name))
}

func (n *normalizer) set(items []string) ItemSet {
	s := make(ItemSet, len(items))
	for _, item := range items {
		if c := n.normalize(item); c != "" {
			s[c] = struct{}{}
		}
	}
	return s
}
