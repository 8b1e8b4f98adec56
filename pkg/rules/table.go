package rules

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/mchmarny/basket/pkg/recommender"
)

// Table is a loaded rule table. Rules must not be modified after loading;
// the same slice is shared by concurrent recommendation requests.
type Table struct {
	Source   string             `json:"source" yaml:"source"`
	LoadedAt time.Time          `json:"loadedAt" yaml:"loadedAt"`
	Rules    []recommender.Rule `json:"rules" yaml:"rules"`
}

// Len returns the number of rules. Safe on a nil Table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rules)
}

// Summary describes the contents of a rule table.
type Summary struct {
	Source          string    `json:"source" yaml:"source"`
	LoadedAt        time.Time `json:"loadedAt" yaml:"loadedAt"`
	Rules           int       `json:"rules" yaml:"rules"`
	AntecedentItems int       `json:"antecedentItems" yaml:"antecedentItems"`
	ConsequentItems int       `json:"consequentItems" yaml:"consequentItems"`
	MinConfidence   float64   `json:"minConfidence" yaml:"minConfidence"`
	MaxConfidence   float64   `json:"maxConfidence" yaml:"maxConfidence"`
	MinLift         float64   `json:"minLift" yaml:"minLift"`
	MaxLift         float64   `json:"maxLift" yaml:"maxLift"`
}

// Summary counts distinct canonical items on each side of the rules and
// the range of their scores. Ranges are zero for an empty table.
func (t *Table) Summary() Summary {
	s := Summary{}
	if t == nil {
		return s
	}
	s.Source = t.Source
	s.LoadedAt = t.LoadedAt
	s.Rules = len(t.Rules)
	if s.Rules == 0 {
		return s
	}

	ante := recommender.ItemSet{}
	cons := recommender.ItemSet{}
	s.MinConfidence, s.MaxConfidence = math.Inf(1), math.Inf(-1)
	s.MinLift, s.MaxLift = math.Inf(1), math.Inf(-1)

	for _, r := range t.Rules {
		for item := range recommender.NewItemSet(r.Antecedents...) {
			ante[item] = struct{}{}
		}
		for item := range recommender.NewItemSet(r.Consequents...) {
			cons[item] = struct{}{}
		}
		s.MinConfidence = math.Min(s.MinConfidence, r.Confidence)
		s.MaxConfidence = math.Max(s.MaxConfidence, r.Confidence)
		s.MinLift = math.Min(s.MinLift, r.Lift)
		s.MaxLift = math.Max(s.MaxLift, r.Lift)
	}

	s.AntecedentItems = ante.Len()
	s.ConsequentItems = cons.Len()
	return s
}

// TableHeader implements serializer.TableRenderer.
func (s Summary) TableHeader() []string {
	return []string{"FIELD", "VALUE"}
}

// TableRows implements serializer.TableRenderer.
func (s Summary) TableRows() [][]string {
	loaded := ""
	if !s.LoadedAt.IsZero() {
		loaded = s.LoadedAt.Format(time.RFC3339)
	}
	return [][]string{
		{"source", s.Source},
		{"loaded", loaded},
		{"rules", strconv.Itoa(s.Rules)},
		{"antecedent items", strconv.Itoa(s.AntecedentItems)},
		{"consequent items", strconv.Itoa(s.ConsequentItems)},
		{"confidence", fmt.Sprintf("%.2f - %.2f", s.MinConfidence, s.MaxConfidence)},
		{"lift", fmt.Sprintf("%.2f - %.2f", s.MinLift, s.MaxLift)},
	}
}
