package recommender

import (
	"cmp"
	"sort"
)

// Recommend returns at most topN products for the basket, ranked by
// (lift, confidence) descending. See Evaluate.
func Recommend(rules []Rule, basket []string, minConfidence float64, topN int) []Recommendation {
	return Evaluate(rules, basket, minConfidence, topN).Recommendations
}

// Evaluate runs the primary pass over rules with confidence >= minConfidence
// whose antecedents intersect the basket, or, when that emits nothing, the
// fallback pass over the 2*topN highest ranked rules. Candidates are
// deduplicated first-seen-wins in emission order, then ranked and truncated.
//
// A topN below zero is treated as zero and yields an empty result. A negative
// minConfidence disables the threshold.
func Evaluate(rules []Rule, basket []string, minConfidence float64, topN int) Result {
	if topN < 0 {
		topN = 0
	}

	n := newNormalizer()
	inBasket := n.set(basket)

	compiled := make([]compiledRule, len(rules))
	for i, r := range rules {
		compiled[i] = compiledRule{
			antecedents: n.set(r.Antecedents),
			consequents: n.set(r.Consequents).Items(),
			confidence:  r.Confidence,
			lift:        r.Lift,
		}
	}

	var candidates []Recommendation
	for _, r := range compiled {
		if !(r.confidence >= minConfidence) {
			continue
		}
		if !r.antecedents.Intersects(inBasket) {
			continue
		}
		candidates = r.emit(candidates, inBasket)
	}

	fallback := len(candidates) == 0
	if fallback {
		candidates = fallbackCandidates(compiled, inBasket, topN)
	}

	ranked := dedupe(candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		return outranks(ranked[i].Lift, ranked[i].Confidence, ranked[j].Lift, ranked[j].Confidence)
	})
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}

	return Result{
		Recommendations: ranked,
		Fallback:        fallback,
		Candidates:      len(candidates),
	}
}

type compiledRule struct {
	antecedents ItemSet
	consequents []string
	confidence  float64
	lift        float64
}

// emit appends every consequent item not already in the basket.
func (r compiledRule) emit(out []Recommendation, basket ItemSet) []Recommendation {
	for _, item := range r.consequents {
		if _, ok := basket[item]; ok {
			continue
		}
		out = append(out, Recommendation{
			Item:       item,
			Confidence: r.confidence,
			Lift:       r.lift,
		})
	}
	return out
}

// fallbackCandidates ranks a copy of all rules by (lift, confidence) and
// emits from the first 2*topN. Equal rules keep table order.
func fallbackCandidates(rules []compiledRule, basket ItemSet, topN int) []Recommendation {
	ranked := make([]compiledRule, len(rules))
	copy(ranked, rules)
	sort.SliceStable(ranked, func(i, j int) bool {
		return outranks(ranked[i].lift, ranked[i].confidence, ranked[j].lift, ranked[j].confidence)
	})

	limit := len(ranked)
	if topN <= limit/2 {
		limit = 2 * topN
	}

	var out []Recommendation
	for _, r := range ranked[:limit] {
		out = r.emit(out, basket)
	}
	return out
}

// dedupe keeps the first occurrence of each item. The returned slice is never nil.
func dedupe(candidates []Recommendation) []Recommendation {
	seen := make(map[string]struct{}, len(candidates))
	out := make([]Recommendation, 0, len(candidates))
	for _, c := range candidates {
		if _, ok := seen[c.Item]; ok {
			continue
		}
		seen[c.Item] = struct{}{}
		out = append(out, c)
	}
	return out
}

// outranks orders by lift, then confidence, both descending. NaN ranks below
// every number.
func outranks(liftA, confA, liftB, confB float64) bool {
	if c := cmp.Compare(liftB, liftA); c != 0 {
		return c < 0
	}
	return cmp.Compare(confB, confA) < 0
}
