// Package recommender suggests additional products for a shopping basket from
// precomputed market-basket association rules.
//
// # Overview
//
// A Rule says "customers who bought the antecedent items also bought the
// consequent items", scored by confidence (P(consequent | antecedent)) and
// lift (association strength relative to independence, 1.0 = none). Given a
// basket, the recommender selects, deduplicates, ranks and truncates the
// consequent items of matching rules.
//
// # Matching
//
// Item names are compared in canonical form: surrounding whitespace trimmed
// and uppercased. " milk " and "MILK" are the same item.
//
//  1. Primary pass: rules with confidence >= minConfidence whose antecedents
//     share at least one item with the basket emit every consequent item that
//     is not already in the basket.
//  2. Fallback pass: only when the primary pass emitted nothing. All rules are
//     ranked by (lift, confidence) descending, the first 2*topN are taken
//     and emit candidates the same way, ignoring the threshold.
//  3. The first occurrence of an item wins; later duplicates are discarded
//     together with their scores.
//  4. Candidates are sorted by (lift, confidence) descending and truncated
//     to topN.
//
// An empty result is a valid outcome, not an error.
//
// # Usage
//
//	recs := recommender.Recommend(table.Rules, []string{"bread", "milk"}, 0.05, 5)
//	for _, r := range recs {
//	    fmt.Printf("%s %.2f %.2f\n", r.Item, r.Confidence, r.Lift)
//	}
//
// Evaluate returns the same list together with whether the fallback pass
// produced it.
//
// # Concurrency
//
// Recommend and Evaluate are pure functions. They never modify the rule slice
// and may be called concurrently on the same table.
package recommender
