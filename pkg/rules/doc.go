// Package rules loads mined association rule tables.
//
// A table is read from a local path or an http(s) URL. The format follows the
// extension: .csv files use the column layout written by common frequent
// itemset miners (antecedents, consequents, support, confidence, lift, ...),
// while .json, .yaml and .yml files hold a list of rules, either bare or
// under a top-level "rules" key. A .toml file uses [[rules]] tables.
//
// In CSV tables the antecedents and consequents columns carry a serialized
// set literal such as frozenset({'MILK', 'BREAD'}). ParseItemSet turns those
// into plain item lists.
//
//	table, err := rules.Load(ctx, "https://example.com/association_rules.csv")
//	if err != nil {
//	    return err
//	}
//	recs := recommender.Recommend(table.Rules, basket, 0.05, 5)
package rules
