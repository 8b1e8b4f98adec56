// Package recommendation is the request layer over the recommender engine.
//
// It validates basket queries, fetches the current rule table and product
// catalog from caller-owned sources, runs the engine and shapes the result
// for JSON, YAML and table output. The HTTP handlers served by basketd live
// here as well.
//
//	b := recommendation.NewBuilder(
//	    recommendation.WithRules(ruleCache),
//	    recommendation.WithCatalog(catalogCache),
//	)
//	resp, err := b.Build(ctx, &recommendation.Query{
//	    Items:         []string{"white hanging heart t-light holder"},
//	    MinConfidence: 0.05,
//	    TopN:          5,
//	})
//
// # HTTP API
//
//	GET  /v1/recommendations?item=A&item=B&minConfidence=0.05&topN=5
//	POST /v1/recommendations   {"items": ["A", "B"], "minConfidence": 0.05, "topN": 5}
//	GET  /v1/products?prefix=WHITE&limit=20
//	POST /v1/rules/reload
//
// The items parameter also accepts a comma separated list. Product names
// that contain commas must be passed with repeated item parameters.
package recommendation
