// Package store provides caller-owned caches for data that is expensive to
// load, such as rule tables and product catalogs.
//
// A Cache holds one value produced by a LoaderFunc. The value is loaded on
// first use and again once it is older than the configured TTL. Concurrent
// callers that miss share a single load. When a reload fails and an older
// value exists, the older value keeps being served.
//
//	rules := store.New("rules", func(ctx context.Context) (*rules.Table, error) {
//	    return rules.Load(ctx, source)
//	}, store.WithTTL(10*time.Minute))
//
//	table, err := rules.Get(ctx)
//
// Invalidate drops the value so the next Get loads again; Reload loads
// immediately. WithBreaker puts a circuit breaker (github.com/sony/gobreaker)
// in front of the loader so a failing remote source is not retried on every
// request.
package store
