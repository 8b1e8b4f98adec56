package defaults

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimeoutOrdering(t *testing.T) {
	// a cold rule load happens inside a request
	assert.Less(t, RuleLoadTimeout, RecommendationHandlerTimeout)
	assert.LessOrEqual(t, RecommendationHandlerTimeout, ServerWriteTimeout)
	assert.Less(t, RecommendationHandlerTimeout, CLICommandTimeout)

	assert.LessOrEqual(t, ServerReadHeaderTimeout, ServerReadTimeout)
	assert.LessOrEqual(t, ServerReadTimeout, ServerWriteTimeout)

	assert.Less(t, HTTPConnectTimeout, HTTPClientTimeout)
	assert.Less(t, HTTPResponseHeaderTimeout, HTTPClientTimeout)
	assert.LessOrEqual(t, HTTPClientTimeout, RuleLoadTimeout+RecommendationHandlerTimeout)
}

func TestCacheTTLs(t *testing.T) {
	assert.Positive(t, RuleCacheTTL)
	assert.Positive(t, RecommendationCacheTTL)
	assert.LessOrEqual(t, RecommendationCacheTTL, RuleCacheTTL)
}

func TestRecommendationDefaults(t *testing.T) {
	assert.GreaterOrEqual(t, MinConfidence, 0.0)
	assert.LessOrEqual(t, MinConfidence, 1.0)
	assert.GreaterOrEqual(t, TopN, 1)
	assert.LessOrEqual(t, TopN, MaxTopN)
	assert.Positive(t, ProductSearchLimit)
	assert.NotEmpty(t, ProductColumn)
}

func TestSourceBreaker(t *testing.T) {
	assert.Positive(t, SourceBreakerFailures)
	// an open breaker should recover well before the cached table expires
	assert.Less(t, SourceBreakerCooldown, RuleCacheTTL)
}
