// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package defaults

import "time"

// Rule and catalogue loading.
const (
	// RuleLoadTimeout bounds one load of a rule table or product catalogue.
	RuleLoadTimeout = 20 * time.Second

	// RuleCacheTTL is how long a loaded table is served before the next
	// request triggers a reload from its source.
	RuleCacheTTL = 10 * time.Minute

	// SourceBreakerFailures consecutive load failures open a source's
	// circuit breaker for SourceBreakerCooldown.
	SourceBreakerFailures = 3
	SourceBreakerCooldown = 30 * time.Second
)

// Request handling. A cold load runs inside the request, so the handler
// timeout must exceed RuleLoadTimeout.
const (
	RecommendationHandlerTimeout = 30 * time.Second

	// RecommendationCacheTTL is the Cache-Control max-age of a recommendation.
	RecommendationCacheTTL = 5 * time.Minute

	CLICommandTimeout = 2 * time.Minute
)

// http.Server settings for basketd.
const (
	ServerReadHeaderTimeout = 5 * time.Second
	ServerReadTimeout       = 10 * time.Second
	ServerWriteTimeout      = 30 * time.Second
	ServerIdleTimeout       = 2 * time.Minute
	ServerShutdownTimeout   = 30 * time.Second
)

// Transport settings for fetching remote rule tables and product files.
const (
	HTTPClientTimeout         = 30 * time.Second
	HTTPConnectTimeout        = 5 * time.Second
	HTTPKeepAlive             = 30 * time.Second
	HTTPTLSHandshakeTimeout   = 5 * time.Second
	HTTPResponseHeaderTimeout = 10 * time.Second
	HTTPIdleConnTimeout       = 90 * time.Second
)
