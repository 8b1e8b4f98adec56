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

// Package server is the HTTP server behind basketd.
//
// It serves caller-supplied routes behind a fixed middleware chain and adds
// system routes for probes and metrics.
//
//	s := server.New(
//	    server.WithName("basketd"),
//	    server.WithVersion(version),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "/v1/recommendations": builder.HandleRecommendations,
//	    }),
//	    server.WithReadinessCheck("rules", rulesLoaded),
//	)
//	err := s.Run(ctx)
//
// Run blocks until ctx is canceled or SIGINT/SIGTERM arrives, then drains
// connections within the shutdown timeout.
//
// # Middleware
//
// API routes are wrapped, outermost first, by Prometheus metrics, API
// version negotiation (a vendor media type in Accept, echoed as X-API-Version),
// request IDs (X-Request-Id), panic recovery, per-client rate limiting,
// access logging at debug level and a request body cap.
//
// Rate limiting keeps one token bucket per client IP. Responses carry
// X-RateLimit-Limit and X-RateLimit-Remaining, and a rejected request gets
// 429 with Retry-After. Buckets idle longer than RateLimitIdle are dropped.
//
// # System Routes
//
//	GET /        name, version, readiness and the route list
//	GET /health  liveness, always 200
//	GET /ready   503 before Start, during shutdown, or while any
//	             readiness check fails
//	GET /metrics Prometheus exposition
//
// System routes bypass the middleware chain.
//
// # Errors
//
// Handlers reply with WriteError or WriteErrorFromErr, which map pkg/errors
// codes to an HTTP status and a retryable flag:
//
//	{"code":"INVALID_REQUEST","message":"basket must contain at least one item",
//	 "requestId":"550e8400-e29b-41d4-a716-446655440000",
//	 "timestamp":"2025-12-22T12:00:00Z","retryable":false}
//
// # Configuration
//
// PORT (8080), SHUTDOWN_TIMEOUT_SECONDS, RATE_LIMIT (requests per second per
// client, 100), RATE_LIMIT_BURST (200) and MAX_BODY_BYTES (1 MiB, 0 disables).
package server
