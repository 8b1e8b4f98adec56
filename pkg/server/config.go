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

package server

import (
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/mchmarny/basket/pkg/defaults"
)

// Environment variables read by NewConfig.
const (
	EnvPort                   = "PORT"
	EnvShutdownTimeoutSeconds = "SHUTDOWN_TIMEOUT_SECONDS"
	EnvRateLimit              = "RATE_LIMIT"
	EnvRateLimitBurst         = "RATE_LIMIT_BURST"
	EnvMaxBodyBytes           = "MAX_BODY_BYTES"
)

// Config holds server configuration.
type Config struct {
	Name    string
	Version string

	// Handlers are the API routes, keyed by ServeMux pattern.
	Handlers map[string]http.HandlerFunc

	Address string
	Port    int

	// RateLimit and RateLimitBurst size the token bucket of each client.
	RateLimit      rate.Limit
	RateLimitBurst int
	// RateLimitIdle is how long an idle client's bucket is kept.
	RateLimitIdle time.Duration

	// MaxBodyBytes caps request bodies on API routes. Zero disables the cap.
	MaxBodyBytes int64

	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
}

// NewConfig returns the default configuration with environment overrides.
// Invalid values are logged and ignored.
func NewConfig() *Config {
	return parseConfig(os.Getenv)
}

func parseConfig(getenv func(string) string) *Config {
	cfg := &Config{
		Name:              "server",
		Version:           "undefined",
		Port:              8080,
		RateLimit:         100,
		RateLimitBurst:    200,
		RateLimitIdle:     10 * time.Minute,
		MaxBodyBytes:      1 << 20,
		ReadTimeout:       defaults.ServerReadTimeout,
		ReadHeaderTimeout: defaults.ServerReadHeaderTimeout,
		WriteTimeout:      defaults.ServerWriteTimeout,
		IdleTimeout:       defaults.ServerIdleTimeout,
		ShutdownTimeout:   defaults.ServerShutdownTimeout,
	}

	if v, ok := envInt(getenv, EnvPort, 1, 65535); ok {
		cfg.Port = v
	}
	if v, ok := envInt(getenv, EnvShutdownTimeoutSeconds, 1, 3600); ok {
		cfg.ShutdownTimeout = time.Duration(v) * time.Second
	}
	if v, ok := envFloat(getenv, EnvRateLimit); ok {
		cfg.RateLimit = rate.Limit(v)
	}
	if v, ok := envInt(getenv, EnvRateLimitBurst, 1, 1<<20); ok {
		cfg.RateLimitBurst = v
	}
	if v, ok := envInt(getenv, EnvMaxBodyBytes, 0, 1<<30); ok {
		cfg.MaxBodyBytes = int64(v)
	}

	return cfg
}

func envInt(getenv func(string) string, name string, lo, hi int) (int, bool) {
	s := strings.TrimSpace(getenv(name))
	if s == "" {
		return 0, false
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < lo || v > hi {
		slog.Warn("ignoring invalid environment value", "name", name, "value", s, "min", lo, "max", hi)
		return 0, false
	}
	return v, true
}

func envFloat(getenv func(string) string, name string) (float64, bool) {
	s := strings.TrimSpace(getenv(name))
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		slog.Warn("ignoring invalid environment value", "name", name, "value", s)
		return 0, false
	}
	return v, true
}
