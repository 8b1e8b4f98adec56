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

// Package logging configures the process-wide slog logger for the basket
// binaries: JSON to stderr, with module and version on every record.
//
// The level comes from an explicit value (the CLI --log-level flag) or from
// LOG_LEVEL. Accepted names are debug, info, warn (or warning) and error;
// anything else means info. Debug records also carry their source location.
//
//	logging.SetDefaultStructuredLogger("basketd", version)
//	slog.Info("rules loaded", "count", 1520)
//
// produces
//
//	{"time":"...","level":"INFO","msg":"rules loaded","module":"basketd","version":"v1.0.0","count":1520}
package logging
