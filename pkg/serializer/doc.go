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

// Package serializer reads and writes the JSON, YAML and table forms used
// by the CLI, the API server and the rule loaders.
//
// Writing:
//
//	w, err := serializer.CreateWriter(serializer.FormatTable, "")
//	if err != nil {
//	    return err
//	}
//	defer w.Close()
//	err = w.Serialize(ctx, resp)
//
// Table output is write-only. Values implementing TableRenderer print their
// own columns.
//
// Reading: OpenSource resolves a local path or an http(s) URL, Fetcher
// downloads remote files with bounded size and timeouts, and Decode parses
// JSON, YAML or TOML (github.com/pelletier/go-toml/v2). CSV parsing lives with the types that own the columns.
//
// HTTP handlers reply with RespondJSON.
package serializer
