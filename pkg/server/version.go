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
	"net/http"
	"slices"
	"strings"
)

const (
	// DefaultAPIVersion is used when the Accept header names no supported version.
	DefaultAPIVersion = "v1"

	// HeaderAPIVersion reports the negotiated version.
	HeaderAPIVersion = "X-API-Version"

	vendorMediaPrefix = "application/vnd.basket."
)

var supportedAPIVersions = []string{"v1"}

// negotiateAPIVersion returns the first supported version named by a vendor
// media type in the Accept header, e.g. application/vnd.basket.v1+json.
func negotiateAPIVersion(r *http.Request) string {
	for part := range strings.SplitSeq(r.Header.Get("Accept"), ",") {
		mediaType, _, _ := strings.Cut(part, ";")
		rest, ok := strings.CutPrefix(strings.TrimSpace(mediaType), vendorMediaPrefix)
		if !ok {
			continue
		}
		version, _, _ := strings.Cut(rest, "+")
		if isValidAPIVersion(version) {
			return version
		}
	}
	return DefaultAPIVersion
}

func isValidAPIVersion(version string) bool {
	return slices.Contains(supportedAPIVersions, version)
}

// SetAPIVersionHeader reports version in the response headers.
func SetAPIVersionHeader(w http.ResponseWriter, version string) {
	w.Header().Set(HeaderAPIVersion, version)
}
