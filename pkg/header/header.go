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

package header

import "time"

// APIVersion is the version of the documents produced by basket.
const APIVersion = "basket.mchmarny.dev/v1"

// Metadata keys set by Init.
const (
	MetadataTimestamp = "timestamp"
	MetadataVersion   = "version"
)

// Kind names the document type.
type Kind string

const (
	KindRecommendation Kind = "Recommendation"
	KindProductList    Kind = "ProductList"
	KindRuleReload     Kind = "RuleReload"
)

var kinds = map[Kind]bool{
	KindRecommendation: true,
	KindProductList:    true,
	KindRuleReload:     true,
}

func (k Kind) String() string { return string(k) }

// IsValid reports whether k is a document type basket produces.
func (k Kind) IsValid() bool { return kinds[k] }

// Header identifies a response document.
type Header struct {
	Kind       Kind   `json:"kind,omitempty" yaml:"kind,omitempty"`
	APIVersion string `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`

	// Metadata records when and by which build the document was produced.
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Init stamps h as a fresh document of kind. version is the producing
// binary's version and is omitted when empty.
func (h *Header) Init(kind Kind, version string) {
	*h = Header{
		Kind:       kind,
		APIVersion: APIVersion,
		Metadata:   map[string]string{MetadataTimestamp: time.Now().UTC().Format(time.RFC3339)},
	}
	if version != "" {
		h.Metadata[MetadataVersion] = version
	}
}

// Timestamp returns the time recorded by Init, or the zero time.
func (h *Header) Timestamp() time.Time {
	if h == nil {
		return time.Time{}
	}
	ts, _ := time.Parse(time.RFC3339, h.Metadata[MetadataTimestamp])
	return ts
}
