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

// Recommendation request defaults.
const (
	// MinConfidence is the confidence threshold of the primary matching pass.
	MinConfidence = 0.05

	// TopN is the number of recommendations returned when none is requested.
	TopN = 5

	// MaxTopN caps the number of recommendations a single request may ask for.
	MaxTopN = 100

	// ProductColumn is the transaction dataset column holding product names.
	ProductColumn = "Description"

	// ProductSearchLimit is the default number of products listed per request.
	ProductSearchLimit = 50
)
