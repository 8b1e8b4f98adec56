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

package serializer

// TableRenderer is implemented by values that print as columns in table
// format. Anything else is flattened to FIELD/VALUE rows.
type TableRenderer interface {
	TableHeader() []string
	// TableRows returns one row per record with len(TableHeader()) cells.
	TableRows() [][]string
}

// EmptyTableMessager replaces the default "<empty>" line printed for a
// TableRenderer with no rows.
type EmptyTableMessager interface {
	EmptyTableMessage() string
}
