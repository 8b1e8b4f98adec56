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

package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/mchmarny/basket/pkg/recommendation"
	"github.com/mchmarny/basket/pkg/serializer"
)

// runAction parses args against flags and hands the parsed command to fn.
func runAction(t *testing.T, flags []cli.Flag, args []string, fn func(*cli.Command)) {
	t.Helper()
	cmd := &cli.Command{
		Name:  "test",
		Flags: flags,
		Action: func(_ context.Context, c *cli.Command) error {
			fn(c)
			return nil
		},
	}
	require.NoError(t, cmd.Run(context.Background(), append([]string{"test"}, args...)))
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		value   string
		want    serializer.Format
		wantErr bool
	}{
		{value: "yaml", want: serializer.FormatYAML},
		{value: "JSON", want: serializer.FormatJSON},
		{value: "table", want: serializer.FormatTable},
		{value: "csv", wantErr: true},
		{value: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run("format="+tt.value, func(t *testing.T) {
			runAction(t, []cli.Flag{formatFlag()}, []string{"--format", tt.value}, func(c *cli.Command) {
				got, err := parseOutputFormat(c)
				if tt.wantErr {
					assert.Error(t, err)
					return
				}
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			})
		})
	}
}

func TestBuildQueryFromCmd(t *testing.T) {
	flags := []cli.Flag{
		&cli.StringSliceFlag{Name: "item"},
		&cli.StringFlag{Name: "items"},
		&cli.FloatFlag{Name: "min-confidence", Value: 0.05},
		&cli.IntFlag{Name: "top-n", Value: 5},
	}

	var q *recommendation.Query
	runAction(t, flags,
		[]string{"--item", "bread", "--item", "milk", "--items", "jam, butter", "--top-n", "3"},
		func(c *cli.Command) { q = buildQueryFromCmd(c) })

	require.NotNil(t, q)
	// whitespace is left for the query normalizer
	assert.Equal(t, []string{"bread", "milk", "jam", " butter"}, q.Items)
	assert.Equal(t, 3, q.TopN)
	assert.InDelta(t, 0.05, q.MinConfidence, 1e-9)
}
