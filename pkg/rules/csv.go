package rules

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	cnserrors "github.com/mchmarny/basket/pkg/errors"
	"github.com/mchmarny/basket/pkg/recommender"
)

// Column names required in a CSV rule table. Matching is case-insensitive.
const (
	ColumnAntecedents = "antecedents"
	ColumnConsequents = "consequents"
	ColumnConfidence  = "confidence"
	ColumnLift        = "lift"
)

var requiredColumns = []string{ColumnAntecedents, ColumnConsequents, ColumnConfidence, ColumnLift}

// ReadCSV reads a rule table with a header row. Columns other than the
// required ones are ignored. A leading unnamed index column is allowed.
func ReadCSV(r io.Reader) ([]recommender.Rule, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, cnserrors.New(cnserrors.ErrCodeInvalidRequest, "rule table is empty")
		}
		return nil, cnserrors.Wrap(cnserrors.ErrCodeInvalidRequest, "failed to read rule table header", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}

	cols := make(map[string]int, len(requiredColumns))
	for _, name := range requiredColumns {
		i, ok := index[name]
		if !ok {
			return nil, cnserrors.NewWithContext(cnserrors.ErrCodeInvalidRequest,
				fmt.Sprintf("rule table is missing required column %q", name),
				map[string]any{"column": name})
		}
		cols[name] = i
	}

	var out []recommender.Rule
	for row := 1; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, cnserrors.WrapWithContext(cnserrors.ErrCodeInvalidRequest,
				"failed to read rule table", err, map[string]any{"row": row})
		}

		field := func(name string) string {
			if i := cols[name]; i < len(rec) {
				return rec[i]
			}
			return ""
		}

		conf, err := parseNumber(field(ColumnConfidence), row, ColumnConfidence)
		if err != nil {
			return nil, err
		}
		lift, err := parseNumber(field(ColumnLift), row, ColumnLift)
		if err != nil {
			return nil, err
		}

		out = append(out, recommender.Rule{
			Antecedents: ParseItemSet(field(ColumnAntecedents)),
			Consequents: ParseItemSet(field(ColumnConsequents)),
			Confidence:  conf,
			Lift:        lift,
		})
	}

	return out, nil
}

func parseNumber(s string, row int, column string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, cnserrors.WrapWithContext(cnserrors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid %s value %q at row %d", column, s, row), err,
			map[string]any{"row": row, "column": column, "value": s})
	}
	if err := checkFinite(v, row, column); err != nil {
		return 0, err
	}
	return v, nil
}

// checkFinite rejects NaN and infinite scores. Rows are 1-based.
func checkFinite(v float64, row int, column string) error {
	if !math.IsNaN(v) && !math.IsInf(v, 0) {
		return nil
	}
	return cnserrors.NewWithContext(cnserrors.ErrCodeInvalidRequest,
		fmt.Sprintf("%s must be a finite number at row %d", column, row),
		map[string]any{"row": row, "column": column, "value": strconv.FormatFloat(v, 'g', -1, 64)})
}

// checkScores applies checkFinite to the confidence and lift of every rule.
func checkScores(list []recommender.Rule) error {
	for i, r := range list {
		if err := checkFinite(r.Confidence, i+1, ColumnConfidence); err != nil {
			return err
		}
		if err := checkFinite(r.Lift, i+1, ColumnLift); err != nil {
			return err
		}
	}
	return nil
}
