package serializer

import (
	"fmt"
	"io"
	"maps"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"
)

const emptyTableMessage = "<empty>"

func writeTable(out io.Writer, v any) error {
	header, rows := []string{"FIELD", "VALUE"}, [][]string(nil)
	msg := emptyTableMessage

	if tr, ok := v.(TableRenderer); ok {
		header, rows = tr.TableHeader(), tr.TableRows()
		if m, ok := v.(EmptyTableMessager); ok {
			msg = m.EmptyTableMessage()
		}
	} else {
		fields := map[string]string{}
		flatten(fields, "", reflect.ValueOf(v))
		for _, k := range slices.Sorted(maps.Keys(fields)) {
			rows = append(rows, []string{k, fields[k]})
		}
	}

	if len(rows) == 0 {
		_, err := fmt.Fprintln(out, msg)
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	underline := make([]string, len(header))
	for i, h := range header {
		underline[i] = strings.Repeat("-", len(h))
	}
	for _, line := range append([][]string{header, underline}, rows...) {
		fmt.Fprintln(tw, strings.Join(line, "\t"))
	}
	return tw.Flush()
}

// flatten records every leaf of v under a dotted key path.
func flatten(out map[string]string, key string, v reflect.Value) {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			if key != "" {
				out[key] = "<nil>"
			}
			return
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return
	}

	join := func(k string) string {
		if key == "" {
			return k
		}
		return key + "." + k
	}

	//nolint:exhaustive // scalars fall through to default
	switch v.Kind() {
	case reflect.Struct:
		for _, f := range reflect.VisibleFields(v.Type()) {
			if !f.IsExported() || f.Anonymous {
				continue
			}
			// promoted through a nil embedded pointer
			if fv, err := v.FieldByIndexErr(f.Index); err == nil {
				flatten(out, join(f.Name), fv)
			}
		}
	case reflect.Map:
		iter := v.MapRange()
		for iter.Next() {
			flatten(out, join(fmt.Sprint(iter.Key().Interface())), iter.Value())
		}
	case reflect.Slice, reflect.Array:
		for i := range v.Len() {
			flatten(out, join("["+strconv.Itoa(i)+"]"), v.Index(i))
		}
	default:
		if key == "" {
			key = "value"
		}
		out[key] = fmt.Sprint(v.Interface())
	}
}
