package rules

import "strings"

const frozensetPrefix = "frozenset("

// ParseItemSet parses a serialized item set into its elements.
//
// Accepted forms: frozenset({'A', "B"}), {'A', 'B'}, A, B and the empty
// forms "", frozenset(), set(), {}, NaN. Quoted elements may contain commas.
// Elements are trimmed and unquoted; empty elements are dropped. The result
// keeps the order of the literal and may contain duplicates.
func ParseItemSet(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "nan") {
		return nil
	}

	switch {
	case strings.HasPrefix(s, frozensetPrefix) && strings.HasSuffix(s, ")"):
		s = s[len(frozensetPrefix) : len(s)-1]
	case strings.HasPrefix(s, "set(") && strings.HasSuffix(s, ")"):
		s = s[len("set(") : len(s)-1]
	}
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "{")
	s = strings.TrimSuffix(s, "}")

	var items []string
	for _, raw := range splitElements(s) {
		if item := unquote(raw); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// splitElements splits on commas outside single or double quotes.
func splitElements(s string) []string {
	var (
		out   []string
		start int
		quote rune
	)
	for i, r := range s {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"':
			quote = r
		case r == ',':
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	return append(out, s[start:])
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "'")
	s = strings.Trim(s, `"`)
	return strings.TrimSpace(s)
}
