package blueprint

import (
	"math"
	"strconv"
	"strings"

	"curvelab/plot/expr"
)

// parseObject parses `{ key: value, ... }`. Keys are lowercased and quoted
// values are unquoted. ok is false when the braces do not match.
func parseObject(s string) (fields map[string]string, ok bool) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '{' || s[len(s)-1] != '}' {
		return nil, false
	}
	inner := s[1 : len(s)-1]
	parts, ok := splitTopLevel(inner)
	if !ok {
		return nil, false
	}

	fields = make(map[string]string, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		k, v, found := strings.Cut(part, ":")
		if !found {
			continue
		}
		key := strings.ToLower(unquote(strings.TrimSpace(k)))
		fields[key] = unquote(strings.TrimSpace(v))
	}
	return fields, true
}

// splitTopLevel splits s on commas that are outside quotes and brackets.
func splitTopLevel(s string) ([]string, bool) {
	var (
		out   []string
		depth int
		quote byte
		start int
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == '\\' {
				i++
				continue
			}
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'':
			quote = c
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
			if depth < 0 {
				return nil, false
			}
		case ',':
			if depth == 0 {
				out = append(out, s[start:i])
				start = i + 1
			}
		}
	}
	if depth != 0 || quote != 0 {
		return nil, false
	}
	return append(out, s[start:]), true
}

func unquote(s string) string {
	if len(s) >= 2 {
		if q := s[0]; (q == '"' || q == '\'') && s[len(s)-1] == q {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// ParseNumber coerces a literal field to a finite number. Plain numbers are
// accepted as-is; anything else is evaluated as a constant expression over
// the math library (for example "PI/2").
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(unquote(strings.TrimSpace(s)))
	if s == "" {
		return 0, false
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f, isFinite(f)
	}
	f, err := expr.EvalString(s, expr.Library())
	if err != nil {
		return 0, false
	}
	return f, isFinite(f)
}

func isFinite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
