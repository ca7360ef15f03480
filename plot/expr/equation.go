package expr

import "strings"

// SplitEquation splits eq on its first '=' outside parentheses. implicit is
// false when there is no such '=' and the whole text is the right-hand side
// of y = f(x).
func SplitEquation(eq string) (left, right string, implicit bool) {
	depth := 0
	for i := 0; i < len(eq); i++ {
		switch eq[i] {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case '=':
			if depth == 0 {
				return strings.TrimSpace(eq[:i]), strings.TrimSpace(eq[i+1:]), true
			}
		}
	}
	return "", strings.TrimSpace(eq), false
}
