package expr

import (
	"strconv"
	"unicode"
)

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokIllegal
	tokNumber
	tokIdent
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokPow
	tokLParen
	tokRParen
	tokComma
)

type token struct {
	kind tokenKind
	text string
	num  float64
	pos  int
}

type lexer struct {
	s string
	i int
}

func (l *lexer) next() token {
	for l.i < len(l.s) && unicode.IsSpace(rune(l.s[l.i])) {
		l.i++
	}
	if l.i >= len(l.s) {
		return token{kind: tokEOF, pos: l.i}
	}

	pos := l.i
	switch l.s[l.i] {
	case '+':
		l.i++
		return token{kind: tokPlus, text: "+", pos: pos}
	case '-':
		l.i++
		return token{kind: tokMinus, text: "-", pos: pos}
	case '*':
		if l.i+1 < len(l.s) && l.s[l.i+1] == '*' {
			l.i += 2
			return token{kind: tokPow, text: "**", pos: pos}
		}
		l.i++
		return token{kind: tokStar, text: "*", pos: pos}
	case '/':
		l.i++
		return token{kind: tokSlash, text: "/", pos: pos}
	case '^':
		l.i++
		return token{kind: tokPow, text: "^", pos: pos}
	case '(':
		l.i++
		return token{kind: tokLParen, text: "(", pos: pos}
	case ')':
		l.i++
		return token{kind: tokRParen, text: ")", pos: pos}
	case ',':
		l.i++
		return token{kind: tokComma, text: ",", pos: pos}
	}

	ch := rune(l.s[l.i])
	if isIdentStart(ch) {
		l.i++
		for l.i < len(l.s) && isIdentContinue(rune(l.s[l.i])) {
			l.i++
		}
		return token{kind: tokIdent, text: l.s[pos:l.i], pos: pos}
	}
	if ch == '.' || isDigit(ch) {
		l.i = scanNumber(l.s, l.i)
		txt := l.s[pos:l.i]
		f, err := strconv.ParseFloat(txt, 64)
		if err != nil || txt == "." {
			return token{kind: tokIllegal, text: txt, pos: pos}
		}
		return token{kind: tokNumber, text: txt, num: f, pos: pos}
	}

	l.i++
	return token{kind: tokIllegal, text: string(ch), pos: pos}
}

// scanNumber returns the end offset of the decimal literal starting at i.
// A dangling exponent marker ("1e") is not consumed.
func scanNumber(s string, i int) int {
	start := i
	for i < len(s) && isDigit(rune(s[i])) {
		i++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(rune(s[i])) {
			i++
		}
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(rune(s[k])) {
			k++
		}
		if k > j {
			i = k
		}
	}
	if i == start {
		return start + 1
	}
	return i
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || (r < 0x80 && unicode.IsLetter(r))
}

func isIdentContinue(r rune) bool {
	return isIdentStart(r) || isDigit(r)
}

// IsIdent reports whether s is a valid identifier.
func IsIdent(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		r := rune(s[i])
		if i == 0 && !isIdentStart(r) {
			return false
		}
		if !isIdentContinue(r) {
			return false
		}
	}
	return true
}
