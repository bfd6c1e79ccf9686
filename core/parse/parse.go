// Package parse has the numeric token parsers used on replay records.
//
// Floats are converted with an integer mantissa and a power-of-ten scale.
// The result can be a few ULP away from the correctly rounded value, which is
// fine for deviation statistics but not for round-tripping text.
package parse

import (
	"fmt"
	"math"
)

// maxMantissaDigits is the number of significant digits that fit in a uint64.
const maxMantissaDigits = 19

// maxExponent bounds the exponent so absurd tokens do not loop.
const maxExponent = 10000

var pow10tab = [...]float64{
	1e0, 1e1, 1e2, 1e3, 1e4, 1e5, 1e6, 1e7, 1e8, 1e9, 1e10, 1e11,
	1e12, 1e13, 1e14, 1e15, 1e16, 1e17, 1e18, 1e19, 1e20, 1e21, 1e22,
}

// ParseError reports a token that is not a number in the replay grammar.
type ParseError struct {
	Token  string
	Kind   string // "integer" or "float"
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Kind, e.Token, e.Reason)
}

func intError(b []byte, reason string) error {
	return &ParseError{Token: string(b), Kind: "integer", Reason: reason}
}

func floatError(b []byte, reason string) error {
	return &ParseError{Token: string(b), Kind: "float", Reason: reason}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// ParseInt parses an optionally signed decimal integer.
func ParseInt(b []byte) (int64, error) {
	if len(b) == 0 {
		return 0, intError(b, "empty token")
	}
	i, neg := 0, false
	switch b[0] {
	case '-':
		neg = true
		i++
	case '+':
		i++
	}
	if i == len(b) {
		return 0, intError(b, "no digits")
	}

	limit := uint64(math.MaxInt64)
	if neg {
		limit++
	}
	var n uint64
	for ; i < len(b); i++ {
		c := b[i]
		if !isDigit(c) {
			return 0, intError(b, fmt.Sprintf("unexpected byte %q", c))
		}
		d := uint64(c - '0')
		if n > (limit-d)/10 {
			return 0, intError(b, "out of range")
		}
		n = n*10 + d
	}
	if neg {
		return -int64(n), nil
	}
	return int64(n), nil
}

// ParseFloat parses an optionally signed decimal number with an optional
// fraction and exponent. Hex, inf and nan are not part of the grammar.
func ParseFloat(b []byte) (float64, error) {
	if len(b) == 0 {
		return 0, floatError(b, "empty token")
	}
	i, neg := 0, false
	switch b[0] {
	case '-':
		neg = true
		i++
	case '+':
		i++
	}

	var mant uint64
	exp, digits := 0, 0
	sawDigit := false

	for ; i < len(b) && isDigit(b[i]); i++ {
		sawDigit = true
		if digits < maxMantissaDigits {
			mant = mant*10 + uint64(b[i]-'0')
			if mant != 0 {
				digits++
			}
		} else {
			exp++
		}
	}
	if i < len(b) && b[i] == '.' {
		i++
		for ; i < len(b) && isDigit(b[i]); i++ {
			sawDigit = true
			if digits < maxMantissaDigits {
				mant = mant*10 + uint64(b[i]-'0')
				if mant != 0 {
					digits++
				}
				exp--
			}
		}
	}
	if !sawDigit {
		return 0, floatError(b, "no digits")
	}

	if i < len(b) && (b[i] == 'e' || b[i] == 'E') {
		i++
		eneg := false
		if i < len(b) && (b[i] == '-' || b[i] == '+') {
			eneg = b[i] == '-'
			i++
		}
		if i == len(b) || !isDigit(b[i]) {
			return 0, floatError(b, "missing exponent digits")
		}
		e := 0
		for ; i < len(b) && isDigit(b[i]); i++ {
			if e < maxExponent {
				e = e*10 + int(b[i]-'0')
			}
		}
		if eneg {
			e = -e
		}
		exp += e
	}
	if i != len(b) {
		return 0, floatError(b, fmt.Sprintf("unexpected byte %q", b[i]))
	}

	f := float64(mant)
	if mant != 0 {
		switch {
		case exp == 0:
		case exp > 0 && exp < len(pow10tab):
			f *= pow10tab[exp]
		case exp < 0 && -exp < len(pow10tab):
			f /= pow10tab[-exp]
		default:
			for exp < -300 {
				f /= 1e300
				exp += 300
			}
			f *= math.Pow10(exp)
		}
	}
	if neg {
		f = -f
	}
	return f, nil
}

// Fields splits a record on spaces and tabs, appending the tokens to dst.
// The tokens alias line.
func Fields(line []byte, dst [][]byte) [][]byte {
	start := -1
	for i, c := range line {
		if c == ' ' || c == '\t' || c == '\r' {
			if start >= 0 {
				dst = append(dst, line[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		dst = append(dst, line[start:])
	}
	return dst
}
