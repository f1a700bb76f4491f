package alarm

import (
	"errors"
	"strconv"
	"strings"
)

// ParseValue parses the base value of a numeric kind.
// Only decimal notation is accepted: hexadecimal mantissas and digit separators
// are syntax errors. Magnitudes beyond float64 parse as ±Inf without error.
func ParseValue(s string) (float64, error) {
	if hasHexPrefix(s) || strings.ContainsRune(s, '_') {
		return 0, &strconv.NumError{Func: "ParseFloat", Num: s, Err: strconv.ErrSyntax}
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, err
	}

	return value, nil
}

// hasHexPrefix reports whether s, after an optional sign, starts with 0x or 0X.
func hasHexPrefix(s string) bool {
	if s != "" && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}

	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}
