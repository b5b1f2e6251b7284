package builtin

import (
	"encoding/json"
	"errors"
	"math"
	"math/big"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Text returns the canonical textual form of a string, number, boolean or
// null value. Arrays, objects and functions are rendered as join elements.
func Text(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	}

	switch KindOf(v) {
	case KindNumber:
		return formatNumber(v)
	case KindString:
		return reflect.ValueOf(v).String()
	case KindBoolean:
		return strconv.FormatBool(reflect.ValueOf(v).Bool())
	default:
		return joinText(v)
	}
}

// formatNumber renders numbers the way json-e does: integral values have no
// fraction, exponents are used outside [1e-6, 1e21), and non-finite values
// are spelled NaN and Infinity.
func formatNumber(v any) string {
	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32:
		return formatFloat(rv.Float(), 32)
	default:
		return formatFloat(toFloat(v), 64)
	}
}

func formatFloat(f float64, bitSize int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	if abs := math.Abs(f); abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, bitSize)
	}

	s := strconv.FormatFloat(f, 'e', -1, bitSize)
	mant, exp, _ := strings.Cut(s, "e")
	sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")

	return mant + "e" + sign + digits
}

// toFloat converts any number-kind value to float64.
func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	default:
		return math.NaN()
	}
}

var decimalLiteral = regexp.MustCompile(
	`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`,
)

// parseNumber converts text to a number. Unparsable text yields NaN.
func parseNumber(s string) float64 {
	s = strings.TrimFunc(s, isSpace)

	switch s {
	case "":
		return 0
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}

	if len(s) > 2 && s[0] == '0' {
		base := 0

		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}

		if base != 0 {
			return parseRadix(s[2:], base)
		}
	}

	if !decimalLiteral.MatchString(s) {
		return math.NaN()
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return math.NaN()
	}

	return f
}

// parseRadix converts the digits of a 0x, 0o or 0b literal. Literals wider
// than 64 bits round to the nearest float64.
func parseRadix(digits string, base int) float64 {
	if digits == "" || digits[0] == '+' || digits[0] == '-' {
		return math.NaN()
	}

	n, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return math.NaN()
	}

	f, _ := new(big.Float).SetInt(n).Float64()

	return f
}

// isSpace matches the whitespace removed by strip, lstrip and rstrip.
// NEL (U+0085) is not whitespace there, though unicode.IsSpace reports it.
func isSpace(r rune) bool {
	return r != '\u0085' && (unicode.IsSpace(r) || r == '\uFEFF')
}

// joinText renders one element of an array being joined: null is empty,
// arrays are joined with ",", objects are compact JSON.
func joinText(v any) string {
	switch KindOf(v) {
	case KindNull:
		return ""
	case KindString, KindNumber, KindBoolean:
		return Text(v)
	case KindArray:
		return joinArray(v, ",")
	case KindFunction:
		if b, ok := v.(*Builtin); ok {
			return b.Signature()
		}

		return "function"
	case KindObject:
		buf, err := json.Marshal(v)
		if err != nil {
			return "{}"
		}

		return string(buf)
	default:
		return ""
	}
}

func joinArray(v any, sep string) string {
	rv := reflect.ValueOf(v)
	parts := make([]string, rv.Len())

	for i := range parts {
		parts[i] = joinText(rv.Index(i).Interface())
	}

	return strings.Join(parts, sep)
}
