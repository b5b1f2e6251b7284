package repl

import (
	"strings"

	"github.com/ardnew/jsone/builtin"
)

// functionCall describes the innermost unclosed call around a cursor.
type functionCall struct {
	name     string
	argIndex int
	inCall   bool
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// detectFunctionCall finds the innermost call whose argument list contains
// byte offset cursor, and the zero-based index of the argument being typed.
// Parentheses inside string literals are not distinguished.
func detectFunctionCall(input string, cursor int) functionCall {
	cursor = min(max(cursor, 0), len(input))

	open, depth := -1, 0

	for i := cursor - 1; i >= 0 && open < 0; i-- {
		switch input[i] {
		case ')', ']':
			depth++
		case '(', '[':
			if depth == 0 && input[i] == '(' {
				open = i
			} else if depth > 0 {
				depth--
			}
		}
	}

	if open < 0 {
		return functionCall{}
	}

	start := open
	for start > 0 && isIdentByte(input[start-1]) {
		start--
	}

	name := input[start:open]
	if name == "" {
		return functionCall{}
	}

	arg := 0
	depth = 0

	for i := open + 1; i < cursor; i++ {
		switch input[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ',':
			if depth == 0 {
				arg++
			}
		}
	}

	return functionCall{name: name, argIndex: arg, inCall: true}
}

// signatureParams returns the parameter descriptions of a builtin, with
// variadic parameters suffixed by "...".
func signatureParams(b *builtin.Builtin) []string {
	spec := b.Spec()

	if spec.IsVariadic() {
		return []string{spec.Variadic.String() + "..."}
	}

	params := make([]string, len(spec.Args))
	for i, sig := range spec.Args {
		params[i] = sig.String()
	}

	return params
}

// renderSignatureHint renders the signature of b with the parameter at
// argIndex highlighted. A variadic parameter stays highlighted for every
// argument it absorbs.
func renderSignatureHint(b *builtin.Builtin, argIndex int) string {
	params := signatureParams(b)

	var sb strings.Builder

	sb.WriteString(signatureNameStyle.Render(b.Name()))
	sb.WriteString(signatureStyle.Render("("))

	for i, param := range params {
		if i > 0 {
			sb.WriteString(signatureStyle.Render(", "))
		}

		variadic := strings.HasSuffix(param, "...")
		if argIndex == i || (variadic && argIndex >= i) {
			sb.WriteString(currentParamStyle.Render(param))
		} else {
			sb.WriteString(signatureStyle.Render(param))
		}
	}

	sb.WriteString(signatureStyle.Render(")"))

	return sb.String()
}
