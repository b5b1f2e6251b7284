package builtin

import (
	"log/slog"
	"strconv"
	"strings"
)

// Signature is the set of kinds accepted at one argument position.
// The zero Signature accepts nothing and marks a non-variadic [Spec].
type Signature struct {
	set  uint16
	text string
}

// ParseSignature parses kind names joined by "|", such as "string|number".
func ParseSignature(text string) (Signature, error) {
	var sig Signature

	for name := range strings.SplitSeq(text, "|") {
		k, ok := ParseKind(strings.TrimSpace(name))
		if !ok {
			return Signature{}, ErrSignature.
				WithMessage("invalid signature "+strconv.Quote(text)).
				With(
					slog.String("signature", text),
					slog.String("kind", name),
				)
		}

		sig.set |= 1 << k
	}

	sig.text = text

	return sig, nil
}

// MustSignature is like [ParseSignature] but panics on error. It is meant for
// static declarations.
func MustSignature(text string) Signature {
	sig, err := ParseSignature(text)
	if err != nil {
		panic(err)
	}

	return sig
}

// Accepts reports whether v classifies as at least one kind in s.
func (s Signature) Accepts(v any) bool {
	for _, k := range Kinds {
		if s.Has(k) && k.Is(v) {
			return true
		}
	}

	return false
}

// Has reports whether k is one of the alternatives of s.
func (s Signature) Has(k Kind) bool { return s.set&(1<<k) != 0 }

// IsZero reports whether s has no alternatives.
func (s Signature) IsZero() bool { return s.set == 0 }

// String returns the signature as declared.
func (s Signature) String() string { return s.text }
