package builtin

import "reflect"

// Kind identifies the dynamic category of an expression value.
type Kind uint8

const (
	// KindInvalid is the kind of Go values outside the expression universe
	// (structs, channels, pointers, ...).
	KindInvalid Kind = iota

	KindString
	KindNumber
	KindBoolean
	KindArray
	KindObject
	KindNull
	KindFunction
)

// Kinds lists every valid kind in canonical order.
var Kinds = []Kind{
	KindString,
	KindNumber,
	KindBoolean,
	KindArray,
	KindObject,
	KindNull,
	KindFunction,
}

// String returns the lowercase name of the kind as it appears in signatures
// and in the result of typeof.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindNull:
		return "null"
	case KindFunction:
		return "function"
	default:
		return "invalid"
	}
}

// ParseKind returns the kind with the given lowercase name.
func ParseKind(name string) (Kind, bool) {
	for _, k := range Kinds {
		if k.String() == name {
			return k, true
		}
	}

	return KindInvalid, false
}

// Is reports whether v classifies as kind k.
func (k Kind) Is(v any) bool {
	switch k {
	case KindString:
		return IsString(v)
	case KindNumber:
		return IsNumber(v)
	case KindBoolean:
		return IsBoolean(v)
	case KindArray:
		return IsArray(v)
	case KindObject:
		return IsObject(v)
	case KindNull:
		return IsNull(v)
	case KindFunction:
		return IsFunction(v)
	default:
		return false
	}
}

// KindOf returns the single kind that classifies v, or KindInvalid if v is
// not an expression value.
func KindOf(v any) Kind {
	for _, k := range Kinds {
		if k.Is(v) {
			return k
		}
	}

	return KindInvalid
}

// IsString reports whether v is a string.
func IsString(v any) bool {
	if _, ok := v.(string); ok {
		return true
	}

	return reflectKind(v) == reflect.String
}

// IsNumber reports whether v is an integer or floating-point number.
// Booleans are not numbers.
func IsNumber(v any) bool {
	switch v.(type) {
	case float64, float32, int, int64, int32, int16, int8,
		uint, uint64, uint32, uint16, uint8, uintptr:
		return true
	}

	switch reflectKind(v) {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Uint64, reflect.Uintptr, reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

// IsBoolean reports whether v is a bool.
func IsBoolean(v any) bool {
	if _, ok := v.(bool); ok {
		return true
	}

	return reflectKind(v) == reflect.Bool
}

// IsArray reports whether v is a slice or array. Nil slices are arrays.
func IsArray(v any) bool {
	if _, ok := v.([]any); ok {
		return true
	}

	switch reflectKind(v) {
	case reflect.Slice, reflect.Array:
		return true
	default:
		return false
	}
}

// IsObject reports whether v is a map keyed by strings.
// Arrays and null are never objects.
func IsObject(v any) bool {
	if _, ok := v.(map[string]any); ok {
		return true
	}

	t := reflect.TypeOf(v)

	return t != nil && t.Kind() == reflect.Map && t.Key().Kind() == reflect.String
}

// IsNull reports whether v is the untyped nil.
func IsNull(v any) bool { return v == nil }

// IsFunction reports whether v is callable: a *Builtin or any Go func.
// A nil *Builtin is not callable and classifies as nothing.
func IsFunction(v any) bool {
	if b, ok := v.(*Builtin); ok {
		return b != nil
	}

	return reflectKind(v) == reflect.Func
}

func reflectKind(v any) reflect.Kind {
	if v == nil {
		return reflect.Invalid
	}

	return reflect.TypeOf(v).Kind()
}
