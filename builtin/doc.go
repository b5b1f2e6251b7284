// Package builtin provides the native functions exposed to json-e style
// expressions.
//
// Every builtin is declared with [Define] from a [Spec] describing its
// argument signatures. The returned [*Builtin] validates arity and argument
// kinds on every call before dispatching to the native implementation, so
// implementations only ever see arguments of the kinds they declared.
//
// # Kinds
//
// Values are classified into seven disjoint kinds (see [Kind]):
//
//	string    Go string
//	number    any Go integer or floating-point value
//	boolean   Go bool
//	array     any slice or array
//	object    any map keyed by strings
//	null      untyped nil
//	function  *Builtin or any Go func
//
// # Signatures
//
// A [Signature] is a set of kinds written as alternatives, for example
// "string|number". Signatures are parsed once, when the builtin is declared.
//
// # Registry
//
// [Catalog] returns the process-wide set of builtins. [Merge] combines that
// set with caller bindings; caller bindings win on collision:
//
//	vars := builtin.Merge(map[string]any{"x": 1})
//	ctx := builtin.NewContext(vars)
//	res, err := vars["max"].(*builtin.Builtin).Call(ctx, 1, 5, 3) // 5
package builtin
