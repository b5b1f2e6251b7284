package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"reflect"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/jsone/builtin"
)

// Output formats accepted by the --output flag.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// render writes v to w in the named output format, followed by a newline
// where the encoding does not already end in one.
//
// Text renders scalars with [builtin.Text] and anything else as compact JSON.
func render(w io.Writer, format string, v any) error {
	v = plain(v)

	var (
		out []byte
		err error
	)

	switch format {
	case OutputYAML:
		out, err = yaml.Marshal(v)
		if err != nil {
			return ErrYAMLMarshal.Wrap(err)
		}

	case OutputJSON:
		out, err = json.Marshal(v)
		if err != nil {
			return ErrJSONMarshal.Wrap(err)
		}

		out = append(out, '\n')

	default:
		switch builtin.KindOf(v) {
		case builtin.KindArray, builtin.KindObject:
			out, err = json.Marshal(v)
			if err != nil {
				return ErrJSONMarshal.Wrap(err)
			}

		default:
			out = []byte(builtin.Text(v))
		}

		out = append(out, '\n')
	}

	if _, err := w.Write(out); err != nil {
		return ErrWriteOutput.Wrap(err).With(slog.String("format", format))
	}

	return nil
}

// plain converts v into values every encoder accepts: builtins become their
// signature text and non-finite numbers become their text form.
func plain(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case *builtin.Builtin:
		return x.Signature()
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return builtin.Text(x)
		}

		return x
	case map[string]any:
		m := make(map[string]any, len(x))
		for k, e := range x {
			m[k] = plain(e)
		}

		return m
	case []any:
		s := make([]any, len(x))
		for i, e := range x {
			s[i] = plain(e)
		}

		return s
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return []any{}
		}

		s := make([]any, rv.Len())
		for i := range s {
			s[i] = plain(rv.Index(i).Interface())
		}

		return s

	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return fmt.Sprint(v)
		}

		m := make(map[string]any, rv.Len())
		for iter := rv.MapRange(); iter.Next(); {
			m[iter.Key().String()] = plain(iter.Value().Interface())
		}

		return m

	default:
		return v
	}
}
