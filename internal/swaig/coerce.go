// In file: internal/swaig/coerce.go
package swaig

import (
	"fmt"
	"strconv"
	"strings"
)

// ArgKind is the declared type of a function argument. Type names arrive as
// strings at runtime; anything unrecognized is treated as text.
type ArgKind int

const (
	KindString ArgKind = iota
	KindInteger
	KindBoolean
)

func (k ArgKind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindBoolean:
		return "boolean"
	default:
		return "string"
	}
}

// ParseKind maps a signature type name to its kind.
func ParseKind(typeName string) ArgKind {
	switch strings.ToLower(strings.TrimSpace(typeName)) {
	case "integer":
		return KindInteger
	case "boolean":
		return KindBoolean
	default:
		return KindString
	}
}

// CoerceFunc converts raw operator input into a typed value.
type CoerceFunc func(raw string) (any, error)

// coercers is the dispatch table for argument kinds. New kinds register here
// without touching CollectArguments.
var coercers = map[ArgKind]CoerceFunc{
	KindString:  coerceString,
	KindInteger: coerceInteger,
	KindBoolean: coerceBoolean,
}

// CoercionError reports input that cannot be converted to the declared kind.
type CoercionError struct {
	Argument string
	Kind     ArgKind
	Input    string
	Err      error
}

func (e *CoercionError) Error() string {
	if e.Argument != "" {
		return fmt.Sprintf("argument %q: cannot convert %q to %s: %v", e.Argument, e.Input, e.Kind, e.Err)
	}
	return fmt.Sprintf("cannot convert %q to %s: %v", e.Input, e.Kind, e.Err)
}

func (e *CoercionError) Unwrap() error { return e.Err }

// Coerce converts raw to the given kind. Malformed input fails; there is no
// silent default.
func Coerce(kind ArgKind, raw string) (any, error) {
	fn, ok := coercers[kind]
	if !ok {
		fn = coerceString
	}
	v, err := fn(raw)
	if err != nil {
		return nil, &CoercionError{Kind: kind, Input: raw, Err: err}
	}
	return v, nil
}

func coerceString(raw string) (any, error) {
	return raw, nil
}

func coerceInteger(raw string) (any, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil, err
	}
	return n, nil
}

func coerceBoolean(raw string) (any, error) {
	switch strings.ToLower(raw) {
	case "true", "1", "yes":
		return true, nil
	default:
		return false, nil
	}
}
