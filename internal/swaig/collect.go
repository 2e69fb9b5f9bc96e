// In file: internal/swaig/collect.go
package swaig

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

// ErrFunctionNotFound is returned when a signature list does not contain the
// function under test.
var ErrFunctionNotFound = errors.New("function not found")

// SelectSignature picks the signature named name.
func SelectSignature(sigs []Signature, name string) (*Signature, error) {
	for i := range sigs {
		if sigs[i].Function == name {
			return &sigs[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrFunctionNotFound, name)
}

// Prompter asks the operator for the raw value of one argument. An empty
// answer means "not supplied".
type Prompter interface {
	Prompt(name string, prop Property, required bool) (string, error)
}

// CollectArguments prompts for every declared property, in name order, and
// returns the typed arguments. Optional arguments left blank are omitted;
// required ones are always coerced, so a blank required integer fails.
func CollectArguments(sig *Signature, p Prompter) (map[string]any, error) {
	names := make([]string, 0, len(sig.Argument.Properties))
	for name := range sig.Argument.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	args := make(map[string]any, len(names))
	for _, name := range names {
		prop := sig.Argument.Properties[name]
		required := sig.Argument.IsRequired(name)

		raw, err := p.Prompt(name, prop, required)
		if err != nil {
			return nil, fmt.Errorf("failed to read argument %q: %w", name, err)
		}
		if raw == "" && !required {
			continue
		}

		value, err := Coerce(ParseKind(prop.Type), raw)
		if err != nil {
			var ce *CoercionError
			if errors.As(err, &ce) {
				ce.Argument = name
			}
			return nil, err
		}
		args[name] = value
	}
	return args, nil
}

// LinePrompter reads one line of input per argument.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLinePrompter prompts on out and reads answers from in.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(in), out: out}
}

func (lp *LinePrompter) Prompt(name string, prop Property, required bool) (string, error) {
	need := "optional"
	if required {
		need = "required"
	}
	kind := prop.Type
	if kind == "" {
		kind = KindString.String()
	}
	if prop.Description != "" {
		fmt.Fprintf(lp.out, "%s (%s, %s) - %s: ", name, kind, need, prop.Description)
	} else {
		fmt.Fprintf(lp.out, "%s (%s, %s): ", name, kind, need)
	}

	line, err := lp.in.ReadString('\n')
	// Exhausted input answers every remaining argument with a blank.
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
