// In file: internal/tools/manager.go
package tools

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ErrToolNotFound is returned when a call names a tool that was never registered.
var ErrToolNotFound = errors.New("tool not found")

type registeredTool struct {
	executor ToolExecutor
	schema   *gojsonschema.Schema
}

// ToolManager holds a registry of all available tools.
type ToolManager struct {
	tools map[string]registeredTool
}

func NewToolManager() *ToolManager {
	return &ToolManager{
		tools: make(map[string]registeredTool),
	}
}

// Register adds a new tool to the manager's registry. The parameter schema
// is compiled once here so every call can be validated cheaply.
func (tm *ToolManager) Register(tool ToolExecutor) error {
	def := tool.Definition()
	name := def.Function.Name
	if name == "" {
		return errors.New("tool definition has no name")
	}
	if _, exists := tm.tools[name]; exists {
		return fmt.Errorf("tool '%s' already registered", name)
	}
	schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(def.Function.Parameters))
	if err != nil {
		return fmt.Errorf("invalid parameter schema for tool '%s': %w", name, err)
	}
	tm.tools[name] = registeredTool{executor: tool, schema: schema}
	return nil
}

// GetDefinitions returns all registered tool definitions sorted by name.
func (tm *ToolManager) GetDefinitions() []Tool {
	defs := make([]Tool, 0, len(tm.tools))
	for _, name := range tm.Names() {
		defs = append(defs, tm.tools[name].executor.Definition())
	}
	return defs
}

// Definition returns the definition of one tool.
func (tm *ToolManager) Definition(name string) (Tool, bool) {
	t, ok := tm.tools[name]
	if !ok {
		return Tool{}, false
	}
	return t.executor.Definition(), true
}

// Names returns the registered tool names in sorted order.
func (tm *ToolManager) Names() []string {
	names := make([]string, 0, len(tm.tools))
	for name := range tm.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Execute validates the arguments against the tool's schema and runs it.
// An empty arguments string is treated as an empty object.
func (tm *ToolManager) Execute(ctx context.Context, name, arguments string) (string, error) {
	t, ok := tm.tools[name]
	if !ok {
		return "", fmt.Errorf("%w: '%s'", ErrToolNotFound, name)
	}
	if strings.TrimSpace(arguments) == "" {
		arguments = "{}"
	}

	result, err := t.schema.Validate(gojsonschema.NewStringLoader(arguments))
	if err != nil {
		return "", toolErrorf(err, "Error: the arguments for %s could not be read.", name)
	}
	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			problems = append(problems, desc.String())
		}
		return "", toolErrorf(
			errors.New(strings.Join(problems, "; ")),
			"Error: invalid arguments for %s: %s.", name, strings.Join(problems, "; "),
		)
	}
	return t.executor.Execute(ctx, arguments)
}

// ToolCount returns the number of registered tools.
func (tm *ToolManager) ToolCount() int {
	return len(tm.tools)
}
