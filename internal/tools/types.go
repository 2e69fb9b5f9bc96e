// In file: internal/tools/types.go

// Package tools defines the movie functions the voice agent can call and the
// provider-agnostic data structures used to describe them. Each definition is
// translated into a SWAIG signature by the webhook server.
package tools

// ToolTypeFunction is the standard type for function-based tools.
const ToolTypeFunction = "function"

// Tool defines the schema for a function that can be described to the voice agent.
type Tool struct {
	// Type specifies the type of tool, which is always "function".
	Type string `json:"type"`
	// Function holds the detailed definition of the function.
	Function Function `json:"function"`
}

// Function defines the name, description, and parameters of a callable tool.
type Function struct {
	// Name is the name the agent uses to call the function (e.g., "search_movie").
	Name string `json:"name"`
	// Description is what the agent reads to decide when the tool applies.
	Description string `json:"description"`
	// Parameters defines the arguments the function accepts, structured as a JSON Schema.
	Parameters JSONSchema `json:"parameters"`
}

// JSONSchema is the subset of JSON Schema used for tool parameters. It is
// also what gojsonschema validates incoming arguments against, so every
// field here must keep its JSON Schema meaning.
type JSONSchema struct {
	// Type is the JSON type of the node ("object", "string", "integer", "boolean").
	Type string `json:"type"`
	// Description explains what a specific parameter is for.
	Description string `json:"description,omitempty"`
	// Enum restricts a string parameter to a fixed set of values.
	Enum []string `json:"enum,omitempty"`
	// Default documents the value the tool uses when the argument is omitted.
	Default any `json:"default,omitempty"`
	// Properties describes the parameters of an object.
	Properties map[string]*JSONSchema `json:"properties,omitempty"`
	// Required is a list of parameter names that are mandatory for a function call.
	Required []string `json:"required,omitempty"`
}

// NewFunctionTool is a helper that builds a Tool of type "function".
func NewFunctionTool(name, description string, parameters JSONSchema) Tool {
	return Tool{
		Type: ToolTypeFunction,
		Function: Function{
			Name:        name,
			Description: description,
			Parameters:  parameters,
		},
	}
}

// languageParam is shared by every TMDB tool.
func languageParam() *JSONSchema {
	return &JSONSchema{
		Type:        "string",
		Description: "Language of the results",
		Default:     "en-US",
	}
}

func movieIDParam() *JSONSchema {
	return &JSONSchema{
		Type:        "integer",
		Description: "The TMDB ID of the movie",
	}
}

func regionParam() *JSONSchema {
	return &JSONSchema{
		Type:        "string",
		Description: "Specify a region to filter release dates (e.g., US)",
	}
}
