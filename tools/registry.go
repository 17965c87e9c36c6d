// Package tools provides a metadata-driven registry for MCP tool definitions.
// It keeps main.go small by defining tools declaratively and using type-safe
// handlers to register them.
package tools

// ToolSpec defines a tool's metadata for declarative registration.
// Each spec maps to a checker method with matching Args/Result types.
type ToolSpec struct {
	// Name is the MCP tool name (e.g., "validate_identifier")
	Name string

	// Method is the checker method name (e.g., "Validate")
	Method string

	// Description is the tool description shown to LLMs
	Description string

	// Title is the human-readable tool title for annotations
	Title string

	// Category groups tools logically (validation, catalogue, mail)
	Category string

	// ReadOnly indicates the tool doesn't modify any state
	ReadOnly bool

	// Destructive indicates the tool can delete or overwrite data
	Destructive bool

	// Idempotent indicates repeated calls have the same effect
	Idempotent bool

	// OpenWorld indicates the tool accesses external resources
	OpenWorld bool
}

// ptr is a helper to create a pointer to a value.
func ptr[T any](v T) *T {
	return &v
}
