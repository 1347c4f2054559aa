// internal/tools/registry.go
package tools

import "context"

// HandlerFunc executes one tool call with already-validated arguments.
type HandlerFunc func(ctx context.Context, args map[string]interface{}) (interface{}, error)

// Tool pairs the schema advertised through discovery with its handler. The
// InputSchema document is also what arguments are validated against before
// the handler runs.
type Tool struct {
	Name        string
	Description string
	InputSchema map[string]interface{}
	Handler     HandlerFunc
}

// Descriptor is the discovery-facing view of a tool.
type Descriptor struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// Registry holds the tool set in registration order.
type Registry struct {
	order []string
	tools map[string]*Tool
}

func NewRegistry() *Registry {
	return &Registry{tools: map[string]*Tool{}}
}

func (r *Registry) Register(tool *Tool) {
	if _, exists := r.tools[tool.Name]; !exists {
		r.order = append(r.order, tool.Name)
	}
	r.tools[tool.Name] = tool
}

func (r *Registry) Get(name string) (*Tool, bool) {
	tool, ok := r.tools[name]
	return tool, ok
}

func (r *Registry) List() []Descriptor {
	descriptors := make([]Descriptor, 0, len(r.order))
	for _, name := range r.order {
		tool := r.tools[name]
		descriptors = append(descriptors, Descriptor{
			Name:        tool.Name,
			Description: tool.Description,
			InputSchema: tool.InputSchema,
		})
	}
	return descriptors
}
