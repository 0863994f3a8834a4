package node

import (
	"fmt"
	"log/slog"
	"sort"
)

// Port declares one typed input or output of a node type.
type Port struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Kind    Kind   `json:"kind"`
	Default Value  `json:"default,omitempty"`
}

// Context is passed to every execution function. It carries the
// logger and collects non-fatal warnings for the evaluator to surface
// as diagnostics.
type Context struct {
	Logger *slog.Logger

	warnings []string
}

// Warn records a non-fatal warning for the current node execution.
func (c *Context) Warn(msg string) {
	c.warnings = append(c.warnings, msg)
	if c.Logger != nil {
		c.Logger.Warn(msg)
	}
}

// Warnings returns the warnings recorded so far.
func (c *Context) Warnings() []string {
	return c.warnings
}

// ExecFunc is a pure transformation from resolved input values to
// output values. It must not touch state outside its arguments and
// must return a value for every declared output port.
type ExecFunc func(inputs map[string]Value, ctx *Context) (map[string]Value, error)

// Definition describes one operator type: its typed ports and its
// execution function. Definitions are registered once at process
// start and never mutated.
type Definition struct {
	Type     string   `json:"type"`
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Inputs   []Port   `json:"inputs"`
	Outputs  []Port   `json:"outputs"`
	Execute  ExecFunc `json:"-"`
}

// HasGeometryOutput reports whether the definition declares a
// geometry-kinded output port.
func (d *Definition) HasGeometryOutput() bool {
	for _, p := range d.Outputs {
		if p.Kind == KindGeometry {
			return true
		}
	}
	return false
}

// InputPort returns the declared input port with the given id.
func (d *Definition) InputPort(id string) (Port, bool) {
	for _, p := range d.Inputs {
		if p.ID == id {
			return p, true
		}
	}
	return Port{}, false
}

// Registry is the static dispatch table from type tag to definition.
type Registry struct {
	defs map[string]*Definition
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*Definition)}
}

// Register validates and installs a definition. Per the node type
// contract, input and output port lists must be non-empty with unique
// port ids, and an execution function must be present.
func (r *Registry) Register(def *Definition) error {
	if def.Type == "" {
		return fmt.Errorf("node definition has empty type")
	}
	if _, exists := r.defs[def.Type]; exists {
		return fmt.Errorf("node type %q already registered", def.Type)
	}
	if len(def.Inputs) == 0 || len(def.Outputs) == 0 {
		return fmt.Errorf("node type %q must declare inputs and outputs", def.Type)
	}
	if def.Execute == nil {
		return fmt.Errorf("node type %q has no execute function", def.Type)
	}
	if err := uniquePorts(def.Inputs); err != nil {
		return fmt.Errorf("node type %q inputs: %w", def.Type, err)
	}
	if err := uniquePorts(def.Outputs); err != nil {
		return fmt.Errorf("node type %q outputs: %w", def.Type, err)
	}
	r.defs[def.Type] = def
	return nil
}

func uniquePorts(ports []Port) error {
	seen := make(map[string]bool, len(ports))
	for _, p := range ports {
		if p.ID == "" {
			return fmt.Errorf("port with empty id")
		}
		if seen[p.ID] {
			return fmt.Errorf("duplicate port id %q", p.ID)
		}
		seen[p.ID] = true
	}
	return nil
}

// Lookup returns the definition for a type tag.
func (r *Registry) Lookup(typ string) (*Definition, bool) {
	def, ok := r.defs[typ]
	return def, ok
}

// Types returns all registered type tags, sorted.
func (r *Registry) Types() []string {
	out := make([]string, 0, len(r.defs))
	for typ := range r.defs {
		out = append(out, typ)
	}
	sort.Strings(out)
	return out
}
