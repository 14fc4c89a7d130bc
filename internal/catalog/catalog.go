// Package catalog is the tool-dispatch core: a fixed set of named,
// schema-validated, read-only projections over the loaded profile.
package catalog

import (
	"errors"
	"fmt"

	"github.com/madhaviai/my-profile-mcp-server/internal/profile"
)

// ErrUnknownTool reports an invocation of an unregistered tool name.
var ErrUnknownTool = errors.New("unknown tool")

// ErrInvalidArgument reports arguments that fail a tool's parameter schema.
var ErrInvalidArgument = errors.New("invalid argument")

// Args is a validated argument set passed to a projection.
type Args map[string]any

// String returns the string argument for key, or def when absent.
// Type correctness is guaranteed by Invoke's validation.
func (a Args) String(key, def string) string {
	if v, ok := a[key].(string); ok {
		return v
	}
	return def
}

// Param describes one tool parameter. Type is one of "string", "number",
// or "boolean".
type Param struct {
	Name        string
	Type        string
	Description string
	Required    bool
}

// Descriptor is one registered tool: its discovery metadata and the bound
// projection over the profile. Projections are pure — same profile and
// args always produce the same payload.
type Descriptor struct {
	Name        string
	Description string
	Params      []Param

	project func(p profile.Profile, args Args) any
}

// Catalog routes named invocations to their projections. The descriptor
// set is fixed at construction; there is no dynamic registration.
type Catalog struct {
	store *profile.Store
	tools []Descriptor
	index map[string]int
}

// New builds the catalog over the loaded profile store.
func New(store *profile.Store) *Catalog {
	c := &Catalog{
		store: store,
		tools: descriptors(),
		index: make(map[string]int),
	}
	for i, d := range c.tools {
		c.index[d.Name] = i
	}
	return c
}

// Tools returns the registered descriptors in registration order.
// The returned slice is stable across calls within one process.
func (c *Catalog) Tools() []Descriptor {
	out := make([]Descriptor, len(c.tools))
	copy(out, c.tools)
	return out
}

// Invoke looks up the named tool, validates args against its parameter
// schema, and runs the projection over the current profile. Failures wrap
// ErrUnknownTool or ErrInvalidArgument; they are never fatal.
func (c *Catalog) Invoke(name string, args map[string]any) (any, error) {
	i, ok := c.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTool, name)
	}
	d := c.tools[i]

	validated, err := validateArgs(d, args)
	if err != nil {
		return nil, err
	}

	return d.project(c.store.Profile(), validated), nil
}

// validateArgs checks required parameters and basic types. Declared
// parameters with null values are treated as absent; undeclared arguments
// are ignored.
func validateArgs(d Descriptor, args map[string]any) (Args, error) {
	validated := make(Args, len(d.Params))
	for _, p := range d.Params {
		v, ok := args[p.Name]
		if !ok || v == nil {
			if p.Required {
				return nil, fmt.Errorf("%w: tool %q: missing required parameter %q", ErrInvalidArgument, d.Name, p.Name)
			}
			continue
		}

		switch p.Type {
		case "string":
			if _, ok := v.(string); !ok {
				return nil, typeError(d.Name, p, v)
			}
		case "number":
			switch v.(type) {
			case float64, int, int64:
			default:
				return nil, typeError(d.Name, p, v)
			}
		case "boolean":
			if _, ok := v.(bool); !ok {
				return nil, typeError(d.Name, p, v)
			}
		default:
			return nil, fmt.Errorf("%w: tool %q: parameter %q has unsupported schema type %q", ErrInvalidArgument, d.Name, p.Name, p.Type)
		}
		validated[p.Name] = v
	}
	return validated, nil
}

func typeError(tool string, p Param, v any) error {
	return fmt.Errorf("%w: tool %q: parameter %q must be a %s, got %T", ErrInvalidArgument, tool, p.Name, p.Type, v)
}
