package engine

import (
	"fmt"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/turnery/pkg/graph"
	"github.com/chazu/turnery/pkg/node"
	"github.com/chazu/turnery/pkg/shape"
)

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpNodeRef wraps a graph node id so it can be passed between
// builtins.
type sexpNodeRef struct {
	id  string
	typ string // node type, for error messages
}

func (n *sexpNodeRef) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(noderef %s %q)", n.typ, n.id)
}
func (n *sexpNodeRef) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks whether a Sexp is a preprocessed keyword string,
// returning the keyword name without the prefix.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword
// argument list.
type kwArgs struct {
	kw  []kwPair // declaration order preserved
	pos []zygo.Sexp
}

type kwPair struct {
	name  string
	value zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
func parseArgs(args []zygo.Sexp) kwArgs {
	var result kwArgs
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			value := zygo.Sexp(zygo.SexpNull)
			if i+1 < len(args) {
				value = args[i+1]
				i += 2
			} else {
				i++
			}
			result.kw = append(result.kw, kwPair{name: name, value: value})
		} else {
			result.pos = append(result.pos, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp, accepting preprocessed
// keywords as plain names.
func toString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], nil
	}
	return str.S, nil
}

// toBool extracts a bool from a Sexp.
func toBool(s zygo.Sexp) (bool, error) {
	if b, ok := s.(*zygo.SexpBool); ok {
		return b.Val, nil
	}
	return false, fmt.Errorf("expected boolean, got %T (%s)", s, s.SexpString(nil))
}

// toNodeRef extracts a node id from a sexpNodeRef.
func toNodeRef(s zygo.Sexp) (*sexpNodeRef, error) {
	if ref, ok := s.(*sexpNodeRef); ok {
		return ref, nil
	}
	return nil, fmt.Errorf("expected node reference, got %T (%s)", s, s.SexpString(nil))
}

// toPortValue converts a Sexp to a typed port value according to the
// port's declared kind.
func toPortValue(kind node.Kind, s zygo.Sexp) (node.Value, error) {
	switch kind {
	case node.KindNumber:
		f, err := toFloat64(s)
		if err != nil {
			return nil, err
		}
		return node.Number(f), nil
	case node.KindBoolean:
		b, err := toBool(s)
		if err != nil {
			return nil, err
		}
		return node.Boolean(b), nil
	case node.KindString:
		str, err := toString(s)
		if err != nil {
			return nil, err
		}
		return node.String(str), nil
	case node.KindShapeKind:
		str, err := toString(s)
		if err != nil {
			return nil, err
		}
		k, err := shape.ParseKind(str)
		if err != nil {
			return nil, err
		}
		return node.ShapeKind(k), nil
	default:
		return nil, fmt.Errorf("port kind %s cannot be set from script", kind)
	}
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the graph-building DSL into a zygomys
// environment. The builtins populate the provided graph during
// evaluation.
//
// Source code must be preprocessed with preprocessSource() before
// evaluation so that :keyword tokens become recognizable string
// literals.
func registerBuiltins(env *zygo.Zlisp, g *graph.Graph, registry *node.Registry) {

	// -----------------------------------------------------------------------
	// (node "pattern" :shape "square" :steps 8 :drift-x 10)
	// Adds a node and applies keyword arguments as typed input
	// overrides. Returns a node reference for wire/at/override.
	// -----------------------------------------------------------------------
	env.AddFunction("node", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.pos) != 1 {
			return zygo.SexpNull, fmt.Errorf("node: expected a type name, got %d positional args", len(pa.pos))
		}
		typ, err := toString(pa.pos[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("node: type: %w", err)
		}

		def, known := registry.Lookup(typ)
		if !known && len(pa.kw) > 0 {
			return zygo.SexpNull, fmt.Errorf("node: cannot set inputs on unknown type %q", typ)
		}

		n := g.AddNode(typ)
		for _, kw := range pa.kw {
			port, ok := def.InputPort(kw.name)
			if !ok {
				return zygo.SexpNull, fmt.Errorf("node %s: no input port %q", typ, kw.name)
			}
			v, err := toPortValue(port.Kind, kw.value)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("node %s: %s: %w", typ, kw.name, err)
			}
			if err := g.SetOverride(n.ID, port.ID, v); err != nil {
				return zygo.SexpNull, fmt.Errorf("node %s: %w", typ, err)
			}
		}
		return &sexpNodeRef{id: n.ID, typ: typ}, nil
	})

	// -----------------------------------------------------------------------
	// (wire from "pattern" to "pattern")
	// Connects an output port of one node to an input port of another.
	// -----------------------------------------------------------------------
	env.AddFunction("wire", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 4 {
			return zygo.SexpNull, fmt.Errorf("wire: expected (wire from \"port\" to \"port\")")
		}
		from, err := toNodeRef(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("wire: from: %w", err)
		}
		fromPort, err := toString(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("wire: from port: %w", err)
		}
		to, err := toNodeRef(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("wire: to: %w", err)
		}
		toPort, err := toString(args[3])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("wire: to port: %w", err)
		}
		if _, err := g.Connect(from.id, fromPort, to.id, toPort); err != nil {
			return zygo.SexpNull, fmt.Errorf("wire: %w", err)
		}
		return args[2], nil
	})

	// -----------------------------------------------------------------------
	// (at ref 120 80)
	// Sets the editor canvas position of a node. Evaluation ignores it.
	// -----------------------------------------------------------------------
	env.AddFunction("at", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("at: expected (at ref x y)")
		}
		ref, err := toNodeRef(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("at: %w", err)
		}
		x, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("at: x: %w", err)
		}
		y, err := toFloat64(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("at: y: %w", err)
		}
		g.Move(ref.id, x, y)
		return args[0], nil
	})

	// -----------------------------------------------------------------------
	// (override ref :steps 12)
	// Sets typed input overrides on an existing node.
	// -----------------------------------------------------------------------
	env.AddFunction("override", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.pos) != 1 {
			return zygo.SexpNull, fmt.Errorf("override: expected a node reference")
		}
		ref, err := toNodeRef(pa.pos[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("override: %w", err)
		}
		def, known := registry.Lookup(ref.typ)
		if !known {
			return zygo.SexpNull, fmt.Errorf("override: unknown node type %q", ref.typ)
		}
		for _, kw := range pa.kw {
			port, ok := def.InputPort(kw.name)
			if !ok {
				return zygo.SexpNull, fmt.Errorf("override %s: no input port %q", ref.typ, kw.name)
			}
			v, err := toPortValue(port.Kind, kw.value)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("override %s: %s: %w", ref.typ, kw.name, err)
			}
			if err := g.SetOverride(ref.id, port.ID, v); err != nil {
				return zygo.SexpNull, fmt.Errorf("override: %w", err)
			}
		}
		return pa.pos[0], nil
	})
}
