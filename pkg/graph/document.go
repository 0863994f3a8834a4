package graph

import (
	"encoding/json"
	"fmt"
	"log/slog"

	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/chazu/turnery/pkg/node"
	"github.com/chazu/turnery/pkg/shape"
)

// OverrideMap maps input port ids to explicit values. Overrides are
// serialized as tagged values so the document stays self-describing.
type OverrideMap map[string]node.Value

// taggedValue is the wire form of an override.
type taggedValue struct {
	Kind  string          `json:"kind"`
	Value json.RawMessage `json:"value"`
}

// MarshalJSON encodes each override as {"kind": ..., "value": ...}.
// Only document-representable kinds (number, boolean, string,
// shapeKind, point2D, point2DList) can be persisted; computed kinds
// like geometry are rejected.
func (m OverrideMap) MarshalJSON() ([]byte, error) {
	out := make(map[string]taggedValue, len(m))
	for port, v := range m {
		tv, err := encodeValue(v)
		if err != nil {
			return nil, fmt.Errorf("override %q: %w", port, err)
		}
		out[port] = tv
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes tagged override values.
func (m *OverrideMap) UnmarshalJSON(data []byte) error {
	var raw map[string]taggedValue
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(OverrideMap, len(raw))
	for port, tv := range raw {
		v, err := decodeValue(tv)
		if err != nil {
			return fmt.Errorf("override %q: %w", port, err)
		}
		out[port] = v
	}
	*m = out
	return nil
}

func encodeValue(v node.Value) (taggedValue, error) {
	marshal := func(kind string, payload any) (taggedValue, error) {
		raw, err := json.Marshal(payload)
		if err != nil {
			return taggedValue{}, err
		}
		return taggedValue{Kind: kind, Value: raw}, nil
	}
	switch val := v.(type) {
	case node.Number:
		return marshal("number", float64(val))
	case node.Boolean:
		return marshal("boolean", bool(val))
	case node.String:
		return marshal("string", string(val))
	case node.ShapeKind:
		return marshal("shapeKind", shape.Kind(val).String())
	case node.Point2D:
		return marshal("point2D", [2]float64{val.X, val.Y})
	case node.Point2DList:
		pts := make([][2]float64, len(val))
		for i, p := range val {
			pts[i] = [2]float64{p.X, p.Y}
		}
		return marshal("point2DList", pts)
	default:
		if v == nil {
			return taggedValue{}, fmt.Errorf("nil value")
		}
		return taggedValue{}, fmt.Errorf("kind %s is not document-representable", v.Kind())
	}
}

func decodeValue(tv taggedValue) (node.Value, error) {
	switch tv.Kind {
	case "number":
		var f float64
		if err := json.Unmarshal(tv.Value, &f); err != nil {
			return nil, err
		}
		return node.Number(f), nil
	case "boolean":
		var b bool
		if err := json.Unmarshal(tv.Value, &b); err != nil {
			return nil, err
		}
		return node.Boolean(b), nil
	case "string":
		var s string
		if err := json.Unmarshal(tv.Value, &s); err != nil {
			return nil, err
		}
		return node.String(s), nil
	case "shapeKind":
		var s string
		if err := json.Unmarshal(tv.Value, &s); err != nil {
			return nil, err
		}
		kind, err := shape.ParseKind(s)
		if err != nil {
			return nil, err
		}
		return node.ShapeKind(kind), nil
	case "point2D":
		var p [2]float64
		if err := json.Unmarshal(tv.Value, &p); err != nil {
			return nil, err
		}
		return node.Point2D{X: p[0], Y: p[1]}, nil
	case "point2DList":
		var pts [][2]float64
		if err := json.Unmarshal(tv.Value, &pts); err != nil {
			return nil, err
		}
		list := make(node.Point2DList, len(pts))
		for i, p := range pts {
			list[i] = v2.Vec{X: p[0], Y: p[1]}
		}
		return list, nil
	default:
		return nil, fmt.Errorf("unknown value kind %q", tv.Kind)
	}
}

// document is the persisted shape of a graph.
type document struct {
	Nodes       []*Node      `json:"nodes"`
	Connections []Connection `json:"connections"`
}

// MarshalJSON serializes the graph document.
func (g *Graph) MarshalJSON() ([]byte, error) {
	return json.Marshal(document{
		Nodes:       g.nodes,
		Connections: g.connections,
	})
}

// Load parses a graph document. If several connections target the
// same input port, the last one wins and the earlier ones are dropped
// with a logged warning. A nil logger uses slog.Default().
func Load(data []byte, logger *slog.Logger) (*Graph, error) {
	if logger == nil {
		logger = slog.Default()
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("graph: parse document: %w", err)
	}

	g := New()
	for _, n := range doc.Nodes {
		if n == nil {
			return nil, fmt.Errorf("graph: document node is null")
		}
		if n.ID == "" {
			return nil, fmt.Errorf("graph: document node with empty id")
		}
		g.insert(n)
	}

	// Keep only the last connection per input port.
	winner := make(map[string]int, len(doc.Connections))
	for i, c := range doc.Connections {
		key := c.ToNode + "\x00" + c.ToPort
		if prev, dup := winner[key]; dup {
			logger.Warn("graph: duplicate connection to input port, keeping the later one",
				"node", c.ToNode, "port", c.ToPort, "dropped", doc.Connections[prev].ID)
		}
		winner[key] = i
	}
	for i, c := range doc.Connections {
		key := c.ToNode + "\x00" + c.ToPort
		if winner[key] != i {
			continue
		}
		if g.byID[c.FromNode] == nil || g.byID[c.ToNode] == nil {
			return nil, fmt.Errorf("graph: connection %s references missing node", c.ID)
		}
		g.connections = append(g.connections, c)
	}
	g.version++
	return g, nil
}
