// Package graph defines the dataflow node graph document and its
// evaluator. The graph is owned by the editing layer; the evaluator
// borrows it read-only for one pass at a time.
package graph

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/chazu/turnery/pkg/node"
)

// Point is an editor canvas position. It is carried in the document
// but ignored by evaluation.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node is one operator instance in the graph.
type Node struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Position  Point       `json:"position"`
	Overrides OverrideMap `json:"overrides,omitempty"`
}

// Connection is a directed edge from an output port to an input port.
type Connection struct {
	ID       string `json:"id"`
	FromNode string `json:"fromNodeId"`
	FromPort string `json:"fromPortId"`
	ToNode   string `json:"toNodeId"`
	ToPort   string `json:"toPortId"`
}

// Graph is the mutable node/connection document. Node declaration
// order is preserved; it determines evaluation and mesh collection
// order. Every mutation bumps the version so evaluator caches know to
// invalidate.
type Graph struct {
	nodes       []*Node
	byID        map[string]*Node
	connections []Connection
	version     uint64
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{byID: make(map[string]*Node)}
}

// Version returns the mutation counter.
func (g *Graph) Version() uint64 {
	return g.version
}

// AddNode appends a node of the given type with a generated id.
func (g *Graph) AddNode(typ string) *Node {
	n := &Node{ID: uuid.NewString(), Type: typ}
	g.insert(n)
	return n
}

// insert registers a node, replacing any node with the same id.
func (g *Graph) insert(n *Node) {
	if _, exists := g.byID[n.ID]; exists {
		for i, old := range g.nodes {
			if old.ID == n.ID {
				g.nodes[i] = n
				break
			}
		}
	} else {
		g.nodes = append(g.nodes, n)
	}
	g.byID[n.ID] = n
	g.version++
}

// Get returns the node with the given id, or nil.
func (g *Graph) Get(id string) *Node {
	return g.byID[id]
}

// Nodes returns the nodes in declaration order. The slice is shared;
// callers must not modify it.
func (g *Graph) Nodes() []*Node {
	return g.nodes
}

// Connections returns the connections in registration order. The
// slice is shared; callers must not modify it.
func (g *Graph) Connections() []Connection {
	return g.connections
}

// RemoveNode deletes a node and every connection touching it.
func (g *Graph) RemoveNode(id string) {
	if _, ok := g.byID[id]; !ok {
		return
	}
	delete(g.byID, id)
	kept := g.nodes[:0]
	for _, n := range g.nodes {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	g.nodes = kept

	conns := g.connections[:0]
	for _, c := range g.connections {
		if c.FromNode != id && c.ToNode != id {
			conns = append(conns, c)
		}
	}
	g.connections = conns
	g.version++
}

// Move updates a node's editor position. Evaluation ignores the
// position but the mutation still invalidates caches, matching the
// whole-graph recompute model.
func (g *Graph) Move(id string, x, y float64) {
	n := g.byID[id]
	if n == nil {
		return
	}
	n.Position = Point{X: x, Y: y}
	g.version++
}

// SetOverride sets an explicit input value on a node instance.
func (g *Graph) SetOverride(id, port string, v node.Value) error {
	n := g.byID[id]
	if n == nil {
		return fmt.Errorf("graph: no node %q", id)
	}
	if n.Overrides == nil {
		n.Overrides = make(OverrideMap)
	}
	n.Overrides[port] = v
	g.version++
	return nil
}

// ClearOverride removes an explicit input value.
func (g *Graph) ClearOverride(id, port string) {
	n := g.byID[id]
	if n == nil {
		return
	}
	delete(n.Overrides, port)
	g.version++
}

// Connect adds a directed edge. Each input port accepts at most one
// incoming connection; wiring an already-connected port is rejected.
func (g *Graph) Connect(fromNode, fromPort, toNode, toPort string) (Connection, error) {
	if g.byID[fromNode] == nil {
		return Connection{}, fmt.Errorf("graph: no source node %q", fromNode)
	}
	if g.byID[toNode] == nil {
		return Connection{}, fmt.Errorf("graph: no target node %q", toNode)
	}
	for _, c := range g.connections {
		if c.ToNode == toNode && c.ToPort == toPort {
			return Connection{}, fmt.Errorf("graph: input port %s.%s already connected", toNode, toPort)
		}
	}
	conn := Connection{
		ID:       uuid.NewString(),
		FromNode: fromNode,
		FromPort: fromPort,
		ToNode:   toNode,
		ToPort:   toPort,
	}
	g.connections = append(g.connections, conn)
	g.version++
	return conn, nil
}

// Disconnect removes a connection by id.
func (g *Graph) Disconnect(id string) {
	kept := g.connections[:0]
	removed := false
	for _, c := range g.connections {
		if c.ID == id {
			removed = true
			continue
		}
		kept = append(kept, c)
	}
	g.connections = kept
	if removed {
		g.version++
	}
}

// incoming returns the connection terminating at the given input
// port, if any.
func (g *Graph) incoming(nodeID, portID string) (Connection, bool) {
	for _, c := range g.connections {
		if c.ToNode == nodeID && c.ToPort == portID {
			return c, true
		}
	}
	return Connection{}, false
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}
