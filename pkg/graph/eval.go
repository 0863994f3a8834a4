package graph

import (
	"fmt"
	"log/slog"

	"github.com/chazu/turnery/pkg/loft"
	"github.com/chazu/turnery/pkg/node"
)

// visitState tracks a node through one evaluation pass.
type visitState int

const (
	stateUnvisited visitState = iota
	stateVisiting
	stateEvaluated
)

// Evaluator executes a graph. It owns its per-pass cache exclusively;
// the graph itself is borrowed read-only during a pass. Evaluation is
// single-threaded and synchronous, and a pass always runs to
// completion. The caller must not mutate the graph mid-pass.
type Evaluator struct {
	graph    *Graph
	registry *node.Registry
	logger   *slog.Logger

	cache    map[string]map[string]node.Value
	state    map[string]visitState
	diags    []Diagnostic
	reported map[string]bool // nodeID+condition, once per pass
	version  uint64          // graph version the cache was built against
}

// NewEvaluator creates an evaluator over a graph. A nil registry uses
// the builtin node types; a nil logger uses slog.Default().
func NewEvaluator(g *Graph, registry *node.Registry, logger *slog.Logger) *Evaluator {
	if registry == nil {
		registry = node.Builtin()
	}
	if logger == nil {
		logger = slog.Default()
	}
	e := &Evaluator{graph: g, registry: registry, logger: logger}
	e.Reset()
	return e
}

// Reset clears the evaluation cache and all diagnostics.
func (e *Evaluator) Reset() {
	e.cache = make(map[string]map[string]node.Value)
	e.state = make(map[string]visitState)
	e.diags = nil
	e.reported = make(map[string]bool)
	e.version = e.graph.Version()
}

// Diagnostics returns the structured fault reports from the current
// pass, in the order they were recorded.
func (e *Evaluator) Diagnostics() []Diagnostic {
	return e.diags
}

// report records a diagnostic at most once per node and condition per
// pass. Degeneracy warnings are keyed by message as well, so one node
// may surface several distinct warnings; exact repeats still collapse.
func (e *Evaluator) report(nodeID string, cond Condition, msg string) {
	key := fmt.Sprintf("%s/%d", nodeID, cond)
	if cond == ConditionDegeneracy {
		key += "/" + msg
	}
	if e.reported[key] {
		return
	}
	e.reported[key] = true
	e.diags = append(e.diags, Diagnostic{NodeID: nodeID, Condition: cond, Message: msg})
	e.logger.Warn("evaluate: "+msg, "node", nodeID, "condition", cond.String())
}

// invalidateIfStale drops the cache when the graph has mutated since
// it was built.
func (e *Evaluator) invalidateIfStale() {
	if e.version != e.graph.Version() {
		e.Reset()
	}
}

// EvaluateNode evaluates one node, recursively evaluating its
// upstream dependencies first, and returns its cached outputs. A node
// already being visited marks a cycle: it is reported and not
// re-entered, and its outputs stay whatever is already cached
// (possibly nothing).
func (e *Evaluator) EvaluateNode(id string) map[string]node.Value {
	e.invalidateIfStale()
	return e.evaluate(id)
}

func (e *Evaluator) evaluate(id string) map[string]node.Value {
	n := e.graph.Get(id)
	if n == nil {
		return nil
	}
	switch e.state[id] {
	case stateEvaluated:
		return e.cache[id]
	case stateVisiting:
		e.report(id, ConditionCycle, fmt.Sprintf("node %s depends on itself", id))
		return e.cache[id]
	}
	e.state[id] = stateVisiting

	def, ok := e.registry.Lookup(n.Type)
	if !ok {
		e.report(id, ConditionUnknownType, fmt.Sprintf("no definition for type %q", n.Type))
		e.finish(id, map[string]node.Value{})
		return e.cache[id]
	}

	inputs := e.resolveInputs(n, def)
	outputs, warnings, err := runExecute(def, inputs, e.logger)
	for _, w := range warnings {
		e.report(id, ConditionDegeneracy, w)
	}
	if err != nil {
		e.report(id, ConditionExecFault, err.Error())
		e.finish(id, map[string]node.Value{})
		return e.cache[id]
	}

	e.finish(id, outputs)
	return e.cache[id]
}

// finish caches outputs and marks the node evaluated.
func (e *Evaluator) finish(id string, outputs map[string]node.Value) {
	e.cache[id] = outputs
	e.state[id] = stateEvaluated
}

// resolveInputs produces the effective input values for a node, in
// override priority order: declared port defaults, then values
// propagated along connections (evaluating the origin on demand),
// then the node instance's explicit overrides.
func (e *Evaluator) resolveInputs(n *Node, def *node.Definition) map[string]node.Value {
	inputs := make(map[string]node.Value, len(def.Inputs))
	for _, port := range def.Inputs {
		if port.Default != nil {
			inputs[port.ID] = port.Default
		}
		if conn, ok := e.graph.incoming(n.ID, port.ID); ok {
			upstream := e.evaluate(conn.FromNode)
			if v, ok := upstream[conn.FromPort]; ok && v != nil {
				inputs[port.ID] = v
			}
		}
		if v, ok := n.Overrides[port.ID]; ok && v != nil {
			inputs[port.ID] = v
		}
	}
	return inputs
}

// runExecute invokes an execution function, converting a panic into a
// recoverable error so one faulty node cannot abort the pass.
func runExecute(def *node.Definition, inputs map[string]node.Value, logger *slog.Logger) (outputs map[string]node.Value, warnings []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			outputs = nil
			err = fmt.Errorf("panic in %q execute: %v", def.Type, r)
		}
	}()
	ctx := &node.Context{Logger: logger}
	outputs, err = def.Execute(inputs, ctx)
	return outputs, ctx.Warnings(), err
}

// NodeOutput returns the named output of a node, evaluating it first
// if it is not cached for the current pass.
func (e *Evaluator) NodeOutput(id, portID string) (node.Value, bool) {
	outputs := e.EvaluateNode(id)
	v, ok := outputs[portID]
	return v, ok
}

// EvaluateGraph clears the cache and evaluates every node, upstream
// dependencies first.
func (e *Evaluator) EvaluateGraph() {
	e.Reset()
	for _, n := range e.graph.Nodes() {
		e.evaluate(n.ID)
	}
}

// MeshOutputs runs a full pass and collects the mesh of every node
// whose definition declares a geometry output, in node declaration
// order. Meshes are produced fresh each pass and owned by the caller.
func (e *Evaluator) MeshOutputs() []*loft.Mesh {
	e.EvaluateGraph()

	var meshes []*loft.Mesh
	for _, n := range e.graph.Nodes() {
		def, ok := e.registry.Lookup(n.Type)
		if !ok || !def.HasGeometryOutput() {
			continue
		}
		outputs := e.cache[n.ID]
		for _, port := range def.Outputs {
			if port.Kind != node.KindGeometry {
				continue
			}
			mesh, err := node.AsGeometry(outputs[port.ID], port.ID)
			if err != nil || mesh == nil {
				mesh = &loft.Mesh{}
			}
			mesh.Name = n.ID
			meshes = append(meshes, mesh)
		}
	}
	return meshes
}
