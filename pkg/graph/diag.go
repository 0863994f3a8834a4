package graph

import "fmt"

// Condition classifies a recoverable fault reported during an
// evaluation pass. There are no fatal conditions: every input,
// however degenerate, yields some (possibly empty) output.
type Condition int

const (
	ConditionUnknownType Condition = iota // node type not in the registry
	ConditionExecFault                    // execution function failed or panicked
	ConditionCycle                        // circular dependency broken at this node
	ConditionDegeneracy                   // geometric degeneracy, partial mesh produced
)

func (c Condition) String() string {
	switch c {
	case ConditionUnknownType:
		return "unknown node type"
	case ConditionExecFault:
		return "node execution error"
	case ConditionCycle:
		return "circular dependency"
	case ConditionDegeneracy:
		return "geometric degeneracy"
	default:
		return fmt.Sprintf("Condition(%d)", int(c))
	}
}

// Diagnostic is one structured fault report: which node, what kind of
// condition, and a human-readable message. Diagnostics never unwind
// past the evaluator boundary as errors.
type Diagnostic struct {
	NodeID    string    `json:"nodeId"`
	Condition Condition `json:"condition"`
	Message   string    `json:"message"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("node %s: %s: %s", d.NodeID, d.Condition, d.Message)
}
