package engine

import (
	"errors"
	"strings"
	"sync"
	"testing"
)

func TestEvaluateEmptyString(t *testing.T) {
	eng := NewEngine()

	g, evalErrs, err := eng.Evaluate("")
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}
	if g == nil {
		t.Fatal("expected non-nil graph")
	}
	if g.NodeCount() != 0 {
		t.Errorf("expected empty graph, got %d nodes", g.NodeCount())
	}
}

func TestEvaluateWhitespaceOnly(t *testing.T) {
	eng := NewEngine()

	g, evalErrs, err := eng.Evaluate("   \n\t  \n  ")
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}
	if g.NodeCount() != 0 {
		t.Errorf("expected empty graph, got %d nodes", g.NodeCount())
	}
}

func TestEvaluatePlainExpression(t *testing.T) {
	eng := NewEngine()

	// (+ 1 2) is valid Lisp that builds no nodes.
	g, evalErrs, err := eng.Evaluate("(+ 1 2)")
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}
	if g.NodeCount() != 0 {
		t.Errorf("expected empty graph, got %d nodes", g.NodeCount())
	}
}

func TestEvaluateSyntaxError(t *testing.T) {
	eng := NewEngine()

	g, evalErrs, err := eng.Evaluate("(node \"pattern\"")
	if err != nil {
		t.Fatalf("expected non-fatal eval error, got fatal: %v", err)
	}
	if g != nil {
		t.Fatal("expected nil graph on syntax error")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected at least one eval error for syntax error")
	}
	if evalErrs[0].Message == "" {
		t.Error("eval error message should not be empty")
	}
}

func TestEvaluateUndefinedSymbol(t *testing.T) {
	eng := NewEngine()

	g, evalErrs, err := eng.Evaluate("(+ 1 no-such-symbol)")
	if err != nil {
		t.Fatalf("expected non-fatal eval error, got fatal: %v", err)
	}
	if g != nil {
		t.Fatal("expected nil graph on eval error")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected at least one eval error for undefined symbol")
	}
}

func TestEvaluateBuildsPipeline(t *testing.T) {
	eng := NewEngine()

	source := `
(def pat (node "pattern" :shape "square" :steps 6 :size 10 :drift-x 12))
(def out (node "outlines" :remove-every 0))
(def sec (node "sections" :sorted true :easing "out-sine"))
(def lo (node "loft" :height 120 :twist 90 :taper 0.3))
(wire pat "pattern" out "pattern")
(wire out "sections" sec "sections")
(wire sec "sections" lo "sections")
`
	g, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}
	if g.NodeCount() != 4 {
		t.Fatalf("expected 4 nodes, got %d", g.NodeCount())
	}
	if got := len(g.Connections()); got != 3 {
		t.Fatalf("expected 3 connections, got %d", got)
	}

	// Keyword arguments land as typed overrides.
	var patternID string
	for _, n := range g.Nodes() {
		if n.Type == "pattern" {
			patternID = n.ID
		}
	}
	if patternID == "" {
		t.Fatal("pattern node not found")
	}
	n := g.Get(patternID)
	if len(n.Overrides) != 4 {
		t.Errorf("expected 4 overrides on pattern node, got %d", len(n.Overrides))
	}
	if _, ok := n.Overrides["shape"]; !ok {
		t.Error("expected shape override from :shape keyword")
	}
	if _, ok := n.Overrides["drift-x"]; !ok {
		t.Error("expected drift-x override, hyphenated keyword should survive")
	}
}

func TestEvaluateUnknownPort(t *testing.T) {
	eng := NewEngine()

	g, evalErrs, err := eng.Evaluate(`(node "pattern" :no-such-port 1)`)
	if err != nil {
		t.Fatalf("expected non-fatal eval error, got fatal: %v", err)
	}
	if g != nil {
		t.Fatal("expected nil graph when a builtin errors")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected eval error for unknown port")
	}
	if !strings.Contains(evalErrs[0].Message, "no-such-port") {
		t.Errorf("error should name the bad port, got %q", evalErrs[0].Message)
	}
}

func TestEvaluateDuplicateWireRejected(t *testing.T) {
	eng := NewEngine()

	source := `
(def a (node "pattern"))
(def b (node "pattern"))
(def out (node "outlines"))
(wire a "pattern" out "pattern")
(wire b "pattern" out "pattern")
`
	g, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("expected non-fatal eval error, got fatal: %v", err)
	}
	if g != nil {
		t.Fatal("expected nil graph when wiring a second source to one input")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected eval error for duplicate wire")
	}
}

func TestEvaluateAtSetsPosition(t *testing.T) {
	eng := NewEngine()

	g, evalErrs, err := eng.Evaluate(`(at (node "pattern") 120 80)`)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}
	nodes := g.Nodes()
	if len(nodes) != 1 {
		t.Fatalf("expected 1 node, got %d", len(nodes))
	}
	if nodes[0].Position.X != 120 || nodes[0].Position.Y != 80 {
		t.Errorf("expected position (120, 80), got (%g, %g)",
			nodes[0].Position.X, nodes[0].Position.Y)
	}
}

func TestEvaluateOverrideBuiltin(t *testing.T) {
	eng := NewEngine()

	source := `
(def pat (node "pattern" :steps 4))
(override pat :steps 12 :scale-factor 0.9)
`
	g, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}
	n := g.Nodes()[0]
	if len(n.Overrides) != 2 {
		t.Fatalf("expected 2 overrides, got %d", len(n.Overrides))
	}
}

func TestEvaluateConcurrent(t *testing.T) {
	eng := NewEngine()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g, _, err := eng.Evaluate(`(node "pattern" :steps 3)`)
			if err == nil && g != nil && g.NodeCount() != 1 {
				t.Errorf("expected 1 node, got %d", g.NodeCount())
			}
		}()
	}
	wg.Wait()
}

func TestEvalErrorFormatting(t *testing.T) {
	withLine := EvalError{Line: 3, Message: "boom"}
	if got := withLine.Error(); got != "line 3: boom" {
		t.Errorf("got %q", got)
	}

	noLine := EvalError{Message: "boom"}
	if got := noLine.Error(); got != "boom" {
		t.Errorf("got %q", got)
	}
}

func TestParseZygomysErrorLineExtraction(t *testing.T) {
	cases := []struct {
		msg      string
		wantLine int
	}{
		{"Error on line 7: unbound symbol", 7},
		{"line 12: bad thing", 12},
		{"something with no line info", 0},
	}
	for _, tc := range cases {
		errs := parseZygomysError(errors.New(tc.msg))
		if len(errs) != 1 {
			t.Fatalf("%q: expected 1 error, got %d", tc.msg, len(errs))
		}
		if errs[0].Line != tc.wantLine {
			t.Errorf("%q: expected line %d, got %d", tc.msg, tc.wantLine, errs[0].Line)
		}
	}
}
