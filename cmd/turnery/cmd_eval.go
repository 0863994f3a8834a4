package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chazu/turnery/pkg/engine"
	"github.com/chazu/turnery/pkg/graph"
	"github.com/chazu/turnery/pkg/loft"
	"github.com/chazu/turnery/pkg/node"
)

var (
	outputPath string
	graphPath  string
)

var evalCmd = &cobra.Command{
	Use:   "eval <graph.json>",
	Short: "Evaluate a graph document and write its meshes as STL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		logger := slog.Default()
		g, err := graph.Load(data, logger)
		if err != nil {
			return fmt.Errorf("loading %s: %w", args[0], err)
		}
		return renderGraph(g, logger)
	},
}

var scriptCmd = &cobra.Command{
	Use:   "script <design.lisp>",
	Short: "Run a design script, then evaluate the graph it builds",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		eng := engine.NewEngine()
		g, evalErrs, err := eng.Evaluate(string(source))
		if err != nil {
			return err
		}
		if len(evalErrs) > 0 {
			for _, e := range evalErrs {
				fmt.Fprintf(os.Stderr, "%s: %s\n", args[0], e.Error())
			}
			return fmt.Errorf("%d script error(s)", len(evalErrs))
		}

		if graphPath != "" {
			doc, err := json.MarshalIndent(g, "", "  ")
			if err != nil {
				return err
			}
			if err := os.WriteFile(graphPath, doc, 0o644); err != nil {
				return err
			}
		}

		return renderGraph(g, slog.Default())
	},
}

func init() {
	evalCmd.Flags().StringVarP(&outputPath, "output", "o", "out.stl", "STL output path")
	scriptCmd.Flags().StringVarP(&outputPath, "output", "o", "out.stl", "STL output path")
	scriptCmd.Flags().StringVar(&graphPath, "graph", "", "also write the built graph document as JSON")
}

// renderGraph evaluates every node, reports diagnostics, and writes
// one STL file per geometry output. With several geometry nodes the
// output path gains the producing node's id as a suffix.
func renderGraph(g *graph.Graph, logger *slog.Logger) error {
	ev := graph.NewEvaluator(g, node.Builtin(), logger)
	ev.EvaluateGraph()
	meshes := ev.MeshOutputs()

	for _, d := range ev.Diagnostics() {
		logger.Warn("evaluation diagnostic",
			"node", d.NodeID, "condition", d.Condition.String(), "detail", d.Message)
	}

	if len(meshes) == 0 {
		return fmt.Errorf("graph produced no geometry")
	}

	for i, mesh := range meshes {
		path := outputPath
		if len(meshes) > 1 {
			path = suffixPath(outputPath, mesh.Name)
		}
		if mesh.IsEmpty() {
			logger.Warn("skipping empty mesh", "node", mesh.Name)
			continue
		}
		if err := loft.SaveSTL(path, mesh); err != nil {
			return fmt.Errorf("mesh %d: %w", i, err)
		}
		fmt.Printf("wrote %s (%d triangles)\n", path, mesh.TriangleCount())
	}
	return nil
}

// suffixPath inserts a suffix before the file extension.
func suffixPath(path, suffix string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "-" + suffix + ext
}
