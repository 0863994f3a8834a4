// turnery renders procedural lofted vessels from graph documents or
// Lisp design scripts and writes the result as STL.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chazu/turnery/pkg/node"
)

var rootCmd = &cobra.Command{
	Use:   "turnery",
	Short: "Procedural lofted-vessel generator",
	Long: `Turnery builds 3D meshes from dataflow graph documents. A graph
wires pattern generators, cross-section builders, and loft nodes into a
pipeline; every geometry-producing node contributes a mesh to the output.`,
	SilenceUsage: true,
}

var nodesCmd = &cobra.Command{
	Use:   "nodes",
	Short: "List the registered node types",
	Run: func(cmd *cobra.Command, args []string) {
		registry := node.Builtin()
		for _, typ := range registry.Types() {
			def, _ := registry.Lookup(typ)
			fmt.Printf("%-12s %s (%s)\n", typ, def.Name, def.Category)
		}
	},
}

func main() {
	rootCmd.AddCommand(nodesCmd, evalCmd, scriptCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
