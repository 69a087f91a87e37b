package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/espalier/internal/presentation/graph"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [dir]",
	Short: "Export the catalog visualization",
	Long:  `Inspects the catalog and outputs a Mermaid diagram (graph TD) grouping actions by kind.`,
	Run: func(cmd *cobra.Command, args []string) {
		engine, _, err := engineFromFlags(cmd, args)
		if err != nil {
			fmt.Printf("Error initializing espalier: %v\n", err)
			os.Exit(1)
		}

		items, err := engine.Inspect(context.Background())
		if err != nil {
			fmt.Printf("Error inspecting catalog: %v\n", err)
			os.Exit(1)
		}

		// Generate and print Mermaid graph
		output := graph.GenerateMermaid(items)
		fmt.Print(output)
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
