package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/espalier/internal/config"
	"github.com/aretw0/espalier/pkg/domain"
)

// renderCmd represents the render command
var renderCmd = &cobra.Command{
	Use:   "render [dir]",
	Short: "Resolve the catalog and print render nodes as JSON",
	Long: `Resolves every action in the catalog against the requested context
and writes the resulting render nodes to stdout as JSON.

With --file, the actions and post snapshot are read from a single
document instead of the catalog directory.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runRender(cmd, args); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().String("context", "live", "Render context: 'live' or 'preview'")
	renderCmd.Flags().Int64("post", 0, "Post ID to fetch from the context source")
	renderCmd.Flags().String("file", "", "Render a standalone document instead of the catalog")

	// Make 'render' the default if no command is provided.
	rootCmd.Run = renderCmd.Run
}

func runRender(cmd *cobra.Command, args []string) error {
	engine, _, err := engineFromFlags(cmd, args)
	if err != nil {
		return err
	}

	rawContext, _ := cmd.Flags().GetString("context")
	postID, _ := cmd.Flags().GetInt64("post")
	file, _ := cmd.Flags().GetString("file")

	rc := domain.ContextLive
	if rawContext == string(domain.ContextPreview) {
		rc = domain.ContextPreview
	}

	ctx := context.Background()

	var nodes []domain.RenderNode
	switch {
	case file != "":
		doc, err := config.Load(file)
		if err != nil {
			return err
		}
		if !cmd.Flags().Changed("context") {
			rc = doc.RenderContext()
		}
		nodes = engine.Compose(ctx, doc.Actions, rc, doc.Post)
	case cmd.Flags().Changed("post"):
		nodes, err = engine.RenderPost(ctx, rc, postID)
		if err != nil {
			return err
		}
	default:
		nodes, err = engine.Render(ctx, rc, nil)
		if err != nil {
			return err
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(nodes)
}
