package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/internal/presentation/tui"
	"github.com/aretw0/espalier/pkg/domain"
)

// previewCmd represents the preview command
var previewCmd = &cobra.Command{
	Use:   "preview [dir]",
	Short: "Show the resolved action list in the terminal",
	Long: `Resolves the catalog in preview context and renders a markdown
summary, styled for the terminal unless --plain is set.`,
	Run: func(cmd *cobra.Command, args []string) {
		engine, _, err := engineFromFlags(cmd, args)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		plain, _ := cmd.Flags().GetBool("plain")
		live, _ := cmd.Flags().GetBool("live")
		postID, _ := cmd.Flags().GetInt64("post")

		rc := domain.ContextPreview
		if live {
			rc = domain.ContextLive
		}

		previewer := espalier.NewPreviewer()
		previewer.Output = os.Stdout
		if !plain {
			tui.PrintBanner()
			previewer.Renderer = tui.NewRenderer()
		}

		ctx := context.Background()

		var post *domain.PostContext
		if cmd.Flags().Changed("post") && engine.Source() != nil {
			post, err = engine.Source().Fetch(ctx, postID)
			if err != nil {
				fmt.Printf("Error fetching post %d: %v\n", postID, err)
				os.Exit(1)
			}
		}

		if err := previewer.Preview(ctx, engine, rc, post); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().Bool("plain", false, "Disable terminal styling")
	previewCmd.Flags().Bool("live", false, "Resolve in live context instead of preview")
	previewCmd.Flags().Int64("post", 0, "Post ID to fetch from the context source")
}
