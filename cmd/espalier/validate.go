package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/espalier/internal/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate [dir]",
	Short: "Check the catalog for consistency",
	Long:  `Loads every action definition and reports duplicate IDs, unknown kinds and incomplete kind configuration.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(cmd, args); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Catalog is valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().String("file", "", "Validate a standalone document instead of the catalog")
}

func runValidate(cmd *cobra.Command, args []string) error {
	engine, _, err := engineFromFlags(cmd, args)
	if err != nil {
		return fmt.Errorf("failed to init engine: %w", err)
	}

	file, _ := cmd.Flags().GetString("file")

	var doc *config.Document
	if file != "" {
		doc, err = config.Load(file)
		if err != nil {
			return err
		}
	} else {
		items, err := engine.Inspect(context.Background())
		if err != nil {
			return err
		}
		doc = &config.Document{Actions: items}
	}

	return config.Lint(doc, engine.Registry().Kinds())
}
