package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/internal/cli"
	"github.com/aretw0/espalier/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "espalier",
	Short: "Espalier resolves catalog actions into render descriptors",
	Long:  `Espalier turns a directory of action definitions into render-ready descriptors, applying post context, visibility rules and tooltips.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("dir", ".", "Directory containing the action catalog")
	rootCmd.PersistentFlags().String("contexts", "", "YAML/JSON file of post contexts to seed the source")
	rootCmd.PersistentFlags().String("redis", "", "Redis address for the context cache (e.g. localhost:6379)")
	rootCmd.PersistentFlags().String("origin", "", "Origin domain for calendar UID generation")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Bool("debug", false, "Log every resolution decision")
}

// loggerFromFlags builds the shared stderr logger.
func loggerFromFlags(cmd *cobra.Command) *slog.Logger {
	raw, _ := cmd.Flags().GetString("log-level")
	debug, _ := cmd.Flags().GetBool("debug")

	level := logging.ParseLevel(raw)
	if debug {
		level = slog.LevelDebug
	}
	return logging.New(level)
}

// engineFromFlags assembles an engine from the persistent flags. A positional
// argument overrides --dir when the flag was not set explicitly.
func engineFromFlags(cmd *cobra.Command, args []string) (*espalier.Engine, *slog.Logger, error) {
	dir, _ := cmd.Flags().GetString("dir")
	if !cmd.Flags().Changed("dir") && len(args) > 0 {
		dir = args[0]
	}
	contexts, _ := cmd.Flags().GetString("contexts")
	redisAddr, _ := cmd.Flags().GetString("redis")
	origin, _ := cmd.Flags().GetString("origin")
	debug, _ := cmd.Flags().GetBool("debug")

	logger := loggerFromFlags(cmd)

	engine, err := cli.NewEngine(cli.Options{
		Dir:          dir,
		ContextsPath: contexts,
		RedisAddr:    redisAddr,
		Origin:       origin,
		Debug:        debug,
	}, logger)
	if err != nil {
		return nil, nil, err
	}
	return engine, logger, nil
}
