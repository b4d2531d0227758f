// imc: body mass index calculator with a saved history.
//
// The same history is reachable two ways: as an MCP server over stdio
// (for AI hosts) and through the history subcommands below.
//
// Usage:
//
//	imc serve                       # Start MCP server (stdio transport)
//	imc calc 70 1.75                # Calculate and classify
//	imc categories                  # Show the classification table
//	imc history list                # Saved records, newest first
//	imc history add --name Ana --weight 70 --height 1.75
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/HendryAvila/imc/internal/config"
	"github.com/HendryAvila/imc/internal/logging"
	imcserver "github.com/HendryAvila/imc/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	configPath string
	dataDir    string
	backend    string
	logLevel   string

	cfg    config.Config
	logger *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "imc",
		Short: "IMC (body mass index) calculator and history",
		Long: `imc calculates the body mass index (weight / height²), classifies it into
one of six buckets and keeps a history of saved calculations.

Run "imc serve" to expose everything as an MCP server over stdio.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "Config file (default: ~/.imc/config.yaml)")
	pf.StringVar(&a.dataDir, "data-dir", "", "Data directory (overrides config and IMC_DATA_DIR)")
	pf.StringVar(&a.backend, "backend", "", "Storage backend: sqlite, file or memory")
	pf.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	root.AddCommand(
		newServeCmd(a),
		newCalcCmd(a),
		newCategoriesCmd(a),
		newHistoryCmd(a),
		newVersionCmd(),
	)
	return root
}

// setup resolves the config (defaults, file, env, flags) and builds the
// logger. Logs go to stderr so stdout stays clean for MCP and CLI output.
func (a *app) setup(cmd *cobra.Command) error {
	path := a.configPath
	if path == "" {
		path = config.DefaultPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("data-dir") {
		cfg.DataDir = a.dataDir
	}
	if flags.Changed("backend") {
		cfg.Backend = a.backend
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		// version needs no config.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			printVersion(cmd.OutOrStdout())
		},
	}
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "imc v%s\n", imcserver.Version)
}
