package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"mathcli/internal/catalog"
	"mathcli/internal/config"
	"mathcli/internal/engine"
	"mathcli/internal/funcs"
	"mathcli/internal/ops"
	"mathcli/internal/persist"
	"mathcli/internal/session"
	"mathcli/internal/vars"
)

var (
	// Global flags
	verbose    bool
	configPath string
	dbPath     string

	logger *zap.Logger
	cfg    *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "mathcli",
	Short: "mathcli - a text-command math calculator",
	Long: `mathcli executes text commands over a typed value model: numbers,
integers, booleans, sequences, matrices, and complex numbers.

Variables persist across runs in SQLite, partitioned by session, and user
functions can be defined at the prompt:

  set radius 4
  multiply $radius $radius
  def square x = multiply $x $x

Run without arguments to start the interactive prompt.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zc := zap.NewProductionConfig()
		zc.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if dbPath != "" {
			cfg.DatabasePath = dbPath
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, closer, err := buildEngine()
		if err != nil {
			return err
		}
		defer closer()
		return runREPL(eng)
	},
}

// runCmd executes a single command line and prints the result
var runCmd = &cobra.Command{
	Use:   "run [command...]",
	Short: "Execute one command and exit",
	Long: `Executes a single command against the persistent stores and prints
the result.

Example:
  mathcli run divisors 28`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, closer, err := buildEngine()
		if err != nil {
			return err
		}
		defer closer()

		line := joinTokens(args)
		v, err := eng.Execute(line)
		if err != nil {
			return err
		}
		if !v.IsUnit() {
			fmt.Println(v.Format())
		}
		return nil
	},
}

// listCmd prints the operation catalog
var listCmd = &cobra.Command{
	Use:   "list [category]",
	Short: "List available operations",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, closer, err := buildEngine()
		if err != nil {
			return err
		}
		defer closer()

		line := "ops"
		if len(args) == 1 {
			line = "ops " + args[0]
		}
		v, err := eng.Execute(line)
		if err != nil {
			return err
		}
		fmt.Println(v.Format())
		return nil
	},
}

// searchCmd finds operations by name or help text
var searchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Search the operation catalog",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, closer, err := buildEngine()
		if err != nil {
			return err
		}
		defer closer()

		v, err := eng.Execute("search " + joinTokens(args))
		if err != nil {
			return err
		}
		fmt.Println(v.Format())
		return nil
	},
}

// buildEngine wires the persistent stores and the operation catalog into a
// ready engine, returning a closer for the backing database.
func buildEngine() (*engine.Engine, func(), error) {
	port, err := persist.NewSQLiteStore(cfg.DatabasePath, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open store at %s: %w", cfg.DatabasePath, err)
	}

	store := vars.NewStore(port, logger)
	fnReg, err := funcs.NewRegistry(port, logger)
	if err != nil {
		port.Close()
		return nil, nil, fmt.Errorf("failed to load functions: %w", err)
	}
	sessions, err := session.NewManager(port, store, logger)
	if err != nil {
		port.Close()
		return nil, nil, fmt.Errorf("failed to load sessions: %w", err)
	}

	reg := catalog.NewRegistry()
	eng := engine.New(reg, store, fnReg, sessions,
		engine.WithLogger(logger),
		engine.WithMaxRecursionDepth(cfg.Limits.MaxRecursionDepth),
	)
	ops.RegisterAll(reg, eng, cfg.Limits)

	closer := func() {
		if err := store.Flush(); err != nil {
			logger.Warn("Failed to flush variables on shutdown", zap.Error(err))
		}
		if err := port.Close(); err != nil {
			logger.Warn("Failed to close store", zap.Error(err))
		}
	}
	return eng, closer, nil
}

func joinTokens(args []string) string {
	return strings.Join(args, " ")
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "override database path")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(searchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
