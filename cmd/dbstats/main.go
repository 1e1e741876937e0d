package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rohankatakam/dbstats/internal/config"
	"github.com/rohankatakam/dbstats/internal/errors"
	"github.com/rohankatakam/dbstats/internal/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"

	cfgFile string
	verbose bool
	logger  *logrus.Logger
	cfg     *config.Config

	targetFlag   string
	timeoutFlag  time.Duration
	groupLocally bool
	formatFlag   string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		printError(os.Stderr, err, verbose)
		os.Exit(1)
	}
}

// printError writes the terminal error. With detailed set, typed errors
// also show their kind, severity, cause chain and context.
func printError(w io.Writer, err error, detailed bool) {
	fmt.Fprintf(w, "Error: %v\n", err)

	var typed *errors.Error
	if detailed && stderrors.As(err, &typed) {
		fmt.Fprint(w, typed.DetailedString())
	}
}

var rootCmd = &cobra.Command{
	Use:   "dbstats",
	Short: "Print node, index and relationship statistics for a Neo4j database",
	Long: `dbstats connects to a Neo4j database and prints two tables:

  Node Statistics          node count per label, one row per index covering it
  Relationship Statistics  relationship counts per (type, start label, end label)

Connection settings come from the environment (or .env files):

  local   LOCAL_NEO4J_URI, LOCAL_NEO4J_USERNAME, LOCAL_NEO4J_PASSWORD
  remote  NEO4J_URI, NEO4J_USERNAME, NEO4J_PASSWORD

Without --target an interactive menu asks which database to use.

Examples:
  dbstats
  dbstats --target remote --timeout 30s
  dbstats --target local --group-locally --format json`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Initialize logger
		logger = logrus.New()
		if verbose {
			logger.SetLevel(logrus.DebugLevel)
		} else {
			logger.SetLevel(logrus.InfoLevel)
		}

		// Load configuration
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			logger.WithError(err).Warn("Failed to load config, using defaults")
			cfg = config.Default()
		}
		logger.Debugf("Loaded config: %s", cfg.Summary())
	},
	RunE: runStats,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: .dbstats/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&targetFlag, "target", "t", "", "database to use: local or remote (default: ask)")

	rootCmd.Flags().DurationVar(&timeoutFlag, "timeout", 0, "per-query timeout, 0 for none")
	rootCmd.Flags().BoolVar(&groupLocally, "group-locally", false, "count relationships in dbstats instead of in the database")
	rootCmd.Flags().StringVar(&formatFlag, "format", "", "output format: grid or json (default: grid)")

	// Set custom version template
	rootCmd.SetVersionTemplate(`dbstats {{.Version}}
Build time: ` + BuildTime + `
Git commit: ` + GitCommit + `
`)

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}

// applyFlags folds command-line overrides into cfg
func applyFlags(cmd *cobra.Command) error {
	flags := cmd.Flags()
	if targetFlag != "" {
		cfg.Target = targetFlag
	}
	if flags.Lookup("timeout") != nil && flags.Changed("timeout") {
		cfg.QueryTimeout = timeoutFlag
	}
	if groupLocally {
		cfg.RelationshipGrouping = config.GroupLocally
	}
	if formatFlag != "" {
		cfg.Output = formatFlag
	}
	return cfg.Validate()
}

// setupLogging installs the slog default used by the internal packages
func setupLogging() (*logging.Logger, error) {
	logCfg := logging.DefaultConfig(verbose)
	if !verbose && cfg.Log.Level != "" {
		logCfg.Level = logging.ParseLevel(cfg.Log.Level)
	}
	logCfg.OutputFile = cfg.Log.File
	logCfg.JSONFormat = cfg.Log.JSON
	return logging.Setup(logCfg)
}

// selectTarget uses the configured target or asks on the command's input
func selectTarget(cmd *cobra.Command) (config.TargetName, error) {
	if cfg.Target != "" {
		return config.ParseTargetName(cfg.Target)
	}
	return config.ChooseTarget(cmd.InOrStdin(), cmd.OutOrStdout())
}
