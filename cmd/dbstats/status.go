package main

import (
	"fmt"
	"strings"

	"github.com/rohankatakam/dbstats/internal/config"
	"github.com/rohankatakam/dbstats/internal/graph"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the resolved connection settings and check connectivity",
	Long: `Resolve credentials for a target the same way a statistics run does,
connect, and report whether the database is reachable. No queries are run.`,
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if err := applyFlags(cmd); err != nil {
		return err
	}
	logs, err := setupLogging()
	if err != nil {
		return err
	}
	defer logs.Close()

	name, err := selectTarget(cmd)
	if err != nil {
		return err
	}

	target, err := config.NewCredentialManager(cfg).Resolve(name)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "dbstats status\n")
	fmt.Fprintf(out, "%s\n", strings.Repeat("=", 40))
	fmt.Fprintf(out, "  Target:   %s (%s)\n", name.Label(), name)
	fmt.Fprintf(out, "  URI:      %s\n", target.URI)
	fmt.Fprintf(out, "  User:     %s\n", target.Username)
	fmt.Fprintf(out, "  Database: %s\n", target.DatabaseLabel())
	fmt.Fprintf(out, "  Mode:     %s\n", config.DetectMode())
	fmt.Fprintf(out, "  Grouping: %s\n", cfg.RelationshipGrouping)

	client, err := graph.NewClient(ctx, target, cfg.QueryTimeout)
	if err != nil {
		fmt.Fprintf(out, "  Status:   unreachable\n")
		return err
	}
	defer closeClient(client)

	if err := client.HealthCheck(ctx); err != nil {
		fmt.Fprintf(out, "  Status:   unhealthy\n")
		return err
	}
	fmt.Fprintf(out, "  Status:   connected\n")
	return nil
}
