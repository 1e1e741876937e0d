package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/rohankatakam/dbstats/internal/config"
	"github.com/rohankatakam/dbstats/internal/graph"
	"github.com/rohankatakam/dbstats/internal/output"
	"github.com/rohankatakam/dbstats/internal/stats"
	"github.com/spf13/cobra"
)

// closeTimeout bounds driver and session shutdown after the run context
// may already be cancelled.
const closeTimeout = 10 * time.Second

func runStats(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if err := applyFlags(cmd); err != nil {
		return err
	}

	formatter, err := output.NewFormatter(output.Format(cfg.Output))
	if err != nil {
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

	client, err := connect(ctx, name)
	if err != nil {
		return err
	}
	defer closeClient(client)

	session := client.NewReadSession(ctx)
	defer closeSession(session)

	return report(ctx, graph.NewExecutor(session), formatter, cmd.OutOrStdout(), logs.Slog())
}

// connect resolves credentials for the named target and opens a client
func connect(ctx context.Context, name config.TargetName) (*graph.Client, error) {
	target, err := config.NewCredentialManager(cfg).Resolve(name)
	if err != nil {
		return nil, err
	}
	logger.Debugf("Connecting to %s", target)

	return graph.NewClient(ctx, target, cfg.QueryTimeout)
}

// report collects statistics and writes them. Individual query failures
// are logged by the collector and never fail the run; a degraded run ends
// with one summary line on the log.
func report(ctx context.Context, fetcher stats.Fetcher, formatter output.Formatter, w io.Writer, log *slog.Logger) error {
	collector := stats.NewCollector(fetcher, cfg.RelationshipGrouping == config.GroupLocally)
	result := collector.Collect(ctx)
	if err := formatter.Format(result, w); err != nil {
		return err
	}

	if result.Degraded() {
		log.Warn("statistics are incomplete",
			"failed_queries", len(result.Warnings),
			"node_rows", len(result.Nodes),
			"relationship_rows", len(result.Relationships))
	}
	return nil
}

func closeClient(client *graph.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	if err := client.Close(ctx); err != nil {
		slog.Warn("failed to close neo4j driver", "error", err)
	}
}

func closeSession(session *graph.Session) {
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	if err := session.Close(ctx); err != nil {
		slog.Warn("failed to close neo4j session", "error", err)
	}
}
