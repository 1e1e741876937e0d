package stats

import (
	"context"
	"log/slog"

	"github.com/rohankatakam/dbstats/internal/errors"
	"github.com/rohankatakam/dbstats/internal/models"
)

// Fetcher is the read surface of graph.Executor
type Fetcher interface {
	FetchLabelCounts(ctx context.Context) ([]models.LabelCount, error)
	FetchIndexes(ctx context.Context) ([]models.IndexDescriptor, error)
	FetchRelationshipCounts(ctx context.Context) ([]models.EdgeSample, error)
	FetchRelationshipEdges(ctx context.Context) ([]models.EdgeSample, error)
}

// Report is the result of one collection run
type Report struct {
	Nodes         []models.NodeStatRow
	Relationships []models.RelationshipStatRow

	// Warnings holds the typed error of every fetch that failed. A failed
	// fetch contributes no rows; the run still completes.
	Warnings []error
}

// Degraded reports whether any fetch failed
func (r *Report) Degraded() bool {
	return len(r.Warnings) > 0
}

// Collector runs the three fetches in order and aggregates their rows
type Collector struct {
	fetcher      Fetcher
	groupLocally bool
	logger       *slog.Logger
}

// NewCollector creates a collector. With groupLocally the relationship
// table is built from one sample per edge instead of database-side counts.
func NewCollector(fetcher Fetcher, groupLocally bool) *Collector {
	return &Collector{
		fetcher:      fetcher,
		groupLocally: groupLocally,
		logger:       slog.Default().With("component", "stats"),
	}
}

// Collect never fails: each fetch error becomes a warning and an empty
// input for the aggregators.
func (c *Collector) Collect(ctx context.Context) *Report {
	report := &Report{}

	labels, err := c.fetcher.FetchLabelCounts(ctx)
	if err != nil {
		c.warn(ctx, report, "error processing node labels", err)
		labels = nil
	}

	indexes, err := c.fetcher.FetchIndexes(ctx)
	if err != nil {
		c.warn(ctx, report, "could not fetch index information", err)
		indexes = nil
	}

	report.Nodes = JoinNodeIndexes(labels, indexes)

	var samples []models.EdgeSample
	if c.groupLocally {
		samples, err = c.fetcher.FetchRelationshipEdges(ctx)
	} else {
		samples, err = c.fetcher.FetchRelationshipCounts(ctx)
	}
	if err != nil {
		c.warn(ctx, report, "error processing relationships", err)
		samples = nil
	}

	report.Relationships = AggregateRelationships(samples)

	c.logger.Info("statistics collected",
		"labels", len(labels),
		"indexes", len(indexes),
		"node_rows", len(report.Nodes),
		"relationship_rows", len(report.Relationships),
		"warnings", len(report.Warnings))
	return report
}

// warn records a failed fetch. Losing the connection is logged as an
// error since every later query will fail the same way.
func (c *Collector) warn(ctx context.Context, report *Report, msg string, err error) {
	level := slog.LevelWarn
	if errors.GetSeverity(err) >= errors.SeverityHigh {
		level = slog.LevelError
	}
	c.logger.Log(ctx, level, msg, "error", err)
	report.Warnings = append(report.Warnings, err)
}
