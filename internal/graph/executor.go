package graph

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/rohankatakam/dbstats/internal/errors"
	"github.com/rohankatakam/dbstats/internal/models"
)

// Executor issues the statistics queries and decodes rows into models.
// Each fetch fails on its own; a failed fetch returns nil rows and a typed
// error and leaves the session usable for the next one.
type Executor struct {
	runner Runner
	logger *slog.Logger
}

// NewExecutor creates an executor over runner
func NewExecutor(runner Runner) *Executor {
	return &Executor{
		runner: runner,
		logger: slog.Default().With("component", "executor"),
	}
}

// FetchLabelCounts returns the node count of every label, ordered by label.
// Rows with a null label are skipped.
func (e *Executor) FetchLabelCounts(ctx context.Context) ([]models.LabelCount, error) {
	records, err := e.runner.Run(ctx, OpLabelCounts, LabelCountsQuery)
	if err != nil {
		return nil, classify(err, OpLabelCounts, "label count query failed")
	}

	counts := make([]models.LabelCount, 0, len(records))
	for i, rec := range records {
		label, isNil, err := neo4j.GetRecordValue[string](rec, "label")
		if err != nil {
			return nil, malformed(err, OpLabelCounts, i)
		}
		if isNil {
			continue
		}

		count, err := requiredInt(rec, "count")
		if err != nil {
			return nil, malformed(err, OpLabelCounts, i)
		}

		counts = append(counts, models.LabelCount{Label: label, Count: count})
	}

	e.logger.Debug("label counts fetched", "labels", len(counts))
	return counts, nil
}

// FetchIndexes returns the full index catalog, node and relationship
// indexes alike. A lost connection is reported as a Connection error;
// every other failure, malformed rows included, as CatalogUnavailable.
func (e *Executor) FetchIndexes(ctx context.Context) ([]models.IndexDescriptor, error) {
	records, err := e.runner.Run(ctx, OpIndexCatalog, IndexCatalogQuery)
	if err != nil {
		return nil, classify(err, OpIndexCatalog, "could not fetch index information")
	}

	indexes := make([]models.IndexDescriptor, 0, len(records))
	for i, rec := range records {
		idx, err := decodeIndex(rec)
		if err != nil {
			return nil, errors.CatalogUnavailable(err,
				fmt.Sprintf("malformed index catalog row %d", i)).
				WithContext("operation", OpIndexCatalog)
		}
		indexes = append(indexes, idx)
	}

	e.logger.Debug("index catalog fetched", "indexes", len(indexes))
	return indexes, nil
}

// FetchRelationshipCounts returns edge groups counted by the database,
// ordered by count descending.
func (e *Executor) FetchRelationshipCounts(ctx context.Context) ([]models.EdgeSample, error) {
	records, err := e.runner.Run(ctx, OpRelationshipCounts, RelationshipCountsQuery)
	if err != nil {
		return nil, classify(err, OpRelationshipCounts, "relationship query failed")
	}
	return e.decodeEdges(records, OpRelationshipCounts, true)
}

// FetchRelationshipEdges reads one row per edge and folds the rows into
// one sample per (type, start label, end label), in first-seen order, with
// Count holding the number of edges. When the runner can stream, rows are
// folded as they arrive so memory is bounded by the number of distinct
// triples rather than the number of edges.
func (e *Executor) FetchRelationshipEdges(ctx context.Context) ([]models.EdgeSample, error) {
	var fold edgeFold
	streamer, ok := e.runner.(Streamer)
	if !ok {
		records, err := e.runner.Run(ctx, OpRelationshipEdges, RelationshipEdgesQuery)
		if err != nil {
			return nil, classify(err, OpRelationshipEdges, "relationship query failed")
		}
		for i, rec := range records {
			if err := fold.add(rec); err != nil {
				return nil, malformed(err, OpRelationshipEdges, i)
			}
		}
		e.logger.Debug("relationships fetched", "operation", OpRelationshipEdges, "edges", fold.edges, "groups", len(fold.samples))
		return fold.samples, nil
	}

	row := 0
	err := streamer.Stream(ctx, OpRelationshipEdges, RelationshipEdgesQuery, func(rec *neo4j.Record) error {
		if err := fold.add(rec); err != nil {
			return malformed(err, OpRelationshipEdges, row)
		}
		row++
		return nil
	})
	if err != nil {
		var typed *errors.Error
		if stderrors.As(err, &typed) {
			return nil, typed
		}
		return nil, classify(err, OpRelationshipEdges, "relationship query failed")
	}

	e.logger.Debug("relationships fetched", "operation", OpRelationshipEdges, "edges", fold.edges, "groups", len(fold.samples))
	return fold.samples, nil
}

// edgeFold sums per-edge rows into one sample per triple
type edgeFold struct {
	samples []models.EdgeSample
	index   map[edgeKey]int
	edges   int64
}

type edgeKey struct {
	relType, start, end string
}

func (f *edgeFold) add(rec *neo4j.Record) error {
	sample, ok, err := decodeEdge(rec, false)
	if err != nil || !ok {
		return err
	}
	f.edges++

	key := edgeKey{sample.RelType, sample.StartLabel, sample.EndLabel}
	if i, seen := f.index[key]; seen {
		f.samples[i].Count += sample.Count
		return nil
	}
	if f.index == nil {
		f.index = make(map[edgeKey]int)
	}
	f.index[key] = len(f.samples)
	f.samples = append(f.samples, sample)
	return nil
}

func (e *Executor) decodeEdges(records []*neo4j.Record, op Operation, counted bool) ([]models.EdgeSample, error) {
	samples := make([]models.EdgeSample, 0, len(records))
	for i, rec := range records {
		sample, ok, err := decodeEdge(rec, counted)
		if err != nil {
			return nil, malformed(err, op, i)
		}
		if ok {
			samples = append(samples, sample)
		}
	}

	e.logger.Debug("relationships fetched", "operation", op, "rows", len(samples))
	return samples, nil
}

// classify maps a driver error onto the error taxonomy
func classify(err error, op Operation, message string) *errors.Error {
	var typed *errors.Error
	switch {
	case neo4j.IsConnectivityError(err):
		typed = errors.Wrap(err, errors.ErrorTypeConnection, errors.SeverityHigh,
			fmt.Sprintf("%s: connection lost", message))
	case op == OpIndexCatalog:
		typed = errors.CatalogUnavailable(err, message)
	default:
		typed = errors.QueryError(err, message)
	}
	return typed.WithContext("operation", op)
}

func malformed(err error, op Operation, row int) *errors.Error {
	return errors.QueryErrorf(err, "%s: malformed row %d", op, row).
		WithContext("operation", op)
}
