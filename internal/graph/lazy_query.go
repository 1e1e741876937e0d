package graph

import (
	"context"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// DefaultFetchSize is how many records the driver buffers per pull.
// Per-edge sampling can return millions of rows, so results are pulled in
// batches instead of all at once.
const DefaultFetchSize = 1000

// Streamer is implemented by runners that can hand out records one at a
// time instead of collecting them first.
type Streamer interface {
	Stream(ctx context.Context, op Operation, cypher string, fn func(*neo4j.Record) error) error
}

var _ Streamer = (*Session)(nil)

// Stream runs cypher as an auto-commit read and calls fn for each record
// as it arrives. The driver buffers at most one fetch of records; anything
// fn keeps is up to fn. An error from fn stops iteration and is returned
// as is; the rest of the result is discarded.
func (s *Session) Stream(ctx context.Context, op Operation, cypher string, fn func(*neo4j.Record) error) error {
	tc := ConfigForOperation(op, s.queryTimeout)

	queryCtx := ctx
	if tc.Timeout > 0 {
		var cancel context.CancelFunc
		queryCtx, cancel = context.WithTimeout(ctx, tc.Timeout)
		defer cancel()
	}

	start := time.Now()
	n, err := s.stream(queryCtx, cypher, tc, fn)
	observeQuery(s.logger, op, tc.Timeout, time.Since(start), n, err)
	return err
}

func (s *Session) stream(ctx context.Context, cypher string, tc TransactionConfig, fn func(*neo4j.Record) error) (int, error) {
	result, err := s.session.Run(ctx, cypher, nil, tc.AsNeo4jConfig()...)
	if err != nil {
		return 0, err
	}

	n := 0
	for result.Next(ctx) {
		n++
		if err := fn(result.Record()); err != nil {
			// discard the remainder so the session can run the next query
			_, _ = result.Consume(ctx)
			return n, err
		}
	}
	return n, result.Err()
}
