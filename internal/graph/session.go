package graph

import (
	"context"
	"log/slog"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Runner executes one parameterless read query and returns its rows
type Runner interface {
	Run(ctx context.Context, op Operation, cypher string) ([]*neo4j.Record, error)
}

// Session is a read session bound to one database
type Session struct {
	session      neo4j.SessionWithContext
	logger       *slog.Logger
	queryTimeout time.Duration
}

var _ Runner = (*Session)(nil)

// Run executes cypher as an auto-commit read and collects every record.
// Auto-commit queries are never retried by the driver. Driver errors are
// returned unwrapped so callers can classify them.
func (s *Session) Run(ctx context.Context, op Operation, cypher string) ([]*neo4j.Record, error) {
	tc := ConfigForOperation(op, s.queryTimeout)

	queryCtx := ctx
	if tc.Timeout > 0 {
		var cancel context.CancelFunc
		queryCtx, cancel = context.WithTimeout(ctx, tc.Timeout)
		defer cancel()
	}

	start := time.Now()
	records, err := s.collect(queryCtx, cypher, tc)
	observeQuery(s.logger, op, tc.Timeout, time.Since(start), len(records), err)
	return records, err
}

func (s *Session) collect(ctx context.Context, cypher string, tc TransactionConfig) ([]*neo4j.Record, error) {
	result, err := s.session.Run(ctx, cypher, nil, tc.AsNeo4jConfig()...)
	if err != nil {
		return nil, err
	}
	return result.Collect(ctx)
}

// Close releases the session's connection
func (s *Session) Close(ctx context.Context) error {
	return s.session.Close(ctx)
}
