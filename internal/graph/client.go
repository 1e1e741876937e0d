package graph

import (
	"context"
	"log/slog"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/rohankatakam/dbstats/internal/config"
	"github.com/rohankatakam/dbstats/internal/errors"
)

// Client wraps the Neo4j driver for one target database
type Client struct {
	driver       neo4j.DriverWithContext
	logger       *slog.Logger
	database     string
	queryTimeout time.Duration
}

// NewClient creates a driver for target and verifies connectivity.
// Authentication failures surface here as connection errors.
func NewClient(ctx context.Context, target config.Target, queryTimeout time.Duration) (*Client, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}

	driver, err := neo4j.NewDriverWithContext(target.URI,
		neo4j.BasicAuth(target.Username, target.Password, ""),
		func(cfg *neo4j.Config) {
			// one session, one query at a time
			cfg.MaxConnectionPoolSize = 2
			cfg.ConnectionAcquisitionTimeout = 60 * time.Second
			cfg.SocketConnectTimeout = 5 * time.Second
			cfg.SocketKeepalive = true
		})
	if err != nil {
		return nil, errors.ConnectionErrorf(err, "failed to create neo4j driver for %s", target.URI)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		driver.Close(ctx)
		return nil, errors.ConnectionErrorf(err, "failed to connect to neo4j at %s", target.URI)
	}

	logger := slog.Default().With("component", "neo4j")
	logger.Info("neo4j client connected",
		"target", target.Name,
		"uri", target.URI,
		"user", target.Username,
		"database", target.DatabaseLabel())

	return &Client{
		driver:       driver,
		logger:       logger,
		database:     target.Database,
		queryTimeout: queryTimeout,
	}, nil
}

// Close closes the Neo4j driver connection
func (c *Client) Close(ctx context.Context) error {
	if err := c.driver.Close(ctx); err != nil {
		return errors.ConnectionError(err, "failed to close neo4j driver")
	}
	c.logger.Info("neo4j client closed")
	return nil
}

// HealthCheck verifies Neo4j connectivity
func (c *Client) HealthCheck(ctx context.Context) error {
	tc := ConfigForOperation(OpHealthCheck, c.queryTimeout)
	ctx, cancel := context.WithTimeout(ctx, tc.Timeout)
	defer cancel()

	if err := c.driver.VerifyConnectivity(ctx); err != nil {
		return errors.ConnectionError(err, "neo4j health check failed")
	}
	return nil
}

// NewReadSession opens the single read session used for a run.
// Callers must Close it on every path.
func (c *Client) NewReadSession(ctx context.Context) *Session {
	session := c.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: c.database,
		FetchSize:    DefaultFetchSize,
	})
	return &Session{
		session:      session,
		logger:       c.logger,
		queryTimeout: c.queryTimeout,
	}
}
