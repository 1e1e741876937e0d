package graph

import (
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Operation names a read issued by dbstats. It is attached to every
// transaction as metadata, so it shows up in Neo4j's query.log.
type Operation string

const (
	OpLabelCounts        Operation = "label_counts"
	OpIndexCatalog       Operation = "index_catalog"
	OpRelationshipCounts Operation = "relationship_counts"
	OpRelationshipEdges  Operation = "relationship_edges"
	OpHealthCheck        Operation = "health_check"
)

// TransactionConfig defines timeout and metadata for transactions
type TransactionConfig struct {
	Timeout  time.Duration
	Metadata map[string]any
}

// ConfigForOperation returns the transaction config for op. timeout is the
// configured per-query limit; zero leaves the query unbounded, except for
// health checks which are always capped.
func ConfigForOperation(op Operation, timeout time.Duration) TransactionConfig {
	if op == OpHealthCheck && (timeout == 0 || timeout > 5*time.Second) {
		timeout = 5 * time.Second
	}
	return TransactionConfig{
		Timeout: timeout,
		Metadata: map[string]any{
			"app":       "dbstats",
			"operation": string(op),
			"type":      "read",
		},
	}
}

// AsNeo4jConfig converts to Neo4j transaction config functions
func (tc TransactionConfig) AsNeo4jConfig() []func(*neo4j.TransactionConfig) {
	configs := []func(*neo4j.TransactionConfig){}

	if tc.Timeout > 0 {
		configs = append(configs, neo4j.WithTxTimeout(tc.Timeout))
	}

	if len(tc.Metadata) > 0 {
		configs = append(configs, neo4j.WithTxMetadata(tc.Metadata))
	}

	return configs
}
