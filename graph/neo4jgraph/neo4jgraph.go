package neo4jgraph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/graphload/graphload/graph"
)

// Store implements graph.Graph on top of the official Neo4j driver.
type Store struct {
	driver     neo4j.DriverWithContext
	ownsDriver bool
}

var _ graph.Graph = (*Store)(nil)

// New creates a Store with its own driver and verifies connectivity.
func New(ctx context.Context, opts ...Option) (*Store, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	if options.driver != nil {
		return &Store{driver: options.driver}, nil
	}

	driver, err := neo4j.NewDriverWithContext(
		options.connectionURL,
		neo4j.BasicAuth(options.username, options.password, ""),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Neo4j driver: %w", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		driver.Close(ctx)
		return nil, fmt.Errorf("failed to connect to Neo4j: %w", err)
	}

	return &Store{driver: driver, ownsDriver: true}, nil
}

// Driver exposes the underlying driver for callers that need direct access.
func (s *Store) Driver() neo4j.DriverWithContext {
	return s.driver
}

// WriteSession opens a write session against the named database. An empty
// name selects the server default.
func (s *Store) WriteSession(ctx context.Context, database string) graph.Session {
	inner := s.driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: database})
	return &session{inner: inner}
}

// Close closes the underlying driver if this Store created it. A Store built
// from a caller-supplied driver leaves the driver's lifecycle to the caller.
func (s *Store) Close(ctx context.Context) error {
	if !s.ownsDriver {
		return nil
	}
	return s.driver.Close(ctx)
}

type session struct {
	inner neo4j.SessionWithContext
}

// Run executes one parameterized statement in its own write transaction and
// consumes the full result before returning.
func (s *session) Run(ctx context.Context, query string, params map[string]any) ([]graph.Record, error) {
	out, err := s.inner.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}
		records, err := result.Collect(ctx)
		if err != nil {
			return nil, err
		}
		rows := make([]graph.Record, 0, len(records))
		for _, record := range records {
			rows = append(rows, record.AsMap())
		}
		return rows, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to run statement: %w", err)
	}
	return out.([]graph.Record), nil
}

func (s *session) Close(ctx context.Context) error {
	return s.inner.Close(ctx)
}
