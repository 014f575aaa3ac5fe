// Package graph defines the narrow store interface the bulk loading engine
// writes through, plus index-creation helpers built on it.
//
// The engine never talks to a driver directly: it asks a Graph for a scoped
// write session, runs one parameterized statement per batch, and closes the
// session when the call ends. Production code wraps the Neo4j driver via the
// neo4jgraph subpackage; tests substitute an in-memory recorder.
package graph

import "context"

// Record is one result row, keyed by the column names of the statement.
type Record = map[string]any

// Session runs parameterized statements inside write transactions. Each Run
// call is one transaction; results are fully consumed before Run returns.
// Failures are fatal for the caller's current operation, the session performs
// no retries.
type Session interface {
	Run(ctx context.Context, query string, params map[string]any) ([]Record, error)
	Close(ctx context.Context) error
}

// Graph opens scoped write sessions against a named database. An empty
// database name selects the server's default database.
type Graph interface {
	WriteSession(ctx context.Context, database string) Session
}
