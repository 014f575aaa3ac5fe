// Package neo4jgraph implements the graph.Graph interface on top of the
// official Neo4j Go driver.
//
// Each Session.Run call executes one parameterized statement inside its own
// managed write transaction and consumes the result fully, matching the
// one-transaction-per-batch model of the bulk loading loop.
//
// Basic usage:
//
//	store, err := neo4jgraph.New(ctx,
//		neo4jgraph.WithConnectionURL("bolt://localhost:7687"),
//		neo4jgraph.WithCredentials("neo4j", "password"),
//	)
package neo4jgraph
