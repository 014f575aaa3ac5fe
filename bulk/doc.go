// Package bulk provides containers for loading large sets of nodes and
// relationships into a property graph store with batched, idempotent write
// statements.
//
// A NodeSet holds property records sharing one label set and one merge-key
// set; a RelationshipSet holds (start, end, properties) triples sharing one
// relationship type and the label/key sets of both endpoints. Create writes
// records unconditionally, Merge is idempotent on the merge keys and applies
// a configurable property-update policy (overwrite, preserve, or
// array-accumulate).
//
// Writes go through the graph.Graph interface: one write session per
// Create/Merge call, records chunked into batches, one UNWIND statement per
// batch, one transaction per statement. There is no retry; the first failing
// batch aborts the call and leaves previously committed batches in place.
//
// Basic usage:
//
//	people := bulk.NewNodeSet([]string{"Person"}, []string{"id"})
//	people.Add(bulk.Properties{"id": 1, "name": "Alice"})
//
//	knows := bulk.NewRelationshipSet("KNOWS",
//		[]string{"Person"}, []string{"Person"},
//		cypher.Props("id"), cypher.Props("id"))
//	knows.Add(bulk.Properties{"id": 1}, bulk.Properties{"id": 2}, nil)
//
//	if err := people.Merge(ctx, store); err != nil { ... }
//	if err := knows.Merge(ctx, store); err != nil { ... }
//
// Sets are not safe for concurrent mutation; callers wanting parallel loads
// run independent sets concurrently.
package bulk
