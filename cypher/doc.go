// Package cypher generates the parameterized Cypher statements used for bulk
// loading nodes and relationships.
//
// All functions are pure: a statement depends only on the declared labels,
// merge keys and policy flags of a collection, never on record content. The
// produced text is a compatibility contract and is pinned by tests, so any
// change to the statement layout is a breaking change.
//
// Statements follow the UNWIND batching idiom: one statement receives a list
// parameter ($props for nodes, $rels for relationships) and processes one row
// per list element.
package cypher
