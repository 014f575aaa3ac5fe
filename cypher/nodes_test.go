package cypher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuilder(t *testing.T) {
	b := NewBuilder("a", "b")
	assert.Equal(t, "a\nb", b.Query())

	b.Append("")
	b.Append("c")
	assert.Equal(t, "a\nb\nc", b.Query())
}

func TestLabelString(t *testing.T) {
	assert.Equal(t, ":Person", LabelString([]string{"Person"}))
	assert.Equal(t, ":Person:Actor", LabelString([]string{"Person", "Actor"}))
	assert.Equal(t, "", LabelString(nil))
}

func TestNodesCreate(t *testing.T) {
	q := NodesCreate([]string{"Person"}, nil)
	assert.Equal(t, `UNWIND $props AS properties
CREATE (n:Person)
SET n = properties`, q)
}

func TestNodesCreateAdditionalLabels(t *testing.T) {
	q := NodesCreate([]string{"Person"}, []string{"Imported"})
	assert.Equal(t, `UNWIND $props AS properties
CREATE (n:Person:Imported)
SET n = properties`, q)
}

func TestNodesMerge(t *testing.T) {
	q := NodesMerge([]string{"Person"}, []string{"name"}, nil, nil, nil)
	assert.Equal(t, `UNWIND $props AS properties
MERGE (n:Person { name: properties.name } )
ON CREATE SET n = properties
ON MATCH SET n += properties`, q)
}

func TestNodesMergeMultipleKeys(t *testing.T) {
	q := NodesMerge([]string{"Gene"}, []string{"sid", "taxid"}, nil, nil, nil)
	assert.Equal(t, `UNWIND $props AS properties
MERGE (n:Gene { sid: properties.sid, taxid: properties.taxid } )
ON CREATE SET n = properties
ON MATCH SET n += properties`, q)
}

func TestNodesMergePreserve(t *testing.T) {
	q := NodesMerge([]string{"Person"}, []string{"name"}, nil, []string{"note"}, nil)
	assert.Equal(t, `UNWIND $props AS properties
MERGE (n:Person { name: properties.name } )
ON CREATE SET n = properties
ON MATCH SET n += apoc.map.removeKeys(properties, $preserve)`, q)
}

func TestNodesMergeArrayProps(t *testing.T) {
	q := NodesMerge([]string{"Person"}, []string{"name"}, []string{"foo", "bar"}, nil, nil)
	assert.Equal(t, `UNWIND $props AS properties
MERGE (n:Person { name: properties.name } )
ON CREATE SET n = apoc.map.removeKeys(properties, $append_props)
ON CREATE SET n.foo = [properties.foo], n.bar = [properties.bar]
ON MATCH SET n += apoc.map.removeKeys(properties, $append_props)
ON MATCH SET n.foo = n.foo + properties.foo, n.bar = n.bar + properties.bar`, q)
}

func TestNodesMergePreserveArrayProps(t *testing.T) {
	q := NodesMerge([]string{"Person"}, []string{"name"}, []string{"foo", "bar"}, []string{"bar"}, nil)
	assert.Equal(t, `UNWIND $props AS properties
MERGE (n:Person { name: properties.name } )
ON CREATE SET n = apoc.map.removeKeys(properties, $append_props)
ON CREATE SET n.foo = [properties.foo], n.bar = [properties.bar]
ON MATCH SET n += apoc.map.removeKeys(apoc.map.removeKeys(properties, $append_props), $preserve)
ON MATCH SET n.foo = n.foo + properties.foo`, q)
}

func TestNodesMergeAllArraysPreserved(t *testing.T) {
	// No ON MATCH append line at all when every array key is preserved.
	q := NodesMerge([]string{"Person"}, []string{"name"}, []string{"foo"}, []string{"foo"}, nil)
	assert.Equal(t, `UNWIND $props AS properties
MERGE (n:Person { name: properties.name } )
ON CREATE SET n = apoc.map.removeKeys(properties, $append_props)
ON CREATE SET n.foo = [properties.foo]
ON MATCH SET n += apoc.map.removeKeys(apoc.map.removeKeys(properties, $append_props), $preserve)`, q)
}

func TestNodesMergeAdditionalLabels(t *testing.T) {
	q := NodesMerge([]string{"Person"}, []string{"name"}, nil, nil, []string{"Imported", "Batch"})
	assert.Equal(t, `UNWIND $props AS properties
MERGE (n:Person { name: properties.name } )
ON CREATE SET n = properties
ON MATCH SET n += properties
SET n:Imported:Batch`, q)
}

func TestNodesMergeNoLabels(t *testing.T) {
	q := NodesMerge(nil, []string{"name"}, nil, nil, nil)
	assert.Equal(t, `UNWIND $props AS properties
MERGE (n { name: properties.name } )
ON CREATE SET n = properties
ON MATCH SET n += properties`, q)
}
