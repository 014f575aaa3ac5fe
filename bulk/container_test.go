package bulk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphload/graphload/cypher"
)

func TestContainer(t *testing.T) {
	people := NewNodeSet([]string{"Person"}, []string{"name"})
	movies := NewNodeSet([]string{"Movie"}, []string{"title"})
	likes := NewRelationshipSet("LIKES", []string{"Person"}, []string{"Movie"},
		cypher.Props("name"), cypher.Props("title"))

	c := NewContainer(people, likes, movies)

	assert.Equal(t, []*NodeSet{people, movies}, c.NodeSets())
	assert.Equal(t, []*RelationshipSet{likes}, c.RelationshipSets())
}

func TestContainerIgnoresUnknownValues(t *testing.T) {
	c := NewContainer("not a set", 42, nil)

	assert.Empty(t, c.NodeSets())
	assert.Empty(t, c.RelationshipSets())
}

func TestContainerNodeSetLookup(t *testing.T) {
	people := NewNodeSet([]string{"Person", "Actor"}, []string{"name", "born"})
	c := NewContainer(people)

	require.Same(t, people, c.NodeSet([]string{"Actor", "Person"}, []string{"born", "name"}),
		"lookup is order-insensitive")
	assert.Nil(t, c.NodeSet([]string{"Person"}, []string{"name"}))
}

func TestContainerRelationshipSetLookup(t *testing.T) {
	likes := NewRelationshipSet("LIKES", []string{"Person"}, []string{"Movie"},
		cypher.Props("name"), cypher.Props("title"))
	c := NewContainer(likes)

	require.Same(t, likes, c.RelationshipSet("LIKES", []string{"Person"}, []string{"Movie"}))
	assert.Nil(t, c.RelationshipSet("HATES", []string{"Person"}, []string{"Movie"}))
}
