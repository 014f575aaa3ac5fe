package bulk

import (
	"slices"
	"sort"
	"strings"
)

// Container aggregates node and relationship sets so a whole load can be
// passed around, written to files or replayed as one unit.
type Container struct {
	nodeSets         []*NodeSet
	relationshipSets []*RelationshipSet
}

// NewContainer creates a Container holding the given sets.
func NewContainer(sets ...any) *Container {
	c := &Container{}
	c.AddAll(sets...)
	return c
}

// Add stores a set. Values that are neither *NodeSet nor *RelationshipSet
// are ignored.
func (c *Container) Add(set any) {
	switch s := set.(type) {
	case *NodeSet:
		c.nodeSets = append(c.nodeSets, s)
	case *RelationshipSet:
		c.relationshipSets = append(c.relationshipSets, s)
	}
}

// AddAll stores all given sets in order.
func (c *Container) AddAll(sets ...any) {
	for _, s := range sets {
		c.Add(s)
	}
}

// NodeSets returns the stored node sets in insertion order.
func (c *Container) NodeSets() []*NodeSet {
	return c.nodeSets
}

// RelationshipSets returns the stored relationship sets in insertion order.
func (c *Container) RelationshipSets() []*RelationshipSet {
	return c.relationshipSets
}

// NodeSet returns the first stored node set carrying exactly the given
// labels and merge keys, regardless of order, or nil.
func (c *Container) NodeSet(labels, mergeKeys []string) *NodeSet {
	wantLabels := sortedKey(labels)
	wantKeys := sortedKey(mergeKeys)
	for _, ns := range c.nodeSets {
		if sortedKey(ns.Labels) == wantLabels && sortedKey(ns.MergeKeys) == wantKeys {
			return ns
		}
	}
	return nil
}

// RelationshipSet returns the first stored relationship set with the given
// type and endpoint label sets, regardless of label order, or nil.
func (c *Container) RelationshipSet(relType string, startNodeLabels, endNodeLabels []string) *RelationshipSet {
	wantStart := sortedKey(startNodeLabels)
	wantEnd := sortedKey(endNodeLabels)
	for _, rs := range c.relationshipSets {
		if rs.RelType == relType && sortedKey(rs.StartNodeLabels) == wantStart && sortedKey(rs.EndNodeLabels) == wantEnd {
			return rs
		}
	}
	return nil
}

func sortedKey(values []string) string {
	s := slices.Clone(values)
	sort.Strings(s)
	return strings.Join(s, "\x1f")
}
