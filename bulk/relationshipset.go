package bulk

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/graphload/graphload/chunk"
	"github.com/graphload/graphload/cypher"
	"github.com/graphload/graphload/graph"
)

// Relationship is one (start match, end match, properties) triple. The
// endpoint mappings carry only the merge-key values of the respective side.
type Relationship struct {
	StartNodeProperties Properties `json:"start_node_properties"`
	EndNodeProperties   Properties `json:"end_node_properties"`
	Properties          Properties `json:"properties"`
}

// RelationshipSet is a container for relationships sharing one type and the
// label/merge-key sets of both endpoints.
type RelationshipSet struct {
	RelType             string
	StartNodeLabels     []string
	EndNodeLabels       []string
	StartNodeProperties []cypher.Property
	EndNodeProperties   []cypher.Property
	DefaultProps        Properties

	relationships []Relationship
	unique        bool
	seen          map[string]struct{}
	id            string
}

// NewRelationshipSet creates an empty RelationshipSet. Endpoint properties
// may be array-marked via cypher.ArrayProp to request containment matching.
func NewRelationshipSet(relType string, startNodeLabels, endNodeLabels []string,
	startNodeProperties, endNodeProperties []cypher.Property, opts ...RelationshipSetOption,
) *RelationshipSet {
	if len(startNodeLabels) == 0 {
		slog.Warn("creating or merging relationships without start node labels is slow because no index is used")
	}
	if len(endNodeLabels) == 0 {
		slog.Warn("creating or merging relationships without end node labels is slow because no index is used")
	}

	rs := &RelationshipSet{
		RelType:             relType,
		StartNodeLabels:     startNodeLabels,
		EndNodeLabels:       endNodeLabels,
		StartNodeProperties: startNodeProperties,
		EndNodeProperties:   endNodeProperties,
		id:                  uuid.NewString(),
	}
	for _, opt := range opts {
		opt(rs)
	}
	if rs.unique {
		rs.seen = make(map[string]struct{})
	}
	return rs
}

func (rs *RelationshipSet) String() string {
	return fmt.Sprintf("<RelationshipSet (%v; %v)-[%s]->(%v; %v)>",
		rs.StartNodeLabels, cypher.Keys(rs.StartNodeProperties), rs.RelType,
		rs.EndNodeLabels, cypher.Keys(rs.EndNodeProperties))
}

// Add appends one relationship. Endpoints are either Properties maps holding
// the endpoint's merge-key values or objects implementing MatchProvider (or
// PropertyProvider as a fallback). Default props are merged under the
// relationship properties. With uniqueness enabled, a triple whose flattened
// value set was seen before is silently skipped.
func (rs *RelationshipSet) Add(start, end any, properties Properties) error {
	startProps, err := resolveMatch(start)
	if err != nil {
		return fmt.Errorf("start node: %w", err)
	}
	endProps, err := resolveMatch(end)
	if err != nil {
		return fmt.Errorf("end node: %w", err)
	}

	relProps := rs.applyDefaults(properties)

	if rs.unique {
		key := flattenedValueSet(startProps, endProps, relProps)
		if _, exists := rs.seen[key]; exists {
			return nil
		}
		rs.seen[key] = struct{}{}
	}

	rs.relationships = append(rs.relationships, Relationship{
		StartNodeProperties: startProps,
		EndNodeProperties:   endProps,
		Properties:          relProps,
	})
	return nil
}

// AddRelationship is an alias for Add.
func (rs *RelationshipSet) AddRelationship(start, end any, properties Properties) error {
	return rs.Add(start, end, properties)
}

// Relationships returns the set's backing slice in insertion order. The
// slice must not be modified by callers.
func (rs *RelationshipSet) Relationships() []Relationship {
	return rs.relationships
}

// Len reports the number of stored relationships.
func (rs *RelationshipSet) Len() int {
	return len(rs.relationships)
}

// AllPropertyKeys returns the sorted union of relationship property keys
// observed across all stored triples.
func (rs *RelationshipSet) AllPropertyKeys() []string {
	seen := map[string]struct{}{}
	for _, r := range rs.relationships {
		for k := range r.Properties {
			seen[k] = struct{}{}
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ObjectFileName derives a content-addressed name for this set:
//
//	relationshipset_Person_KNOWS_Person_4ce1c092-...
func (rs *RelationshipSet) ObjectFileName() string {
	return "relationshipset_" + strings.Join(rs.StartNodeLabels, "_") + "_" + rs.RelType + "_" +
		strings.Join(rs.EndNodeLabels, "_") + "_" + rs.id
}

// Create writes all relationships unconditionally. Both endpoints must be
// matchable, so each side needs at least one match property.
func (rs *RelationshipSet) Create(ctx context.Context, g graph.Graph, opts ...RunOption) error {
	query := cypher.RelsCreate(rs.StartNodeLabels, rs.EndNodeLabels,
		rs.StartNodeProperties, rs.EndNodeProperties, rs.RelType)
	return rs.run(ctx, g, query, "create relationships", opts)
}

// Merge match-or-creates relationships on type and endpoints; properties of
// an existing edge are overwritten with the incoming ones.
func (rs *RelationshipSet) Merge(ctx context.Context, g graph.Graph, opts ...RunOption) error {
	query := cypher.RelsMerge(rs.StartNodeLabels, rs.EndNodeLabels,
		rs.StartNodeProperties, rs.EndNodeProperties, rs.RelType)
	return rs.run(ctx, g, query, "merge relationships", opts)
}

func (rs *RelationshipSet) run(ctx context.Context, g graph.Graph, query, op string, opts []RunOption) error {
	if len(rs.StartNodeProperties) == 0 || len(rs.EndNodeProperties) == 0 {
		return ErrNoEndpointProperties
	}
	ro := newRunOptions(opts)

	sess := g.WriteSession(ctx, ro.database)
	defer sess.Close(ctx)

	for batch := range chunk.Slice(rs.relationships, ro.batchSize) {
		params := map[string]any{cypher.RelParameter: relParamList(batch)}
		if _, err := sess.Run(ctx, query, params); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	return nil
}

// CreateIndex creates the single-property indexes for both endpoint
// definitions, plus composite indexes where an endpoint has more than one
// match property.
func (rs *RelationshipSet) CreateIndex(ctx context.Context, g graph.Graph, opts ...RunOption) error {
	ro := newRunOptions(opts)

	sess := g.WriteSession(ctx, ro.database)
	defer sess.Close(ctx)

	startKeys := cypher.Keys(rs.StartNodeProperties)
	endKeys := cypher.Keys(rs.EndNodeProperties)

	for _, label := range rs.StartNodeLabels {
		for _, prop := range startKeys {
			if err := graph.CreateSingleIndex(ctx, sess, label, prop); err != nil {
				return err
			}
		}
		if len(startKeys) > 1 {
			if err := graph.CreateCompositeIndex(ctx, sess, label, startKeys); err != nil {
				return err
			}
		}
	}
	for _, label := range rs.EndNodeLabels {
		for _, prop := range endKeys {
			if err := graph.CreateSingleIndex(ctx, sess, label, prop); err != nil {
				return err
			}
		}
		if len(endKeys) > 1 {
			if err := graph.CreateCompositeIndex(ctx, sess, label, endKeys); err != nil {
				return err
			}
		}
	}
	return nil
}

func (rs *RelationshipSet) applyDefaults(properties Properties) Properties {
	merged := make(Properties, len(rs.DefaultProps)+len(properties))
	for k, v := range rs.DefaultProps {
		merged[k] = v
	}
	for k, v := range properties {
		merged[k] = v
	}
	return merged
}

// flattenedValueSet identifies a triple by the unordered, deduplicated union
// of its start match values, end match values and property values.
func flattenedValueSet(start, end, props Properties) string {
	values := make([]string, 0, len(start)+len(end)+len(props))
	for _, m := range []Properties{start, end, props} {
		for _, v := range m {
			values = append(values, fmt.Sprintf("%v", v))
		}
	}
	sort.Strings(values)
	values = uniqueStrings(values)
	return strings.Join(values, "\x1f")
}

func uniqueStrings(sorted []string) []string {
	out := sorted[:0]
	for i, s := range sorted {
		if i == 0 || s != sorted[i-1] {
			out = append(out, s)
		}
	}
	return out
}

// relParamList flattens a relationship batch into the statement's parameter
// shape: endpoint keys are prefixed per side because nested map access is
// not available inside UNWIND.
func relParamList(batch []Relationship) []any {
	out := make([]any, 0, len(batch))
	for _, r := range batch {
		flat := make(map[string]any, len(r.StartNodeProperties)+len(r.EndNodeProperties)+1)
		for k, v := range r.StartNodeProperties {
			flat["start_"+k] = v
		}
		for k, v := range r.EndNodeProperties {
			flat["end_"+k] = v
		}
		flat["properties"] = map[string]any(r.Properties)
		out = append(out, flat)
	}
	return out
}
