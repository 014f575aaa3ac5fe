package ogm

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/graphload/graphload/bulk"
	"github.com/graphload/graphload/cypher"
	"github.com/graphload/graphload/graph"
)

// FilterOp is one property comparison. The operator must be one of
// =, <>, >, <, >=, <=, STARTS WITH, ENDS WITH and CONTAINS.
type FilterOp struct {
	Field    string
	Operator string
	Value    any
}

var validOperators = map[string]struct{}{
	"=": {}, "<>": {}, ">": {}, "<": {}, ">=": {}, "<=": {},
	"STARTS WITH": {}, "ENDS WITH": {}, "CONTAINS": {},
}

// Query reads instances back from the store. Queries are immutable: Filter,
// FilterRel, Traverse and Limit return modified copies, so a partially
// built query can be shared and extended along different paths safely.
type Query struct {
	model *Model

	relType       string
	target        *Model
	anchor        *Instance
	sourceFilters []FilterOp
	relFilters    []FilterOp
	nodeFilters   []FilterOp
	limit         int
}

func newQuery(m *Model) *Query {
	return &Query{model: m}
}

func (q *Query) clone() *Query {
	c := *q
	c.sourceFilters = append([]FilterOp(nil), q.sourceFilters...)
	c.relFilters = append([]FilterOp(nil), q.relFilters...)
	c.nodeFilters = append([]FilterOp(nil), q.nodeFilters...)
	return &c
}

// Filter adds comparisons on the result nodes and returns a copy.
func (q *Query) Filter(filters ...FilterOp) *Query {
	c := q.clone()
	c.nodeFilters = append(c.nodeFilters, filters...)
	return c
}

// FilterRel adds comparisons on traversed relationship properties and
// returns a copy. Only meaningful after Traverse; All and First fail with
// ErrNoTraversal otherwise.
func (q *Query) FilterRel(filters ...FilterOp) *Query {
	c := q.clone()
	c.relFilters = append(c.relFilters, filters...)
	return c
}

// Traverse follows the named relationship of the query's model. The
// returned copy yields instances of the relationship's target model;
// filters added so far keep constraining the start nodes.
func (q *Query) Traverse(name string) (*Query, error) {
	if q.target != nil {
		return nil, fmt.Errorf("multi-hop traversal is not supported")
	}
	def, ok := q.model.Relationships[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q on %q", ErrRelationshipNotFound, name, q.model.Name)
	}
	if q.model.registry == nil {
		return nil, fmt.Errorf("%w: %q", ErrNotRegistered, q.model.Name)
	}
	target, err := q.model.registry.Model(def.Target)
	if err != nil {
		return nil, err
	}

	c := q.clone()
	c.relType = def.Type
	c.target = target
	c.sourceFilters = c.nodeFilters
	c.nodeFilters = nil
	return c, nil
}

// Limit caps the number of returned instances and returns a copy.
func (q *Query) Limit(n int) *Query {
	c := q.clone()
	c.limit = n
	return c
}

// All runs the query and returns every matching instance.
func (q *Query) All(ctx context.Context, g graph.Graph) ([]*Instance, error) {
	return q.run(ctx, g, q.limit)
}

// First runs the query with a limit of one. It returns nil without error
// when nothing matches.
func (q *Query) First(ctx context.Context, g graph.Graph) (*Instance, error) {
	results, err := q.run(ctx, g, 1)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (q *Query) run(ctx context.Context, g graph.Graph, limit int) ([]*Instance, error) {
	query, params, err := q.build(limit)
	if err != nil {
		return nil, err
	}

	sess := g.WriteSession(ctx, "")
	defer sess.Close(ctx)

	records, err := sess.Run(ctx, query, params)
	if err != nil {
		return nil, fmt.Errorf("run query: %w", err)
	}

	resultModel := q.model
	if q.target != nil {
		resultModel = q.target
	}

	instances := make([]*Instance, 0, len(records))
	for _, record := range records {
		props, ok := record["n"].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("unexpected record shape: %v", record)
		}
		instances = append(instances, resultModel.NewInstance(bulk.Properties(props)))
	}
	return instances, nil
}

// build assembles the statement. Nodes come back as property mappings so
// results stay independent of driver node types.
func (q *Query) build(limit int) (string, map[string]any, error) {
	if q.target == nil && len(q.relFilters) > 0 {
		return "", nil, ErrNoTraversal
	}
	for _, f := range append(append(append([]FilterOp{}, q.sourceFilters...), q.relFilters...), q.nodeFilters...) {
		if _, ok := validOperators[f.Operator]; !ok {
			return "", nil, fmt.Errorf("%w: %q", ErrInvalidOperator, f.Operator)
		}
	}

	params := map[string]any{}
	var conditions []string

	addFilters := func(variable, prefix string, filters []FilterOp) {
		for i, f := range filters {
			name := prefix + "_" + f.Field + "_" + strconv.Itoa(i)
			conditions = append(conditions, variable+"."+f.Field+" "+f.Operator+" $"+name)
			params[name] = f.Value
		}
	}

	var b *cypher.Builder
	var returnLine string

	if q.target == nil {
		b = cypher.NewBuilder("MATCH (n" + cypher.LabelString(q.model.Labels) + ")")
		addFilters("n", "n", q.nodeFilters)
		returnLine = "RETURN properties(n) AS n"
	} else {
		b = cypher.NewBuilder("MATCH (source" + cypher.LabelString(q.model.Labels) +
			")-[r:" + q.relType + "]->(target" + cypher.LabelString(q.target.Labels) + ")")

		if q.anchor != nil {
			match := q.anchor.MatchProperties()
			keys := make([]string, 0, len(match))
			for k := range match {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				name := "source_" + k
				conditions = append(conditions, "source."+k+" = $"+name)
				params[name] = match[k]
			}
		} else {
			addFilters("source", "source", q.sourceFilters)
		}
		addFilters("r", "rel", q.relFilters)
		addFilters("target", "target", q.nodeFilters)
		returnLine = "RETURN DISTINCT properties(target) AS n"
	}

	if len(conditions) > 0 {
		b.Append("WHERE " + strings.Join(conditions, " AND "))
	}
	if limit > 0 {
		returnLine += " LIMIT " + strconv.Itoa(limit)
	}
	b.Append(returnLine)

	return b.Query(), params, nil
}
