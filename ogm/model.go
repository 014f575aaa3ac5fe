package ogm

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/graphload/graphload/bulk"
	"github.com/graphload/graphload/cypher"
	"github.com/graphload/graphload/graph"
)

// Role states which end of a relationship an instance takes. It is always
// explicit; the package never infers direction from model names, so
// self-referencing relationships stay unambiguous.
type Role int

const (
	RoleSource Role = iota + 1
	RoleTarget
)

// RelationshipDef declares a relationship type between two registered
// models, named by their registry names.
type RelationshipDef struct {
	Type   string
	Source string
	Target string
}

// Model is the schema of one node type. Relationships maps a local name
// (used with Instance.Relate) to its definition.
type Model struct {
	Name             string
	Labels           []string
	MergeKeys        []string
	DefaultProps     bulk.Properties
	Preserve         []string
	AppendProps      []string
	AdditionalLabels []string
	Relationships    map[string]RelationshipDef

	registry *Registry
}

// Registry resolves model names to schemas. Models must be registered
// before instances of them can load relationships or run queries.
type Registry struct {
	models map[string]*Model
}

func NewRegistry() *Registry {
	return &Registry{models: make(map[string]*Model)}
}

// Register attaches a model to the registry under its Name.
func (r *Registry) Register(m *Model) error {
	if m.Name == "" {
		return fmt.Errorf("%w: empty model name", ErrModelNotFound)
	}
	if _, exists := r.models[m.Name]; exists {
		return fmt.Errorf("%w: %q", ErrModelExists, m.Name)
	}
	m.registry = r
	r.models[m.Name] = m
	return nil
}

// Model resolves a registered model by name.
func (r *Registry) Model(name string) (*Model, error) {
	m, ok := r.models[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrModelNotFound, name)
	}
	return m, nil
}

// Models returns all registered models sorted by name.
func (r *Registry) Models() []*Model {
	out := make([]*Model, 0, len(r.models))
	for _, m := range r.models {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// CreateIndexes creates the merge-key indexes of every registered model.
func (r *Registry) CreateIndexes(ctx context.Context, g graph.Graph) error {
	for _, m := range r.Models() {
		if err := m.NodeSet().CreateIndex(ctx, g); err != nil {
			return fmt.Errorf("create indexes for %q: %w", m.Name, err)
		}
	}
	return nil
}

// NodeSet builds an empty bulk.NodeSet configured from the model's schema.
func (m *Model) NodeSet() *bulk.NodeSet {
	var opts []bulk.NodeSetOption
	if len(m.DefaultProps) > 0 {
		opts = append(opts, bulk.WithDefaultProps(m.DefaultProps))
	}
	if len(m.Preserve) > 0 {
		opts = append(opts, bulk.WithPreserve(m.Preserve...))
	}
	if len(m.AppendProps) > 0 {
		opts = append(opts, bulk.WithAppendProps(m.AppendProps...))
	}
	if len(m.AdditionalLabels) > 0 {
		opts = append(opts, bulk.WithAdditionalLabels(m.AdditionalLabels...))
	}
	return bulk.NewNodeSet(m.Labels, m.MergeKeys, opts...)
}

// RelationshipSet builds an empty bulk.RelationshipSet for the named
// relationship, with endpoint match properties taken from the merge keys of
// the source and target models.
func (m *Model) RelationshipSet(name string) (*bulk.RelationshipSet, error) {
	def, ok := m.Relationships[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q on %q", ErrRelationshipNotFound, name, m.Name)
	}
	return m.relationshipSet(def)
}

func (m *Model) relationshipSet(def RelationshipDef) (*bulk.RelationshipSet, error) {
	if m.registry == nil {
		return nil, fmt.Errorf("%w: %q", ErrNotRegistered, m.Name)
	}
	source, err := m.registry.Model(def.Source)
	if err != nil {
		return nil, err
	}
	target, err := m.registry.Model(def.Target)
	if err != nil {
		return nil, err
	}
	return bulk.NewRelationshipSet(def.Type, source.Labels, target.Labels,
		cypher.Props(source.MergeKeys...), cypher.Props(target.MergeKeys...)), nil
}

// Match starts a query over this model's nodes.
func (m *Model) Match(filters ...FilterOp) *Query {
	q := newQuery(m)
	if len(filters) > 0 {
		q = q.Filter(filters...)
	}
	return q
}

// NewInstance creates an instance of the model carrying the given
// properties.
func (m *Model) NewInstance(props bulk.Properties) *Instance {
	if props == nil {
		props = bulk.Properties{}
	}
	return &Instance{model: m, props: props}
}

// Instance is one concrete node of a model. It satisfies the bulk package's
// PropertyProvider and MatchProvider, so it can be added to node sets and
// used as a relationship endpoint directly.
type Instance struct {
	model *Model
	props bulk.Properties
	rels  []boundRelationship
}

type boundRelationship struct {
	def   RelationshipDef
	role  Role
	other *Instance
	props bulk.Properties
}

// Model returns the instance's schema.
func (i *Instance) Model() *Model {
	return i.model
}

// NodeProperties returns the full property mapping.
func (i *Instance) NodeProperties() bulk.Properties {
	return i.props
}

// MatchProperties returns the merge-key subset of the properties.
func (i *Instance) MatchProperties() bulk.Properties {
	match := make(bulk.Properties, len(i.model.MergeKeys))
	for _, key := range i.model.MergeKeys {
		if v, ok := i.props[key]; ok {
			match[key] = v
		}
	}
	return match
}

// Set stores one property value.
func (i *Instance) Set(key string, value any) {
	i.props[key] = value
}

// Get reads one property value.
func (i *Instance) Get(key string) (any, bool) {
	v, ok := i.props[key]
	return v, ok
}

// Relate binds another instance to this one via a declared relationship.
// The role states which end this instance takes and must agree with the
// definition. Bound relationships are written by Create and Merge.
func (i *Instance) Relate(name string, role Role, other *Instance, props bulk.Properties) error {
	def, ok := i.model.Relationships[name]
	if !ok {
		return fmt.Errorf("%w: %q on %q", ErrRelationshipNotFound, name, i.model.Name)
	}
	switch role {
	case RoleSource:
		if def.Source != i.model.Name {
			return fmt.Errorf("%w: %q is not the source of %q", ErrWrongRole, i.model.Name, def.Type)
		}
	case RoleTarget:
		if def.Target != i.model.Name {
			return fmt.Errorf("%w: %q is not the target of %q", ErrWrongRole, i.model.Name, def.Type)
		}
	default:
		return fmt.Errorf("%w: unknown role %d", ErrWrongRole, role)
	}

	i.rels = append(i.rels, boundRelationship{def: def, role: role, other: other, props: props})
	return nil
}

// Related returns a query over the targets of the named relationship,
// anchored at this instance's merge-key values.
func (i *Instance) Related(name string) (*Query, error) {
	q, err := newQuery(i.model).Traverse(name)
	if err != nil {
		return nil, err
	}
	q.anchor = i
	return q, nil
}

// Create writes the instance's node, all bound counterpart nodes and all
// bound relationships unconditionally.
func (i *Instance) Create(ctx context.Context, g graph.Graph) error {
	return i.write(ctx, g, false)
}

// Merge writes the instance's node, all bound counterpart nodes and all
// bound relationships idempotently.
func (i *Instance) Merge(ctx context.Context, g graph.Graph) error {
	return i.write(ctx, g, true)
}

func (i *Instance) write(ctx context.Context, g graph.Graph, merge bool) error {
	ns := i.model.NodeSet()
	if err := ns.Add(i); err != nil {
		return err
	}
	if err := runNodeSet(ctx, g, ns, merge); err != nil {
		return err
	}

	for _, rel := range i.rels {
		if err := rel.other.write(ctx, g, merge); err != nil {
			return err
		}

		rs, err := i.model.relationshipSet(rel.def)
		if err != nil {
			return err
		}
		start, end := any(i), any(rel.other)
		if rel.role == RoleTarget {
			start, end = rel.other, i
		}
		if err := rs.Add(start, end, rel.props); err != nil {
			return err
		}
		if err := runRelationshipSet(ctx, g, rs, merge); err != nil {
			return err
		}
	}
	return nil
}

func runNodeSet(ctx context.Context, g graph.Graph, ns *bulk.NodeSet, merge bool) error {
	if merge {
		return ns.Merge(ctx, g)
	}
	return ns.Create(ctx, g)
}

func runRelationshipSet(ctx context.Context, g graph.Graph, rs *bulk.RelationshipSet, merge bool) error {
	if merge {
		return rs.Merge(ctx, g)
	}
	return rs.Create(ctx, g)
}

// Delete detaches and deletes every node matching the instance's merge-key
// values.
func (i *Instance) Delete(ctx context.Context, g graph.Graph) error {
	match := i.MatchProperties()
	keys := make([]string, 0, len(match))
	for k := range match {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	params := make(map[string]any, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+": $"+k)
		params[k] = match[k]
	}

	query := "MATCH (n" + cypher.LabelString(i.model.Labels) + " { " + strings.Join(pairs, ", ") + " } )\nDETACH DELETE n"

	sess := g.WriteSession(ctx, "")
	defer sess.Close(ctx)

	if _, err := sess.Run(ctx, query, params); err != nil {
		return fmt.Errorf("delete node: %w", err)
	}
	return nil
}
