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

// NodeSet is a container for nodes sharing one label set and one merge-key
// set. Records are ordered; with deduplication enabled an in-memory index
// from merge-key tuple to record positions gives O(1) duplicate detection
// and in-place updates.
type NodeSet struct {
	Labels           []string
	MergeKeys        []string
	DefaultProps     Properties
	Preserve         []string
	AppendProps      []string
	AdditionalLabels []string

	nodes       []Properties
	deduplicate bool
	index       map[string][]int
	id          string
}

// NewNodeSet creates an empty NodeSet. Labels and merge keys are fixed for
// the set's life.
func NewNodeSet(labels, mergeKeys []string, opts ...NodeSetOption) *NodeSet {
	ns := &NodeSet{
		Labels:    labels,
		MergeKeys: mergeKeys,
		id:        uuid.NewString(),
	}
	for _, opt := range opts {
		opt(ns)
	}
	if ns.deduplicate {
		ns.index = make(map[string][]int)
	}
	return ns
}

func (ns *NodeSet) String() string {
	return fmt.Sprintf("<NodeSet (%v; %v)>", ns.Labels, ns.MergeKeys)
}

// Add appends a record. The record is either a Properties map or an object
// implementing PropertyProvider. Default props are merged under the record
// first; with deduplication enabled, a record whose merge-key tuple is
// already indexed is silently skipped (first write wins).
func (ns *NodeSet) Add(record any) error {
	return ns.add(record, false)
}

// AddForce appends a record unconditionally, bypassing the deduplication
// index. Forced records are not indexed, so they never shadow the first
// record of their merge-key tuple.
func (ns *NodeSet) AddForce(record any) error {
	return ns.add(record, true)
}

// AddAll appends records in order via Add, stopping at the first error.
func (ns *NodeSet) AddAll(records ...any) error {
	for _, r := range records {
		if err := ns.Add(r); err != nil {
			return err
		}
	}
	return nil
}

func (ns *NodeSet) add(record any, force bool) error {
	props, err := resolveProperties(record)
	if err != nil {
		return err
	}
	merged := ns.applyDefaults(props)

	if ns.deduplicate && !force {
		key, err := ns.mergeKeyID(merged)
		if err != nil {
			return err
		}
		if _, exists := ns.index[key]; exists {
			return nil
		}
		ns.index[key] = append(ns.index[key], len(ns.nodes))
	}

	ns.nodes = append(ns.nodes, merged)
	return nil
}

// AddUnique appends a record only if no stored record carries the same
// merge-key value set. This scans all records and is O(n) per call; for
// large sets enable deduplication and use Add instead.
func (ns *NodeSet) AddUnique(record any) error {
	props, err := resolveProperties(record)
	if err != nil {
		return err
	}
	merged := ns.applyDefaults(props)

	candidate, err := ns.mergeValueSet(merged)
	if err != nil {
		return err
	}
	for _, existing := range ns.nodes {
		set, err := ns.mergeValueSet(existing)
		if err != nil {
			continue
		}
		if set == candidate {
			return nil
		}
	}
	return ns.add(merged, false)
}

// Update rewrites every stored record matching the incoming record's
// merge-key tuple with a shallow merge (incoming keys win). A tuple not yet
// indexed falls back to Add. Requires deduplication.
func (ns *NodeSet) Update(record any) error {
	if !ns.deduplicate {
		return ErrNotDeduplicated
	}
	props, err := resolveProperties(record)
	if err != nil {
		return err
	}
	merged := ns.applyDefaults(props)

	key, err := ns.mergeKeyID(merged)
	if err != nil {
		return err
	}
	positions, exists := ns.index[key]
	if !exists {
		return ns.add(merged, false)
	}
	for _, pos := range positions {
		for k, v := range merged {
			ns.nodes[pos][k] = v
		}
	}
	return nil
}

// Nodes returns the set's backing record slice in insertion order. The
// slice must not be modified by callers.
func (ns *NodeSet) Nodes() []Properties {
	return ns.nodes
}

// Len reports the number of stored records.
func (ns *NodeSet) Len() int {
	return len(ns.nodes)
}

// AllPropertyKeys returns the sorted union of property keys observed across
// all records.
func (ns *NodeSet) AllPropertyKeys() []string {
	seen := map[string]struct{}{}
	for _, n := range ns.nodes {
		for k := range n {
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

// ObjectFileName derives a content-addressed name for this set from its
// labels, merge keys and a per-instance token:
//
//	nodeset_Person_id_4ce1c092-...
func (ns *NodeSet) ObjectFileName() string {
	return "nodeset_" + strings.Join(ns.Labels, "_") + "_" + strings.Join(ns.MergeKeys, "_") + "_" + ns.id
}

// Create writes all records as new nodes. Repeated calls duplicate nodes;
// use Merge for idempotent loads.
func (ns *NodeSet) Create(ctx context.Context, g graph.Graph, opts ...RunOption) error {
	ro := newRunOptions(opts)

	query := cypher.NodesCreate(ns.Labels, ns.AdditionalLabels)

	sess := g.WriteSession(ctx, ro.database)
	defer sess.Close(ctx)

	for batch := range chunk.Slice(ns.nodes, ro.batchSize) {
		params := map[string]any{cypher.NodeParameter: toParamList(batch)}
		if _, err := sess.Run(ctx, query, params); err != nil {
			return fmt.Errorf("create nodes: %w", err)
		}
	}
	return nil
}

// Merge match-or-creates all records on the merge-key set, honoring the
// set's preserve and append policies. Policy fields and the merge
// properties may be overridden per call. Fails with ErrNoMergeKeys before
// any store call when no merge properties are available.
func (ns *NodeSet) Merge(ctx context.Context, g graph.Graph, opts ...RunOption) error {
	ro := newRunOptions(opts)

	if len(ns.Labels) == 0 {
		slog.Warn("merging without labels will not use an index and is slow")
	}

	mergeProps := ro.mergeProperties
	if len(mergeProps) == 0 {
		mergeProps = ns.MergeKeys
	}
	if len(mergeProps) == 0 {
		return ErrNoMergeKeys
	}

	preserve := ns.Preserve
	if ro.preserveSet {
		preserve = ro.preserve
	}
	appendProps := ns.AppendProps
	if ro.appendPropsSet {
		appendProps = ro.appendProps
	}

	query := cypher.NodesMerge(ns.Labels, mergeProps, appendProps, preserve, ns.AdditionalLabels)

	sess := g.WriteSession(ctx, ro.database)
	defer sess.Close(ctx)

	for batch := range chunk.Slice(ns.nodes, ro.batchSize) {
		params := map[string]any{
			cypher.NodeParameter: toParamList(batch),
			"append_props":       stringList(appendProps),
			"preserve":           stringList(preserve),
		}
		if _, err := sess.Run(ctx, query, params); err != nil {
			return fmt.Errorf("merge nodes: %w", err)
		}
	}
	return nil
}

// CreateIndex creates one single-property index per label and merge key,
// plus a composite index per label when the merge-key set has more than one
// member.
func (ns *NodeSet) CreateIndex(ctx context.Context, g graph.Graph, opts ...RunOption) error {
	if len(ns.MergeKeys) == 0 {
		return nil
	}
	ro := newRunOptions(opts)

	sess := g.WriteSession(ctx, ro.database)
	defer sess.Close(ctx)

	for _, label := range ns.Labels {
		for _, prop := range ns.MergeKeys {
			if err := graph.CreateSingleIndex(ctx, sess, label, prop); err != nil {
				return err
			}
		}
		if len(ns.MergeKeys) > 1 {
			if err := graph.CreateCompositeIndex(ctx, sess, label, ns.MergeKeys); err != nil {
				return err
			}
		}
	}
	return nil
}

// applyDefaults merges DefaultProps under props; incoming values win. The
// record is copied only when defaults exist.
func (ns *NodeSet) applyDefaults(props Properties) Properties {
	if len(ns.DefaultProps) == 0 {
		return props
	}
	merged := make(Properties, len(ns.DefaultProps)+len(props))
	for k, v := range ns.DefaultProps {
		merged[k] = v
	}
	for k, v := range props {
		merged[k] = v
	}
	return merged
}

// mergeKeyID builds the ordered merge-key tuple identifier of a record.
func (ns *NodeSet) mergeKeyID(props Properties) (string, error) {
	var b strings.Builder
	for _, key := range ns.MergeKeys {
		v, ok := props[key]
		if !ok {
			return "", fmt.Errorf("%w: %q", ErrMissingMergeKey, key)
		}
		fmt.Fprintf(&b, "%v\x1f", v)
	}
	return b.String(), nil
}

// mergeValueSet builds an order-insensitive identifier of a record's
// merge-key values, matching AddUnique's value-set comparison.
func (ns *NodeSet) mergeValueSet(props Properties) (string, error) {
	values := make([]string, 0, len(ns.MergeKeys))
	for _, key := range ns.MergeKeys {
		v, ok := props[key]
		if !ok {
			return "", fmt.Errorf("%w: %q", ErrMissingMergeKey, key)
		}
		values = append(values, fmt.Sprintf("%v", v))
	}
	sort.Strings(values)
	return strings.Join(values, "\x1f"), nil
}

// toParamList converts a record batch into the driver parameter shape.
func toParamList(batch []Properties) []any {
	out := make([]any, 0, len(batch))
	for _, props := range batch {
		out = append(out, map[string]any(props))
	}
	return out
}

// stringList replaces a nil key list with an empty one so list parameters
// never serialize as null.
func stringList(keys []string) []string {
	if keys == nil {
		return []string{}
	}
	return keys
}
