package bulk

// DefaultBatchSize bounds the number of records sent in one statement when
// no per-call batch size is given.
const DefaultBatchSize = 10000

// NodeSetOption configures a NodeSet at construction time.
type NodeSetOption func(*NodeSet)

// WithDefaultProps sets properties merged under every added record;
// caller-supplied values win on conflicting keys.
func WithDefaultProps(props Properties) NodeSetOption {
	return func(ns *NodeSet) {
		ns.DefaultProps = props
	}
}

// WithPreserve marks properties that, once set on create, are never
// overwritten by later merges.
func WithPreserve(keys ...string) NodeSetOption {
	return func(ns *NodeSet) {
		ns.Preserve = keys
	}
}

// WithAppendProps marks properties whose merge semantics accumulate values
// into an array instead of overwriting.
func WithAppendProps(keys ...string) NodeSetOption {
	return func(ns *NodeSet) {
		ns.AppendProps = keys
	}
}

// WithAdditionalLabels sets labels attached to written nodes on top of the
// set's label set; they take no part in merge matching.
func WithAdditionalLabels(labels ...string) NodeSetOption {
	return func(ns *NodeSet) {
		ns.AdditionalLabels = labels
	}
}

// WithDeduplication enables the in-memory merge-key index: Add skips records
// whose merge-key tuple is already present (first write wins) and Update
// rewrites records in place.
func WithDeduplication() NodeSetOption {
	return func(ns *NodeSet) {
		ns.deduplicate = true
	}
}

// RelationshipSetOption configures a RelationshipSet at construction time.
type RelationshipSetOption func(*RelationshipSet)

// WithRelDefaultProps sets properties merged under every added
// relationship's property mapping; caller-supplied values win.
func WithRelDefaultProps(props Properties) RelationshipSetOption {
	return func(rs *RelationshipSet) {
		rs.DefaultProps = props
	}
}

// WithUnique enables uniqueness enforcement: a relationship whose flattened
// value set (start match values, end match values and properties combined)
// was seen before is not added again.
func WithUnique() RelationshipSetOption {
	return func(rs *RelationshipSet) {
		rs.unique = true
	}
}

// RunOption configures a single Create, Merge or CreateIndex call.
type RunOption func(*runOptions)

type runOptions struct {
	batchSize       int
	database        string
	mergeProperties []string
	preserve        []string
	preserveSet     bool
	appendProps     []string
	appendPropsSet  bool
}

func newRunOptions(opts []RunOption) *runOptions {
	ro := &runOptions{batchSize: DefaultBatchSize}
	for _, opt := range opts {
		opt(ro)
	}
	return ro
}

// WithBatchSize sets the number of records per statement execution.
func WithBatchSize(n int) RunOption {
	return func(ro *runOptions) {
		if n > 0 {
			ro.batchSize = n
		}
	}
}

// WithDatabase selects the target database; empty means the server default.
func WithDatabase(database string) RunOption {
	return func(ro *runOptions) {
		ro.database = database
	}
}

// WithMergeProperties overrides the properties merged on for this call only.
func WithMergeProperties(keys ...string) RunOption {
	return func(ro *runOptions) {
		ro.mergeProperties = keys
	}
}

// WithMergePreserve overrides the set's preserve keys for this call only.
func WithMergePreserve(keys ...string) RunOption {
	return func(ro *runOptions) {
		ro.preserve = keys
		ro.preserveSet = true
	}
}

// WithMergeAppendProps overrides the set's append keys for this call only.
func WithMergeAppendProps(keys ...string) RunOption {
	return func(ro *runOptions) {
		ro.appendProps = keys
		ro.appendPropsSet = true
	}
}
