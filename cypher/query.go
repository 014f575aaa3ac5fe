package cypher

import "strings"

const (
	// NodeParameter is the list parameter name of node statements.
	NodeParameter = "props"
	// RelParameter is the list parameter name of relationship statements.
	RelParameter = "rels"
)

// Builder assembles a statement from individual clause lines. Empty lines
// are skipped so conditional clauses can be appended unconditionally.
type Builder struct {
	lines []string
}

// NewBuilder creates a Builder seeded with the given clause lines.
func NewBuilder(lines ...string) *Builder {
	b := &Builder{}
	b.lines = append(b.lines, lines...)
	return b
}

// Append adds a clause line to the statement.
func (b *Builder) Append(line string) {
	b.lines = append(b.lines, line)
}

// Query joins the non-empty clause lines into the final statement text.
func (b *Builder) Query() string {
	kept := make([]string, 0, len(b.lines))
	for _, l := range b.lines {
		if l != "" {
			kept = append(kept, l)
		}
	}
	return strings.Join(kept, "\n")
}

// LabelString renders a label set for use in a node pattern, e.g.
// [Person, Actor] -> ":Person:Actor". An empty label set renders as an empty
// string, which is legal but produces unindexed matches.
func LabelString(labels []string) string {
	if len(labels) == 0 {
		return ""
	}
	return ":" + strings.Join(labels, ":")
}

// matchPropertiesString renders the property map of a MERGE or MATCH clause,
// e.g. "sid: properties.sid, taxid: properties.taxid".
func matchPropertiesString(mergeProperties []string, paramName string) string {
	parts := make([]string, 0, len(mergeProperties))
	for _, p := range mergeProperties {
		parts = append(parts, p+": "+paramName+"."+p)
	}
	return strings.Join(parts, ", ")
}

// mergeClause renders the MERGE clause matching a node on its merge
// properties, e.g. "MERGE (n:Person { name: properties.name } )".
func mergeClause(labels, mergeProperties []string) string {
	return "MERGE (n" + LabelString(labels) + " { " + matchPropertiesString(mergeProperties, "properties") + " } )"
}
