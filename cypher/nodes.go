package cypher

import (
	"slices"
	"strings"
)

// NodesCreate generates the unconditional batch insert statement for a node
// set:
//
//	UNWIND $props AS properties
//	CREATE (n:Person)
//	SET n = properties
//
// Repeated execution duplicates nodes; "create" means unconditional insert.
// Additional labels are appended to the label set of the created node.
func NodesCreate(labels, additionalLabels []string) string {
	all := make([]string, 0, len(labels)+len(additionalLabels))
	all = append(all, labels...)
	all = append(all, additionalLabels...)

	b := NewBuilder(
		"UNWIND $"+NodeParameter+" AS properties",
		"CREATE (n"+LabelString(all)+")",
		"SET n = properties",
	)
	return b.Query()
}

// NodesMerge generates the match-or-create statement for a node set. The
// ON CREATE / ON MATCH update policy is selected by the combination of
// arrayProps (accumulate into arrays, never overwrite) and preserve (never
// touch after creation):
//
//	UNWIND $props AS properties
//	MERGE (n:Person { name: properties.name } )
//	ON CREATE SET n = properties
//	ON MATCH SET n += properties
//
// The preserve and append variants exclude keys via apoc.map.removeKeys and
// expect the $preserve and $append_props list parameters alongside $props.
// An array property listed in preserve is initialized on create and never
// mutated again.
func NodesMerge(labels, mergeProperties, arrayProps, preserve, additionalLabels []string) string {
	onCreateArray := make([]string, 0, len(arrayProps))
	for _, ap := range arrayProps {
		onCreateArray = append(onCreateArray, "n."+ap+" = [properties."+ap+"]")
	}

	onMatchArray := make([]string, 0, len(arrayProps))
	for _, ap := range arrayProps {
		if !slices.Contains(preserve, ap) {
			onMatchArray = append(onMatchArray, "n."+ap+" = n."+ap+" + properties."+ap)
		}
	}

	b := NewBuilder(
		"UNWIND $"+NodeParameter+" AS properties",
		mergeClause(labels, mergeProperties),
	)

	switch {
	case len(arrayProps) == 0 && len(preserve) == 0:
		b.Append("ON CREATE SET n = properties")
		b.Append("ON MATCH SET n += properties")
	case len(arrayProps) == 0:
		b.Append("ON CREATE SET n = properties")
		b.Append("ON MATCH SET n += apoc.map.removeKeys(properties, $preserve)")
	case len(preserve) == 0:
		b.Append("ON CREATE SET n = apoc.map.removeKeys(properties, $append_props)")
		b.Append("ON CREATE SET " + strings.Join(onCreateArray, ", "))
		b.Append("ON MATCH SET n += apoc.map.removeKeys(properties, $append_props)")
		b.Append("ON MATCH SET " + strings.Join(onMatchArray, ", "))
	default:
		b.Append("ON CREATE SET n = apoc.map.removeKeys(properties, $append_props)")
		b.Append("ON CREATE SET " + strings.Join(onCreateArray, ", "))
		b.Append("ON MATCH SET n += apoc.map.removeKeys(apoc.map.removeKeys(properties, $append_props), $preserve)")
		if len(onMatchArray) > 0 {
			b.Append("ON MATCH SET " + strings.Join(onMatchArray, ", "))
		}
	}

	if len(additionalLabels) > 0 {
		b.Append("SET n:" + strings.Join(additionalLabels, ":"))
	}

	return b.Query()
}
