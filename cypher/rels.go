package cypher

import "strings"

// RelsCreate generates the batch insert statement for a relationship set:
//
//	UNWIND $rels AS rel
//	MATCH (a:Person), (b:Movie)
//	WHERE a.name = rel.start_name AND b.title = rel.end_title
//	CREATE (a)-[r:LIKES]->(b)
//	SET r = rel.properties RETURN count(r)
//
// Endpoint keys arrive flattened with start_/end_ prefixes because nested
// map access is not available inside UNWIND. Array-marked endpoint
// properties are matched by containment ("rel.start_key IN a.key") instead
// of equality.
func RelsCreate(startLabels, endLabels []string, startProps, endProps []Property, relType string) string {
	return relsStatement(startLabels, endLabels, startProps, endProps, relType, "CREATE")
}

// RelsMerge generates the match-or-create statement for a relationship set.
// The MERGE matches on type and endpoints only, never on relationship
// properties: an existing edge is kept and its properties are overwritten
// with the incoming ones.
func RelsMerge(startLabels, endLabels []string, startProps, endProps []Property, relType string) string {
	return relsStatement(startLabels, endLabels, startProps, endProps, relType, "MERGE")
}

func relsStatement(startLabels, endLabels []string, startProps, endProps []Property, relType, keyword string) string {
	where := make([]string, 0, len(startProps)+len(endProps))
	for _, p := range startProps {
		if p.Array {
			where = append(where, "rel.start_"+p.Key+" IN a."+p.Key)
		} else {
			where = append(where, "a."+p.Key+" = rel.start_"+p.Key)
		}
	}
	for _, p := range endProps {
		if p.Array {
			where = append(where, "rel.end_"+p.Key+" IN b."+p.Key)
		} else {
			where = append(where, "b."+p.Key+" = rel.end_"+p.Key)
		}
	}

	b := NewBuilder(
		"UNWIND $"+RelParameter+" AS rel",
		"MATCH (a"+LabelString(startLabels)+"), (b"+LabelString(endLabels)+")",
		"WHERE "+strings.Join(where, " AND "),
		keyword+" (a)-[r:"+relType+"]->(b)",
		"SET r = rel.properties RETURN count(r)",
	)
	return b.Query()
}
