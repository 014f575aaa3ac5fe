package ogm

import (
	"context"

	"github.com/graphload/graphload/graph"
)

// fakeGraph records statements and feeds back canned results, one result
// set per Run call.
type fakeGraph struct {
	calls   []fakeCall
	results [][]graph.Record
}

type fakeCall struct {
	Query  string
	Params map[string]any
}

func (g *fakeGraph) WriteSession(context.Context, string) graph.Session {
	return &fakeSession{graph: g}
}

type fakeSession struct {
	graph *fakeGraph
}

func (s *fakeSession) Run(_ context.Context, query string, params map[string]any) ([]graph.Record, error) {
	s.graph.calls = append(s.graph.calls, fakeCall{Query: query, Params: params})
	if len(s.graph.results) == 0 {
		return nil, nil
	}
	records := s.graph.results[0]
	s.graph.results = s.graph.results[1:]
	return records, nil
}

func (s *fakeSession) Close(context.Context) error {
	return nil
}

func newTestRegistry() (*Registry, *Model, *Model) {
	registry := NewRegistry()

	person := &Model{
		Name:      "Person",
		Labels:    []string{"Person"},
		MergeKeys: []string{"name"},
		Relationships: map[string]RelationshipDef{
			"knows": {Type: "KNOWS", Source: "Person", Target: "Person"},
			"likes": {Type: "LIKES", Source: "Person", Target: "Movie"},
		},
	}
	movie := &Model{
		Name:      "Movie",
		Labels:    []string{"Movie"},
		MergeKeys: []string{"title"},
	}

	if err := registry.Register(person); err != nil {
		panic(err)
	}
	if err := registry.Register(movie); err != nil {
		panic(err)
	}
	return registry, person, movie
}
