package bulk

import (
	"context"

	"github.com/graphload/graphload/graph"
)

// recordingGraph captures every statement run against it so tests can assert
// on query text and parameter shapes without a live store.
type recordingGraph struct {
	calls    []recordedCall
	database string
	closed   int
}

type recordedCall struct {
	Query  string
	Params map[string]any
}

func (g *recordingGraph) WriteSession(_ context.Context, database string) graph.Session {
	g.database = database
	return &recordingSession{graph: g}
}

type recordingSession struct {
	graph *recordingGraph
}

func (s *recordingSession) Run(_ context.Context, query string, params map[string]any) ([]graph.Record, error) {
	s.graph.calls = append(s.graph.calls, recordedCall{Query: query, Params: params})
	return nil, nil
}

func (s *recordingSession) Close(context.Context) error {
	s.graph.closed++
	return nil
}
