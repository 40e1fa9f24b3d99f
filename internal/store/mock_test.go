package store

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

type executedQuery struct {
	Query  string
	Params map[string]interface{}
}

// MockDriver replays Results in order and records every query it executed.
type MockDriver struct {
	Results []neo4j.EagerResult
	Err     error
	Queries []executedQuery
	Closed  bool
}

func (m *MockDriver) ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	m.Queries = append(m.Queries, executedQuery{Query: query, Params: params})
	if m.Err != nil {
		return neo4j.EagerResult{}, m.Err
	}
	if len(m.Results) == 0 {
		return neo4j.EagerResult{}, nil
	}
	res := m.Results[0]
	m.Results = m.Results[1:]
	return res, nil
}

func (m *MockDriver) BuildIndices(ctx context.Context) error {
	return nil
}

func (m *MockDriver) Close(ctx context.Context) error {
	m.Closed = true
	return nil
}

func rows(keys []string, values ...[]any) neo4j.EagerResult {
	res := neo4j.EagerResult{Keys: keys}
	for _, v := range values {
		res.Records = append(res.Records, &neo4j.Record{Keys: keys, Values: v})
	}
	return res
}
