package docstore

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"
	"sync"

	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// mockDynamo is a small in-memory DynamoDB fake covering PutItem, Scan and ListTables.
// Scan understands the "#fN = :vN AND ..." filter expressions this package emits
// and pages results pageSize items at a time when pageSize > 0.
type mockDynamo struct {
	mu        sync.Mutex
	tables    map[string][]map[string]types.AttributeValue
	pageSize  int
	scanCalls int
	scanErr   error
}

func newMockDynamo(tables ...string) *mockDynamo {
	m := &mockDynamo{tables: map[string][]map[string]types.AttributeValue{}}
	for _, t := range tables {
		m.tables[t] = nil
	}
	return m
}

func (m *mockDynamo) PutItem(ctx context.Context, params *dyn.PutItemInput, optFns ...func(*dyn.Options)) (*dyn.PutItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	table := *params.TableName
	rows, ok := m.tables[table]
	if !ok {
		return nil, &types.ResourceNotFoundException{}
	}
	id, ok := params.Item["id"].(*types.AttributeValueMemberS)
	if !ok {
		return nil, errors.New("no id in put item")
	}
	if params.ConditionExpression != nil && *params.ConditionExpression == "attribute_not_exists(id)" {
		for _, r := range rows {
			if r["id"].(*types.AttributeValueMemberS).Value == id.Value {
				return nil, &types.ConditionalCheckFailedException{}
			}
		}
	}
	m.tables[table] = append(rows, params.Item)
	return &dyn.PutItemOutput{}, nil
}

func (m *mockDynamo) Scan(ctx context.Context, params *dyn.ScanInput, optFns ...func(*dyn.Options)) (*dyn.ScanOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scanCalls++
	if m.scanErr != nil {
		return nil, m.scanErr
	}
	rows, ok := m.tables[*params.TableName]
	if !ok {
		return nil, &types.ResourceNotFoundException{}
	}

	start := 0
	if k, ok := params.ExclusiveStartKey["offset"].(*types.AttributeValueMemberN); ok {
		start, _ = strconv.Atoi(k.Value)
	}
	end := len(rows)
	if m.pageSize > 0 && start+m.pageSize < end {
		end = start + m.pageSize
	}

	out := &dyn.ScanOutput{}
	for _, row := range rows[start:end] {
		if !evalFilter(params, row) {
			continue
		}
		out.Count++
		if params.Select != types.SelectCount {
			out.Items = append(out.Items, row)
		}
	}
	if end < len(rows) {
		out.LastEvaluatedKey = map[string]types.AttributeValue{
			"offset": &types.AttributeValueMemberN{Value: strconv.Itoa(end)},
		}
	}
	return out, nil
}

func (m *mockDynamo) ListTables(ctx context.Context, params *dyn.ListTablesInput, optFns ...func(*dyn.Options)) (*dyn.ListTablesOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.tables))
	for t := range m.tables {
		names = append(names, t)
	}
	sort.Strings(names)
	return &dyn.ListTablesOutput{TableNames: names}, nil
}

func evalFilter(params *dyn.ScanInput, row map[string]types.AttributeValue) bool {
	if params.FilterExpression == nil {
		return true
	}
	for _, clause := range strings.Split(*params.FilterExpression, " AND ") {
		parts := strings.Split(clause, " = ")
		if len(parts) != 2 {
			return false
		}
		attr := params.ExpressionAttributeNames[parts[0]]
		want := params.ExpressionAttributeValues[parts[1]].(*types.AttributeValueMemberS).Value
		got, ok := row[attr].(*types.AttributeValueMemberS)
		if !ok || got.Value != want {
			return false
		}
	}
	return true
}
