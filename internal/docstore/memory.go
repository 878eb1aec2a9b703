package docstore

import (
	"context"
	"fmt"
	"maps"
	"sort"
	"sync"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Memory is an in-process Store. Documents keep insertion order.
type Memory struct {
	mu          sync.RWMutex
	collections map[string][]map[string]types.AttributeValue
	newID       func() string
}

func NewMemory() *Memory {
	return &Memory{
		collections: map[string][]map[string]types.AttributeValue{},
		newID:       newDocumentID,
	}
}

func (m *Memory) Driver() string { return "memory" }

func (m *Memory) matching(collection string, filter Filter, limit int) []map[string]types.AttributeValue {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []map[string]types.AttributeValue
	for _, item := range m.collections[collection] {
		if !filter.matches(item) {
			continue
		}
		out = append(out, maps.Clone(item))
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

func (m *Memory) FindOne(ctx context.Context, collection string, filter Filter, out any) (bool, error) {
	items := m.matching(collection, filter, 1)
	if len(items) == 0 {
		return false, nil
	}
	if err := attributevalue.UnmarshalMap(items[0], out); err != nil {
		return false, fmt.Errorf("unmarshal %s document: %w", collection, err)
	}
	return true, nil
}

func (m *Memory) FindMany(ctx context.Context, collection string, filter Filter, out any) error {
	items := m.matching(collection, filter, 0)
	if items == nil {
		items = []map[string]types.AttributeValue{}
	}
	if err := attributevalue.UnmarshalListOfMaps(items, out); err != nil {
		return fmt.Errorf("unmarshal %s documents: %w", collection, err)
	}
	return nil
}

func (m *Memory) Insert(ctx context.Context, collection string, doc any) (string, error) {
	id := m.newID()
	item, err := marshalDocument(doc, id)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	m.collections[collection] = append(m.collections[collection], item)
	m.mu.Unlock()
	return id, nil
}

func (m *Memory) Count(ctx context.Context, collection string, filter Filter) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, item := range m.collections[collection] {
		if filter.matches(item) {
			n++
		}
	}
	return n, nil
}

func (m *Memory) Collections(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.collections))
	for name := range m.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
