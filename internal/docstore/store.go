// Package docstore is the thin document-store layer the workflows persist through.
//
// Documents are plain structs tagged with `dynamodbav`; every store marshals them
// with attributevalue so DynamoDB and the in-memory store see the same shape.
package docstore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// IDField is the attribute holding the generated document identifier.
const IDField = "id"

// Filter is a set of exact-match string conditions, ANDed together.
// A nil or empty filter matches every document.
type Filter map[string]string

// Store is the collaborator contract the catalog and order workflows depend on.
type Store interface {
	// FindOne decodes the first document matching filter into out.
	// It reports false when nothing matched.
	FindOne(ctx context.Context, collection string, filter Filter, out any) (bool, error)
	// FindMany decodes every matching document into out, a pointer to a slice.
	FindMany(ctx context.Context, collection string, filter Filter, out any) error
	// Insert stores doc under a freshly generated id and returns that id.
	Insert(ctx context.Context, collection string, doc any) (string, error)
	// Count reports how many documents match filter.
	Count(ctx context.Context, collection string, filter Filter) (int, error)
}

// Inspector is implemented by stores that can describe themselves for diagnostics.
type Inspector interface {
	Driver() string
	Collections(ctx context.Context) ([]string, error)
}

// ErrCollectionNotFound is returned when the backing table for a collection is missing.
var ErrCollectionNotFound = errors.New("collection not found")

func newDocumentID() string { return uuid.NewString() }

// marshalDocument converts doc to an item and stamps it with id.
func marshalDocument(doc any, id string) (map[string]types.AttributeValue, error) {
	item, err := attributevalue.MarshalMap(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	item[IDField] = &types.AttributeValueMemberS{Value: id}
	return item, nil
}

func (f Filter) keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (f Filter) matches(item map[string]types.AttributeValue) bool {
	for k, want := range f {
		got, ok := item[k].(*types.AttributeValueMemberS)
		if !ok || got.Value != want {
			return false
		}
	}
	return true
}

// expression renders the filter as a DynamoDB FilterExpression
// ("#f0 = :v0 AND #f1 = :v1"). It returns a nil expression for an empty filter.
func (f Filter) expression() (*string, map[string]string, map[string]types.AttributeValue) {
	if len(f) == 0 {
		return nil, nil, nil
	}
	names := make(map[string]string, len(f))
	values := make(map[string]types.AttributeValue, len(f))
	parts := make([]string, 0, len(f))
	for i, k := range f.keys() {
		n, v := fmt.Sprintf("#f%d", i), fmt.Sprintf(":v%d", i)
		names[n] = k
		values[v] = &types.AttributeValueMemberS{Value: f[k]}
		parts = append(parts, n+" = "+v)
	}
	expr := strings.Join(parts, " AND ")
	return &expr, names, values
}
