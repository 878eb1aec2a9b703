package docstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"

	"github.com/nwtech/license-orderflow/internal/aws"
)

// Dynamo stores each collection in its own DynamoDB table named prefix+collection,
// keyed by the string attribute "id".
type Dynamo struct {
	client      aws.DynamoDBAPI
	tablePrefix string
	newID       func() string
}

// NewDynamo returns a Dynamo store using client and the given table prefix.
func NewDynamo(client aws.DynamoDBAPI, tablePrefix string) *Dynamo {
	return &Dynamo{
		client:      client,
		tablePrefix: tablePrefix,
		newID:       newDocumentID,
	}
}

func (d *Dynamo) table(collection string) string { return d.tablePrefix + collection }

func (d *Dynamo) Driver() string { return "dynamodb" }

// scan walks every page of a filtered scan, handing items to visit until it
// returns false.
func (d *Dynamo) scan(ctx context.Context, collection string, filter Filter, visit func(map[string]types.AttributeValue) bool) error {
	table := d.table(collection)
	expr, names, values := filter.expression()
	input := &dyn.ScanInput{
		TableName:                 sdkaws.String(table),
		FilterExpression:          expr,
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	}
	for {
		out, err := d.client.Scan(ctx, input)
		if err != nil {
			return classify(table, "scan", err)
		}
		for _, item := range out.Items {
			if !visit(item) {
				return nil
			}
		}
		if len(out.LastEvaluatedKey) == 0 {
			return nil
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

func (d *Dynamo) FindOne(ctx context.Context, collection string, filter Filter, out any) (bool, error) {
	var found map[string]types.AttributeValue
	err := d.scan(ctx, collection, filter, func(item map[string]types.AttributeValue) bool {
		found = item
		return false
	})
	if err != nil {
		return false, err
	}
	if found == nil {
		return false, nil
	}
	if err := attributevalue.UnmarshalMap(found, out); err != nil {
		return false, fmt.Errorf("unmarshal %s document: %w", collection, err)
	}
	return true, nil
}

func (d *Dynamo) FindMany(ctx context.Context, collection string, filter Filter, out any) error {
	items := []map[string]types.AttributeValue{}
	err := d.scan(ctx, collection, filter, func(item map[string]types.AttributeValue) bool {
		items = append(items, item)
		return true
	})
	if err != nil {
		return err
	}
	if err := attributevalue.UnmarshalListOfMaps(items, out); err != nil {
		return fmt.Errorf("unmarshal %s documents: %w", collection, err)
	}
	return nil
}

func (d *Dynamo) Insert(ctx context.Context, collection string, doc any) (string, error) {
	id := d.newID()
	item, err := marshalDocument(doc, id)
	if err != nil {
		return "", err
	}
	table := d.table(collection)
	_, err = d.client.PutItem(ctx, &dyn.PutItemInput{
		TableName:           sdkaws.String(table),
		Item:                item,
		ConditionExpression: sdkaws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		return "", classify(table, "put item", err)
	}
	return id, nil
}

func (d *Dynamo) Count(ctx context.Context, collection string, filter Filter) (int, error) {
	table := d.table(collection)
	expr, names, values := filter.expression()
	input := &dyn.ScanInput{
		TableName:                 sdkaws.String(table),
		Select:                    types.SelectCount,
		FilterExpression:          expr,
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	}
	total := 0
	for {
		out, err := d.client.Scan(ctx, input)
		if err != nil {
			return 0, classify(table, "count", err)
		}
		total += int(out.Count)
		if len(out.LastEvaluatedKey) == 0 {
			return total, nil
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

// Collections lists the tables carrying this store's prefix, with the prefix removed.
func (d *Dynamo) Collections(ctx context.Context) ([]string, error) {
	var names []string
	input := &dyn.ListTablesInput{}
	for {
		out, err := d.client.ListTables(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("list tables: %w", err)
		}
		for _, t := range out.TableNames {
			if strings.HasPrefix(t, d.tablePrefix) {
				names = append(names, strings.TrimPrefix(t, d.tablePrefix))
			}
		}
		if out.LastEvaluatedTableName == nil {
			return names, nil
		}
		input.ExclusiveStartTableName = out.LastEvaluatedTableName
	}
}

func classify(table, op string, err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorCode() == "ResourceNotFoundException" {
		return fmt.Errorf("%s %s: %w", op, table, ErrCollectionNotFound)
	}
	return fmt.Errorf("%s %s: %w", op, table, err)
}
