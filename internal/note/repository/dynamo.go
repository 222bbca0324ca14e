package repository

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/quicknotes/notes-api/internal/note"
)

// DynamoAPI is the subset of the DynamoDB client used by DynamoRepo.
// *dynamodb.Client satisfies it.
type DynamoAPI interface {
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	DescribeTable(ctx context.Context, in *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

// DynamoRepo stores note records in a DynamoDB table whose partition key is
// note_id (string). A note without attachment is written with s3_key as a NULL
// attribute.
type DynamoRepo struct {
	api   DynamoAPI
	table string
}

func NewDynamoRepo(api DynamoAPI, table string) *DynamoRepo {
	return &DynamoRepo{api: api, table: table}
}

func (d *DynamoRepo) Name() string { return "dynamodb" }

func (d *DynamoRepo) Put(ctx context.Context, rec *note.Record) error {
	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return fmt.Errorf("marshal note %s: %w", rec.NoteID, err)
	}
	_, err = d.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(d.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put item %s: %w", rec.NoteID, err)
	}
	return nil
}

func (d *DynamoRepo) Get(ctx context.Context, id string) (*note.Record, error) {
	out, err := d.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(d.table),
		Key: map[string]types.AttributeValue{
			"note_id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get item %s: %w", id, err)
	}
	if len(out.Item) == 0 {
		return nil, note.ErrNotFound
	}
	var rec note.Record
	if err := attributevalue.UnmarshalMap(out.Item, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal note %s: %w", id, err)
	}
	return &rec, nil
}

func (d *DynamoRepo) Ping(ctx context.Context) error {
	_, err := d.api.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(d.table)})
	return err
}
