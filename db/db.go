package db

import (
	"sort"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/jsphweid/accompanist/model"
)

// Archive stores one item per finished run, keyed by run ID.
type Archive struct {
	client dynamodbiface.DynamoDBAPI
	table  string
}

func NewArchive(client dynamodbiface.DynamoDBAPI, table string) *Archive {
	return &Archive{client: client, table: table}
}

// Connect talks to a local DynamoDB at endpoint.
func Connect(endpoint string, table string) (*Archive, error) {
	session, err := session.NewSession(&aws.Config{
		Region:   aws.String("localhost"),
		Endpoint: aws.String(endpoint),
	})
	if err != nil {
		return nil, fault.Wrap(err, fmsg.With("could not create a new DynamoDB session"))
	}
	return NewArchive(dynamodb.New(session), table), nil
}

func (a *Archive) PutRun(r model.RunRecord) error {
	item, err := dynamodbattribute.MarshalMap(r)
	if err != nil {
		return fault.Wrap(err, fmsg.With("could not marshal run record"))
	}
	_, err = a.client.PutItem(&dynamodb.PutItemInput{
		TableName: aws.String(a.table),
		Item:      item,
	})
	if err != nil {
		return fault.Wrap(err, fmsg.With("error from DynamoDB"))
	}
	return nil
}

// GetRuns returns up to limit runs, newest first. A limit of 0 returns all.
func (a *Archive) GetRuns(limit int) ([]model.RunRecord, error) {
	var res []model.RunRecord
	var decodeErr error
	input := &dynamodb.ScanInput{TableName: aws.String(a.table)}
	err := a.client.ScanPages(input, func(page *dynamodb.ScanOutput, lastPage bool) bool {
		var records []model.RunRecord
		if decodeErr = dynamodbattribute.UnmarshalListOfMaps(page.Items, &records); decodeErr != nil {
			return false
		}
		res = append(res, records...)
		return true
	})
	if err != nil {
		return nil, fault.Wrap(err, fmsg.With("error from DynamoDB"))
	}
	if decodeErr != nil {
		return nil, fault.Wrap(decodeErr, fmsg.With("could not unmarshal run records"))
	}

	sort.Slice(res, func(i, j int) bool {
		return res[i].CreatedAt.After(res[j].CreatedAt)
	})
	if limit > 0 && len(res) > limit {
		res = res[:limit]
	}
	return res, nil
}
