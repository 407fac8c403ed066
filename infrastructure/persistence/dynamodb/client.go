package dynamodb

import (
	"context"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	pkgerrors "github.com/AlenesK/howudoin/pkg/errors"
)

// TableConfig names the table and its secondary indexes
type TableConfig struct {
	TableName string
	GSI1Name  string
	GSI2Name  string
	GSI3Name  string
}

// NewClient creates a DynamoDB client from the ambient AWS configuration
func NewClient(ctx context.Context, region string) (*dynamodb.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to load AWS configuration")
	}
	return dynamodb.NewFromConfig(cfg), nil
}
