package storage

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	dbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/rs/zerolog"
)

// agentsPartitionKey is the hash key of the agents table
const agentsPartitionKey = "Name"

// CreateTableIfNotExist creates an empty agents table in DynamoDB Local.
// It only runs for AGENT_SOURCE=local as a development convenience; the store
// never writes agent data and production tables are provisioned outside calldash.
func CreateTableIfNotExist(ctx context.Context, client *dynamodb.Client, config DynamoConfig, logger zerolog.Logger) error {
	_, err := client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(config.AgentsTable),
	})
	if err == nil {
		logger.Info().Str("table", config.AgentsTable).Msg("table already exists")
		return nil
	}

	_, err = client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(config.AgentsTable),
		KeySchema: []dbtypes.KeySchemaElement{
			{AttributeName: aws.String(agentsPartitionKey), KeyType: dbtypes.KeyTypeHash},
		},
		AttributeDefinitions: []dbtypes.AttributeDefinition{
			{AttributeName: aws.String(agentsPartitionKey), AttributeType: dbtypes.ScalarAttributeTypeS},
		},
		BillingMode: dbtypes.BillingModePayPerRequest,
	})
	if err != nil {
		return fmt.Errorf("failed to create table %s: %w", config.AgentsTable, err)
	}
	logger.Info().Str("table", config.AgentsTable).Msg("created empty agents table in DynamoDB Local (dev only)")

	return nil
}
