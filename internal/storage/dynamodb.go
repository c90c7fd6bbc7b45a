package storage

import (
	"context"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/dennisdiepolder/monti/calldash/internal/types"
	"github.com/rs/zerolog"
)

// DynamoDBStore implements AgentStore using AWS DynamoDB
type DynamoDBStore struct {
	client *dynamodb.Client
	config DynamoConfig
	logger zerolog.Logger
}

// NewDynamoDBStore creates a new DynamoDB store
func NewDynamoDBStore(ctx context.Context, source AgentSource, cfg DynamoConfig, logger zerolog.Logger) (*DynamoDBStore, error) {
	var client *dynamodb.Client

	if source == AgentSourceLocal {
		// LoadDefaultConfig probes the EC2 IMDS endpoint, which hangs when static
		// credentials are intended, so the local client is built directly.
		client = dynamodb.New(dynamodb.Options{
			Region:       cfg.Region,
			BaseEndpoint: aws.String(cfg.Endpoint),
			Credentials:  credentials.NewStaticCredentialsProvider("local", "local", ""),
		})
	} else {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		client = dynamodb.NewFromConfig(awsCfg)
	}

	store := &DynamoDBStore{
		client: client,
		config: cfg,
		logger: logger.With().Str("component", "agent_store").Logger(),
	}

	if source == AgentSourceLocal {
		if err := CreateTableIfNotExist(ctx, client, cfg, logger); err != nil {
			return nil, err
		}
	}

	logger.Info().
		Str("source", string(source)).
		Str("region", cfg.Region).
		Str("table", cfg.AgentsTable).
		Msg("DynamoDB agent store initialized")

	return store, nil
}

// ListAgents scans the agents table and returns the roster sorted by name
func (s *DynamoDBStore) ListAgents(ctx context.Context) ([]types.AgentRecord, error) {
	proj := expression.NamesList(
		expression.Name("Name"),
		expression.Name("Phone"),
		expression.Name("Status"),
	)
	expr, err := expression.NewBuilder().WithProjection(proj).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build expression: %w", err)
	}

	paginator := dynamodb.NewScanPaginator(s.client, &dynamodb.ScanInput{
		TableName:                aws.String(s.config.AgentsTable),
		ProjectionExpression:     expr.Projection(),
		ExpressionAttributeNames: expr.Names(),
	})

	agents := []types.AgentRecord{}
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to scan agents: %w", err)
		}

		var batch []types.AgentRecord
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, fmt.Errorf("failed to unmarshal agents: %w", err)
		}
		agents = append(agents, batch...)
	}

	sort.SliceStable(agents, func(i, j int) bool { return agents[i].Name < agents[j].Name })

	s.logger.Debug().Int("agents", len(agents)).Msg("agents scanned")
	return agents, nil
}
