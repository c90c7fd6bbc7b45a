package storage

import "os"

// AgentSource selects where the agent roster is read from
type AgentSource string

const (
	AgentSourceFile  AgentSource = "file"
	AgentSourceLocal AgentSource = "local" // DynamoDB Local
	AgentSourceAWS   AgentSource = "aws"
)

// DynamoConfig holds DynamoDB configuration
type DynamoConfig struct {
	Endpoint    string // for local mode
	Region      string
	AgentsTable string
}

// Config holds agent store configuration
type Config struct {
	Source   AgentSource
	FilePath string
	Dynamo   DynamoConfig
}

// LoadConfig loads agent store config from environment.
// filePath is used when the source is a file.
func LoadConfig(filePath string) Config {
	source := AgentSource(getEnv("AGENT_SOURCE", string(AgentSourceFile)))
	if source != AgentSourceLocal && source != AgentSourceAWS {
		source = AgentSourceFile
	}

	return Config{
		Source:   source,
		FilePath: filePath,
		Dynamo: DynamoConfig{
			Endpoint:    getEnv("DYNAMO_ENDPOINT", "http://localhost:8000"),
			Region:      getEnv("DYNAMO_REGION", "eu-central-1"),
			AgentsTable: getEnv("DYNAMO_AGENTS_TABLE", "calldash-agents"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
