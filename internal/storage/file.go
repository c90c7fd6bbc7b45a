package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dennisdiepolder/monti/calldash/internal/types"
	"gopkg.in/yaml.v3"
)

// FileStore reads the roster from a JSON or YAML file on every call
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed agent store
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// ListAgents reads and decodes the roster file. Files ending in .yaml or .yml are
// decoded as YAML, everything else as JSON.
func (s *FileStore) ListAgents(_ context.Context) ([]types.AgentRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read agents file: %w", err)
	}

	var agents []types.AgentRecord
	switch strings.ToLower(filepath.Ext(s.path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &agents)
	default:
		err = json.Unmarshal(data, &agents)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse agents file %s: %w", filepath.Base(s.path), err)
	}

	if agents == nil {
		agents = []types.AgentRecord{}
	}
	return agents, nil
}
