package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/espalier/pkg/domain"
)

// ContextsFile represents the structure of a contexts file: a list of post
// context snapshots, used to seed an in-memory source for CLI renders and
// local development.
type ContextsFile struct {
	Posts []domain.PostContext `yaml:"posts" json:"posts"`
}

// LoadContexts reads a contexts file (YAML or JSON).
func LoadContexts(path string) ([]domain.PostContext, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read contexts file: %w", err)
	}

	var cf ContextsFile
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &cf); err != nil {
			return nil, fmt.Errorf("failed to parse contexts json: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &cf); err != nil {
			return nil, fmt.Errorf("failed to parse contexts yaml: %w", err)
		}
	}
	return cf.Posts, nil
}
