// Package config loads render documents: the on-disk description of an
// action list, optionally bundled with a post context snapshot. Documents
// are YAML by default, JSON by extension.
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

// Document represents the structure of an actions file.
type Document struct {
	// Context selects the rendering mode: "live" (default) or "preview".
	Context string `yaml:"context" json:"context"`

	Actions []domain.ActionItem `yaml:"actions" json:"actions"`

	// Post is an optional inline context snapshot, mostly useful for the
	// CLI and for tests. Servers fetch contexts through a source instead.
	Post *domain.PostContext `yaml:"post" json:"post"`
}

// RenderContext maps the document's context field to a render context.
func (d *Document) RenderContext() domain.RenderContext {
	if strings.EqualFold(strings.TrimSpace(d.Context), string(domain.ContextPreview)) {
		return domain.ContextPreview
	}
	return domain.ContextLive
}

// Load reads a document from disk, picking the codec by extension.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read actions file: %w", err)
	}
	return Parse(data, filepath.Ext(path))
}

// Parse decodes a document from raw bytes. ext is the file extension used
// to pick the codec; anything besides ".json" is treated as YAML.
func Parse(data []byte, ext string) (*Document, error) {
	var doc Document
	if strings.ToLower(ext) == ".json" {
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse actions json: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse actions yaml: %w", err)
		}
	}
	return &doc, nil
}
