package loam

import "github.com/aretw0/espalier/pkg/domain"

// ItemMetadata represents the frontmatter of an action file.
// It uses "mapstructure" tags (via the embedded item) to match standard
// Frontmatter/YAML keys.
type ItemMetadata struct {
	domain.ActionItem `mapstructure:",squash"`

	// Order sorts items across files. Files without an order sort last,
	// by ID.
	Order *int `mapstructure:"order"`
}
