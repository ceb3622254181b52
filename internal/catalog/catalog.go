package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/mendapp/mend/internal/models"
)

//go:embed catalog.json
var catalogJSON []byte

// Catalog is an immutable keyed collection of ritual definitions. It is
// reference data: read-only, shared by every user.
type Catalog struct {
	byKey map[string]models.RitualDefinition
	order []string
}

// Load parses the embedded catalog. The embedded data is validated once at
// load time so a malformed entry fails startup, not assignment.
func Load() (*Catalog, error) {
	var defs []models.RitualDefinition
	if err := json.Unmarshal(catalogJSON, &defs); err != nil {
		return nil, fmt.Errorf("failed to parse embedded catalog: %w", err)
	}

	c := &Catalog{byKey: make(map[string]models.RitualDefinition, len(defs))}
	for _, d := range defs {
		if d.Key == "" || d.Title == "" {
			return nil, fmt.Errorf("catalog entry missing key or title: %+v", d)
		}
		if d.Intensity < 1 || d.Intensity > 5 {
			return nil, fmt.Errorf("catalog entry %q has intensity %d, want 1-5", d.Key, d.Intensity)
		}
		if _, dup := c.byKey[d.Key]; dup {
			return nil, fmt.Errorf("duplicate catalog key %q", d.Key)
		}
		c.byKey[d.Key] = d
		c.order = append(c.order, d.Key)
	}
	if len(c.order) == 0 {
		return nil, fmt.Errorf("embedded catalog is empty")
	}
	return c, nil
}

// Get returns the definition for a key.
func (c *Catalog) Get(key string) (models.RitualDefinition, bool) {
	d, ok := c.byKey[key]
	return d, ok
}

// Keys returns every ritual key in catalog order.
func (c *Catalog) Keys() []string {
	keys := make([]string, len(c.order))
	copy(keys, c.order)
	return keys
}

// All returns every definition in catalog order.
func (c *Catalog) All() []models.RitualDefinition {
	defs := make([]models.RitualDefinition, 0, len(c.order))
	for _, k := range c.order {
		defs = append(defs, c.byKey[k])
	}
	return defs
}

// Len returns the number of definitions.
func (c *Catalog) Len() int {
	return len(c.order)
}
