package store

import (
	"fmt"
	"slices"
	"sync"
)

// TableDef describes a table the gateway may touch. Only listed columns
// can appear in generated SQL.
type TableDef struct {
	Name    string
	Key     string
	Columns []string
}

// HasColumn reports whether col is a column of the table.
func (d TableDef) HasColumn(col string) bool {
	return slices.Contains(d.Columns, col)
}

var (
	registry   = make(map[string]TableDef)
	registryMu sync.RWMutex
)

// Register adds a table definition.
// Panics if a table with the same name is already registered.
func Register(def TableDef) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[def.Name]; exists {
		panic(fmt.Sprintf("table already registered: %s", def.Name))
	}
	if def.Key == "" {
		def.Key = "id"
	}
	registry[def.Name] = def
}

// Lookup returns a table definition by name.
func Lookup(name string) (TableDef, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	def, ok := registry[name]
	return def, ok
}

// Table names.
const (
	Companies = "companies"
	Sections  = "content_sections"
	Jobs      = "jobs"
)

func init() {
	Register(TableDef{
		Name: Companies,
		Columns: []string{
			"id", "user_id", "slug", "name", "logo_url", "banner_url", "video_url",
			"primary_color", "secondary_color", "tagline", "is_published",
			"created_at", "updated_at",
		},
	})
	Register(TableDef{
		Name: Sections,
		Columns: []string{
			"id", "company_id", "type", "title", "content", "position",
			"is_visible", "created_at",
		},
	})
	Register(TableDef{
		Name: Jobs,
		Columns: []string{
			"id", "company_id", "title", "description", "location", "job_type",
			"department", "salary_range", "is_active", "created_at", "updated_at",
		},
	})
}
