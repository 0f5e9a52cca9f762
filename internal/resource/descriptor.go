package resource

import (
	"context"
	"time"

	"github.com/amani-hq/amani/internal/identifier"
	"github.com/amani-hq/amani/internal/query"
	"github.com/amani-hq/amani/internal/sequence"
	"gorm.io/gorm"
)

// Kind is the declared type of a mutable field. Payload values are coerced
// defensively; the validation collaborator owns anything stricter.
type Kind int

const (
	String Kind = iota
	Int
	Float
	Bool
	Time
	JSON
)

// Field declares a mutable business field accepted on create and update.
type Field struct {
	Name     string
	Kind     Kind
	Required bool
}

// WriteContext is handed to write hooks so companion writes share the
// surrounding transaction.
type WriteContext struct {
	Tx     *gorm.DB
	Seq    *sequence.Generator
	Keys   *identifier.Generator
	UserID *int64
	Now    time.Time
}

// Descriptor declares one resource for the shared pipeline: its table, the
// fields writable through the API, the text fields searched by the list
// filter, integer scoping parameters, and cross-resource references.
type Descriptor struct {
	Name string
	// Path is the URL segment the resource mounts under.
	Path  string
	Table string

	Fields       []Field
	SearchFields []string
	// Scopes maps a query parameter to the integer column it filters.
	Scopes     map[string]string
	References []query.Reference

	DefaultSort query.Sort

	// BeforeWrite may rewrite a coerced create/update patch, e.g. deriving
	// server-managed columns.
	BeforeWrite func(patch map[string]any)
	// AfterCreate runs inside the create transaction after the row is
	// inserted, e.g. to create companion records.
	AfterCreate func(ctx context.Context, wc WriteContext, record map[string]any) error
}

// sortable reports whether field is a legal sort column for this resource.
func (d Descriptor) sortable(field string) bool {
	switch field {
	case "seq_no", "status", "created_at", "updated_at":
		return true
	}
	for _, f := range d.Fields {
		if f.Name == field {
			return true
		}
	}
	return false
}
