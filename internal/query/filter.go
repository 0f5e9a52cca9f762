// Package query implements the shared list pipeline: predicate building,
// the concurrent fetch+count pair, and reference resolution.
package query

import (
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// Predicate is the structured filter produced from raw query parameters.
type Predicate struct {
	Search       string
	SearchFields []string
	Status       *bool
	Scopes       map[string]int64
	Equals       map[string]any
}

// BuildPredicate converts loosely-typed query values into a Predicate.
// Malformed scope values degrade to "no filter" rather than an error, and an
// absent status leaves both active and soft-deleted rows eligible.
func BuildPredicate(search, status string, searchFields []string, scopes map[string]string) Predicate {
	p := Predicate{
		Search:       strings.TrimSpace(search),
		SearchFields: searchFields,
	}

	if trimmed := strings.TrimSpace(status); trimmed != "" {
		if v, err := strconv.ParseBool(trimmed); err == nil {
			p.Status = &v
		}
	}

	for column, raw := range scopes {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		v, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			continue
		}
		if p.Scopes == nil {
			p.Scopes = make(map[string]int64)
		}
		p.Scopes[column] = v
	}

	return p
}

// Apply chains the predicate onto a gorm statement.
func (p Predicate) Apply(stmt *gorm.DB) *gorm.DB {
	if p.Search != "" && len(p.SearchFields) > 0 {
		clauses := make([]string, 0, len(p.SearchFields))
		args := make([]any, 0, len(p.SearchFields))
		term := "%" + strings.ToLower(p.Search) + "%"
		for _, field := range p.SearchFields {
			clauses = append(clauses, "LOWER("+field+") LIKE ?")
			args = append(args, term)
		}
		stmt = stmt.Where(strings.Join(clauses, " OR "), args...)
	}

	if p.Status != nil {
		stmt = stmt.Where("status = ?", *p.Status)
	}

	for column, v := range p.Scopes {
		stmt = stmt.Where(column+" = ?", v)
	}
	for column, v := range p.Equals {
		stmt = stmt.Where(column+" = ?", v)
	}

	return stmt
}

// Sort orders by a single column. No secondary tie-break is applied, so rows
// with equal sort keys have implementation-defined relative order.
type Sort struct {
	Field string
	Desc  bool
}

func (s Sort) OrderClause() string {
	dir := "asc"
	if s.Desc {
		dir = "desc"
	}
	return s.Field + " " + dir
}
