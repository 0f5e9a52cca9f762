package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPredicateStatusCoercion(t *testing.T) {
	p := BuildPredicate("", "true", nil, nil)
	require.NotNil(t, p.Status)
	assert.True(t, *p.Status)

	p = BuildPredicate("", "false", nil, nil)
	require.NotNil(t, p.Status)
	assert.False(t, *p.Status)

	// Absent or malformed status leaves both states eligible.
	assert.Nil(t, BuildPredicate("", "", nil, nil).Status)
	assert.Nil(t, BuildPredicate("", "maybe", nil, nil).Status)
}

func TestBuildPredicateDropsMalformedScopes(t *testing.T) {
	p := BuildPredicate("", "", nil, map[string]string{
		"branch_id":  "42",
		"creator_id": "not-a-number",
		"type_id":    "",
	})
	assert.Equal(t, map[string]int64{"branch_id": 42}, p.Scopes)
}

func TestBuildPredicateTrimsSearch(t *testing.T) {
	p := BuildPredicate("  alpha ", "", []string{"name"}, nil)
	assert.Equal(t, "alpha", p.Search)
}

func TestSortOrderClause(t *testing.T) {
	assert.Equal(t, "created_at desc", Sort{Field: "created_at", Desc: true}.OrderClause())
	assert.Equal(t, "name asc", Sort{Field: "name"}.OrderClause())
}
