package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const spaceID = "550e8400-e29b-41d4-a716-446655440000"

func TestListQueryDefaults(t *testing.T) {
	q, err := ListQuery{ScopeID: spaceID, SearchQuery: "  john "}.Normalize(ContactSortable)
	require.NoError(t, err)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 20, q.PageSize)
	assert.Equal(t, "john", q.SearchQuery)
	assert.Equal(t, 0, q.Offset())
	assert.False(t, q.Sorted())
}

func TestListQueryOffset(t *testing.T) {
	q, err := ListQuery{ScopeID: spaceID, Page: 3, PageSize: 15}.Normalize(ContactSortable)
	require.NoError(t, err)
	assert.Equal(t, 30, q.Offset())
}

func TestListQueryRejects(t *testing.T) {
	cases := []struct {
		name string
		q    ListQuery
		msg  string
	}{
		{"negative page", ListQuery{ScopeID: spaceID, Page: -1}, "page must be at least 1"},
		{"negative page size", ListQuery{ScopeID: spaceID, PageSize: -5}, "pageSize must be at least 1"},
		{"unknown sort", ListQuery{ScopeID: spaceID, SortBy: "password"}, "sortBy must be one of: createdAt, email, name, type, updatedAt"},
		{"bad direction", ListQuery{ScopeID: spaceID, SortDirection: "up"}, "sortDirection must be one of: asc, desc"},
		{"bad scope", ListQuery{ScopeID: "invalid-uuid"}, "spaceId must be a valid UUID"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.q.Normalize(ContactSortable)
			require.Error(t, err)
			assert.Equal(t, tc.msg, err.Error())
		})
	}
}

func TestListQuerySorted(t *testing.T) {
	q, err := ListQuery{ScopeID: spaceID, SortBy: "name", SortDirection: SortAsc}.Normalize(ContactSortable)
	require.NoError(t, err)
	assert.True(t, q.Sorted())
}
