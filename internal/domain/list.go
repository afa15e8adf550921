package domain

import (
	"slices"
	"sort"
	"strings"

	"github.com/gblsmlo/lemind/internal/core/validate"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 20

	SortAsc  = "asc"
	SortDesc = "desc"
)

// ListQuery is the pagination/search/sort input shared by every list
// operation. ScopeID is the tenant the listing is bound to.
type ListQuery struct {
	ScopeID       string `json:"spaceId" form:"-" validate:"required,uuid"`
	SearchQuery   string `json:"searchQuery,omitempty" form:"q"`
	SortBy        string `json:"sortBy,omitempty" form:"sortBy"`
	SortDirection string `json:"sortDirection,omitempty" form:"sortDirection" validate:"omitempty,oneof=asc desc"`
	Page          int    `json:"page,omitempty" form:"page"`
	PageSize      int    `json:"pageSize,omitempty" form:"pageSize"`
}

// Normalize validates q against the sortable fields of an entity and fills
// in the pagination defaults. A zero page or page size means "not given".
func (q ListQuery) Normalize(sortable map[string]string) (ListQuery, error) {
	verr := &validate.Error{}
	if err := validate.Struct(q); err != nil {
		verr = err.(*validate.Error)
	}
	if q.Page < 0 {
		verr.Add("page", "min", "page must be at least 1")
	}
	if q.PageSize < 0 {
		verr.Add("pageSize", "min", "pageSize must be at least 1")
	}
	if q.SortBy != "" {
		if _, ok := sortable[q.SortBy]; !ok {
			verr.Add("sortBy", "oneof", "sortBy must be one of: "+strings.Join(SortKeys(sortable), ", "))
		}
	}
	if err := verr.OrNil(); err != nil {
		return q, err
	}
	if q.Page == 0 {
		q.Page = DefaultPage
	}
	if q.PageSize == 0 {
		q.PageSize = DefaultPageSize
	}
	q.SearchQuery = strings.TrimSpace(q.SearchQuery)
	return q, nil
}

// Offset is the number of rows skipped for the requested page.
func (q ListQuery) Offset() int { return (q.Page - 1) * q.PageSize }

// Sorted reports whether an explicit ordering was requested.
func (q ListQuery) Sorted() bool { return q.SortBy != "" && q.SortDirection != "" }

// ListResult is one page of rows plus the number of rows matching the filter.
// A nil or empty Rows both mean no rows.
type ListResult[T any] struct {
	Rows  []T   `json:"rows"`
	Total int64 `json:"total"`
}

// SortKeys returns the public sort field names in a stable order.
func SortKeys(sortable map[string]string) []string {
	keys := make([]string, 0, len(sortable))
	for k := range sortable {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return slices.Clip(keys)
}
