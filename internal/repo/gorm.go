// Package repo implements the domain repositories on top of gorm.
package repo

import (
	"context"
	"errors"
	"maps"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gblsmlo/lemind/internal/core/auth"
	"github.com/gblsmlo/lemind/internal/domain"
)

// Table describes how one entity maps onto its table.
type Table struct {
	Label string
	// TenantColumn is matched against the session space on by-id operations.
	TenantColumn string
	// ScopeColumn is matched against ListQuery.ScopeID.
	ScopeColumn  string
	SearchColumn string
	Sortable     map[string]string
}

// Gorm is the repository shared by every entity. It holds no state besides
// the store handle.
type Gorm[T any] struct {
	db  *gorm.DB
	tbl Table
}

func NewGorm[T any](db *gorm.DB, tbl Table) *Gorm[T] {
	return &Gorm[T]{db: db, tbl: tbl}
}

func (r *Gorm[T]) conn(ctx context.Context) *gorm.DB { return r.db.WithContext(ctx) }

// scoped restricts queries to the space bound to ctx, if any.
func (r *Gorm[T]) scoped(ctx context.Context) *gorm.DB {
	tx := r.conn(ctx).Model(new(T))
	if space := auth.SpaceFrom(ctx); space != "" && r.tbl.TenantColumn != "" {
		tx = tx.Where(clause.Eq{Column: column(r.tbl.TenantColumn), Value: space})
	}
	return tx
}

func (r *Gorm[T]) byID(ctx context.Context, id string) *gorm.DB {
	return r.scoped(ctx).Where(clause.Eq{Column: column("id"), Value: id})
}

func (r *Gorm[T]) Create(ctx context.Context, row *T) (*T, error) {
	if e, ok := any(row).(interface{ EnsureID() }); ok {
		e.EnsureID()
	}
	if err := r.conn(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// Update applies changes to one row and refreshes updated_at. It returns a
// nil row when id matches nothing.
func (r *Gorm[T]) Update(ctx context.Context, id string, changes map[string]any) (*T, error) {
	set := make(map[string]any, len(changes)+1)
	maps.Copy(set, changes)
	set["updated_at"] = time.Now().UTC()

	res := r.byID(ctx, id).Updates(set)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return r.FindByID(ctx, id)
}

// Delete removes one row and returns its id, or "" when nothing matched.
func (r *Gorm[T]) Delete(ctx context.Context, id string) (string, error) {
	res := r.byID(ctx, id).Delete(new(T))
	if res.Error != nil {
		return "", res.Error
	}
	if res.RowsAffected == 0 {
		return "", nil
	}
	return id, nil
}

func (r *Gorm[T]) FindByID(ctx context.Context, id string) (*T, error) {
	return first[T](r.byID(ctx, id))
}

// FindMany returns one page of the rows in q.ScopeID matching the search.
// Total is counted by a separate query over the same filter.
func (r *Gorm[T]) FindMany(ctx context.Context, q domain.ListQuery) (domain.ListResult[T], error) {
	var out domain.ListResult[T]
	page, size := q.Page, q.PageSize
	if page < 1 {
		page = domain.DefaultPage
	}
	if size < 1 {
		size = domain.DefaultPageSize
	}

	if err := r.filtered(ctx, q).Count(&out.Total).Error; err != nil {
		return out, err
	}

	tx := r.filtered(ctx, q)
	if col, ok := r.tbl.Sortable[q.SortBy]; ok && q.Sorted() {
		tx = tx.Order(clause.OrderByColumn{Column: column(col), Desc: q.SortDirection == domain.SortDesc})
	}
	// id is a random UUID: a stable tie-break between pages, not recency.
	tx = tx.Order(clause.OrderByColumn{Column: column("id"), Desc: true})
	if err := tx.Offset((page - 1) * size).Limit(size).Find(&out.Rows).Error; err != nil {
		return out, err
	}
	return out, nil
}

func (r *Gorm[T]) filtered(ctx context.Context, q domain.ListQuery) *gorm.DB {
	tx := r.conn(ctx).Model(new(T)).Where(clause.Eq{Column: column(r.tbl.ScopeColumn), Value: q.ScopeID})
	if s := strings.TrimSpace(q.SearchQuery); s != "" && r.tbl.SearchColumn != "" {
		tx = tx.Where(clause.Expr{
			SQL:  "LOWER(?) LIKE ? ESCAPE '!'",
			Vars: []any{column(r.tbl.SearchColumn), "%" + escapeLike(strings.ToLower(s)) + "%"},
		})
	}
	return tx
}

// list runs tx with the default ordering.
func (r *Gorm[T]) list(tx *gorm.DB) ([]T, error) {
	var rows []T
	err := tx.Order(clause.OrderByColumn{Column: column("created_at"), Desc: true}).
		Order(clause.OrderByColumn{Column: column("id"), Desc: true}).
		Find(&rows).Error
	return rows, err
}

func first[T any](tx *gorm.DB) (*T, error) {
	var row T
	err := tx.Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func column(name string) clause.Column {
	return clause.Column{Table: clause.CurrentTable, Name: name}
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func escapeLike(s string) string { return likeEscaper.Replace(s) }
