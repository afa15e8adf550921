package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/gblsmlo/lemind/internal/domain"
)

var productTable = Table{
	Label:        "products",
	TenantColumn: "space_id",
	ScopeColumn:  "space_id",
	SearchColumn: "name",
	Sortable:     domain.ProductSortable,
}

type ProductRepo struct{ *Gorm[domain.Product] }

func NewProductRepo(db *gorm.DB) *ProductRepo {
	return &ProductRepo{NewGorm[domain.Product](db, productTable)}
}

// FindAll returns every product of a space without pagination.
func (r *ProductRepo) FindAll(ctx context.Context, spaceID string) ([]domain.Product, error) {
	return r.list(r.conn(ctx).Model(&domain.Product{}).Where("space_id = ?", spaceID))
}
