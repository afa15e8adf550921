package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/gblsmlo/lemind/internal/domain"
)

var customerTable = Table{
	Label:        "customers",
	TenantColumn: "space_id",
	ScopeColumn:  "space_id",
	SearchColumn: "name",
	Sortable:     domain.CustomerSortable,
}

type CustomerRepo struct{ *Gorm[domain.Customer] }

func NewCustomerRepo(db *gorm.DB) *CustomerRepo {
	return &CustomerRepo{NewGorm[domain.Customer](db, customerTable)}
}

func (r *CustomerRepo) FindByEmail(ctx context.Context, email, spaceID string) (*domain.Customer, error) {
	return first[domain.Customer](r.conn(ctx).Model(&domain.Customer{}).
		Where("email = ? AND space_id = ?", strings.ToLower(email), spaceID))
}

func (r *CustomerRepo) FindAllByStatus(ctx context.Context, status, spaceID string) ([]domain.Customer, error) {
	return r.list(r.conn(ctx).Model(&domain.Customer{}).Where("status = ? AND space_id = ?", status, spaceID))
}
