package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/gblsmlo/lemind/internal/domain"
)

var invoiceTable = Table{
	Label:        "invoices",
	TenantColumn: "space_id",
	ScopeColumn:  "space_id",
	SearchColumn: "number",
	Sortable:     domain.InvoiceSortable,
}

type InvoiceRepo struct{ *Gorm[domain.Invoice] }

func NewInvoiceRepo(db *gorm.DB) *InvoiceRepo {
	return &InvoiceRepo{NewGorm[domain.Invoice](db, invoiceTable)}
}

func (r *InvoiceRepo) FindBySubscriptionID(ctx context.Context, subscriptionID string) ([]domain.Invoice, error) {
	return r.list(r.scoped(ctx).Where("subscription_id = ?", subscriptionID))
}

// FindOverdue returns invoices past their due date that are neither paid nor
// void, oldest due first.
func (r *InvoiceRepo) FindOverdue(ctx context.Context, spaceID string, now time.Time) ([]domain.Invoice, error) {
	var rows []domain.Invoice
	err := r.conn(ctx).
		Where("space_id = ? AND due_date < ? AND status NOT IN ?", spaceID, now.UTC(), []string{domain.InvoicePaid, domain.InvoiceVoid}).
		Order("due_date ASC").Order("id DESC").
		Find(&rows).Error
	return rows, err
}

// FindLatestByCustomerID returns the most recent invoice across every
// subscription of the customer.
func (r *InvoiceRepo) FindLatestByCustomerID(ctx context.Context, customerID string) (*domain.Invoice, error) {
	tx := r.scoped(ctx).
		Select("invoices.*").
		Joins("JOIN subscriptions ON subscriptions.id = invoices.subscription_id").
		Where("subscriptions.customer_id = ?", customerID).
		Order("invoices.created_at DESC").Order("invoices.id DESC").
		Limit(1)
	return first[domain.Invoice](tx)
}
