package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/gblsmlo/lemind/internal/domain"
)

var subscriptionTable = Table{
	Label:        "subscriptions",
	TenantColumn: "space_id",
	ScopeColumn:  "space_id",
	SearchColumn: "plan_name",
	Sortable:     domain.SubscriptionSortable,
}

type SubscriptionRepo struct{ *Gorm[domain.Subscription] }

func NewSubscriptionRepo(db *gorm.DB) *SubscriptionRepo {
	return &SubscriptionRepo{NewGorm[domain.Subscription](db, subscriptionTable)}
}

func (r *SubscriptionRepo) FindByCustomerID(ctx context.Context, customerID string) ([]domain.Subscription, error) {
	return r.list(r.scoped(ctx).Where("customer_id = ?", customerID))
}

// FindActiveByCustomerID returns the most recently started active
// subscription.
func (r *SubscriptionRepo) FindActiveByCustomerID(ctx context.Context, customerID string) (*domain.Subscription, error) {
	return first[domain.Subscription](r.scoped(ctx).
		Where("customer_id = ? AND status = ?", customerID, domain.SubscriptionActive).
		Order("started_at DESC").Order("id DESC"))
}

func (r *SubscriptionRepo) FindByStatus(ctx context.Context, status, spaceID string) ([]domain.Subscription, error) {
	return r.list(r.conn(ctx).Model(&domain.Subscription{}).Where("status = ? AND space_id = ?", status, spaceID))
}
