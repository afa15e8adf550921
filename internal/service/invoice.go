package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/gblsmlo/lemind/internal/core/result"
	"github.com/gblsmlo/lemind/internal/domain"
)

type InvoiceService struct {
	*Crud[domain.Invoice, domain.InvoiceInsert, domain.InvoiceUpdate]
	repo domain.InvoiceRepository
	now  func() time.Time
}

func NewInvoiceService(repo domain.InvoiceRepository, subs domain.SubscriptionRepository, l *zap.Logger) *InvoiceService {
	s := &InvoiceService{repo: repo, now: time.Now}
	s.Crud = NewCrud(CrudConfig[domain.Invoice, domain.InvoiceInsert, domain.InvoiceUpdate]{
		Entity:   "Invoice",
		Plural:   "invoices",
		Repo:     repo,
		Sortable: domain.InvoiceSortable,
		ToEntity: domain.InvoiceInsert.ToEntity,
		Changes:  domain.InvoiceUpdate.Changes,
		BeforeCreate: func(ctx context.Context, in domain.InvoiceInsert) (*result.Failure, error) {
			sub, err := subs.FindByID(ctx, in.SubscriptionID)
			if err != nil {
				return nil, err
			}
			if sub == nil || sub.SpaceID != in.SpaceID {
				return &result.Failure{Kind: result.NotFound, Message: "Subscription not found"}, nil
			}
			return nil, nil
		},
	}, l)
	return s
}

func (s *InvoiceService) FindBySubscriptionID(ctx context.Context, subscriptionID string) result.Result[[]domain.Invoice] {
	return run(&s.actor, "find", s.many, func() result.Result[[]domain.Invoice] {
		list, err := s.repo.FindBySubscriptionID(ctx, subscriptionID)
		return rows(&s.actor, "find", list, err)
	})
}

// FindOverdue lists unpaid, non-void invoices of the space whose due date has
// passed.
func (s *InvoiceService) FindOverdue(ctx context.Context, spaceID string) result.Result[[]domain.Invoice] {
	return run(&s.actor, "find", "overdue "+s.many, func() result.Result[[]domain.Invoice] {
		list, err := s.repo.FindOverdue(ctx, spaceID, s.now())
		return rows(&s.actor, "find", list, err)
	})
}

func (s *InvoiceService) FindLatestByCustomerID(ctx context.Context, customerID string) result.Result[domain.RowOutput[domain.Invoice]] {
	return run(&s.actor, "find", s.one, func() result.Result[domain.RowOutput[domain.Invoice]] {
		inv, err := s.repo.FindLatestByCustomerID(ctx, customerID)
		return row(&s.actor, "find", inv, err)
	})
}
