package service

import (
	"context"
	"slices"

	"go.uber.org/zap"

	"github.com/gblsmlo/lemind/internal/core/result"
	"github.com/gblsmlo/lemind/internal/domain"
)

var subscriptionStatuses = []string{domain.SubscriptionActive, domain.SubscriptionCanceled, domain.SubscriptionPastDue}

type SubscriptionService struct {
	*Crud[domain.Subscription, domain.SubscriptionInsert, domain.SubscriptionUpdate]
	repo domain.SubscriptionRepository
}

func NewSubscriptionService(repo domain.SubscriptionRepository, customers domain.CustomerRepository, l *zap.Logger) *SubscriptionService {
	s := &SubscriptionService{repo: repo}
	s.Crud = NewCrud(CrudConfig[domain.Subscription, domain.SubscriptionInsert, domain.SubscriptionUpdate]{
		Entity:   "Subscription",
		Plural:   "subscriptions",
		Repo:     repo,
		Sortable: domain.SubscriptionSortable,
		ToEntity: domain.SubscriptionInsert.ToEntity,
		Changes:  domain.SubscriptionUpdate.Changes,
		BeforeCreate: func(ctx context.Context, in domain.SubscriptionInsert) (*result.Failure, error) {
			return customerInSpace(ctx, customers, in.CustomerID, in.SpaceID)
		},
		BeforeUpdate: func(ctx context.Context, id string, in domain.SubscriptionUpdate) (*result.Failure, error) {
			if in.CustomerID == nil {
				return nil, nil
			}
			cur, err := repo.FindByID(ctx, id)
			if err != nil {
				return nil, err
			}
			if cur == nil {
				f := s.notFound()
				return &f, nil
			}
			return customerInSpace(ctx, customers, *in.CustomerID, cur.SpaceID)
		},
	}, l)
	return s
}

func customerInSpace(ctx context.Context, customers domain.CustomerRepository, customerID, spaceID string) (*result.Failure, error) {
	c, err := customers.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if c == nil || c.SpaceID != spaceID {
		return &result.Failure{Kind: result.NotFound, Message: "Customer not found"}, nil
	}
	return nil, nil
}

func (s *SubscriptionService) FindByCustomerID(ctx context.Context, customerID string) result.Result[[]domain.Subscription] {
	return run(&s.actor, "find", s.many, func() result.Result[[]domain.Subscription] {
		list, err := s.repo.FindByCustomerID(ctx, customerID)
		return rows(&s.actor, "find", list, err)
	})
}

func (s *SubscriptionService) FindActiveByCustomerID(ctx context.Context, customerID string) result.Result[domain.RowOutput[domain.Subscription]] {
	return run(&s.actor, "find", s.one, func() result.Result[domain.RowOutput[domain.Subscription]] {
		sub, err := s.repo.FindActiveByCustomerID(ctx, customerID)
		return row(&s.actor, "find", sub, err)
	})
}

func (s *SubscriptionService) FindByStatus(ctx context.Context, spaceID, status string) result.Result[[]domain.Subscription] {
	return run(&s.actor, "find", s.many, func() result.Result[[]domain.Subscription] {
		if !slices.Contains(subscriptionStatuses, status) {
			return result.Fail[[]domain.Subscription](result.Failure{Kind: result.Validation, Message: "status must be one of: active, canceled, past_due"})
		}
		list, err := s.repo.FindByStatus(ctx, status, spaceID)
		return rows(&s.actor, "find", list, err)
	})
}
