package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/gblsmlo/lemind/internal/core/result"
	"github.com/gblsmlo/lemind/internal/domain"
)

type CustomerService struct {
	*Crud[domain.Customer, domain.CustomerInsert, domain.CustomerUpdate]
	repo domain.CustomerRepository
}

func NewCustomerService(repo domain.CustomerRepository, l *zap.Logger) *CustomerService {
	s := &CustomerService{repo: repo}
	s.Crud = NewCrud(CrudConfig[domain.Customer, domain.CustomerInsert, domain.CustomerUpdate]{
		Entity:   "Customer",
		Plural:   "customers",
		Repo:     repo,
		Sortable: domain.CustomerSortable,
		ToEntity: domain.CustomerInsert.ToEntity,
		Changes:  domain.CustomerUpdate.Changes,
		BeforeCreate: func(ctx context.Context, in domain.CustomerInsert) (*result.Failure, error) {
			return s.checkEmail(ctx, in.Email, in.SpaceID, "")
		},
		BeforeUpdate: func(ctx context.Context, id string, in domain.CustomerUpdate) (*result.Failure, error) {
			if in.Email == nil {
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
			return s.checkEmail(ctx, *in.Email, cur.SpaceID, id)
		},
	}, l)
	return s
}

func (s *CustomerService) checkEmail(ctx context.Context, email, spaceID, selfID string) (*result.Failure, error) {
	dup, err := s.repo.FindByEmail(ctx, email, spaceID)
	if err != nil || dup == nil || dup.ID == selfID {
		return nil, err
	}
	return conflict("A customer with this email already exists in this space"), nil
}

func (s *CustomerService) FindByEmail(ctx context.Context, spaceID, email string) result.Result[domain.RowOutput[domain.Customer]] {
	return run(&s.actor, "find", s.one, func() result.Result[domain.RowOutput[domain.Customer]] {
		if strings.TrimSpace(email) == "" {
			return result.Fail[domain.RowOutput[domain.Customer]](result.Failure{Kind: result.Validation, Message: "email is required"})
		}
		c, err := s.repo.FindByEmail(ctx, strings.TrimSpace(email), spaceID)
		return row(&s.actor, "find", c, err)
	})
}

func (s *CustomerService) FindAllByStatus(ctx context.Context, spaceID, status string) result.Result[[]domain.Customer] {
	return run(&s.actor, "find", s.many, func() result.Result[[]domain.Customer] {
		if status != domain.CustomerActive && status != domain.CustomerInactive {
			return result.Fail[[]domain.Customer](result.Failure{Kind: result.Validation, Message: "status must be one of: active, inactive"})
		}
		list, err := s.repo.FindAllByStatus(ctx, status, spaceID)
		return rows(&s.actor, "find", list, err)
	})
}
