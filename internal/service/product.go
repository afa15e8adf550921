package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/gblsmlo/lemind/internal/core/result"
	"github.com/gblsmlo/lemind/internal/domain"
)

type ProductService struct {
	*Crud[domain.Product, domain.ProductInsert, domain.ProductUpdate]
	repo domain.ProductRepository
}

func NewProductService(repo domain.ProductRepository, l *zap.Logger) *ProductService {
	return &ProductService{
		repo: repo,
		Crud: NewCrud(CrudConfig[domain.Product, domain.ProductInsert, domain.ProductUpdate]{
			Entity:   "Product",
			Plural:   "products",
			Repo:     repo,
			Sortable: domain.ProductSortable,
			ToEntity: domain.ProductInsert.ToEntity,
			Changes:  domain.ProductUpdate.Changes,
		}, l),
	}
}

func (s *ProductService) FindAll(ctx context.Context, spaceID string) result.Result[[]domain.Product] {
	return run(&s.actor, "find", s.many, func() result.Result[[]domain.Product] {
		list, err := s.repo.FindAll(ctx, spaceID)
		return rows(&s.actor, "find", list, err)
	})
}
