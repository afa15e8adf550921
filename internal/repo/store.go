package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/gblsmlo/lemind/internal/domain"
)

// Store binds every repository to one store handle.
type Store struct {
	db *gorm.DB
	domain.Repositories
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db, Repositories: newRepositories(db)}
}

func newRepositories(db *gorm.DB) domain.Repositories {
	return domain.Repositories{
		Contacts:      NewContactRepo(db),
		Products:      NewProductRepo(db),
		Customers:     NewCustomerRepo(db),
		Invoices:      NewInvoiceRepo(db),
		Members:       NewMemberRepo(db),
		Projects:      NewProjectRepo(db),
		Spaces:        NewSpaceRepo(db),
		Subscriptions: NewSubscriptionRepo(db),
		Users:         NewUserRepo(db),
	}
}

func (s *Store) Transaction(ctx context.Context, fn func(domain.Repositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(newRepositories(tx))
	})
}
