package domain

import (
	"context"
	"time"
)

// Repository is the capability set shared by every entity. Absence is
// reported as a nil row or an empty id, never as an error; an error always
// means the store itself failed.
type Repository[T any] interface {
	Create(ctx context.Context, row *T) (*T, error)
	Update(ctx context.Context, id string, changes map[string]any) (*T, error)
	Delete(ctx context.Context, id string) (string, error)
	FindByID(ctx context.Context, id string) (*T, error)
	FindMany(ctx context.Context, q ListQuery) (ListResult[T], error)
}

type ContactRepository interface {
	Repository[Contact]
	// FindByDocumentInSpace ignores the row whose id equals excludeID.
	FindByDocumentInSpace(ctx context.Context, document, spaceID, excludeID string) (*Contact, error)
}

type ProductRepository interface {
	Repository[Product]
	FindAll(ctx context.Context, spaceID string) ([]Product, error)
}

type CustomerRepository interface {
	Repository[Customer]
	FindByEmail(ctx context.Context, email, spaceID string) (*Customer, error)
	FindAllByStatus(ctx context.Context, status, spaceID string) ([]Customer, error)
}

type InvoiceRepository interface {
	Repository[Invoice]
	FindBySubscriptionID(ctx context.Context, subscriptionID string) ([]Invoice, error)
	FindOverdue(ctx context.Context, spaceID string, now time.Time) ([]Invoice, error)
	FindLatestByCustomerID(ctx context.Context, customerID string) (*Invoice, error)
}

type MemberRepository interface {
	Repository[Member]
	FindByUserID(ctx context.Context, userID string) ([]Member, error)
	FindBySpaceID(ctx context.Context, spaceID string) ([]Member, error)
	FindByUserInSpace(ctx context.Context, userID, spaceID string) (*Member, error)
}

type ProjectRepository interface {
	Repository[Project]
	FindBySlug(ctx context.Context, slug string) (*Project, error)
	FindByOwnerID(ctx context.Context, ownerID, spaceID string) ([]Project, error)
}

type SpaceRepository interface {
	Repository[Space]
	FindBySlug(ctx context.Context, slug string) (*Space, error)
	FindByOwnerID(ctx context.Context, ownerID string) ([]Space, error)
}

type SubscriptionRepository interface {
	Repository[Subscription]
	FindByCustomerID(ctx context.Context, customerID string) ([]Subscription, error)
	FindActiveByCustomerID(ctx context.Context, customerID string) (*Subscription, error)
	FindByStatus(ctx context.Context, status, spaceID string) ([]Subscription, error)
}

type UserRepository interface {
	Create(ctx context.Context, u *User) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, offset, limit int) ([]User, int64, error)
	Delete(ctx context.Context, id string) (string, error)
}

// Repositories groups every repository bound to the same store handle.
type Repositories struct {
	Contacts      ContactRepository
	Products      ProductRepository
	Customers     CustomerRepository
	Invoices      InvoiceRepository
	Members       MemberRepository
	Projects      ProjectRepository
	Spaces        SpaceRepository
	Subscriptions SubscriptionRepository
	Users         UserRepository
}

// Transactor runs fn against repositories bound to one transaction. fn's
// error rolls the transaction back.
type Transactor interface {
	Transaction(ctx context.Context, fn func(Repositories) error) error
}
