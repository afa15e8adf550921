package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/gblsmlo/lemind/internal/core/auth"
	"github.com/gblsmlo/lemind/internal/core/cache"
	"github.com/gblsmlo/lemind/internal/core/storage"
	"github.com/gblsmlo/lemind/internal/domain"
)

// Services is every action set, wired once at startup.
type Services struct {
	Auth          *AuthService
	Access        *Access
	Users         *UserService
	Spaces        *SpaceService
	Members       *MemberService
	Contacts      *ContactService
	Products      *ProductService
	Customers     *CustomerService
	Subscriptions *SubscriptionService
	Invoices      *InvoiceService
	Projects      *ProjectService
}

type Deps struct {
	Repos     domain.Repositories
	Tx        domain.Transactor
	JWT       *auth.JWTer
	Cache     *cache.Cache
	Bucket    storage.Bucket
	AccessTTL time.Duration
	Log       *zap.Logger
}

func New(d Deps) *Services {
	l := d.Log
	if l == nil {
		l = zap.NewNop()
	}
	r := d.Repos
	access := NewAccess(r.Members, d.Cache, d.AccessTTL, l.Named("access"))
	return &Services{
		Auth:          NewAuthService(r.Users, d.JWT, d.Cache, l.Named("auth")),
		Access:        access,
		Users:         NewUserService(r.Users, l.Named("users")),
		Spaces:        NewSpaceService(r.Spaces, r.Members, access, d.Tx, l.Named("spaces")),
		Members:       NewMemberService(r.Members, r.Users, access, l.Named("members")),
		Contacts:      NewContactService(r.Contacts, d.Bucket, l.Named("contacts")),
		Products:      NewProductService(r.Products, l.Named("products")),
		Customers:     NewCustomerService(r.Customers, l.Named("customers")),
		Subscriptions: NewSubscriptionService(r.Subscriptions, r.Customers, l.Named("subscriptions")),
		Invoices:      NewInvoiceService(r.Invoices, r.Subscriptions, l.Named("invoices")),
		Projects:      NewProjectService(r.Projects, l.Named("projects")),
	}
}
