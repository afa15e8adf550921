package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gblsmlo/lemind/internal/core/auth"
	"github.com/gblsmlo/lemind/internal/core/result"
	"github.com/gblsmlo/lemind/internal/domain"
	"github.com/gblsmlo/lemind/internal/service"
	"github.com/gblsmlo/lemind/internal/transport/http/ez"
)

// Billing mounts products, customers, subscriptions and invoices.
type Billing struct {
	products      *service.ProductService
	customers     *service.CustomerService
	subscriptions *service.SubscriptionService
	invoices      *service.InvoiceService
}

func NewBilling(s *service.Services) *Billing {
	return &Billing{
		products:      s.Products,
		customers:     s.Customers,
		subscriptions: s.Subscriptions,
		invoices:      s.Invoices,
	}
}

type emailQuery struct {
	Email string `form:"email"`
}

// get registers a GET route whose handler reads only path parameters.
func get[O any](e ez.EZ, path string, h func(c *gin.Context) result.Result[O]) {
	ez.RegisterAction(e, ez.Action[struct{}, O]{
		Method:  http.MethodGet,
		Path:    path,
		Binder:  ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) result.Result[O] { return h(c) },
	})
}

func (h *Billing) MountAPI(g ez.Groups) {
	sp := g.Space
	space := func(c *gin.Context) string { return auth.SpaceFrom(ez.Ctx(c)) }

	get(sp, "/products/all", func(c *gin.Context) result.Result[[]domain.Product] {
		return h.products.FindAll(ez.Ctx(c), space(c))
	})
	ez.Crud[domain.Product, domain.ProductInsert, domain.ProductUpdate](sp, "/products", h.products)

	ez.RegisterAction(sp, ez.Action[emailQuery, domain.RowOutput[domain.Customer]]{
		Method: http.MethodGet,
		Path:   "/customers/by-email",
		Binder: ez.BindQuery,
		Handler: func(c *gin.Context, q *emailQuery) result.Result[domain.RowOutput[domain.Customer]] {
			return h.customers.FindByEmail(ez.Ctx(c), space(c), q.Email)
		},
	})
	get(sp, "/customers/by-status/:status", func(c *gin.Context) result.Result[[]domain.Customer] {
		return h.customers.FindAllByStatus(ez.Ctx(c), space(c), c.Param("status"))
	})
	get(sp, "/customers/:id/latest-invoice", func(c *gin.Context) result.Result[domain.RowOutput[domain.Invoice]] {
		return h.invoices.FindLatestByCustomerID(ez.Ctx(c), c.Param("id"))
	})
	get(sp, "/customers/:id/subscriptions", func(c *gin.Context) result.Result[[]domain.Subscription] {
		return h.subscriptions.FindByCustomerID(ez.Ctx(c), c.Param("id"))
	})
	get(sp, "/customers/:id/active-subscription", func(c *gin.Context) result.Result[domain.RowOutput[domain.Subscription]] {
		return h.subscriptions.FindActiveByCustomerID(ez.Ctx(c), c.Param("id"))
	})
	ez.Crud[domain.Customer, domain.CustomerInsert, domain.CustomerUpdate](sp, "/customers", h.customers)

	get(sp, "/subscriptions/by-status/:status", func(c *gin.Context) result.Result[[]domain.Subscription] {
		return h.subscriptions.FindByStatus(ez.Ctx(c), space(c), c.Param("status"))
	})
	get(sp, "/subscriptions/:id/invoices", func(c *gin.Context) result.Result[[]domain.Invoice] {
		return h.invoices.FindBySubscriptionID(ez.Ctx(c), c.Param("id"))
	})
	ez.Crud[domain.Subscription, domain.SubscriptionInsert, domain.SubscriptionUpdate](sp, "/subscriptions", h.subscriptions)

	get(sp, "/invoices/overdue", func(c *gin.Context) result.Result[[]domain.Invoice] {
		return h.invoices.FindOverdue(ez.Ctx(c), space(c))
	})
	ez.Crud[domain.Invoice, domain.InvoiceInsert, domain.InvoiceUpdate](sp, "/invoices", h.invoices)
}
