package ez

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gblsmlo/lemind/internal/core/auth"
	"github.com/gblsmlo/lemind/internal/core/result"
	"github.com/gblsmlo/lemind/internal/domain"
)

// CrudService is the action set every space resource exposes.
type CrudService[T, I, U any] interface {
	Create(ctx context.Context, in I) result.Result[domain.RowOutput[T]]
	Update(ctx context.Context, id string, in U) result.Result[domain.RowOutput[T]]
	Delete(ctx context.Context, id string) result.Result[domain.DeleteOutput]
	FindByID(ctx context.Context, id string) result.Result[domain.RowOutput[T]]
	FindMany(ctx context.Context, q domain.ListQuery) result.Result[domain.ListResult[T]]
}

// Crud mounts list/create on path and get/update/delete on path/:id. The
// request must already be bound to a space.
func Crud[T, I, U any](e EZ, path string, svc CrudService[T, I, U]) {
	RegisterAction(e, Action[domain.ListQuery, domain.ListResult[T]]{
		Method: http.MethodGet,
		Path:   path,
		Binder: BindQuery,
		Handler: func(c *gin.Context, q *domain.ListQuery) result.Result[domain.ListResult[T]] {
			q.ScopeID = auth.SpaceFrom(Ctx(c))
			return svc.FindMany(Ctx(c), *q)
		},
	})
	RegisterAction(e, Action[I, domain.RowOutput[T]]{
		Method: http.MethodPost,
		Path:   path,
		Binder: BindJSON,
		Handler: func(c *gin.Context, in *I) result.Result[domain.RowOutput[T]] {
			Stamp(c, in)
			return svc.Create(Ctx(c), *in)
		},
	})
	RegisterAction(e, Action[struct{}, domain.RowOutput[T]]{
		Method: http.MethodGet,
		Path:   path + "/:id",
		Binder: BindNone,
		Handler: func(c *gin.Context, _ *struct{}) result.Result[domain.RowOutput[T]] {
			return svc.FindByID(Ctx(c), c.Param("id"))
		},
	})
	RegisterAction(e, Action[U, domain.RowOutput[T]]{
		Method: http.MethodPut,
		Path:   path + "/:id",
		Binder: BindJSON,
		Handler: func(c *gin.Context, in *U) result.Result[domain.RowOutput[T]] {
			return svc.Update(Ctx(c), c.Param("id"), *in)
		},
	})
	RegisterAction(e, Action[struct{}, domain.DeleteOutput]{
		Method: http.MethodDelete,
		Path:   path + "/:id",
		Binder: BindNone,
		Handler: func(c *gin.Context, _ *struct{}) result.Result[domain.DeleteOutput] {
			return svc.Delete(Ctx(c), c.Param("id"))
		},
	})
}
