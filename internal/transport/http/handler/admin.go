package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gblsmlo/lemind/internal/core/result"
	"github.com/gblsmlo/lemind/internal/domain"
	"github.com/gblsmlo/lemind/internal/service"
	"github.com/gblsmlo/lemind/internal/transport/http/ez"
)

// Admin is mounted on the admin engine only.
type Admin struct{ users *service.UserService }

func NewAdmin(users *service.UserService) *Admin { return &Admin{users: users} }

type pageQuery struct {
	Page     int `form:"page"`
	PageSize int `form:"pageSize"`
}

func (h *Admin) MountAdmin(e ez.EZ) {
	ez.RegisterAction(e, ez.Action[pageQuery, domain.ListResult[domain.User]]{
		Method: http.MethodGet,
		Path:   "/users",
		Binder: ez.BindQuery,
		Handler: func(c *gin.Context, q *pageQuery) result.Result[domain.ListResult[domain.User]] {
			return h.users.List(ez.Ctx(c), q.Page, q.PageSize)
		},
	})
	ez.RegisterAction(e, ez.Action[struct{}, domain.DeleteOutput]{
		Method: http.MethodDelete,
		Path:   "/users/:id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) result.Result[domain.DeleteOutput] {
			return h.users.Delete(ez.Ctx(c), c.Param("id"))
		},
	})
}
