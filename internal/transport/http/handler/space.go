package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gblsmlo/lemind/internal/core/auth"
	"github.com/gblsmlo/lemind/internal/core/result"
	"github.com/gblsmlo/lemind/internal/domain"
	"github.com/gblsmlo/lemind/internal/service"
	"github.com/gblsmlo/lemind/internal/transport/http/ez"
	mdw "github.com/gblsmlo/lemind/internal/transport/http/middleware"
)

// Spaces mounts the space itself and its members.
type Spaces struct {
	spaces  *service.SpaceService
	members *service.MemberService
}

func NewSpaces(spaces *service.SpaceService, members *service.MemberService) *Spaces {
	return &Spaces{spaces: spaces, members: members}
}

func (h *Spaces) Priority() int { return 20 }

func (h *Spaces) MountAPI(g ez.Groups) {
	// Listing is scoped by owner: the caller's own spaces.
	ez.RegisterAction(g.Authed, ez.Action[domain.ListQuery, domain.ListResult[domain.Space]]{
		Method: http.MethodGet,
		Path:   "/spaces",
		Binder: ez.BindQuery,
		Handler: func(c *gin.Context, q *domain.ListQuery) result.Result[domain.ListResult[domain.Space]] {
			sess, _ := auth.SessionFrom(ez.Ctx(c))
			q.ScopeID = sess.UserID
			return h.spaces.FindMany(ez.Ctx(c), *q)
		},
	})
	ez.RegisterAction(g.Authed, ez.Action[domain.SpaceInsert, domain.RowOutput[domain.Space]]{
		Method: http.MethodPost,
		Path:   "/spaces",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *domain.SpaceInsert) result.Result[domain.RowOutput[domain.Space]] {
			ez.Stamp(c, in)
			return h.spaces.Create(ez.Ctx(c), *in)
		},
	})

	ez.RegisterAction(g.Space, ez.Action[struct{}, domain.RowOutput[domain.Space]]{
		Method: http.MethodGet,
		Path:   "",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) result.Result[domain.RowOutput[domain.Space]] {
			return h.spaces.FindByID(ez.Ctx(c), c.Param(mdw.ParamSpaceID))
		},
	})
	ez.RegisterAction(g.Space, ez.Action[domain.SpaceUpdate, domain.RowOutput[domain.Space]]{
		Method: http.MethodPut,
		Path:   "",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *domain.SpaceUpdate) result.Result[domain.RowOutput[domain.Space]] {
			return h.spaces.Update(ez.Ctx(c), c.Param(mdw.ParamSpaceID), *in)
		},
	})
	ez.RegisterAction(g.Space, ez.Action[struct{}, domain.DeleteOutput]{
		Method: http.MethodDelete,
		Path:   "",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) result.Result[domain.DeleteOutput] {
			return h.spaces.Delete(ez.Ctx(c), c.Param(mdw.ParamSpaceID))
		},
	})

	ez.Crud[domain.Member, domain.MemberInsert, domain.MemberUpdate](g.Space, "/members", h.members)
}
