package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gblsmlo/lemind/internal/core/result"
	"github.com/gblsmlo/lemind/internal/domain"
	"github.com/gblsmlo/lemind/internal/service"
	"github.com/gblsmlo/lemind/internal/transport/http/ez"
	mdw "github.com/gblsmlo/lemind/internal/transport/http/middleware"
)

type Auth struct{ svc *service.AuthService }

func NewAuth(svc *service.AuthService) *Auth { return &Auth{svc: svc} }

func (h *Auth) Priority() int { return 10 }

func (h *Auth) MountAPI(g ez.Groups) {
	ez.RegisterAction(g.Public, ez.Action[domain.SignUpInput, domain.RowOutput[domain.User]]{
		Method: http.MethodPost,
		Path:   "/auth/sign-up",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *domain.SignUpInput) result.Result[domain.RowOutput[domain.User]] {
			return h.svc.SignUp(ez.Ctx(c), *in)
		},
	})
	ez.RegisterAction(g.Public, ez.Action[domain.SignInInput, domain.Token]{
		Method: http.MethodPost,
		Path:   "/auth/sign-in",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *domain.SignInInput) result.Result[domain.Token] {
			return h.svc.SignIn(ez.Ctx(c), *in)
		},
	})
	ez.RegisterAction(g.Authed, ez.Action[struct{}, struct{}]{
		Method: http.MethodPost,
		Path:   "/auth/sign-out",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) result.Result[struct{}] {
			return h.svc.SignOut(ez.Ctx(c), mdw.ClaimsFrom(c))
		},
	})
	ez.RegisterAction(g.Authed, ez.Action[struct{}, domain.RowOutput[domain.User]]{
		Method: http.MethodGet,
		Path:   "/me",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) result.Result[domain.RowOutput[domain.User]] {
			return h.svc.Me(ez.Ctx(c))
		},
	})
}
