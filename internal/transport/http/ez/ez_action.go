// Package ez registers gin routes from small action descriptions. Handlers
// return a result.Result and ez renders it in the response envelope.
package ez

import (
	"context"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gblsmlo/lemind/internal/core/auth"
	"github.com/gblsmlo/lemind/internal/core/result"
	resp "github.com/gblsmlo/lemind/internal/transport/http/response"
)

type EZ struct{ g *gin.RouterGroup }

func New(g *gin.RouterGroup) EZ { return EZ{g: g} }

// Group returns an EZ mounted under relativePath.
func (e EZ) Group(relativePath string, h ...gin.HandlerFunc) EZ {
	return EZ{g: e.g.Group(relativePath, h...)}
}

type Binder string

const (
	BindJSON  Binder = "json"
	BindQuery Binder = "query"
	BindNone  Binder = "none" // the handler reads c.Param itself
)

// Action describes one route: I is the bound input, O the result payload.
type Action[I, O any] struct {
	Method  string
	Path    string
	Binder  Binder
	Handler func(c *gin.Context, in *I) result.Result[O]
}

func RegisterAction[I, O any](e EZ, a Action[I, O]) {
	h := func(c *gin.Context) {
		var in I
		var err error
		switch a.Binder {
		case BindJSON:
			err = c.ShouldBindJSON(&in)
		case BindQuery:
			err = c.ShouldBindQuery(&in)
		}
		if err != nil {
			resp.JSON(c, resp.Error(resp.CodeBadRequest, err.Error()))
			return
		}
		Reply(c, a.Handler(c, &in))
	}
	method := strings.ToUpper(a.Method)
	if method == "" {
		method = http.MethodPost
	}
	e.g.Handle(method, a.Path, h)
}

// Upload registers a single-file multipart route.
func Upload[O any](e EZ, path, field string, h func(c *gin.Context, fh *multipart.FileHeader) result.Result[O]) {
	e.g.POST(path, func(c *gin.Context) {
		fh, err := c.FormFile(field)
		if err != nil {
			resp.JSON(c, resp.Error(resp.CodeBadRequest, "missing file field "+field))
			return
		}
		Reply(c, h(c, fh))
	})
}

func Reply[T any](c *gin.Context, r result.Result[T]) {
	resp.JSON(c, resp.Of(r))
}

// Ctx is the request context; it carries the auth.Session.
func Ctx(c *gin.Context) context.Context { return c.Request.Context() }

type (
	spaceSetter interface{ SetSpaceID(string) }
	ownerSetter interface{ SetOwnerID(string) }
)

// Stamp overwrites the tenant and owner of an insert shape with the session's.
// in must be a pointer.
func Stamp(c *gin.Context, in any) {
	sess, _ := auth.SessionFrom(Ctx(c))
	if s, ok := in.(spaceSetter); ok && sess.SpaceID != "" {
		s.SetSpaceID(sess.SpaceID)
	}
	if s, ok := in.(ownerSetter); ok && sess.UserID != "" {
		s.SetOwnerID(sess.UserID)
	}
}
