package handler

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gblsmlo/lemind/internal/core/auth"
	"github.com/gblsmlo/lemind/internal/core/result"
	"github.com/gblsmlo/lemind/internal/domain"
	"github.com/gblsmlo/lemind/internal/service"
	"github.com/gblsmlo/lemind/internal/transport/http/ez"
)

type Contacts struct{ svc *service.ContactService }

func NewContacts(svc *service.ContactService) *Contacts { return &Contacts{svc: svc} }

type documentQuery struct {
	Document string `form:"document"`
}

func (h *Contacts) MountAPI(g ez.Groups) {
	ez.Crud[domain.Contact, domain.ContactInsert, domain.ContactUpdate](g.Space, "/contacts", h.svc)

	ez.RegisterAction(g.Space, ez.Action[documentQuery, domain.RowOutput[domain.Contact]]{
		Method: http.MethodGet,
		Path:   "/contacts/by-document",
		Binder: ez.BindQuery,
		Handler: func(c *gin.Context, q *documentQuery) result.Result[domain.RowOutput[domain.Contact]] {
			return h.svc.FindByDocument(ez.Ctx(c), auth.SpaceFrom(ez.Ctx(c)), q.Document)
		},
	})
	ez.Upload(g.Space, "/contacts/:id/avatar", "file", func(c *gin.Context, fh *multipart.FileHeader) result.Result[domain.RowOutput[domain.Contact]] {
		f, err := fh.Open()
		if err != nil {
			return result.Fail[domain.RowOutput[domain.Contact]](result.Failure{
				Kind:    result.Validation,
				Message: "avatar upload could not be read",
				Err:     err,
			})
		}
		defer f.Close()
		return h.svc.UploadAvatar(ez.Ctx(c), c.Param("id"), fh.Filename, f)
	})
}
