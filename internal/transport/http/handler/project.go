package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/gblsmlo/lemind/internal/core/auth"
	"github.com/gblsmlo/lemind/internal/core/result"
	"github.com/gblsmlo/lemind/internal/domain"
	"github.com/gblsmlo/lemind/internal/service"
	"github.com/gblsmlo/lemind/internal/transport/http/ez"
)

type Projects struct{ svc *service.ProjectService }

func NewProjects(svc *service.ProjectService) *Projects { return &Projects{svc: svc} }

func (h *Projects) MountAPI(g ez.Groups) {
	get(g.Space, "/projects/by-slug/:slug", func(c *gin.Context) result.Result[domain.RowOutput[domain.Project]] {
		return h.svc.FindBySlug(ez.Ctx(c), c.Param("slug"))
	})
	get(g.Space, "/projects/mine", func(c *gin.Context) result.Result[[]domain.Project] {
		return h.svc.Mine(ez.Ctx(c), auth.SpaceFrom(ez.Ctx(c)))
	})
	ez.Crud[domain.Project, domain.ProjectInsert, domain.ProjectUpdate](g.Space, "/projects", h.svc)
}
