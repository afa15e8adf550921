package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/gblsmlo/lemind/internal/core/auth"
	"github.com/gblsmlo/lemind/internal/core/result"
	"github.com/gblsmlo/lemind/internal/domain"
)

type ProjectService struct {
	*Crud[domain.Project, domain.ProjectInsert, domain.ProjectUpdate]
	repo domain.ProjectRepository
}

func NewProjectService(repo domain.ProjectRepository, l *zap.Logger) *ProjectService {
	s := &ProjectService{repo: repo}
	s.Crud = NewCrud(CrudConfig[domain.Project, domain.ProjectInsert, domain.ProjectUpdate]{
		Entity:   "Project",
		Plural:   "projects",
		Repo:     repo,
		Sortable: domain.ProjectSortable,
		ToEntity: domain.ProjectInsert.ToEntity,
		Changes:  domain.ProjectUpdate.Changes,
		BeforeCreate: func(ctx context.Context, in domain.ProjectInsert) (*result.Failure, error) {
			return s.checkSlug(ctx, in.Slug, "")
		},
		BeforeUpdate: func(ctx context.Context, id string, in domain.ProjectUpdate) (*result.Failure, error) {
			if in.Slug == nil {
				return nil, nil
			}
			return s.checkSlug(ctx, *in.Slug, id)
		},
	}, l)
	return s
}

func (s *ProjectService) checkSlug(ctx context.Context, slug, selfID string) (*result.Failure, error) {
	dup, err := s.repo.FindBySlug(ctx, slug)
	if err != nil || dup == nil || dup.ID == selfID {
		return nil, err
	}
	return conflict("A project with this slug already exists"), nil
}

func (s *ProjectService) FindBySlug(ctx context.Context, slug string) result.Result[domain.RowOutput[domain.Project]] {
	return run(&s.actor, "find", s.one, func() result.Result[domain.RowOutput[domain.Project]] {
		p, err := s.repo.FindBySlug(ctx, slug)
		if err == nil && p != nil {
			if space := auth.SpaceFrom(ctx); space != "" && p.SpaceID != space {
				p = nil
			}
		}
		return row(&s.actor, "find", p, err)
	})
}

// Mine lists the projects of spaceID owned by the session user.
func (s *ProjectService) Mine(ctx context.Context, spaceID string) result.Result[[]domain.Project] {
	return run(&s.actor, "find", s.many, func() result.Result[[]domain.Project] {
		sess, ok := auth.SessionFrom(ctx)
		if !ok || sess.UserID == "" {
			return result.Fail[[]domain.Project](s.forbidden("Authentication required"))
		}
		list, err := s.repo.FindByOwnerID(ctx, sess.UserID, spaceID)
		return rows(&s.actor, "find", list, err)
	})
}
