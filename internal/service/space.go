package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/gblsmlo/lemind/internal/core/result"
	"github.com/gblsmlo/lemind/internal/domain"
)

const deleteSpace = "Only the owner can delete the space"

type SpaceService struct {
	*Crud[domain.Space, domain.SpaceInsert, domain.SpaceUpdate]
	repo    domain.SpaceRepository
	members domain.MemberRepository
	access  *Access
}

// NewSpaceService wires space creation so the creator becomes the owner
// member in the same transaction.
func NewSpaceService(repo domain.SpaceRepository, members domain.MemberRepository, access *Access, tx domain.Transactor, l *zap.Logger) *SpaceService {
	s := &SpaceService{repo: repo, members: members, access: access}
	s.Crud = NewCrud(CrudConfig[domain.Space, domain.SpaceInsert, domain.SpaceUpdate]{
		Entity:   "Space",
		Plural:   "spaces",
		Repo:     repo,
		Sortable: domain.SpaceSortable,
		ToEntity: domain.SpaceInsert.ToEntity,
		Changes:  domain.SpaceUpdate.Changes,
		Guard: func(ctx context.Context, op string) *result.Failure {
			switch op {
			case "update":
				return requireRole(ctx, domain.CanManage, "Only owners and admins can change the space")
			case "delete":
				return requireRole(ctx, isOwner, deleteSpace)
			}
			return nil
		},
		BeforeCreate: func(ctx context.Context, in domain.SpaceInsert) (*result.Failure, error) {
			return s.checkSlug(ctx, in.Slug, "")
		},
		BeforeUpdate: func(ctx context.Context, id string, in domain.SpaceUpdate) (*result.Failure, error) {
			if in.Slug == nil {
				return nil, nil
			}
			return s.checkSlug(ctx, *in.Slug, id)
		},
		Insert: func(ctx context.Context, sp *domain.Space) (*domain.Space, error) {
			var out *domain.Space
			err := tx.Transaction(ctx, func(r domain.Repositories) error {
				created, err := r.Spaces.Create(ctx, sp)
				if err != nil {
					return err
				}
				owner := domain.MemberInsert{SpaceID: created.ID, UserID: created.OwnerID, Role: domain.RoleOwner}
				if _, err := r.Members.Create(ctx, owner.ToEntity()); err != nil {
					return err
				}
				out = created
				return nil
			})
			if err != nil {
				return nil, err
			}
			return out, nil
		},
	}, l)
	return s
}

// Delete removes the space. Its rows go with it through the foreign keys and
// every member's cached access is dropped.
func (s *SpaceService) Delete(ctx context.Context, id string) result.Result[domain.DeleteOutput] {
	if f := requireRole(ctx, isOwner, deleteSpace); f != nil {
		return result.Fail[domain.DeleteOutput](*f)
	}
	members, err := s.members.FindBySpaceID(ctx, id)
	if err != nil {
		return failed[domain.DeleteOutput](&s.actor, "delete", s.one, err)
	}
	res := s.Crud.Delete(ctx, id)
	if res.IsSuccess() && s.access != nil {
		for _, m := range members {
			s.access.Invalidate(ctx, m.UserID, m.SpaceID)
		}
	}
	return res
}

func (s *SpaceService) checkSlug(ctx context.Context, slug, selfID string) (*result.Failure, error) {
	dup, err := s.repo.FindBySlug(ctx, slug)
	if err != nil || dup == nil || dup.ID == selfID {
		return nil, err
	}
	return conflict("A space with this slug already exists"), nil
}

func (s *SpaceService) FindBySlug(ctx context.Context, slug string) result.Result[domain.RowOutput[domain.Space]] {
	return run(&s.actor, "find", s.one, func() result.Result[domain.RowOutput[domain.Space]] {
		sp, err := s.repo.FindBySlug(ctx, slug)
		return row(&s.actor, "find", sp, err)
	})
}

func (s *SpaceService) FindByOwnerID(ctx context.Context, ownerID string) result.Result[[]domain.Space] {
	return run(&s.actor, "find", s.many, func() result.Result[[]domain.Space] {
		list, err := s.repo.FindByOwnerID(ctx, ownerID)
		return rows(&s.actor, "find", list, err)
	})
}
