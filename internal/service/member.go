package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/gblsmlo/lemind/internal/core/result"
	"github.com/gblsmlo/lemind/internal/domain"
)

const (
	manageMembers = "Only owners and admins can manage members"
	grantOwner    = "Only the owner can grant the owner role"
)

type MemberService struct {
	*Crud[domain.Member, domain.MemberInsert, domain.MemberUpdate]
	repo   domain.MemberRepository
	access *Access
}

func NewMemberService(repo domain.MemberRepository, users domain.UserRepository, access *Access, l *zap.Logger) *MemberService {
	s := &MemberService{repo: repo, access: access}
	s.Crud = NewCrud(CrudConfig[domain.Member, domain.MemberInsert, domain.MemberUpdate]{
		Entity:   "Member",
		Plural:   "members",
		Repo:     repo,
		Sortable: domain.MemberSortable,
		ToEntity: domain.MemberInsert.ToEntity,
		Changes:  domain.MemberUpdate.Changes,
		Guard: func(ctx context.Context, _ string) *result.Failure {
			return requireRole(ctx, domain.CanManage, manageMembers)
		},
		BeforeCreate: func(ctx context.Context, in domain.MemberInsert) (*result.Failure, error) {
			if in.Role == domain.RoleOwner {
				if f := requireRole(ctx, isOwner, grantOwner); f != nil {
					return f, nil
				}
			}
			u, err := users.FindByID(ctx, in.UserID)
			if err != nil {
				return nil, err
			}
			if u == nil {
				return &result.Failure{Kind: result.NotFound, Message: "User not found"}, nil
			}
			dup, err := repo.FindByUserInSpace(ctx, in.UserID, in.SpaceID)
			if err != nil || dup == nil {
				return nil, err
			}
			return conflict("User is already a member of this space"), nil
		},
		BeforeUpdate: func(ctx context.Context, id string, in domain.MemberUpdate) (*result.Failure, error) {
			if in.Role == nil {
				return nil, nil
			}
			if *in.Role == domain.RoleOwner {
				if f := requireRole(ctx, isOwner, grantOwner); f != nil {
					return f, nil
				}
			}
			m, err := repo.FindByID(ctx, id)
			if err != nil || m == nil {
				return nil, err
			}
			if m.Role == domain.RoleOwner && *in.Role != domain.RoleOwner {
				return &result.Failure{Kind: result.Validation, Message: "The space owner's role cannot be changed"}, nil
			}
			return nil, nil
		},
	}, l)
	return s
}

// Create adds a member and drops any refusal cached for the user.
func (s *MemberService) Create(ctx context.Context, in domain.MemberInsert) result.Result[domain.RowOutput[domain.Member]] {
	res := s.Crud.Create(ctx, in)
	if res.IsSuccess() {
		m := res.Data().Row
		s.access.Invalidate(ctx, m.UserID, m.SpaceID)
	}
	return res
}

// Update changes a member's role and drops the cached access decision.
func (s *MemberService) Update(ctx context.Context, id string, in domain.MemberUpdate) result.Result[domain.RowOutput[domain.Member]] {
	res := s.Crud.Update(ctx, id, in)
	if res.IsSuccess() {
		m := res.Data().Row
		s.access.Invalidate(ctx, m.UserID, m.SpaceID)
	}
	return res
}

// Delete removes a member. The owner of a space cannot be removed.
func (s *MemberService) Delete(ctx context.Context, id string) result.Result[domain.DeleteOutput] {
	if f := requireRole(ctx, domain.CanManage, manageMembers); f != nil {
		return result.Fail[domain.DeleteOutput](*f)
	}
	found := s.FindByID(ctx, id)
	if found.IsFailure() {
		return result.Forward[domain.DeleteOutput](found)
	}
	m := found.Data().Row
	if m.Role == domain.RoleOwner {
		return result.Fail[domain.DeleteOutput](result.Failure{Kind: result.Validation, Message: "The space owner cannot be removed"})
	}
	res := s.Crud.Delete(ctx, id)
	if res.IsSuccess() {
		s.access.Invalidate(ctx, m.UserID, m.SpaceID)
	}
	return res
}

func (s *MemberService) FindBySpaceID(ctx context.Context, spaceID string) result.Result[[]domain.Member] {
	return run(&s.actor, "find", s.many, func() result.Result[[]domain.Member] {
		list, err := s.repo.FindBySpaceID(ctx, spaceID)
		return rows(&s.actor, "find", list, err)
	})
}

func (s *MemberService) FindByUserID(ctx context.Context, userID string) result.Result[[]domain.Member] {
	return run(&s.actor, "find", s.many, func() result.Result[[]domain.Member] {
		list, err := s.repo.FindByUserID(ctx, userID)
		return rows(&s.actor, "find", list, err)
	})
}
