package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/gblsmlo/lemind/internal/core/auth"
	"github.com/gblsmlo/lemind/internal/core/result"
	"github.com/gblsmlo/lemind/internal/domain"
)

const maxAdminPageSize = 100

// UserService backs the admin surface.
type UserService struct {
	actor
	users domain.UserRepository
}

func NewUserService(users domain.UserRepository, l *zap.Logger) *UserService {
	return &UserService{actor: newActor("User", "users", l), users: users}
}

func (s *UserService) List(ctx context.Context, page, pageSize int) result.Result[domain.ListResult[domain.User]] {
	return run(&s.actor, "find", s.many, func() result.Result[domain.ListResult[domain.User]] {
		if page < 0 || pageSize < 0 {
			return result.Fail[domain.ListResult[domain.User]](result.Failure{
				Kind:    result.Validation,
				Message: "page and pageSize must be at least 1",
			})
		}
		if page == 0 {
			page = domain.DefaultPage
		}
		if pageSize == 0 {
			pageSize = domain.DefaultPageSize
		}
		pageSize = min(pageSize, maxAdminPageSize)

		list, total, err := s.users.List(ctx, (page-1)*pageSize, pageSize)
		if err != nil {
			return failed[domain.ListResult[domain.User]](&s.actor, "find", s.many, err)
		}
		if list == nil {
			list = []domain.User{}
		}
		return result.Success(domain.ListResult[domain.User]{Rows: list, Total: total})
	})
}

func (s *UserService) Delete(ctx context.Context, id string) result.Result[domain.DeleteOutput] {
	return run(&s.actor, "delete", s.one, func() result.Result[domain.DeleteOutput] {
		if id == "" {
			return result.Fail[domain.DeleteOutput](s.idRequired())
		}
		if sess, ok := auth.SessionFrom(ctx); ok && sess.UserID == id {
			return result.Fail[domain.DeleteOutput](result.Failure{Kind: result.Validation, Message: "You cannot delete yourself"})
		}
		deleted, err := s.users.Delete(ctx, id)
		if err != nil {
			return failed[domain.DeleteOutput](&s.actor, "delete", s.one, err)
		}
		if deleted == "" {
			return result.Fail[domain.DeleteOutput](s.notFound())
		}
		return result.Success(domain.DeleteOutput{DeletedID: deleted}, "User deleted")
	})
}
