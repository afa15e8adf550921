package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/gblsmlo/lemind/internal/core/result"
	"github.com/gblsmlo/lemind/internal/core/validate"
	"github.com/gblsmlo/lemind/internal/domain"
)

// Checks run after validation and before the write. A non-nil failure stops
// the action; an error is classified like a repository error.
type (
	CreateCheck[I any] func(ctx context.Context, in I) (*result.Failure, error)
	UpdateCheck[U any] func(ctx context.Context, id string, in U) (*result.Failure, error)
	DeleteCheck        func(ctx context.Context, id string) (*result.Failure, error)
)

// CrudConfig binds the generic actions to one entity.
type CrudConfig[T, I, U any] struct {
	Entity   string // singular, capitalized: "Contact"
	Plural   string // "contacts"
	Repo     domain.Repository[T]
	Sortable map[string]string
	ToEntity func(I) *T
	Changes  func(U) map[string]any

	// Guard runs first and may refuse the operation for the session.
	Guard func(ctx context.Context, op string) *result.Failure

	BeforeCreate CreateCheck[I]
	BeforeUpdate UpdateCheck[U]
	BeforeDelete DeleteCheck

	// Insert replaces Repo.Create, e.g. to write related rows in one
	// transaction.
	Insert func(ctx context.Context, row *T) (*T, error)
}

// Crud implements Create/Update/Delete/FindByID/FindMany for one entity.
type Crud[T, I, U any] struct {
	actor
	cfg CrudConfig[T, I, U]
}

func NewCrud[T, I, U any](cfg CrudConfig[T, I, U], l *zap.Logger) *Crud[T, I, U] {
	if cfg.Insert == nil {
		cfg.Insert = cfg.Repo.Create
	}
	return &Crud[T, I, U]{actor: newActor(cfg.Entity, cfg.Plural, l), cfg: cfg}
}

func (s *Crud[T, I, U]) guard(ctx context.Context, op string) *result.Failure {
	if s.cfg.Guard == nil {
		return nil
	}
	return s.cfg.Guard(ctx, op)
}

func (s *Crud[T, I, U]) Create(ctx context.Context, in I) (res result.Result[domain.RowOutput[T]]) {
	const op = "create"
	defer func() { settle(&s.actor, op, s.one, recover(), &res) }()

	if f := s.guard(ctx, op); f != nil {
		return result.Fail[domain.RowOutput[T]](*f)
	}
	if err := validate.Struct(in); err != nil {
		return result.Fail[domain.RowOutput[T]](invalid(err))
	}
	if s.cfg.BeforeCreate != nil {
		f, err := s.cfg.BeforeCreate(ctx, in)
		if err != nil {
			return failed[domain.RowOutput[T]](&s.actor, op, s.one, err)
		}
		if f != nil {
			return result.Fail[domain.RowOutput[T]](*f)
		}
	}

	row, err := s.cfg.Insert(ctx, s.cfg.ToEntity(in))
	if err != nil {
		return failed[domain.RowOutput[T]](&s.actor, op, s.one, err)
	}
	if row == nil {
		return result.Fail[domain.RowOutput[T]](result.Failure{
			Kind:    result.Unknown,
			Message: "Failed to create " + s.one + ": no row returned",
		})
	}
	return result.Success(domain.RowOutput[T]{Row: row}, s.entity+" created")
}

func (s *Crud[T, I, U]) Update(ctx context.Context, id string, in U) (res result.Result[domain.RowOutput[T]]) {
	const op = "update"
	defer func() { settle(&s.actor, op, s.one, recover(), &res) }()

	if f := s.guard(ctx, op); f != nil {
		return result.Fail[domain.RowOutput[T]](*f)
	}
	if id == "" {
		return result.Fail[domain.RowOutput[T]](s.idRequired())
	}
	if err := validate.Struct(in); err != nil {
		return result.Fail[domain.RowOutput[T]](invalid(err))
	}
	if s.cfg.BeforeUpdate != nil {
		f, err := s.cfg.BeforeUpdate(ctx, id, in)
		if err != nil {
			return failed[domain.RowOutput[T]](&s.actor, op, s.one, err)
		}
		if f != nil {
			return result.Fail[domain.RowOutput[T]](*f)
		}
	}

	row, err := s.cfg.Repo.Update(ctx, id, s.cfg.Changes(in))
	if err != nil {
		return failed[domain.RowOutput[T]](&s.actor, op, s.one, err)
	}
	if row == nil {
		return result.Fail[domain.RowOutput[T]](s.notFound())
	}
	return result.Success(domain.RowOutput[T]{Row: row}, s.entity+" updated")
}

func (s *Crud[T, I, U]) Delete(ctx context.Context, id string) (res result.Result[domain.DeleteOutput]) {
	const op = "delete"
	defer func() { settle(&s.actor, op, s.one, recover(), &res) }()

	if f := s.guard(ctx, op); f != nil {
		return result.Fail[domain.DeleteOutput](*f)
	}
	if id == "" {
		return result.Fail[domain.DeleteOutput](s.idRequired())
	}
	if s.cfg.BeforeDelete != nil {
		f, err := s.cfg.BeforeDelete(ctx, id)
		if err != nil {
			return failed[domain.DeleteOutput](&s.actor, op, s.one, err)
		}
		if f != nil {
			return result.Fail[domain.DeleteOutput](*f)
		}
	}

	deleted, err := s.cfg.Repo.Delete(ctx, id)
	if err != nil {
		return failed[domain.DeleteOutput](&s.actor, op, s.one, err)
	}
	if deleted == "" {
		return result.Fail[domain.DeleteOutput](s.notFound())
	}
	return result.Success(domain.DeleteOutput{DeletedID: deleted}, s.entity+" deleted")
}

func (s *Crud[T, I, U]) FindByID(ctx context.Context, id string) (res result.Result[domain.RowOutput[T]]) {
	const op = "find"
	defer func() { settle(&s.actor, op, s.one, recover(), &res) }()

	if id == "" {
		return result.Fail[domain.RowOutput[T]](s.idRequired())
	}
	row, err := s.cfg.Repo.FindByID(ctx, id)
	if err != nil {
		return failed[domain.RowOutput[T]](&s.actor, op, s.one, err)
	}
	if row == nil {
		return result.Fail[domain.RowOutput[T]](s.notFound())
	}
	return result.Success(domain.RowOutput[T]{Row: row})
}

func (s *Crud[T, I, U]) FindMany(ctx context.Context, q domain.ListQuery) (res result.Result[domain.ListResult[T]]) {
	const op = "find"
	defer func() { settle(&s.actor, op, s.many, recover(), &res) }()

	q, err := q.Normalize(s.cfg.Sortable)
	if err != nil {
		return result.Fail[domain.ListResult[T]](invalid(err))
	}
	out, err := s.cfg.Repo.FindMany(ctx, q)
	if err != nil {
		return failed[domain.ListResult[T]](&s.actor, op, s.many, err)
	}
	return result.Success(out)
}

// rows wraps the result of a finder returning many rows.
func rows[T any](a *actor, op string, list []T, err error) result.Result[[]T] {
	if err != nil {
		return failed[[]T](a, op, a.many, err)
	}
	if list == nil {
		list = []T{}
	}
	return result.Success(list)
}

// row wraps the result of a finder returning at most one row; absence is
// NOT_FOUND.
func row[T any](a *actor, op string, r *T, err error) result.Result[domain.RowOutput[T]] {
	if err != nil {
		return failed[domain.RowOutput[T]](a, op, a.one, err)
	}
	if r == nil {
		return result.Fail[domain.RowOutput[T]](a.notFound())
	}
	return result.Success(domain.RowOutput[T]{Row: r})
}

// conflict is the failure of a uniqueness pre-check.
func conflict(msg string) *result.Failure {
	return &result.Failure{Kind: result.Validation, Message: msg}
}

// run executes a finder at the action boundary.
func run[O any](a *actor, op, target string, fn func() result.Result[O]) (res result.Result[O]) {
	defer func() { settle(a, op, target, recover(), &res) }()
	return fn()
}
