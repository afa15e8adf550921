package service

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/gblsmlo/lemind/internal/domain"
)

const spaceID = "550e8400-e29b-41d4-a716-446655440000"

func ptr[V any](v V) *V { return &v }

// fakeRepo answers with its func fields; unset ones report absence.
type fakeRepo[T any] struct {
	mu    sync.Mutex
	calls map[string]int

	create   func(ctx context.Context, row *T) (*T, error)
	update   func(ctx context.Context, id string, changes map[string]any) (*T, error)
	del      func(ctx context.Context, id string) (string, error)
	findByID func(ctx context.Context, id string) (*T, error)
	findMany func(ctx context.Context, q domain.ListQuery) (domain.ListResult[T], error)
}

func (f *fakeRepo[T]) hit(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[name]++
}

func (f *fakeRepo[T]) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeRepo[T]) Create(ctx context.Context, row *T) (*T, error) {
	f.hit("Create")
	if f.create == nil {
		return row, nil
	}
	return f.create(ctx, row)
}

func (f *fakeRepo[T]) Update(ctx context.Context, id string, changes map[string]any) (*T, error) {
	f.hit("Update")
	if f.update == nil {
		return nil, nil
	}
	return f.update(ctx, id, changes)
}

func (f *fakeRepo[T]) Delete(ctx context.Context, id string) (string, error) {
	f.hit("Delete")
	if f.del == nil {
		return "", nil
	}
	return f.del(ctx, id)
}

func (f *fakeRepo[T]) FindByID(ctx context.Context, id string) (*T, error) {
	f.hit("FindByID")
	if f.findByID == nil {
		return nil, nil
	}
	return f.findByID(ctx, id)
}

func (f *fakeRepo[T]) FindMany(ctx context.Context, q domain.ListQuery) (domain.ListResult[T], error) {
	f.hit("FindMany")
	if f.findMany == nil {
		return domain.ListResult[T]{}, nil
	}
	return f.findMany(ctx, q)
}

type fakeContacts struct {
	fakeRepo[domain.Contact]
	byDocument func(ctx context.Context, document, spaceID, excludeID string) (*domain.Contact, error)
}

func (f *fakeContacts) FindByDocumentInSpace(ctx context.Context, document, spaceID, excludeID string) (*domain.Contact, error) {
	f.hit("FindByDocumentInSpace")
	if f.byDocument == nil {
		return nil, nil
	}
	return f.byDocument(ctx, document, spaceID, excludeID)
}

type fakeMembers struct {
	fakeRepo[domain.Member]
	byUserInSpace func(ctx context.Context, userID, spaceID string) (*domain.Member, error)
}

func (f *fakeMembers) FindByUserID(context.Context, string) ([]domain.Member, error) {
	return nil, nil
}

func (f *fakeMembers) FindBySpaceID(context.Context, string) ([]domain.Member, error) {
	return nil, nil
}

func (f *fakeMembers) FindByUserInSpace(ctx context.Context, userID, spaceID string) (*domain.Member, error) {
	f.hit("FindByUserInSpace")
	if f.byUserInSpace == nil {
		return nil, nil
	}
	return f.byUserInSpace(ctx, userID, spaceID)
}

type fakeSubscriptions struct {
	fakeRepo[domain.Subscription]
}

func (f *fakeSubscriptions) FindByCustomerID(context.Context, string) ([]domain.Subscription, error) {
	return nil, nil
}

func (f *fakeSubscriptions) FindActiveByCustomerID(context.Context, string) (*domain.Subscription, error) {
	return nil, nil
}

func (f *fakeSubscriptions) FindByStatus(context.Context, string, string) ([]domain.Subscription, error) {
	return nil, nil
}

type fakeInvoices struct {
	fakeRepo[domain.Invoice]
	overdue func(ctx context.Context, spaceID string, now time.Time) ([]domain.Invoice, error)
}

func (f *fakeInvoices) FindBySubscriptionID(context.Context, string) ([]domain.Invoice, error) {
	return nil, nil
}

func (f *fakeInvoices) FindOverdue(ctx context.Context, spaceID string, now time.Time) ([]domain.Invoice, error) {
	return f.overdue(ctx, spaceID, now)
}

func (f *fakeInvoices) FindLatestByCustomerID(context.Context, string) (*domain.Invoice, error) {
	return nil, nil
}

// fakeUsers keeps users in memory.
type fakeUsers struct {
	mu    sync.Mutex
	rows  map[string]*domain.User
	fail  error
	calls int
}

func newFakeUsers(users ...*domain.User) *fakeUsers {
	f := &fakeUsers{rows: map[string]*domain.User{}}
	for _, u := range users {
		f.rows[u.ID] = u
	}
	return f
}

func (f *fakeUsers) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.fail != nil {
		return nil, f.fail
	}
	u.EnsureID()
	f.rows[u.ID] = u
	return u, nil
}

func (f *fakeUsers) FindByID(_ context.Context, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rows[id], f.fail
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return nil, f.fail
	}
	for _, u := range f.rows {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) List(_ context.Context, offset, limit int) ([]domain.User, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return []domain.User{{Email: "a@example.com"}}, int64(offset*1000 + limit), nil
}

func (f *fakeUsers) Delete(_ context.Context, id string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[id]; !ok {
		return "", nil
	}
	delete(f.rows, id)
	return id, nil
}

type fakeBucket struct {
	names   []string
	removed []string
	err     error
}

func (b *fakeBucket) Upload(_ context.Context, bucket, name string, r io.Reader) (string, error) {
	if b.err != nil {
		return "", b.err
	}
	if _, err := io.ReadAll(r); err != nil {
		return "", err
	}
	b.names = append(b.names, name)
	return b.PublicURL(bucket, name), nil
}

func (b *fakeBucket) Remove(_ context.Context, _, name string) error {
	b.removed = append(b.removed, name)
	return nil
}

func (b *fakeBucket) PublicURL(bucket, name string) string {
	return "http://localhost:8080/files/" + bucket + "/" + name
}
