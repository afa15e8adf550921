package repo

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gblsmlo/lemind/internal/core/auth"
	"github.com/gblsmlo/lemind/internal/core/database"
	"github.com/gblsmlo/lemind/internal/domain"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.NewGorm(database.Opts{
		Driver:       "sqlite",
		DSN:          fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
		MaxOpenConns: 1,
		LogLevel:     "silent",
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return NewStore(db)
}

func newContact(t *testing.T, s *Store, spaceID, name string) *domain.Contact {
	t.Helper()
	c, err := s.Contacts.Create(context.Background(), domain.ContactInsert{
		SpaceID: spaceID,
		Name:    name,
		Email:   "contact@example.com",
	}.ToEntity())
	require.NoError(t, err)
	return c
}

func ptr[V any](v V) *V { return &v }

func TestCreateThenFind(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	space := uuid.NewString()

	created := newContact(t, s, space, "John Doe")
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "John Doe", created.Name)
	assert.Equal(t, domain.ContactNew, created.Type)

	found, err := s.Contacts.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, created.SpaceID, found.SpaceID)
	assert.Equal(t, created.Name, found.Name)
	assert.Equal(t, created.Email, found.Email)
	assert.Equal(t, created.Type, found.Type)
	assert.WithinDuration(t, created.CreatedAt, found.CreatedAt, time.Millisecond)
}

func TestAbsenceIsNotAnError(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	row, err := s.Contacts.FindByID(ctx, "non-existent-id")
	assert.NoError(t, err)
	assert.Nil(t, row)

	row, err = s.Contacts.Update(ctx, "non-existent-id", map[string]any{"name": "x"})
	assert.NoError(t, err)
	assert.Nil(t, row)

	id, err := s.Contacts.Delete(ctx, "non-existent-id")
	assert.NoError(t, err)
	assert.Empty(t, id)
}

func TestUpdateIsPartial(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	c := newContact(t, s, uuid.NewString(), "John Doe")
	time.Sleep(5 * time.Millisecond)

	updated, err := s.Contacts.Update(ctx, c.ID, domain.ContactUpdate{Phone: ptr("+55 11 99999-0000")}.Changes())
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "John Doe", updated.Name)
	assert.Equal(t, "+55 11 99999-0000", *updated.Phone)
	assert.Equal(t, c.SpaceID, updated.SpaceID)
	assert.True(t, updated.UpdatedAt.After(c.UpdatedAt))
}

func TestDeleteReturnsID(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	c := newContact(t, s, uuid.NewString(), "John Doe")

	id, err := s.Contacts.Delete(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, id)

	row, err := s.Contacts.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Nil(t, row)
}

func TestFindManyEmpty(t *testing.T) {
	s := newStore(t)
	res, err := s.Contacts.FindMany(context.Background(), domain.ListQuery{ScopeID: uuid.NewString(), Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Empty(t, res.Rows)
	assert.Zero(t, res.Total)
}

func TestFindManySearch(t *testing.T) {
	s := newStore(t)
	space := uuid.NewString()
	newContact(t, s, space, "John Doe")
	newContact(t, s, space, "Mary Major")
	newContact(t, s, uuid.NewString(), "John Elsewhere")

	res, err := s.Contacts.FindMany(context.Background(), domain.ListQuery{ScopeID: space, SearchQuery: "john", Page: 1, PageSize: 20})
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.EqualValues(t, 1, res.Total)
	assert.Equal(t, "John Doe", res.Rows[0].Name)
}

func TestFindManySearchEscapesWildcards(t *testing.T) {
	s := newStore(t)
	space := uuid.NewString()
	newContact(t, s, space, "100% Real")
	newContact(t, s, space, "Plain Name")
	newContact(t, s, space, "snake_case")

	res, err := s.Contacts.FindMany(context.Background(), domain.ListQuery{ScopeID: space, SearchQuery: "%"})
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "100% Real", res.Rows[0].Name)

	res, err = s.Contacts.FindMany(context.Background(), domain.ListQuery{ScopeID: space, SearchQuery: "_"})
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "snake_case", res.Rows[0].Name)
}

func TestFindManyPaginationIsDeterministic(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	space := uuid.NewString()

	var ids []string
	for i := range 7 {
		ids = append(ids, newContact(t, s, space, fmt.Sprintf("Contact %d", i)).ID)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(ids)))

	collect := func() []string {
		var got []string
		for page := 1; page <= 3; page++ {
			res, err := s.Contacts.FindMany(ctx, domain.ListQuery{ScopeID: space, Page: page, PageSize: 3})
			require.NoError(t, err)
			assert.EqualValues(t, 7, res.Total)
			for _, r := range res.Rows {
				got = append(got, r.ID)
			}
		}
		return got
	}

	first := collect()
	assert.Equal(t, ids, first)

	newContact(t, s, uuid.NewString(), "Unrelated")
	assert.Equal(t, first, collect())
}

func TestFindManyTotalIgnoresPagination(t *testing.T) {
	s := newStore(t)
	space := uuid.NewString()
	for i := range 5 {
		newContact(t, s, space, fmt.Sprintf("Contact %d", i))
	}
	for _, q := range []domain.ListQuery{
		{ScopeID: space, Page: 1, PageSize: 2},
		{ScopeID: space, Page: 3, PageSize: 2},
		{ScopeID: space, Page: 9, PageSize: 50},
	} {
		res, err := s.Contacts.FindMany(context.Background(), q)
		require.NoError(t, err)
		assert.EqualValues(t, 5, res.Total)
	}
}

func TestFindManyExplicitSort(t *testing.T) {
	s := newStore(t)
	space := uuid.NewString()
	newContact(t, s, space, "Charlie")
	newContact(t, s, space, "alice")
	newContact(t, s, space, "Bob")

	res, err := s.Contacts.FindMany(context.Background(), domain.ListQuery{
		ScopeID: space, SortBy: "name", SortDirection: domain.SortDesc,
	})
	require.NoError(t, err)
	require.Len(t, res.Rows, 3)
	assert.Equal(t, []string{"alice", "Charlie", "Bob"}, []string{res.Rows[0].Name, res.Rows[1].Name, res.Rows[2].Name})
}

func TestSessionScopeHidesOtherTenants(t *testing.T) {
	s := newStore(t)
	c := newContact(t, s, uuid.NewString(), "John Doe")
	other := auth.WithSession(context.Background(), auth.Session{UserID: "u", SpaceID: uuid.NewString()})

	row, err := s.Contacts.FindByID(other, c.ID)
	require.NoError(t, err)
	assert.Nil(t, row)

	row, err = s.Contacts.Update(other, c.ID, map[string]any{"name": "Hijacked"})
	require.NoError(t, err)
	assert.Nil(t, row)

	id, err := s.Contacts.Delete(other, c.ID)
	require.NoError(t, err)
	assert.Empty(t, id)

	own := auth.WithSession(context.Background(), auth.Session{UserID: "u", SpaceID: c.SpaceID})
	row, err = s.Contacts.FindByID(own, c.ID)
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, "John Doe", row.Name)
}

func TestContactDocumentLookup(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	space := uuid.NewString()
	c, err := s.Contacts.Create(ctx, domain.ContactInsert{SpaceID: space, Name: "Doc", Email: "d@x.io", Document: ptr("12345678909")}.ToEntity())
	require.NoError(t, err)

	got, err := s.Contacts.FindByDocumentInSpace(ctx, "12345678909", space, "")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, c.ID, got.ID)

	got, err = s.Contacts.FindByDocumentInSpace(ctx, "12345678909", space, c.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = s.Contacts.FindByDocumentInSpace(ctx, "12345678909", uuid.NewString(), "")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = s.Contacts.Create(ctx, domain.ContactInsert{SpaceID: space, Name: "Dup", Email: "e@x.io", Document: ptr("12345678909")}.ToEntity())
	require.Error(t, err)
	assert.True(t, database.IsUniqueViolation(err))
}

func TestBillingFinders(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	space := uuid.NewString()

	cust, err := s.Customers.Create(ctx, domain.CustomerInsert{SpaceID: space, Email: "Buyer@Example.com", Name: "Buyer"}.ToEntity())
	require.NoError(t, err)

	got, err := s.Customers.FindByEmail(ctx, "buyer@example.com", space)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, cust.ID, got.ID)

	active, err := s.Customers.FindAllByStatus(ctx, domain.CustomerActive, space)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	old := time.Now().Add(-48 * time.Hour)
	sub1, err := s.Subscriptions.Create(ctx, domain.SubscriptionInsert{
		SpaceID: space, CustomerID: cust.ID, PlanName: "Basic", Amount: decimal.NewFromInt(10),
		Status: domain.SubscriptionCanceled, StartedAt: &old,
	}.ToEntity())
	require.NoError(t, err)
	sub2, err := s.Subscriptions.Create(ctx, domain.SubscriptionInsert{
		SpaceID: space, CustomerID: cust.ID, PlanName: "Pro", Amount: decimal.RequireFromString("99.90"),
	}.ToEntity())
	require.NoError(t, err)

	subs, err := s.Subscriptions.FindByCustomerID(ctx, cust.ID)
	require.NoError(t, err)
	assert.Len(t, subs, 2)

	cur, err := s.Subscriptions.FindActiveByCustomerID(ctx, cust.ID)
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.Equal(t, sub2.ID, cur.ID)
	assert.True(t, decimal.RequireFromString("99.90").Equal(cur.Amount))

	canceled, err := s.Subscriptions.FindByStatus(ctx, domain.SubscriptionCanceled, space)
	require.NoError(t, err)
	require.Len(t, canceled, 1)
	assert.Equal(t, sub1.ID, canceled[0].ID)

	now := time.Now()
	overdue, err := s.Invoices.Create(ctx, domain.InvoiceInsert{
		SpaceID: space, SubscriptionID: sub1.ID, Amount: decimal.NewFromInt(10), DueDate: now.Add(-24 * time.Hour), Status: domain.InvoiceOpen,
	}.ToEntity())
	require.NoError(t, err)
	_, err = s.Invoices.Create(ctx, domain.InvoiceInsert{
		SpaceID: space, SubscriptionID: sub1.ID, Amount: decimal.NewFromInt(10), DueDate: now.Add(-24 * time.Hour), Status: domain.InvoicePaid,
	}.ToEntity())
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	latest, err := s.Invoices.Create(ctx, domain.InvoiceInsert{
		SpaceID: space, SubscriptionID: sub2.ID, Amount: decimal.NewFromInt(99), DueDate: now.Add(24 * time.Hour),
	}.ToEntity())
	require.NoError(t, err)

	due, err := s.Invoices.FindOverdue(ctx, space, now)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, overdue.ID, due[0].ID)

	bySub, err := s.Invoices.FindBySubscriptionID(ctx, sub1.ID)
	require.NoError(t, err)
	assert.Len(t, bySub, 2)

	last, err := s.Invoices.FindLatestByCustomerID(auth.WithSession(ctx, auth.Session{SpaceID: space}), cust.ID)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, latest.ID, last.ID)

	none, err := s.Invoices.FindLatestByCustomerID(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestSpaceAndMemberFinders(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	owner := uuid.NewString()

	sp, err := s.Spaces.Create(ctx, domain.SpaceInsert{OwnerID: owner, Name: "Acme", Slug: "acme"}.ToEntity())
	require.NoError(t, err)
	_, err = s.Members.Create(ctx, domain.MemberInsert{SpaceID: sp.ID, UserID: owner, Role: domain.RoleOwner}.ToEntity())
	require.NoError(t, err)

	bySlug, err := s.Spaces.FindBySlug(ctx, "acme")
	require.NoError(t, err)
	require.NotNil(t, bySlug)
	assert.Equal(t, sp.ID, bySlug.ID)

	mine, err := s.Spaces.FindByOwnerID(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	listed, err := s.Spaces.FindMany(ctx, domain.ListQuery{ScopeID: owner, SearchQuery: "AC"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, listed.Total)

	m, err := s.Members.FindByUserInSpace(ctx, owner, sp.ID)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, domain.RoleOwner, m.Role)

	byUser, err := s.Members.FindByUserID(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, byUser, 1)

	bySpace, err := s.Members.FindBySpaceID(ctx, sp.ID)
	require.NoError(t, err)
	assert.Len(t, bySpace, 1)

	// a space-bound session only sees its own space
	other := auth.WithSession(ctx, auth.Session{SpaceID: uuid.NewString()})
	hidden, err := s.Spaces.FindByID(other, sp.ID)
	require.NoError(t, err)
	assert.Nil(t, hidden)
}

func TestProjectFinders(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	space, owner := uuid.NewString(), uuid.NewString()

	p, err := s.Projects.Create(ctx, domain.ProjectInsert{SpaceID: space, OwnerID: owner, Title: ptr("Case"), Slug: "case-1"}.ToEntity())
	require.NoError(t, err)

	got, err := s.Projects.FindBySlug(ctx, "case-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, p.ID, got.ID)

	mine, err := s.Projects.FindByOwnerID(ctx, owner, space)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	products, err := s.Products.FindAll(ctx, space)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestUserRepo(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	u, err := s.Users.Create(ctx, &domain.User{Email: "Admin@Example.com", Name: "Admin", PasswordHash: "x", Role: domain.UserRoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", u.Email)

	got, err := s.Users.FindByEmail(ctx, "ADMIN@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)

	users, total, err := s.Users.List(ctx, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, users, 1)

	id, err := s.Users.Delete(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.ID, id)

	missing, err := s.Users.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestTransactionRollsBack(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	owner := uuid.NewString()
	boom := errors.New("boom")

	err := s.Transaction(ctx, func(r domain.Repositories) error {
		if _, err := r.Spaces.Create(ctx, domain.SpaceInsert{OwnerID: owner, Name: "Tmp", Slug: "tmp"}.ToEntity()); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := s.Spaces.FindBySlug(ctx, "tmp")
	require.NoError(t, err)
	assert.Nil(t, got)
}
