package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gblsmlo/lemind/internal/core/auth"
	"github.com/gblsmlo/lemind/internal/core/cache"
	"github.com/gblsmlo/lemind/internal/core/result"
	"github.com/gblsmlo/lemind/internal/domain"
)

func newAuth(users *fakeUsers) (*AuthService, *auth.JWTer) {
	j := &auth.JWTer{Secret: []byte("test-secret"), Issuer: "lemind", TTL: time.Hour}
	return NewAuthService(users, j, cache.NewMemory(time.Minute, time.Minute), nil), j
}

func signUp(t *testing.T, svc *AuthService) *domain.User {
	t.Helper()
	res := svc.SignUp(context.Background(), domain.SignUpInput{Email: "Ana@Example.com", Name: "Ana", Password: "s3cret-pass"})
	require.True(t, res.IsSuccess(), res.Message())
	return res.Data().Row
}

func TestSignUp(t *testing.T) {
	svc, _ := newAuth(newFakeUsers())

	u := signUp(t, svc)

	assert.Equal(t, "ana@example.com", u.Email)
	assert.Equal(t, domain.UserRoleUser, u.Role)
	assert.NotEqual(t, "s3cret-pass", u.PasswordHash)
}

func TestSignUpRejects(t *testing.T) {
	users := newFakeUsers()
	svc, _ := newAuth(users)
	signUp(t, svc)

	dup := svc.SignUp(context.Background(), domain.SignUpInput{Email: "ana@example.com", Name: "Ana", Password: "s3cret-pass"})
	assert.Equal(t, result.Validation, dup.Kind())
	assert.Equal(t, "Email already registered", dup.Message())

	short := svc.SignUp(context.Background(), domain.SignUpInput{Email: "bo@example.com", Name: "Bo", Password: "short"})
	assert.Equal(t, result.Validation, short.Kind())
	assert.Equal(t, 1, users.calls)
}

func TestSignIn(t *testing.T) {
	svc, j := newAuth(newFakeUsers())
	u := signUp(t, svc)

	res := svc.SignIn(context.Background(), domain.SignInInput{Email: "ANA@example.com", Password: "s3cret-pass"})

	require.True(t, res.IsSuccess(), res.Message())
	claims, err := j.Parse(res.Data().AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UID)
	assert.Equal(t, claims.ExpiresAt.Unix(), res.Data().ExpiresAt)
}

func TestSignInRejectsBadCredentials(t *testing.T) {
	svc, _ := newAuth(newFakeUsers())
	signUp(t, svc)
	ctx := context.Background()

	for _, in := range []domain.SignInInput{
		{Email: "ana@example.com", Password: "wrong-pass"},
		{Email: "nobody@example.com", Password: "s3cret-pass"},
	} {
		res := svc.SignIn(ctx, in)
		assert.Equal(t, result.Authorization, res.Kind())
		assert.Equal(t, "Invalid email or password", res.Message())
	}
}

func TestSignInStoreFailure(t *testing.T) {
	users := newFakeUsers()
	users.fail = errors.New("connection refused")
	svc, _ := newAuth(users)

	res := svc.SignIn(context.Background(), domain.SignInInput{Email: "ana@example.com", Password: "x"})

	assert.Equal(t, result.Unknown, res.Kind())
	assert.Equal(t, "Failed to sign in user: connection refused", res.Message())
}

func TestSignOutRevokesToken(t *testing.T) {
	svc, j := newAuth(newFakeUsers())
	ctx := context.Background()
	_, claims, err := j.Issue(userID, domain.UserRoleUser)
	require.NoError(t, err)

	revoked, err := svc.IsRevoked(ctx, claims.ID)
	require.NoError(t, err)
	assert.False(t, revoked)

	require.True(t, svc.SignOut(ctx, claims).IsSuccess())

	revoked, err = svc.IsRevoked(ctx, claims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)

	assert.Equal(t, result.Authorization, svc.SignOut(ctx, nil).Kind())
}

func TestMe(t *testing.T) {
	svc, _ := newAuth(newFakeUsers())
	u := signUp(t, svc)

	assert.Equal(t, result.Authorization, svc.Me(context.Background()).Kind())

	ctx := auth.WithSession(context.Background(), auth.Session{UserID: u.ID})
	res := svc.Me(ctx)
	require.True(t, res.IsSuccess())
	assert.Equal(t, u.ID, res.Data().Row.ID)

	gone := auth.WithSession(context.Background(), auth.Session{UserID: "missing"})
	assert.Equal(t, result.NotFound, svc.Me(gone).Kind())
}
