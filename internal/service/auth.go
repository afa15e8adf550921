package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/gblsmlo/lemind/internal/core/auth"
	"github.com/gblsmlo/lemind/internal/core/cache"
	"github.com/gblsmlo/lemind/internal/core/result"
	"github.com/gblsmlo/lemind/internal/core/validate"
	"github.com/gblsmlo/lemind/internal/domain"
	"github.com/gblsmlo/lemind/pkg/utils"
)

const badCredentials = "Invalid email or password"

type AuthService struct {
	actor
	users domain.UserRepository
	jwt   *auth.JWTer
	cache *cache.Cache
}

func NewAuthService(users domain.UserRepository, j *auth.JWTer, c *cache.Cache, l *zap.Logger) *AuthService {
	return &AuthService{actor: newActor("User", "users", l), users: users, jwt: j, cache: c}
}

func revokedKey(jti string) string { return "lemind:revoked:" + jti }

func (s *AuthService) SignUp(ctx context.Context, in domain.SignUpInput) result.Result[domain.RowOutput[domain.User]] {
	const op = "sign up"
	return run(&s.actor, op, s.one, func() result.Result[domain.RowOutput[domain.User]] {
		if err := validate.Struct(in); err != nil {
			return result.Fail[domain.RowOutput[domain.User]](invalid(err))
		}
		email := strings.ToLower(strings.TrimSpace(in.Email))
		dup, err := s.users.FindByEmail(ctx, email)
		if err != nil {
			return failed[domain.RowOutput[domain.User]](&s.actor, op, s.one, err)
		}
		if dup != nil {
			return result.Fail[domain.RowOutput[domain.User]](*conflict("Email already registered"))
		}
		hash, err := utils.HashPassword(in.Password)
		if err != nil {
			return failed[domain.RowOutput[domain.User]](&s.actor, op, s.one, err)
		}
		u, err := s.users.Create(ctx, &domain.User{
			Email:        email,
			Name:         strings.TrimSpace(in.Name),
			PasswordHash: hash,
			Role:         domain.UserRoleUser,
		})
		if err != nil {
			return failed[domain.RowOutput[domain.User]](&s.actor, op, s.one, err)
		}
		return result.Success(domain.RowOutput[domain.User]{Row: u}, "User created")
	})
}

func (s *AuthService) SignIn(ctx context.Context, in domain.SignInInput) result.Result[domain.Token] {
	const op = "sign in"
	return run(&s.actor, op, s.one, func() result.Result[domain.Token] {
		if err := validate.Struct(in); err != nil {
			return result.Fail[domain.Token](invalid(err))
		}
		u, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
		if err != nil {
			return failed[domain.Token](&s.actor, op, s.one, err)
		}
		if u == nil || !utils.CheckPassword(in.Password, u.PasswordHash) {
			return result.Fail[domain.Token](s.forbidden(badCredentials))
		}
		tok, claims, err := s.jwt.Issue(u.ID, u.Role)
		if err != nil {
			return failed[domain.Token](&s.actor, op, s.one, err)
		}
		return result.Success(domain.Token{
			AccessToken: tok,
			ExpiresAt:   claims.ExpiresAt.Unix(),
			User:        u,
		}, "Signed in")
	})
}

// SignOut revokes the token until it would have expired anyway.
func (s *AuthService) SignOut(ctx context.Context, claims *auth.Claims) result.Result[struct{}] {
	const op = "sign out"
	return run(&s.actor, op, s.one, func() result.Result[struct{}] {
		if claims == nil || claims.ID == "" {
			return result.Fail[struct{}](s.forbidden("Authentication required"))
		}
		if ttl := claims.Remaining(); ttl > 0 {
			rev := revocation{UserID: claims.UID, At: time.Now().UTC()}
			if err := cache.SetJSON(s.cache, ctx, revokedKey(claims.ID), rev, ttl); err != nil {
				return failed[struct{}](&s.actor, op, s.one, err)
			}
		}
		return result.Success(struct{}{}, "Signed out")
	})
}

// revocation is kept under revokedKey until the token would have expired.
type revocation struct {
	UserID string    `json:"userId"`
	At     time.Time `json:"at"`
}

// IsRevoked reports whether the token id was signed out.
func (s *AuthService) IsRevoked(ctx context.Context, jti string) (bool, error) {
	rev, err := cache.GetJSON[revocation](s.cache, ctx, revokedKey(jti))
	return rev != nil, err
}

// Me returns the session user.
func (s *AuthService) Me(ctx context.Context) result.Result[domain.RowOutput[domain.User]] {
	return run(&s.actor, "find", s.one, func() result.Result[domain.RowOutput[domain.User]] {
		sess, ok := auth.SessionFrom(ctx)
		if !ok || sess.UserID == "" {
			return result.Fail[domain.RowOutput[domain.User]](s.forbidden("Authentication required"))
		}
		u, err := s.users.FindByID(ctx, sess.UserID)
		return row(&s.actor, "find", u, err)
	})
}
