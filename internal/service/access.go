package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gblsmlo/lemind/internal/core/auth"
	"github.com/gblsmlo/lemind/internal/core/cache"
	"github.com/gblsmlo/lemind/internal/core/result"
	"github.com/gblsmlo/lemind/internal/domain"
)

// Access decides whether a user may work inside a space. Lookups are cached,
// misses included, and dropped whenever the membership changes.
type Access struct {
	actor
	members domain.MemberRepository
	cache   *cache.Cache
	ttl     time.Duration
}

func NewAccess(members domain.MemberRepository, c *cache.Cache, ttl time.Duration, l *zap.Logger) *Access {
	return &Access{actor: newActor("Member", "members", l), members: members, cache: c, ttl: ttl}
}

func memberKey(spaceID, userID string) string { return "lemind:member:" + spaceID + ":" + userID }

func (a *Access) Resolve(ctx context.Context, userID, spaceID string) result.Result[*domain.Member] {
	return run(&a.actor, "authorize", "space access", func() result.Result[*domain.Member] {
		if userID == "" {
			return result.Fail[*domain.Member](a.forbidden("Authentication required"))
		}
		if uuid.Validate(spaceID) != nil {
			return result.Fail[*domain.Member](result.Failure{Kind: result.Validation, Message: "spaceId must be a valid UUID"})
		}
		m, err := a.lookup(ctx, userID, spaceID)
		if err != nil {
			return failed[*domain.Member](&a.actor, "authorize", "space access", err)
		}
		if m == nil {
			return result.Fail[*domain.Member](a.forbidden("You do not have access to this space"))
		}
		return result.Success(m)
	})
}

func (a *Access) lookup(ctx context.Context, userID, spaceID string) (*domain.Member, error) {
	load := func(ctx context.Context) (*domain.Member, error) {
		return a.members.FindByUserInSpace(ctx, userID, spaceID)
	}
	if a.cache == nil {
		return load(ctx)
	}
	return cache.GetOrLoadJSON(a.cache, ctx, memberKey(spaceID, userID), a.ttl, load)
}

func (a *Access) Invalidate(ctx context.Context, userID, spaceID string) {
	if a.cache == nil {
		return
	}
	if err := a.cache.Delete(ctx, memberKey(spaceID, userID)); err != nil {
		a.log.Warn("member cache invalidate", zap.String("space", spaceID), zap.String("user", userID), zap.Error(err))
	}
}

// requireRole refuses op unless the session's member role passes ok. Calls
// without a space-bound session are internal and pass.
func requireRole(ctx context.Context, ok func(role string) bool, msg string) *result.Failure {
	s, bound := auth.SessionFrom(ctx)
	if !bound || s.SpaceID == "" || ok(s.MemberRole) {
		return nil
	}
	return &result.Failure{Kind: result.Authorization, Message: msg}
}

func isOwner(role string) bool { return role == domain.RoleOwner }
