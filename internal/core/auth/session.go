package auth

import "context"

// Session is the authenticated caller. SpaceID and MemberRole are only set
// once the request has been bound to a space the user belongs to.
type Session struct {
	UserID     string
	Role       string
	TokenID    string
	SpaceID    string
	MemberRole string
}

func (s Session) IsAdmin() bool { return s.Role == "admin" }

type sessionKey struct{}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

func SessionFrom(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(Session)
	return s, ok
}

// SpaceFrom returns the space the request is bound to, if any.
func SpaceFrom(ctx context.Context) string {
	s, _ := SessionFrom(ctx)
	return s.SpaceID
}
