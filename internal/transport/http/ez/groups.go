package ez

// Groups are the mount points handed to API modules.
type Groups struct {
	Public EZ // no session
	Authed EZ // session from the bearer token
	Space  EZ // /spaces/:spaceId, session bound to a space the user belongs to
}
