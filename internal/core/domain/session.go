package domain

// SessionState is the lifecycle state of an operator session.
//
// A session starts in SessionInitializing exactly once. Verification of a
// persisted token settles it into one of the two terminal-cycle states, which
// then flip between each other via login and logout.
type SessionState string

const (
	SessionInitializing    SessionState = "initializing"
	SessionAuthenticated   SessionState = "authenticated"
	SessionUnauthenticated SessionState = "unauthenticated"
)
