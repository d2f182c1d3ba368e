// internal/session/session.go
package session

import "gracehub-service/internal/domain/admin"

// State is where the session machine currently stands. Unknown and
// Verifying are both "not yet decided": consumers must not treat them as
// logged out.
type State string

const (
	// StateUnknown is the pre-initialization state.
	StateUnknown State = "unknown"
	// StateVerifying means stored tokens are being checked against the server.
	StateVerifying State = "verifying"
	// StateAuthenticated means a verified admin session is live.
	StateAuthenticated State = "authenticated"
	// StateUnauthenticated means there is definitively no session.
	StateUnauthenticated State = "unauthenticated"
)

// Decided reports whether the machine has settled on an answer.
func (s State) Decided() bool {
	return s == StateAuthenticated || s == StateUnauthenticated
}

// Session is an immutable snapshot of the controller's state, handed to
// subscribers on every transition.
type Session struct {
	State           State          `json:"state"`
	IsAuthenticated bool           `json:"is_authenticated"`
	Admin           *admin.Profile `json:"admin,omitempty"`
	AccessToken     string         `json:"-"`
	RefreshToken    string         `json:"-"`
	Loading         bool           `json:"loading"`
	Error           string         `json:"error,omitempty"`
}

// EmptySession is the canonical logged-out shape. Every path out of an
// authenticated session converges on this.
func EmptySession() Session {
	return Session{State: StateUnauthenticated}
}

// Result reports the outcome of a session operation in a form a UI can
// render directly.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
