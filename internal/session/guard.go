// internal/session/guard.go
package session

import "net/url"

// LoginPath is where unauthenticated visitors are sent.
const LoginPath = "/admin/login"

// Requirement names the permission a route demands. The zero value means
// "authenticated is enough", which is distinct from requiring a permission
// named "" — use NoRequirement or Require to build one.
type Requirement struct {
	tag      string
	required bool
}

// NoRequirement admits any authenticated admin.
func NoRequirement() Requirement { return Requirement{} }

// Require demands the named permission (e.g. "members", "events").
func Require(tag string) Requirement { return Requirement{tag: tag, required: true} }

// Action is what the caller should do with the visitor.
type Action int

const (
	// ActionPending: session undecided; render a loading state, never redirect.
	ActionPending Action = iota
	// ActionRedirect: no session; send to login, preserving the origin.
	ActionRedirect
	// ActionDenied: authenticated but lacking the permission; show a denial
	// in place, do not bounce to login.
	ActionDenied
	// ActionAllow: let the visitor through.
	ActionAllow
)

// Verdict is a guard decision.
type Verdict struct {
	Action     Action
	RedirectTo string // set only for ActionRedirect
}

// Evaluate is the route guard: a pure function of the session snapshot, the
// route's requirement, and the origin path. It performs no I/O and triggers
// no transitions.
func Evaluate(sess Session, req Requirement, from string) Verdict {
	if sess.Loading || !sess.State.Decided() {
		return Verdict{Action: ActionPending}
	}

	if !sess.IsAuthenticated || sess.Admin == nil {
		return Verdict{Action: ActionRedirect, RedirectTo: loginRedirect(from)}
	}

	if req.required && !sess.Admin.CanAccess(req.tag) {
		return Verdict{Action: ActionDenied}
	}

	return Verdict{Action: ActionAllow}
}

func loginRedirect(from string) string {
	if from == "" || from == LoginPath {
		return LoginPath
	}
	return LoginPath + "?redirect=" + url.QueryEscape(from)
}
