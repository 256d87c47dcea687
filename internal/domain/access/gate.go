package access

import "community-portal/internal/domain/profiles"

// State is the access decision for one navigation into protected content.
type State string

const (
	StateUnauthenticated State = "unauthenticated"
	StateLoading         State = "loading"
	StatePendingApproval State = "pending_approval"
	StateAdmitted        State = "admitted"
)

// Session is everything the gate is allowed to look at. Callers build a
// fresh Session per evaluation; a prior Admitted decision is never reused
// across a session change.
type Session struct {
	SessionPresent bool
	SessionLoading bool
	Profile        *profiles.Profile
	ProfileLoading bool
}

// Evaluate decides the access state. Precedence: loading > unauthenticated >
// pending approval > admitted. A session with no profile row is treated as
// pending approval, not admitted: the profile is created lazily on first
// lookup and blocking is the safe default until it exists.
func Evaluate(s Session) State {
	if s.SessionLoading || s.ProfileLoading {
		return StateLoading
	}
	if !s.SessionPresent {
		return StateUnauthenticated
	}
	if s.Profile == nil || !s.Profile.IsApproved {
		return StatePendingApproval
	}
	return StateAdmitted
}
