package access

import (
	"testing"

	"community-portal/internal/domain/profiles"
)

func TestEvaluate(t *testing.T) {
	approved := &profiles.Profile{IsApproved: true}
	pending := &profiles.Profile{IsApproved: false}

	tests := []struct {
		name string
		in   Session
		want State
	}{
		{
			name: "no session",
			in:   Session{SessionPresent: false},
			want: StateUnauthenticated,
		},
		{
			name: "no session even with approved profile",
			in:   Session{SessionPresent: false, Profile: approved},
			want: StateUnauthenticated,
		},
		{
			name: "session loading",
			in:   Session{SessionLoading: true},
			want: StateLoading,
		},
		{
			name: "profile loading",
			in:   Session{SessionPresent: true, ProfileLoading: true},
			want: StateLoading,
		},
		{
			name: "loading wins over everything",
			in:   Session{SessionPresent: true, SessionLoading: true, Profile: approved},
			want: StateLoading,
		},
		{
			name: "session with unapproved profile",
			in:   Session{SessionPresent: true, Profile: pending},
			want: StatePendingApproval,
		},
		{
			name: "session with missing profile blocks",
			in:   Session{SessionPresent: true, Profile: nil},
			want: StatePendingApproval,
		},
		{
			name: "session with approved profile",
			in:   Session{SessionPresent: true, Profile: approved},
			want: StateAdmitted,
		},
		{
			name: "admin flag alone does not admit",
			in:   Session{SessionPresent: true, Profile: &profiles.Profile{IsAdmin: true}},
			want: StatePendingApproval,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Evaluate(tt.in); got != tt.want {
				t.Errorf("Evaluate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEvaluateIsFreshPerCall(t *testing.T) {
	p := &profiles.Profile{IsApproved: true}
	in := Session{SessionPresent: true, Profile: p}

	if got := Evaluate(in); got != StateAdmitted {
		t.Fatalf("first evaluation = %q, want admitted", got)
	}

	// Session invalidated: the next evaluation must not reuse the earlier
	// admitted decision.
	in.SessionPresent = false
	if got := Evaluate(in); got != StateUnauthenticated {
		t.Errorf("after invalidation = %q, want unauthenticated", got)
	}

	// Approval revoked.
	in.SessionPresent = true
	p.IsApproved = false
	if got := Evaluate(in); got != StatePendingApproval {
		t.Errorf("after revocation = %q, want pending_approval", got)
	}
}
