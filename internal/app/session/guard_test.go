package session

import "testing"

func TestGuardDecisions(t *testing.T) {
	tests := []struct {
		name  string
		state State
		view  View
		want  Decision
	}{
		{"loading protected", StateLoading, ViewProtected, Decision{Action: ActionWait}},
		{"loading public", StateLoading, ViewPublic, Decision{Action: ActionWait}},
		{"signed out protected", StateUnauthenticated, ViewProtected, Decision{Action: ActionRedirect, Location: LoginPath}},
		{"signed out public", StateUnauthenticated, ViewPublic, Decision{Action: ActionAllow}},
		{"signed in protected", StateAuthenticated, ViewProtected, Decision{Action: ActionAllow}},
		{"signed in public", StateAuthenticated, ViewPublic, Decision{Action: ActionRedirect, Location: DashboardPath}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGuard()
			if tt.state != StateLoading {
				g.settle(tt.state == StateAuthenticated)
			}
			if got := g.Decide(tt.view); got != tt.want {
				t.Fatalf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestGuardNeverReturnsToLoading(t *testing.T) {
	g := NewGuard()
	g.settle(false)
	g.settle(false)
	g.settle(true)

	got := g.Transitions()
	want := []State{StateLoading, StateUnauthenticated, StateAuthenticated}
	if len(got) != len(want) {
		t.Fatalf("expected transitions %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected transitions %v, got %v", want, got)
		}
	}
	if g.State() == StateLoading {
		t.Fatal("guard went back to loading")
	}
}
