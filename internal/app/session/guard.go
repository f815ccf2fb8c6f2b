package session

import "sync"

// State is where the route guard currently stands.
type State string

const (
	StateLoading         State = "loading"
	StateUnauthenticated State = "unauthenticated"
	StateAuthenticated   State = "authenticated"
)

// View classifies a route for the guard.
type View int

const (
	// ViewProtected routes need a signed-in user.
	ViewProtected View = iota
	// ViewPublic routes are only for signed-out users, such as the login page.
	ViewPublic
)

// Action is what the guard tells the caller to do.
type Action int

const (
	ActionWait Action = iota
	ActionAllow
	ActionRedirect
)

const (
	LoginPath     = "/login"
	DashboardPath = "/dashboard"
)

// Decision is the guard's answer for one route.
type Decision struct {
	Action   Action
	Location string
}

// Guard tracks the session lifecycle for route decisions. It starts in loading,
// settles once the session is rehydrated and never goes back to loading.
type Guard struct {
	mu          sync.RWMutex
	state       State
	transitions []State
}

// NewGuard returns a guard in the loading state.
func NewGuard() *Guard {
	return &Guard{state: StateLoading, transitions: []State{StateLoading}}
}

// State reports the current state.
func (g *Guard) State() State {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state
}

// Decide maps the current state and the kind of route onto an action.
func (g *Guard) Decide(view View) Decision {
	switch g.State() {
	case StateLoading:
		return Decision{Action: ActionWait}
	case StateUnauthenticated:
		if view == ViewProtected {
			return Decision{Action: ActionRedirect, Location: LoginPath}
		}
	case StateAuthenticated:
		if view == ViewPublic {
			return Decision{Action: ActionRedirect, Location: DashboardPath}
		}
	}
	return Decision{Action: ActionAllow}
}

// Transitions lists the states visited so far, oldest first.
func (g *Guard) Transitions() []State {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]State(nil), g.transitions...)
}

func (g *Guard) settle(authenticated bool) {
	next := StateUnauthenticated
	if authenticated {
		next = StateAuthenticated
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == next {
		return
	}
	g.state = next
	g.transitions = append(g.transitions, next)
}
