package teams

import (
	"fmt"
	"strings"
)

// MembershipPolicy decides what happens when a form lists a player that another team already holds.
type MembershipPolicy string

const (
	// PolicyReject fails the write with *teams.PlayerAssignedError.
	PolicyReject MembershipPolicy = "reject"
	// PolicyEvict moves the player, removing it from the other team.
	PolicyEvict MembershipPolicy = "evict"
	// PolicyAllow lets a player sit on several teams.
	PolicyAllow MembershipPolicy = "allow"
)

// ParsePolicy maps a config value to a policy. Empty means PolicyReject.
func ParsePolicy(raw string) (MembershipPolicy, error) {
	switch MembershipPolicy(strings.ToLower(strings.TrimSpace(raw))) {
	case "", PolicyReject:
		return PolicyReject, nil
	case PolicyEvict:
		return PolicyEvict, nil
	case PolicyAllow:
		return PolicyAllow, nil
	default:
		return "", fmt.Errorf("unknown player membership policy %q", raw)
	}
}
