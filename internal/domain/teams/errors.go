package teams

import (
	"errors"
	"fmt"
)

// Business-rule errors. Messages are user-facing.
var (
	ErrNameTaken      = errors.New("Team name already exists") //nolint:staticcheck // shown verbatim to users
	ErrTeamNotFound   = errors.New("team not found")
	ErrPlayerAssigned = errors.New("player already belongs to another team")
)

// PlayerAssignedError names the player and the team that already holds it.
type PlayerAssignedError struct {
	PlayerID int
	TeamID   string
	TeamName string
}

func (e *PlayerAssignedError) Error() string {
	return fmt.Sprintf("Player %d already belongs to team %q", e.PlayerID, e.TeamName)
}

func (e *PlayerAssignedError) Is(target error) bool {
	return target == ErrPlayerAssigned
}

// IsConflict reports business-rule conflicts (duplicate name, player already assigned).
func IsConflict(err error) bool {
	return errors.Is(err, ErrNameTaken) || errors.Is(err, ErrPlayerAssigned)
}
