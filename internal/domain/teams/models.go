package teams

import (
	"strings"
	"time"
)

// Team is a user-defined roster grouping of players. Not to be confused with players.Franchise.
type Team struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Region    string    `json:"region"`
	Country   string    `json:"country"`
	PlayerIDs []int     `json:"playerIds"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FormData is the mutable part of a Team as submitted by a caller.
type FormData struct {
	Name      string `json:"name"`
	Region    string `json:"region"`
	Country   string `json:"country"`
	PlayerIDs []int  `json:"playerIds"`
}

// HasPlayer reports whether the team lists the player.
func (t Team) HasPlayer(playerID int) bool {
	for _, id := range t.PlayerIDs {
		if id == playerID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers cannot mutate store state through PlayerIDs.
func (t Team) Clone() Team {
	out := t
	if t.PlayerIDs != nil {
		out.PlayerIDs = append([]int(nil), t.PlayerIDs...)
	}
	return out
}

// Apply copies trimmed form fields onto the team and stamps UpdatedAt.
func (t *Team) Apply(form FormData, now time.Time) {
	t.Name = strings.TrimSpace(form.Name)
	t.Region = strings.TrimSpace(form.Region)
	t.Country = strings.TrimSpace(form.Country)
	t.PlayerIDs = normalizeIDs(form.PlayerIDs)
	t.UpdatedAt = now
}

// RemovePlayer drops every occurrence of the player and reports whether anything changed.
func (t *Team) RemovePlayer(playerID int) bool {
	kept := t.PlayerIDs[:0:0]
	for _, id := range t.PlayerIDs {
		if id != playerID {
			kept = append(kept, id)
		}
	}
	changed := len(kept) != len(t.PlayerIDs)
	t.PlayerIDs = kept
	return changed
}

func normalizeIDs(ids []int) []int {
	if ids == nil {
		return []int{}
	}
	return append([]int(nil), ids...)
}

// CloneAll deep-copies a collection.
func CloneAll(items []Team) []Team {
	out := make([]Team, len(items))
	for i, t := range items {
		out[i] = t.Clone()
	}
	return out
}
