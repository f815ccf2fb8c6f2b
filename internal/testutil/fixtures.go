package testutil

import (
	"github.com/preston-bernstein/nba-roster-service/internal/domain/players"
	"github.com/preston-bernstein/nba-roster-service/internal/domain/teams"
)

// SamplePlayer returns a minimal player fixture.
func SamplePlayer(id int, first, last string) players.Player {
	return players.Player{
		ID:        id,
		FirstName: first,
		LastName:  last,
		Position:  "G",
		Team:      players.Franchise{ID: 1, Name: "Hawks", FullName: "Atlanta Hawks", Abbreviation: "ATL"},
	}
}

// SamplePage wraps players in a page with an optional continuation cursor.
func SamplePage(next *int, items ...players.Player) players.Page {
	return players.Page{Data: items, Meta: players.Meta{NextCursor: next, PerPage: len(items)}}
}

// SampleForm returns a valid team form for the name.
func SampleForm(name string, playerIDs ...int) teams.FormData {
	return teams.FormData{Name: name, Region: "West", Country: "USA", PlayerIDs: playerIDs}
}
