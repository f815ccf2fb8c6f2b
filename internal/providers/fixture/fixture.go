// Package fixture serves a fixed player catalogue with the same filter and cursor
// semantics as balldontlie. It backs offline runs and tests.
package fixture

import (
	"context"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/preston-bernstein/nba-roster-service/internal/domain/players"
)

const defaultPerPage = 25

// Provider returns pages from an in-memory player list ordered by id.
type Provider struct {
	players []players.Player
	calls   atomic.Int64
}

// New creates a fixture provider over the built-in catalogue.
func New() *Provider {
	return NewWithPlayers(Catalogue())
}

// NewWithPlayers creates a fixture provider over the given players.
func NewWithPlayers(list []players.Player) *Provider {
	sorted := append([]players.Player(nil), list...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	return &Provider{players: sorted}
}

// Calls returns how many pages have been served.
func (p *Provider) Calls() int {
	return int(p.calls.Load())
}

// FetchPlayers filters the catalogue and returns the page after q.Cursor.
// The cursor is the id of the last player on the previous page.
func (p *Provider) FetchPlayers(ctx context.Context, q players.Query) (players.Page, error) {
	if err := ctx.Err(); err != nil {
		return players.Page{}, err
	}
	p.calls.Add(1)

	perPage := q.PerPage
	if perPage <= 0 {
		perPage = defaultPerPage
	}

	var matched []players.Player
	for _, pl := range p.players {
		if q.Cursor != nil && pl.ID <= *q.Cursor {
			continue
		}
		if matches(pl, q.Filters) {
			matched = append(matched, pl)
		}
	}

	page := players.Page{Data: []players.Player{}, Meta: players.Meta{PerPage: perPage}}
	if len(matched) > perPage {
		page.Data = append(page.Data, matched[:perPage]...)
		next := matched[perPage-1].ID
		page.Meta.NextCursor = &next
		return page, nil
	}
	page.Data = append(page.Data, matched...)
	return page, nil
}

func matches(pl players.Player, f players.Filters) bool {
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(pl.FirstName), needle) &&
			!strings.Contains(strings.ToLower(pl.LastName), needle) {
			return false
		}
	}
	if f.FirstName != "" && !strings.EqualFold(pl.FirstName, f.FirstName) {
		return false
	}
	if f.LastName != "" && !strings.EqualFold(pl.LastName, f.LastName) {
		return false
	}
	if len(f.TeamIDs) > 0 && !containsID(f.TeamIDs, pl.Team.ID) {
		return false
	}
	if len(f.PlayerIDs) > 0 && !containsID(f.PlayerIDs, pl.ID) {
		return false
	}
	return true
}

func containsID(ids []int, id int) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

var (
	lakers   = players.Franchise{ID: 14, Conference: "West", Division: "Pacific", City: "Los Angeles", Name: "Lakers", FullName: "Los Angeles Lakers", Abbreviation: "LAL"}
	warriors = players.Franchise{ID: 10, Conference: "West", Division: "Pacific", City: "Golden State", Name: "Warriors", FullName: "Golden State Warriors", Abbreviation: "GSW"}
	celtics  = players.Franchise{ID: 2, Conference: "East", Division: "Atlantic", City: "Boston", Name: "Celtics", FullName: "Boston Celtics", Abbreviation: "BOS"}
	nuggets  = players.Franchise{ID: 8, Conference: "West", Division: "Northwest", City: "Denver", Name: "Nuggets", FullName: "Denver Nuggets", Abbreviation: "DEN"}
	bucks    = players.Franchise{ID: 17, Conference: "East", Division: "Central", City: "Milwaukee", Name: "Bucks", FullName: "Milwaukee Bucks", Abbreviation: "MIL"}
)

func intPtr(v int) *int { return &v }

// Catalogue returns a copy of the built-in players.
func Catalogue() []players.Player {
	return []players.Player{
		{ID: 115, FirstName: "Stephen", LastName: "Curry", Position: "G", Height: "6-2", Weight: "185", JerseyNumber: "30", College: "Davidson", Country: "USA", DraftYear: intPtr(2009), DraftRound: intPtr(1), DraftNumber: intPtr(7), Team: warriors},
		{ID: 140, FirstName: "Kevin", LastName: "Durant", Position: "F", Height: "6-10", Weight: "240", JerseyNumber: "35", College: "Texas", Country: "USA", DraftYear: intPtr(2007), DraftRound: intPtr(1), DraftNumber: intPtr(2), Team: warriors},
		{ID: 15, FirstName: "Giannis", LastName: "Antetokounmpo", Position: "F", Height: "6-11", Weight: "243", JerseyNumber: "34", College: "Filathlitikos", Country: "Greece", DraftYear: intPtr(2013), DraftRound: intPtr(1), DraftNumber: intPtr(15), Team: bucks},
		{ID: 237, FirstName: "LeBron", LastName: "James", Position: "F", Height: "6-9", Weight: "250", JerseyNumber: "23", College: "St. Vincent-St. Mary HS (OH)", Country: "USA", DraftYear: intPtr(2003), DraftRound: intPtr(1), DraftNumber: intPtr(1), Team: lakers},
		{ID: 246, FirstName: "Nikola", LastName: "Jokic", Position: "C", Height: "6-11", Weight: "284", JerseyNumber: "15", College: "Mega Basket", Country: "Serbia", DraftYear: intPtr(2014), DraftRound: intPtr(2), DraftNumber: intPtr(41), Team: nuggets},
		{ID: 434, FirstName: "Jayson", LastName: "Tatum", Position: "F", Height: "6-8", Weight: "210", JerseyNumber: "0", College: "Duke", Country: "USA", DraftYear: intPtr(2017), DraftRound: intPtr(1), DraftNumber: intPtr(3), Team: celtics},
		{ID: 117, FirstName: "Anthony", LastName: "Davis", Position: "F-C", Height: "6-10", Weight: "253", JerseyNumber: "3", College: "Kentucky", Country: "USA", DraftYear: intPtr(2012), DraftRound: intPtr(1), DraftNumber: intPtr(1), Team: lakers},
		{ID: 185, FirstName: "Draymond", LastName: "Green", Position: "F", Height: "6-6", Weight: "230", JerseyNumber: "23", College: "Michigan State", Country: "USA", DraftYear: intPtr(2012), DraftRound: intPtr(2), DraftNumber: intPtr(35), Team: warriors},
		{ID: 286, FirstName: "Jamal", LastName: "Murray", Position: "G", Height: "6-4", Weight: "215", JerseyNumber: "27", College: "Kentucky", Country: "Canada", DraftYear: intPtr(2016), DraftRound: intPtr(1), DraftNumber: intPtr(7), Team: nuggets},
		{ID: 70, FirstName: "Jaylen", LastName: "Brown", Position: "G-F", Height: "6-6", Weight: "223", JerseyNumber: "7", College: "California", Country: "USA", DraftYear: intPtr(2016), DraftRound: intPtr(1), DraftNumber: intPtr(3), Team: celtics},
		{ID: 214, FirstName: "Jrue", LastName: "Holiday", Position: "G", Height: "6-4", Weight: "205", JerseyNumber: "4", College: "UCLA", Country: "USA", DraftYear: intPtr(2009), DraftRound: intPtr(1), DraftNumber: intPtr(17), Team: celtics},
		{ID: 278, FirstName: "Damian", LastName: "Lillard", Position: "G", Height: "6-2", Weight: "195", JerseyNumber: "0", College: "Weber State", Country: "USA", DraftYear: intPtr(2012), DraftRound: intPtr(1), DraftNumber: intPtr(6), Team: bucks},
		{ID: 3547254, FirstName: "Lebron", LastName: "James Jr.", Position: "G", Height: "6-4", Weight: "210", JerseyNumber: "23", College: "USC", Country: "USA", DraftYear: intPtr(2024), DraftRound: intPtr(2), DraftNumber: intPtr(55), Team: lakers},
	}
}
