package players

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Player represents the normalized player shape (balldontlie-aligned). Read-only for this service.
type Player struct {
	ID           int       `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Position     string    `json:"position"`
	Height       string    `json:"height"`
	Weight       string    `json:"weight"`
	JerseyNumber string    `json:"jerseyNumber"`
	College      string    `json:"college"`
	Country      string    `json:"country"`
	DraftYear    *int      `json:"draftYear"`
	DraftRound   *int      `json:"draftRound"`
	DraftNumber  *int      `json:"draftNumber"`
	Team         Franchise `json:"team"`
}

// Franchise is the NBA team a player is signed to. It is unrelated to the roster Team
// managed by this service but keeps the upstream "team" key.
type Franchise struct {
	ID           int    `json:"id"`
	Conference   string `json:"conference"`
	Division     string `json:"division"`
	City         string `json:"city"`
	Name         string `json:"name"`
	FullName     string `json:"fullName"`
	Abbreviation string `json:"abbreviation"`
}

// FullName joins first and last name.
func (p Player) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Meta carries cursor pagination state for a page.
type Meta struct {
	NextCursor *int `json:"nextCursor"`
	PerPage    int  `json:"perPage"`
}

// Page is one cursor page of players.
type Page struct {
	Data []Player `json:"data"`
	Meta Meta     `json:"meta"`
}

// HasNext reports whether the upstream returned a continuation cursor.
func (p Page) HasNext() bool {
	return p.Meta.NextCursor != nil
}

// Filters narrows a player search.
type Filters struct {
	Search    string `json:"search,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	TeamIDs   []int  `json:"teamIds,omitempty"`
	PlayerIDs []int  `json:"playerIds,omitempty"`
}

// Query is a single page request: filters plus pagination.
type Query struct {
	Filters
	Cursor  *int
	PerPage int
}

// Key returns a canonical cache key covering every filter and pagination field.
// Id lists are sorted so the same set maps to the same key.
func (q Query) Key() string {
	v := url.Values{}
	if q.Cursor != nil {
		v.Set("cursor", strconv.Itoa(*q.Cursor))
	}
	v.Set("per_page", strconv.Itoa(q.PerPage))
	v.Set("search", q.Search)
	v.Set("first_name", q.FirstName)
	v.Set("last_name", q.LastName)
	v.Set("team_ids", joinSorted(q.TeamIDs))
	v.Set("player_ids", joinSorted(q.PlayerIDs))
	return v.Encode()
}

func joinSorted(ids []int) string {
	if len(ids) == 0 {
		return ""
	}
	sorted := append([]int(nil), ids...)
	sort.Ints(sorted)
	parts := make([]string, len(sorted))
	for i, id := range sorted {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}

// MergeUnique concatenates player lists keeping the first occurrence of each id.
func MergeUnique(lists ...[]Player) []Player {
	seen := make(map[int]struct{})
	var out []Player
	for _, list := range lists {
		for _, p := range list {
			if _, ok := seen[p.ID]; ok {
				continue
			}
			seen[p.ID] = struct{}{}
			out = append(out, p)
		}
	}
	return out
}

// IDs returns the ids of the given players in order.
func IDs(items []Player) []int {
	ids := make([]int, len(items))
	for i, p := range items {
		ids[i] = p.ID
	}
	return ids
}
