package balldontlie

import (
	"strings"

	"github.com/preston-bernstein/nba-roster-service/internal/domain/players"
)

func mapPage(resp playersResponse) players.Page {
	page := players.Page{
		Data: make([]players.Player, 0, len(resp.Data)),
		Meta: players.Meta{
			NextCursor: resp.Meta.NextCursor,
			PerPage:    resp.Meta.PerPage,
		},
	}
	for _, p := range resp.Data {
		page.Data = append(page.Data, mapPlayer(p))
	}
	return page
}

func mapPlayer(p playerResponse) players.Player {
	return players.Player{
		ID:           p.ID,
		FirstName:    strings.TrimSpace(p.FirstName),
		LastName:     strings.TrimSpace(p.LastName),
		Position:     p.Position,
		Height:       p.Height,
		Weight:       p.Weight,
		JerseyNumber: p.JerseyNumber,
		College:      p.College,
		Country:      p.Country,
		DraftYear:    p.DraftYear,
		DraftRound:   p.DraftRound,
		DraftNumber:  p.DraftNumber,
		Team:         mapTeam(p.Team),
	}
}

func mapTeam(t teamResponse) players.Franchise {
	return players.Franchise{
		ID:           t.ID,
		Conference:   t.Conference,
		Division:     t.Division,
		City:         t.City,
		Name:         t.Name,
		FullName:     t.FullName,
		Abbreviation: t.Abbreviation,
	}
}
