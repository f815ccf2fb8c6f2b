package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/preston-bernstein/nba-roster-service/internal/domain/players"
	"github.com/preston-bernstein/nba-roster-service/internal/domain/session"
	"github.com/preston-bernstein/nba-roster-service/internal/domain/teams"
)

const (
	formatText = "text"
	formatJSON = "json"
)

// playerList is a page of CLI results plus whether the upstream has more.
type playerList struct {
	Players []players.Player `json:"players"`
	HasMore bool             `json:"hasMore"`
}

// playerTeam answers which-team.
type playerTeam struct {
	PlayerID int         `json:"playerId"`
	Team     *teams.Team `json:"team"`
}

type printer struct {
	w      io.Writer
	format string
}

func newPrinter(w io.Writer, format string) *printer {
	return &printer{w: w, format: format}
}

// Print writes data in the configured format.
func (p *printer) Print(data any) error {
	if p.format == formatJSON {
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	}
	switch v := data.(type) {
	case teams.Team:
		p.printTeam(v)
	case []teams.Team:
		p.printTeams(v)
	case playerList:
		p.printPlayers(v)
	case playerTeam:
		if v.Team == nil {
			fmt.Fprintf(p.w, "Player %d is not on a team\n", v.PlayerID)
		} else {
			fmt.Fprintf(p.w, "Player %d plays for %s (%s)\n", v.PlayerID, v.Team.Name, v.Team.ID)
		}
	case session.Record:
		if !v.IsAuthenticated || v.User == nil {
			fmt.Fprintln(p.w, "Not signed in")
		} else {
			fmt.Fprintf(p.w, "Signed in as %s <%s>\n", v.User.Name, v.User.Email)
		}
	case string:
		fmt.Fprintln(p.w, v)
	default:
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	}
	return nil
}

// Message prints a one-line status, wrapped as {"message": ...} for json.
func (p *printer) Message(msg string) error {
	if p.format == formatJSON {
		return p.Print(map[string]string{"message": msg})
	}
	return p.Print(msg)
}

func (p *printer) printTeam(t teams.Team) {
	fmt.Fprintf(p.w, "ID:       %s\n", t.ID)
	fmt.Fprintf(p.w, "Name:     %s\n", t.Name)
	fmt.Fprintf(p.w, "Region:   %s\n", t.Region)
	fmt.Fprintf(p.w, "Country:  %s\n", t.Country)
	fmt.Fprintf(p.w, "Players:  %s\n", joinIDs(t.PlayerIDs))
}

func (p *printer) printTeams(list []teams.Team) {
	if len(list) == 0 {
		fmt.Fprintln(p.w, "No teams")
		return
	}
	tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tREGION\tCOUNTRY\tPLAYERS")
	for _, t := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", t.ID, t.Name, t.Region, t.Country, len(t.PlayerIDs))
	}
	_ = tw.Flush()
}

func (p *printer) printPlayers(list playerList) {
	if len(list.Players) == 0 {
		fmt.Fprintln(p.w, "No players")
		return
	}
	tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPOS\tTEAM")
	for _, pl := range list.Players {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", pl.ID, pl.FullName(), pl.Position, pl.Team.Abbreviation)
	}
	_ = tw.Flush()
	if list.HasMore {
		fmt.Fprintln(p.w, "More results available; raise --pages to load them")
	}
}

func joinIDs(ids []int) string {
	if len(ids) == 0 {
		return "-"
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprint(id)
	}
	return strings.Join(parts, ", ")
}
