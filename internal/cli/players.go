package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/nba-roster-service/internal/domain/players"
	"github.com/preston-bernstein/nba-roster-service/internal/server"
)

func newPlayersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "players",
		Short: "Player directory commands",
	}

	cmd.AddCommand(newPlayersSearchCmd(a))
	cmd.AddCommand(newPlayersLookupCmd(a))
	cmd.AddCommand(newPlayersAvailableCmd(a))
	return cmd
}

func newPlayersSearchCmd(a *app) *cobra.Command {
	var filters players.Filters
	var perPage, pages int

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search the player directory, following cursor pages",
		RunE: func(cmd *cobra.Command, args []string) error {
			if perPage <= 0 {
				perPage = a.cfg.Directory.SearchPageSize
			}
			filters.Search = strings.TrimSpace(filters.Search)
			return a.withSession(cmd.Context(), func(ctx context.Context, core *server.Core) error {
				pager := core.Directory.Pages(filters, perPage)
				list, err := pager.Collect(ctx, pages)
				if err != nil {
					return err
				}
				return a.printer().Print(playerList{Players: list, HasMore: pager.HasNext()})
			})
		},
	}

	cmd.Flags().StringVar(&filters.Search, "search", "", "Match first or last name")
	cmd.Flags().StringVar(&filters.FirstName, "first-name", "", "Exact first name filter")
	cmd.Flags().StringVar(&filters.LastName, "last-name", "", "Exact last name filter")
	cmd.Flags().IntSliceVar(&filters.TeamIDs, "team-id", nil, "NBA franchise id (repeatable)")
	cmd.Flags().IntVar(&perPage, "per-page", 0, "Page size (defaults to SEARCH_PAGE_SIZE)")
	cmd.Flags().IntVar(&pages, "pages", 1, "Pages to load; 0 loads every page")
	return cmd
}

func newPlayersLookupCmd(a *app) *cobra.Command {
	var ids []int

	cmd := &cobra.Command{
		Use:   "lookup",
		Short: "Fetch players by id",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(ids) == 0 {
				return fmt.Errorf("--id is required")
			}
			return a.withSession(cmd.Context(), func(ctx context.Context, core *server.Core) error {
				page, err := core.Directory.FetchByIDs(ctx, ids, a.cfg.Directory.LookupPageSize)
				if err != nil {
					return err
				}
				return a.printer().Print(playerList{Players: page.Data})
			})
		},
	}

	cmd.Flags().IntSliceVar(&ids, "id", nil, "Player id (repeatable or comma separated)")
	return cmd
}

func newPlayersAvailableCmd(a *app) *cobra.Command {
	var search, teamID string
	var selected []int

	cmd := &cobra.Command{
		Use:   "available",
		Short: "List search results that can still join a team",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(cmd.Context(), func(ctx context.Context, core *server.Core) error {
				page, err := core.Directory.FetchPage(ctx, nil, players.Filters{Search: strings.TrimSpace(search)}, a.cfg.Directory.SearchPageSize)
				if err != nil {
					return err
				}
				available, err := core.Teams.AvailablePlayers(ctx, page.Data, selected, teamID)
				if err != nil {
					return err
				}
				return a.printer().Print(playerList{Players: available, HasMore: page.HasNext()})
			})
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Match first or last name")
	cmd.Flags().StringVar(&teamID, "team", "", "Team being edited; its own players stay available")
	cmd.Flags().IntSliceVar(&selected, "selected", nil, "Player ids already picked")
	return cmd
}
