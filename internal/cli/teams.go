package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/nba-roster-service/internal/domain/teams"
	"github.com/preston-bernstein/nba-roster-service/internal/server"
)

func newTeamsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "teams",
		Short: "Team management commands",
	}

	cmd.AddCommand(newTeamsListCmd(a))
	cmd.AddCommand(newTeamsShowCmd(a))
	cmd.AddCommand(newTeamsCreateCmd(a))
	cmd.AddCommand(newTeamsUpdateCmd(a))
	cmd.AddCommand(newTeamsDeleteCmd(a))
	cmd.AddCommand(newTeamsWhichCmd(a))
	return cmd
}

func newTeamsListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List teams",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(cmd.Context(), func(ctx context.Context, core *server.Core) error {
				list, err := core.Teams.List(ctx)
				if err != nil {
					return err
				}
				return a.printer().Print(list)
			})
		},
	}
}

func newTeamsShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(cmd.Context(), func(ctx context.Context, core *server.Core) error {
				team, err := core.Teams.Get(ctx, args[0])
				if err != nil {
					return err
				}
				return a.printer().Print(team)
			})
		},
	}
}

func bindFormFlags(cmd *cobra.Command, form *teams.FormData) {
	cmd.Flags().StringVar(&form.Name, "name", "", "Team name")
	cmd.Flags().StringVar(&form.Region, "region", "", "Region")
	cmd.Flags().StringVar(&form.Country, "country", "", "Country")
	cmd.Flags().IntSliceVar(&form.PlayerIDs, "player", nil, "Player id (repeatable or comma separated)")
}

func newTeamsCreateCmd(a *app) *cobra.Command {
	var form teams.FormData

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a team",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(cmd.Context(), func(ctx context.Context, core *server.Core) error {
				team, err := core.Teams.Create(ctx, form)
				if err != nil {
					return err
				}
				return a.printer().Print(team)
			})
		},
	}

	bindFormFlags(cmd, &form)
	return cmd
}

func newTeamsUpdateCmd(a *app) *cobra.Command {
	var form teams.FormData
	var clearPlayers bool

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a team; omitted flags keep their current value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(cmd.Context(), func(ctx context.Context, core *server.Core) error {
				current, err := core.Teams.Get(ctx, args[0])
				if err != nil {
					return err
				}
				next := teams.FormData{
					Name:      current.Name,
					Region:    current.Region,
					Country:   current.Country,
					PlayerIDs: current.PlayerIDs,
				}
				flags := cmd.Flags()
				if flags.Changed("name") {
					next.Name = form.Name
				}
				if flags.Changed("region") {
					next.Region = form.Region
				}
				if flags.Changed("country") {
					next.Country = form.Country
				}
				if flags.Changed("player") {
					next.PlayerIDs = form.PlayerIDs
				}
				if clearPlayers {
					next.PlayerIDs = []int{}
				}
				team, err := core.Teams.Update(ctx, args[0], next)
				if err != nil {
					return err
				}
				return a.printer().Print(team)
			})
		},
	}

	bindFormFlags(cmd, &form)
	cmd.Flags().BoolVar(&clearPlayers, "clear-players", false, "Remove every player from the team")
	return cmd
}

func newTeamsDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(cmd.Context(), func(ctx context.Context, core *server.Core) error {
				if err := core.Teams.Delete(ctx, args[0]); err != nil {
					return err
				}
				return a.printer().Message("Deleted " + args[0])
			})
		},
	}
}

func newTeamsWhichCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "which-team <player-id>",
		Short: "Show the team a player belongs to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid player id %q", args[0])
			}
			return a.withSession(cmd.Context(), func(ctx context.Context, core *server.Core) error {
				team, found, err := core.Teams.PlayerTeam(ctx, id)
				if err != nil {
					return err
				}
				res := playerTeam{PlayerID: id}
				if found {
					res.Team = &team
				}
				return a.printer().Print(res)
			})
		},
	}
}
