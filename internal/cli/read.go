package cli

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	tba "github.com/frc1418/go-tba"
)

// Default table columns per resource.
var (
	teamColumns     = []string{"key", "team_number", "nickname", "city", "state_prov", "country"}
	eventColumns    = []string{"key", "name", "event_type_string", "city", "start_date", "end_date"}
	matchColumns    = []string{"key", "comp_level", "set_number", "match_number", "winning_alliance"}
	districtColumns = []string{"key", "abbreviation", "display_name", "year"}
	rankingColumns  = []string{"rank", "team_key", "point_total", "rookie_bonus"}
)

func (a *app) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the API status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, a, nil, func(ctx context.Context, opts []tba.RequestOption) (tba.APIStatus, error) {
				return a.client.Status(ctx, opts...)
			})
		},
	}
}

func (a *app) teamsCmd() *cobra.Command {
	var (
		page   int
		year   int
		simple bool
		keys   bool
	)

	cmd := &cobra.Command{
		Use:   "teams",
		Short: "List teams, one page or all of them",
		Long: `List teams. Without --page every page is fetched in turn until an
empty one is returned.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			all := !cmd.Flags().Changed("page")

			if keys {
				return run(cmd, a, nil, func(ctx context.Context, opts []tba.RequestOption) ([]string, error) {
					if all {
						return a.client.AllTeamKeys(ctx, year, opts...)
					}
					return a.client.TeamKeys(ctx, page, year, opts...)
				})
			}

			return run(cmd, a, teamColumns, func(ctx context.Context, opts []tba.RequestOption) ([]tba.Team, error) {
				if all {
					return a.client.AllTeams(ctx, year, detail(simple, false), opts...)
				}
				return a.client.Teams(ctx, page, year, detail(simple, false), opts...)
			})
		},
	}

	cmd.Flags().IntVar(&page, "page", 0, "page number, 500 teams per page")
	cmd.Flags().IntVar(&year, "year", 0, "only teams active in this season")
	cmd.Flags().BoolVar(&simple, "simple", false, "fetch the reduced field set")
	cmd.Flags().BoolVar(&keys, "keys", false, "fetch team keys only")
	cmd.MarkFlagsMutuallyExclusive("simple", "keys")

	return cmd
}

func (a *app) teamEventsCmd() *cobra.Command {
	var (
		year   int
		simple bool
		keys   bool
	)

	cmd := &cobra.Command{
		Use:   "team-events <team>",
		Short: "List the events a team attended",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			team := parseTeam(args[0])
			if keys {
				return run(cmd, a, nil, func(ctx context.Context, opts []tba.RequestOption) ([]string, error) {
					return a.client.TeamEventKeys(ctx, team, year, opts...)
				})
			}
			return run(cmd, a, eventColumns, func(ctx context.Context, opts []tba.RequestOption) ([]tba.Event, error) {
				return a.client.TeamEvents(ctx, team, year, detail(simple, false), opts...)
			})
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "only events of this season")
	cmd.Flags().BoolVar(&simple, "simple", false, "fetch the reduced field set")
	cmd.Flags().BoolVar(&keys, "keys", false, "fetch event keys only")
	cmd.MarkFlagsMutuallyExclusive("simple", "keys")

	return cmd
}

func (a *app) eventCmd() *cobra.Command {
	var simple bool

	cmd := &cobra.Command{
		Use:   "event <event>",
		Short: "Show one event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, a, eventColumns, func(ctx context.Context, opts []tba.RequestOption) (tba.Event, error) {
				return a.client.Event(ctx, args[0], detail(simple, false), opts...)
			})
		},
	}
	cmd.Flags().BoolVar(&simple, "simple", false, "fetch the reduced field set")

	return cmd
}

func (a *app) eventsCmd() *cobra.Command {
	var simple, keys bool

	cmd := &cobra.Command{
		Use:   "events <year>",
		Short: "List the events of a season",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := parseYear(args[0])
			if err != nil {
				return err
			}
			if keys {
				return run(cmd, a, nil, func(ctx context.Context, opts []tba.RequestOption) ([]string, error) {
					return a.client.EventKeys(ctx, year, opts...)
				})
			}
			return run(cmd, a, eventColumns, func(ctx context.Context, opts []tba.RequestOption) ([]tba.Event, error) {
				return a.client.Events(ctx, year, detail(simple, false), opts...)
			})
		},
	}

	cmd.Flags().BoolVar(&simple, "simple", false, "fetch the reduced field set")
	cmd.Flags().BoolVar(&keys, "keys", false, "fetch event keys only")
	cmd.MarkFlagsMutuallyExclusive("simple", "keys")

	return cmd
}

func (a *app) eventTeamsCmd() *cobra.Command {
	var simple, keys, statuses bool

	cmd := &cobra.Command{
		Use:   "event-teams <event>",
		Short: "List the teams at an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			event := args[0]
			switch {
			case statuses:
				return run(cmd, a, []string{"overall_status_str"}, func(ctx context.Context, opts []tba.RequestOption) (map[string]tba.TeamStatus, error) {
					return a.client.EventTeamStatuses(ctx, event, opts...)
				})
			case keys:
				return run(cmd, a, nil, func(ctx context.Context, opts []tba.RequestOption) ([]string, error) {
					return a.client.EventTeamKeys(ctx, event, opts...)
				})
			default:
				return run(cmd, a, teamColumns, func(ctx context.Context, opts []tba.RequestOption) ([]tba.Team, error) {
					return a.client.EventTeams(ctx, event, detail(simple, false), opts...)
				})
			}
		},
	}

	cmd.Flags().BoolVar(&simple, "simple", false, "fetch the reduced field set")
	cmd.Flags().BoolVar(&keys, "keys", false, "fetch team keys only")
	cmd.Flags().BoolVar(&statuses, "statuses", false, "fetch each team's status at the event")
	cmd.MarkFlagsMutuallyExclusive("simple", "keys", "statuses")

	return cmd
}

func (a *app) eventMatchesCmd() *cobra.Command {
	var simple, keys bool

	cmd := &cobra.Command{
		Use:   "event-matches <event>",
		Short: "List the matches of an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if keys {
				return run(cmd, a, nil, func(ctx context.Context, opts []tba.RequestOption) ([]string, error) {
					return a.client.EventMatchKeys(ctx, args[0], opts...)
				})
			}
			return run(cmd, a, matchColumns, func(ctx context.Context, opts []tba.RequestOption) ([]tba.Match, error) {
				return a.client.EventMatches(ctx, args[0], detail(simple, false), opts...)
			})
		},
	}

	cmd.Flags().BoolVar(&simple, "simple", false, "fetch the reduced field set")
	cmd.Flags().BoolVar(&keys, "keys", false, "fetch match keys only")
	cmd.MarkFlagsMutuallyExclusive("simple", "keys")

	return cmd
}

func (a *app) eventRankingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "event-rankings <event>",
		Short: "Show the qualification rankings of an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, a, []string{"rank", "team_key", "matches_played", "dq"}, func(ctx context.Context, opts []tba.RequestOption) (any, error) {
				rankings, err := a.client.EventRankings(ctx, args[0], opts...)
				if err != nil || rankings.IsZero() {
					return rankings, err
				}
				if a.output == formatJSON {
					return rankings, nil
				}
				// The table shows the ranking rows, not the wrapper object.
				return rankings.NestedList("rankings")
			})
		},
	}
}

func (a *app) matchCmd() *cobra.Command {
	var (
		spec   tba.MatchSpec
		kind   string
		simple bool
	)

	cmd := &cobra.Command{
		Use:   "match [key]",
		Short: "Show one match, by key or by its parts",
		Example: `  tba match 2019cmptx_qm12
  tba match --year 2017 --event chcmp --type sf --number 2 --round 1`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec.Type = tba.MatchType(strings.ToLower(kind))

			return run(cmd, a, matchColumns, func(ctx context.Context, opts []tba.RequestOption) (tba.Match, error) {
				if len(args) == 1 {
					return a.client.Match(ctx, args[0], detail(simple, false), opts...)
				}
				if spec.Event == "" {
					return tba.Match{}, errors.Wrap(tba.ErrInvalidArgument, "give a match key or --event and --number")
				}
				return a.client.MatchBySpec(ctx, spec, detail(simple, false), opts...)
			})
		},
	}

	cmd.Flags().IntVar(&spec.Year, "year", 0, "season, unless the event code already starts with it")
	cmd.Flags().StringVar(&spec.Event, "event", "", "event code")
	cmd.Flags().StringVar(&kind, "type", string(tba.Qualification), "match type: qm, ef, qf, sf or f")
	cmd.Flags().IntVar(&spec.Number, "number", 0, "match or set number")
	cmd.Flags().IntVar(&spec.Round, "round", 0, "match number within a playoff set")
	cmd.Flags().BoolVar(&simple, "simple", false, "fetch the reduced field set")

	return cmd
}

func (a *app) districtsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "districts <year>",
		Short: "List the districts of a season",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := parseYear(args[0])
			if err != nil {
				return err
			}
			return run(cmd, a, districtColumns, func(ctx context.Context, opts []tba.RequestOption) ([]tba.District, error) {
				return a.client.Districts(ctx, year, opts...)
			})
		},
	}
}

func (a *app) districtRankingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "district-rankings <district>",
		Short: "Show a district's team rankings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, a, rankingColumns, func(ctx context.Context, opts []tba.RequestOption) ([]tba.DistrictRanking, error) {
				return a.client.DistrictRankings(ctx, args[0], opts...)
			})
		},
	}
}

func (a *app) getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <path>",
		Short: "Fetch any read API path, such as team/frc254/history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, a, nil, func(ctx context.Context, opts []tba.RequestOption) (any, error) {
				return a.client.Get(ctx, args[0], opts...)
			})
		},
	}
}
