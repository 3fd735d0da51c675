package cli

import (
	"context"
	"slices"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	tba "github.com/frc1418/go-tba"
)

// teamExtra fetches one related listing for a team.
type teamExtra func(ctx context.Context, c *tba.Client, team tba.TeamID, year int) (any, error)

var teamExtras = map[string]teamExtra{
	"events": func(ctx context.Context, c *tba.Client, team tba.TeamID, year int) (any, error) {
		return c.TeamEvents(ctx, team, year, tba.Simple)
	},
	"awards": func(ctx context.Context, c *tba.Client, team tba.TeamID, year int) (any, error) {
		return c.TeamAwards(ctx, team, "", year)
	},
	"years": func(ctx context.Context, c *tba.Client, team tba.TeamID, _ int) (any, error) {
		return c.TeamYears(ctx, team)
	},
	"media": func(ctx context.Context, c *tba.Client, team tba.TeamID, year int) (any, error) {
		return c.TeamMedia(ctx, team, year, "")
	},
	"robots": func(ctx context.Context, c *tba.Client, team tba.TeamID, _ int) (any, error) {
		return c.TeamRobots(ctx, team)
	},
	"districts": func(ctx context.Context, c *tba.Client, team tba.TeamID, _ int) (any, error) {
		return c.TeamDistricts(ctx, team)
	},
	"profiles": func(ctx context.Context, c *tba.Client, team tba.TeamID, _ int) (any, error) {
		return c.TeamProfiles(ctx, team)
	},
}

func extraNames() []string {
	names := make([]string, 0, len(teamExtras))
	for name := range teamExtras {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (a *app) teamCmd() *cobra.Command {
	var (
		with   []string
		year   int
		simple bool
	)

	cmd := &cobra.Command{
		Use:   "team <number|key>",
		Short: "Show one team, optionally with related listings",
		Example: `  tba team 1418
  tba team frc254 --with events,awards --year 2019`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			team := parseTeam(args[0])

			if len(with) == 0 {
				return run(cmd, a, teamColumns, func(ctx context.Context, opts []tba.RequestOption) (tba.Team, error) {
					return a.client.Team(ctx, team, detail(simple, false), opts...)
				})
			}

			if a.ifModifiedSince != "" {
				return errors.Wrap(tba.ErrInvalidArgument, "--with cannot be combined with --if-modified-since")
			}
			for _, name := range with {
				if _, ok := teamExtras[name]; !ok {
					return errors.Wrapf(tba.ErrInvalidArgument, "unknown --with value %q (want one of %v)", name, extraNames())
				}
			}

			return run(cmd, a, nil, func(ctx context.Context, opts []tba.RequestOption) (map[string]any, error) {
				return a.teamWith(ctx, team, detail(simple, false), year, with, opts)
			})
		},
	}

	cmd.Flags().StringSliceVar(&with, "with", nil, "also fetch: awards, districts, events, media, profiles, robots, years")
	cmd.Flags().IntVar(&year, "year", 0, "season for events, awards and media")
	cmd.Flags().BoolVar(&simple, "simple", false, "fetch the reduced field set")

	return cmd
}

// teamWith fetches the team and every requested listing concurrently. The
// first failure cancels the rest.
func (a *app) teamWith(ctx context.Context, team tba.TeamID, d tba.Detail, year int, with []string, opts []tba.RequestOption) (map[string]any, error) {
	var (
		mu  sync.Mutex
		out = make(map[string]any, len(with)+1)
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		t, err := a.client.Team(ctx, team, d, opts...)
		if err != nil {
			return err
		}
		mu.Lock()
		out["team"] = t
		mu.Unlock()
		return nil
	})

	for _, name := range with {
		fetch := teamExtras[name]
		g.Go(func() error {
			v, err := fetch(ctx, a.client, team, year)
			if err != nil {
				return errors.Wrapf(err, "fetch team %s", name)
			}
			mu.Lock()
			out[name] = v
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	a.logger.Debug().Strs("with", with).Msg("team listings fetched")
	return out, nil
}

