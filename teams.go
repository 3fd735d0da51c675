package tba

import (
	"context"
	"slices"

	"github.com/cockroachdb/errors"

	"github.com/frc1418/go-tba/internal/paths"
)

// recordDetail rejects Keys for calls that return records; each of them has
// a ...Keys counterpart.
func recordDetail(d Detail) error {
	if d == Keys {
		return errors.Wrap(ErrInvalidArgument, "key listings have their own method")
	}
	return nil
}

// Status returns the API status document.
func (c *Client) Status(ctx context.Context, opts ...RequestOption) (APIStatus, error) {
	return getRecord(ctx, c, paths.Status(), opts)
}

// Teams returns one page of teams. season 0 lists every team.
func (c *Client) Teams(ctx context.Context, page, season int, detail Detail, opts ...RequestOption) ([]Team, error) {
	if err := recordDetail(detail); err != nil {
		return nil, err
	}
	p, err := paths.TeamsPage(page, season, detail)
	if err != nil {
		return nil, err
	}
	return getRecords(ctx, c, p, opts)
}

// TeamKeys returns the team keys of one page.
func (c *Client) TeamKeys(ctx context.Context, page, season int, opts ...RequestOption) ([]string, error) {
	p, err := paths.TeamsPage(page, season, Keys)
	if err != nil {
		return nil, err
	}
	return getKeys(ctx, c, p, opts)
}

// AllTeams walks the team pages from 0 until one comes back empty and
// returns them concatenated. opts apply to every page.
//
// With IfModifiedSince, a 304 for page 0 makes the whole call not modified:
// the result is nil, or a *NotModifiedError with FailOnNotModified. A 304
// for a later page means the earlier pages changed but the walk cannot be
// completed, so the call fails with a *NotModifiedError instead of
// returning part of the list.
func (c *Client) AllTeams(ctx context.Context, season int, detail Detail, opts ...RequestOption) ([]Team, error) {
	if err := recordDetail(detail); err != nil {
		return nil, err
	}
	return allPages(ctx, season, opts, func(page int, opts []RequestOption) ([]Team, error) {
		return c.Teams(ctx, page, season, detail, opts...)
	})
}

// AllTeamKeys is AllTeams for key listings.
func (c *Client) AllTeamKeys(ctx context.Context, season int, opts ...RequestOption) ([]string, error) {
	return allPages(ctx, season, opts, func(page int, opts []RequestOption) ([]string, error) {
		return c.TeamKeys(ctx, page, season, opts...)
	})
}

// allPages stops at the first empty page. Only a 200 with no entries ends
// the walk; a silent 304 is handled as described on AllTeams.
func allPages[T any](ctx context.Context, season int, opts []RequestOption, fetchPage func(page int, opts []RequestOption) ([]T, error)) ([]T, error) {
	var (
		all      []T
		lastPath string
		last     ResponseMeta
	)
	opts = append(slices.Clip(opts), func(o *requestOptions) {
		o.observe = func(path string, meta ResponseMeta) {
			lastPath, last = path, meta
		}
	})

	for page := 0; ; page++ {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrapf(err, "list teams of season %d", season)
		}

		last = ResponseMeta{}
		batch, err := fetchPage(page, opts)
		if err != nil {
			return nil, errors.Wrapf(err, "team page %d", page)
		}
		if last.NotModified {
			if page == 0 {
				return nil, nil
			}
			return nil, errors.Wrapf(&NotModifiedError{Path: lastPath, LastModified: last.LastModified},
				"team page %d not modified after earlier pages changed", page)
		}
		if len(batch) == 0 {
			return all, nil
		}
		all = append(all, batch...)
	}
}

// Team returns one team. Keys is treated as Full.
func (c *Client) Team(ctx context.Context, team TeamID, detail Detail, opts ...RequestOption) (Team, error) {
	return getRecord(ctx, c, paths.Team(team.teamKey(), detail), opts)
}

// TeamEvents returns the events a team attended. season 0 spans every season.
func (c *Client) TeamEvents(ctx context.Context, team TeamID, season int, detail Detail, opts ...RequestOption) ([]Event, error) {
	if err := recordDetail(detail); err != nil {
		return nil, err
	}
	return getRecords(ctx, c, paths.TeamEvents(team.teamKey(), season, detail), opts)
}

// TeamEventKeys returns the keys of the events a team attended.
func (c *Client) TeamEventKeys(ctx context.Context, team TeamID, season int, opts ...RequestOption) ([]string, error) {
	return getKeys(ctx, c, paths.TeamEvents(team.teamKey(), season, Keys), opts)
}

// TeamAwards returns a team's awards, limited to one event when event is set,
// otherwise to one season when season is not 0.
func (c *Client) TeamAwards(ctx context.Context, team TeamID, event string, season int, opts ...RequestOption) ([]Award, error) {
	return getRecords(ctx, c, paths.TeamAwards(team.teamKey(), event, season), opts)
}

// TeamMatches returns a team's matches at event, or in season when event is empty.
func (c *Client) TeamMatches(ctx context.Context, team TeamID, event string, season int, detail Detail, opts ...RequestOption) ([]Match, error) {
	if err := recordDetail(detail); err != nil {
		return nil, err
	}
	p, err := paths.TeamMatches(team.teamKey(), event, season, detail)
	if err != nil {
		return nil, err
	}
	return getRecords(ctx, c, p, opts)
}

// TeamMatchKeys returns the keys of a team's matches.
func (c *Client) TeamMatchKeys(ctx context.Context, team TeamID, event string, season int, opts ...RequestOption) ([]string, error) {
	p, err := paths.TeamMatches(team.teamKey(), event, season, Keys)
	if err != nil {
		return nil, err
	}
	return getKeys(ctx, c, p, opts)
}

// TeamYears returns the seasons a team competed in.
func (c *Client) TeamYears(ctx context.Context, team TeamID, opts ...RequestOption) ([]int, error) {
	return fetch(ctx, c, paths.TeamYears(team.teamKey()), decodeJSON[[]int], opts)
}

// TeamMedia returns a team's media. tag and season narrow the listing when set.
func (c *Client) TeamMedia(ctx context.Context, team TeamID, season int, tag string, opts ...RequestOption) ([]Media, error) {
	return getRecords(ctx, c, paths.TeamMedia(team.teamKey(), tag, season), opts)
}

// TeamRobots returns the robots a team has named.
func (c *Client) TeamRobots(ctx context.Context, team TeamID, opts ...RequestOption) ([]Robot, error) {
	return getRecords(ctx, c, paths.TeamRobots(team.teamKey()), opts)
}

// TeamDistricts returns the districts a team has belonged to.
func (c *Client) TeamDistricts(ctx context.Context, team TeamID, opts ...RequestOption) ([]District, error) {
	return getRecords(ctx, c, paths.TeamDistricts(team.teamKey()), opts)
}

// TeamProfiles returns a team's social media profiles.
func (c *Client) TeamProfiles(ctx context.Context, team TeamID, opts ...RequestOption) ([]Profile, error) {
	return getRecords(ctx, c, paths.TeamSocialMedia(team.teamKey()), opts)
}

// TeamEventStatus returns a team's status at one event.
func (c *Client) TeamEventStatus(ctx context.Context, team TeamID, event string, opts ...RequestOption) (TeamStatus, error) {
	return getRecord(ctx, c, paths.TeamEventStatus(team.teamKey(), event), opts)
}

// TeamEventStatuses returns a team's status at each of its events in season,
// keyed by event key. Events without a status map to the zero record.
func (c *Client) TeamEventStatuses(ctx context.Context, team TeamID, season int, opts ...RequestOption) (map[string]TeamStatus, error) {
	p, err := paths.TeamEventStatuses(team.teamKey(), season)
	if err != nil {
		return nil, err
	}
	return getRecordMap(ctx, c, p, opts)
}
