package tba

import (
	"context"

	"github.com/frc1418/go-tba/internal/paths"
)

// Events returns the events of season.
func (c *Client) Events(ctx context.Context, season int, detail Detail, opts ...RequestOption) ([]Event, error) {
	if err := recordDetail(detail); err != nil {
		return nil, err
	}
	return getRecords(ctx, c, paths.Events(season, detail), opts)
}

// EventKeys returns the keys of the events of season.
func (c *Client) EventKeys(ctx context.Context, season int, opts ...RequestOption) ([]string, error) {
	return getKeys(ctx, c, paths.Events(season, Keys), opts)
}

// Event returns one event. Keys is treated as Full.
func (c *Client) Event(ctx context.Context, event string, detail Detail, opts ...RequestOption) (Event, error) {
	return getRecord(ctx, c, paths.Event(event, detail), opts)
}

// EventAlliances returns the playoff alliances of an event.
func (c *Client) EventAlliances(ctx context.Context, event string, opts ...RequestOption) ([]Alliance, error) {
	return getRecords(ctx, c, paths.EventResource(event, "alliances"), opts)
}

// EventDistrictPoints returns the district points earned at an event.
func (c *Client) EventDistrictPoints(ctx context.Context, event string, opts ...RequestOption) (DistrictPoints, error) {
	return getRecord(ctx, c, paths.EventResource(event, "district_points"), opts)
}

// EventInsights returns the season-specific statistics of an event.
func (c *Client) EventInsights(ctx context.Context, event string, opts ...RequestOption) (Insights, error) {
	return getRecord(ctx, c, paths.EventResource(event, "insights"), opts)
}

// EventOPRs returns OPR, DPR and CCWM by team.
func (c *Client) EventOPRs(ctx context.Context, event string, opts ...RequestOption) (OPRs, error) {
	return getRecord(ctx, c, paths.EventResource(event, "oprs"), opts)
}

// EventPredictions returns the server's match predictions for an event.
func (c *Client) EventPredictions(ctx context.Context, event string, opts ...RequestOption) (Predictions, error) {
	return getRecord(ctx, c, paths.EventResource(event, "predictions"), opts)
}

// EventRankings returns the qualification ranking table.
func (c *Client) EventRankings(ctx context.Context, event string, opts ...RequestOption) (Rankings, error) {
	return getRecord(ctx, c, paths.EventResource(event, "rankings"), opts)
}

// EventTeams returns the teams attending an event.
func (c *Client) EventTeams(ctx context.Context, event string, detail Detail, opts ...RequestOption) ([]Team, error) {
	if err := recordDetail(detail); err != nil {
		return nil, err
	}
	return getRecords(ctx, c, paths.EventTeams(event, detail), opts)
}

// EventTeamKeys returns the keys of the teams attending an event.
func (c *Client) EventTeamKeys(ctx context.Context, event string, opts ...RequestOption) ([]string, error) {
	return getKeys(ctx, c, paths.EventTeams(event, Keys), opts)
}

// EventTeamStatuses returns the status of every team at an event, keyed by team key.
func (c *Client) EventTeamStatuses(ctx context.Context, event string, opts ...RequestOption) (map[string]TeamStatus, error) {
	return getRecordMap(ctx, c, paths.EventTeamStatuses(event), opts)
}

// EventAwards returns the awards given at an event.
func (c *Client) EventAwards(ctx context.Context, event string, opts ...RequestOption) ([]Award, error) {
	return getRecords(ctx, c, paths.EventResource(event, "awards"), opts)
}

// EventMatches returns the matches of an event.
func (c *Client) EventMatches(ctx context.Context, event string, detail Detail, opts ...RequestOption) ([]Match, error) {
	if err := recordDetail(detail); err != nil {
		return nil, err
	}
	return getRecords(ctx, c, paths.EventMatches(event, detail), opts)
}

// EventMatchKeys returns the keys of the matches of an event.
func (c *Client) EventMatchKeys(ctx context.Context, event string, opts ...RequestOption) ([]string, error) {
	return getKeys(ctx, c, paths.EventMatches(event, Keys), opts)
}

// Match returns one match by key. Keys is treated as Full.
func (c *Client) Match(ctx context.Context, key string, detail Detail, opts ...RequestOption) (Match, error) {
	return getRecord(ctx, c, paths.Match(key, detail), opts)
}

// MatchBySpec builds the match key from spec and returns that match. An
// incomplete spec fails with ErrInvalidArgument before any request.
func (c *Client) MatchBySpec(ctx context.Context, spec MatchSpec, detail Detail, opts ...RequestOption) (Match, error) {
	key, err := paths.MatchKey(spec)
	if err != nil {
		return Match{}, err
	}
	return c.Match(ctx, key, detail, opts...)
}
