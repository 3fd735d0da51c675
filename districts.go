package tba

import (
	"context"

	"github.com/frc1418/go-tba/internal/paths"
)

// Districts returns the districts active in season.
func (c *Client) Districts(ctx context.Context, season int, opts ...RequestOption) ([]District, error) {
	return getRecords(ctx, c, paths.Districts(season), opts)
}

// DistrictEvents returns the events of a district, such as "2019fim".
func (c *Client) DistrictEvents(ctx context.Context, district string, detail Detail, opts ...RequestOption) ([]Event, error) {
	if err := recordDetail(detail); err != nil {
		return nil, err
	}
	return getRecords(ctx, c, paths.DistrictEvents(district, detail), opts)
}

// DistrictEventKeys returns the keys of a district's events.
func (c *Client) DistrictEventKeys(ctx context.Context, district string, opts ...RequestOption) ([]string, error) {
	return getKeys(ctx, c, paths.DistrictEvents(district, Keys), opts)
}

// DistrictRankings returns the district ranking table.
func (c *Client) DistrictRankings(ctx context.Context, district string, opts ...RequestOption) ([]DistrictRanking, error) {
	return getRecords(ctx, c, paths.DistrictRankings(district), opts)
}

// DistrictTeams returns the teams of a district.
func (c *Client) DistrictTeams(ctx context.Context, district string, detail Detail, opts ...RequestOption) ([]Team, error) {
	if err := recordDetail(detail); err != nil {
		return nil, err
	}
	return getRecords(ctx, c, paths.DistrictTeams(district, detail), opts)
}

// DistrictTeamKeys returns the keys of a district's teams.
func (c *Client) DistrictTeamKeys(ctx context.Context, district string, opts ...RequestOption) ([]string, error) {
	return getKeys(ctx, c, paths.DistrictTeams(district, Keys), opts)
}

// DistrictHistory returns every season of the district with the given
// abbreviation, such as "fim".
func (c *Client) DistrictHistory(ctx context.Context, abbreviation string, opts ...RequestOption) ([]District, error) {
	return getRecords(ctx, c, paths.DistrictHistory(abbreviation), opts)
}

// DistrictAwards returns the awards given across a district's events.
func (c *Client) DistrictAwards(ctx context.Context, district string, opts ...RequestOption) ([]Award, error) {
	return getRecords(ctx, c, paths.DistrictAwards(district), opts)
}

// InsightsLeaderboards returns the season leaderboards.
func (c *Client) InsightsLeaderboards(ctx context.Context, season int, opts ...RequestOption) ([]InsightLeaderboard, error) {
	return getRecords(ctx, c, paths.InsightsLeaderboards(season), opts)
}

// InsightsNotables returns the season notables.
func (c *Client) InsightsNotables(ctx context.Context, season int, opts ...RequestOption) ([]InsightNotable, error) {
	return getRecords(ctx, c, paths.InsightsNotables(season), opts)
}
