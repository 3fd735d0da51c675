package tba

import (
	"context"
	"encoding/json"
)

// ReadAPI defines the read (v3) operations of Client. It lets consumers
// substitute a fake in their own tests.
//
// Example usage with testify/mock:
//
//	type MockReader struct {
//	    mock.Mock
//	}
//
//	func (m *MockReader) Team(ctx context.Context, team tba.TeamID, detail tba.Detail, opts ...tba.RequestOption) (tba.Team, error) {
//	    args := m.Called(ctx, team, detail)
//	    return args.Get(0).(tba.Team), args.Error(1)
//	}
type ReadAPI interface {
	// Status and raw access

	Status(ctx context.Context, opts ...RequestOption) (APIStatus, error)
	Get(ctx context.Context, path string, opts ...RequestOption) (json.RawMessage, error)

	// Teams

	Teams(ctx context.Context, page, season int, detail Detail, opts ...RequestOption) ([]Team, error)
	TeamKeys(ctx context.Context, page, season int, opts ...RequestOption) ([]string, error)
	AllTeams(ctx context.Context, season int, detail Detail, opts ...RequestOption) ([]Team, error)
	AllTeamKeys(ctx context.Context, season int, opts ...RequestOption) ([]string, error)
	Team(ctx context.Context, team TeamID, detail Detail, opts ...RequestOption) (Team, error)
	TeamEvents(ctx context.Context, team TeamID, season int, detail Detail, opts ...RequestOption) ([]Event, error)
	TeamEventKeys(ctx context.Context, team TeamID, season int, opts ...RequestOption) ([]string, error)
	TeamAwards(ctx context.Context, team TeamID, event string, season int, opts ...RequestOption) ([]Award, error)
	TeamMatches(ctx context.Context, team TeamID, event string, season int, detail Detail, opts ...RequestOption) ([]Match, error)
	TeamMatchKeys(ctx context.Context, team TeamID, event string, season int, opts ...RequestOption) ([]string, error)
	TeamYears(ctx context.Context, team TeamID, opts ...RequestOption) ([]int, error)
	TeamMedia(ctx context.Context, team TeamID, season int, tag string, opts ...RequestOption) ([]Media, error)
	TeamRobots(ctx context.Context, team TeamID, opts ...RequestOption) ([]Robot, error)
	TeamDistricts(ctx context.Context, team TeamID, opts ...RequestOption) ([]District, error)
	TeamProfiles(ctx context.Context, team TeamID, opts ...RequestOption) ([]Profile, error)
	TeamEventStatus(ctx context.Context, team TeamID, event string, opts ...RequestOption) (TeamStatus, error)
	TeamEventStatuses(ctx context.Context, team TeamID, season int, opts ...RequestOption) (map[string]TeamStatus, error)

	// Events and matches

	Events(ctx context.Context, season int, detail Detail, opts ...RequestOption) ([]Event, error)
	EventKeys(ctx context.Context, season int, opts ...RequestOption) ([]string, error)
	Event(ctx context.Context, event string, detail Detail, opts ...RequestOption) (Event, error)
	EventAlliances(ctx context.Context, event string, opts ...RequestOption) ([]Alliance, error)
	EventDistrictPoints(ctx context.Context, event string, opts ...RequestOption) (DistrictPoints, error)
	EventInsights(ctx context.Context, event string, opts ...RequestOption) (Insights, error)
	EventOPRs(ctx context.Context, event string, opts ...RequestOption) (OPRs, error)
	EventPredictions(ctx context.Context, event string, opts ...RequestOption) (Predictions, error)
	EventRankings(ctx context.Context, event string, opts ...RequestOption) (Rankings, error)
	EventTeams(ctx context.Context, event string, detail Detail, opts ...RequestOption) ([]Team, error)
	EventTeamKeys(ctx context.Context, event string, opts ...RequestOption) ([]string, error)
	EventTeamStatuses(ctx context.Context, event string, opts ...RequestOption) (map[string]TeamStatus, error)
	EventAwards(ctx context.Context, event string, opts ...RequestOption) ([]Award, error)
	EventMatches(ctx context.Context, event string, detail Detail, opts ...RequestOption) ([]Match, error)
	EventMatchKeys(ctx context.Context, event string, opts ...RequestOption) ([]string, error)
	Match(ctx context.Context, key string, detail Detail, opts ...RequestOption) (Match, error)
	MatchBySpec(ctx context.Context, spec MatchSpec, detail Detail, opts ...RequestOption) (Match, error)

	// Districts and insights

	Districts(ctx context.Context, season int, opts ...RequestOption) ([]District, error)
	DistrictEvents(ctx context.Context, district string, detail Detail, opts ...RequestOption) ([]Event, error)
	DistrictEventKeys(ctx context.Context, district string, opts ...RequestOption) ([]string, error)
	DistrictRankings(ctx context.Context, district string, opts ...RequestOption) ([]DistrictRanking, error)
	DistrictTeams(ctx context.Context, district string, detail Detail, opts ...RequestOption) ([]Team, error)
	DistrictTeamKeys(ctx context.Context, district string, opts ...RequestOption) ([]string, error)
	DistrictHistory(ctx context.Context, abbreviation string, opts ...RequestOption) ([]District, error)
	DistrictAwards(ctx context.Context, district string, opts ...RequestOption) ([]Award, error)
	InsightsLeaderboards(ctx context.Context, season int, opts ...RequestOption) ([]InsightLeaderboard, error)
	InsightsNotables(ctx context.Context, season int, opts ...RequestOption) ([]InsightNotable, error)
}

// TrustedAPI defines the signed write (trusted v1) operations of Client.
type TrustedAPI interface {
	SetTrusted(authID, authSecret, eventKey string)
	UpdateEventInfo(ctx context.Context, info any) (*WriteResult, error)
	UpdateEventAlliances(ctx context.Context, alliances [][]string) (*WriteResult, error)
	UpdateEventAwards(ctx context.Context, awards any) (*WriteResult, error)
	UpdateEventMatches(ctx context.Context, matches any) (*WriteResult, error)
	DeleteEventMatches(ctx context.Context, matchKeys []string) (*WriteResult, error)
	UpdateEventRankings(ctx context.Context, rankings any) (*WriteResult, error)
	UpdateEventTeamList(ctx context.Context, teamKeys []string) (*WriteResult, error)
	AddMatchVideos(ctx context.Context, videos map[string]string) (*WriteResult, error)
	AddEventMedia(ctx context.Context, videoIDs []string) (*WriteResult, error)
}

// API is the whole client surface.
type API interface {
	ReadAPI
	TrustedAPI
}
