// Package paths builds API path strings. Every function here is pure.
package paths

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// PageSize is the number of teams the API returns per listing page.
const PageSize = 500

// ErrInvalidArgument marks malformed identifiers and options rejected before
// any request is sent.
var ErrInvalidArgument = errors.New("invalid argument")

// Detail selects how much of each resource a listing endpoint returns.
type Detail int

const (
	// Full returns complete records.
	Full Detail = iota
	// Simple returns the reduced field set.
	Simple
	// Keys returns only the identifier strings.
	Keys
)

// Suffix returns the path suffix for d, including the leading slash.
func (d Detail) Suffix() string {
	switch d {
	case Simple:
		return "/simple"
	case Keys:
		return "/keys"
	default:
		return ""
	}
}

func (d Detail) String() string {
	switch d {
	case Simple:
		return "simple"
	case Keys:
		return "keys"
	default:
		return "full"
	}
}

// TeamKey normalises a team number or key. Strings pass through unchanged and
// integers gain the "frc" prefix.
func TeamKey[T ~int | ~string](id T) string {
	v := reflect.ValueOf(id)
	if v.Kind() == reflect.String {
		return v.String()
	}
	return "frc" + strconv.FormatInt(v.Int(), 10)
}

func year(y int) string {
	if y == 0 {
		return ""
	}
	return "/" + strconv.Itoa(y)
}

// Status is the API status endpoint.
func Status() string { return "status" }

// TeamsPage lists one page of teams, optionally restricted to a season.
func TeamsPage(page, season int, d Detail) (string, error) {
	if page < 0 {
		return "", errors.Wrapf(ErrInvalidArgument, "page must be non-negative, got %d", page)
	}
	return fmt.Sprintf("teams%s/%d%s", year(season), page, d.Suffix()), nil
}

// Team is a single team. Keys is not meaningful here and is treated as Full.
func Team(team string, d Detail) string {
	if d == Keys {
		d = Full
	}
	return "team/" + team + d.Suffix()
}

// TeamEvents lists a team's events, optionally for one season.
func TeamEvents(team string, season int, d Detail) string {
	return "team/" + team + "/events" + year(season) + d.Suffix()
}

// TeamAwards lists a team's awards, narrowed to one event or one season when given.
// The event takes precedence over the season.
func TeamAwards(team, event string, season int) string {
	switch {
	case event != "":
		return "team/" + team + "/event/" + event + "/awards"
	case season != 0:
		return "team/" + team + "/awards/" + strconv.Itoa(season)
	default:
		return "team/" + team + "/awards"
	}
}

// TeamMatches lists a team's matches at one event or across one season.
func TeamMatches(team, event string, season int, d Detail) (string, error) {
	switch {
	case event != "":
		return "team/" + team + "/event/" + event + "/matches" + d.Suffix(), nil
	case season != 0:
		return "team/" + team + "/matches/" + strconv.Itoa(season) + d.Suffix(), nil
	default:
		return "", errors.Wrap(ErrInvalidArgument, "team matches need an event or a year")
	}
}

// TeamYears lists the seasons a team competed in.
func TeamYears(team string) string { return "team/" + team + "/years_participated" }

// TeamMedia lists a team's media, filtered by tag and season when given.
func TeamMedia(team, tag string, season int) string {
	p := "team/" + team + "/media"
	if tag != "" {
		p += "/tag/" + tag
	}
	return p + year(season)
}

// TeamRobots lists a team's named robots.
func TeamRobots(team string) string { return "team/" + team + "/robots" }

// TeamDistricts lists the districts a team has belonged to.
func TeamDistricts(team string) string { return "team/" + team + "/districts" }

// TeamSocialMedia lists a team's social media profiles.
func TeamSocialMedia(team string) string { return "team/" + team + "/social_media" }

// TeamEventStatus is a team's status at one event.
func TeamEventStatus(team, event string) string {
	return "team/" + team + "/event/" + event + "/status"
}

// TeamEventStatuses maps event keys to a team's status for one season.
func TeamEventStatuses(team string, season int) (string, error) {
	if season == 0 {
		return "", errors.Wrap(ErrInvalidArgument, "team event statuses need a year")
	}
	return "team/" + team + "/events/" + strconv.Itoa(season) + "/statuses", nil
}

// Events lists the events of a season.
func Events(season int, d Detail) string {
	return "events/" + strconv.Itoa(season) + d.Suffix()
}

// Event is a single event. Keys is treated as Full.
func Event(event string, d Detail) string {
	if d == Keys {
		d = Full
	}
	return "event/" + event + d.Suffix()
}

// EventResource is one of the event sub-resources that take no options,
// such as "alliances", "oprs" or "rankings".
func EventResource(event, resource string) string {
	return "event/" + event + "/" + resource
}

// EventTeams lists the teams attending an event.
func EventTeams(event string, d Detail) string {
	return "event/" + event + "/teams" + d.Suffix()
}

// EventTeamStatuses maps team keys to their status at an event.
func EventTeamStatuses(event string) string {
	return "event/" + event + "/teams/statuses"
}

// EventMatches lists the matches of an event.
func EventMatches(event string, d Detail) string {
	return "event/" + event + "/matches" + d.Suffix()
}

// Match is a single match. Keys is treated as Full.
func Match(key string, d Detail) string {
	if d == Keys {
		d = Full
	}
	return "match/" + key + d.Suffix()
}

// Districts lists the districts active in a season.
func Districts(season int) string { return "districts/" + strconv.Itoa(season) }

// DistrictEvents lists a district's events.
func DistrictEvents(district string, d Detail) string {
	return "district/" + district + "/events" + d.Suffix()
}

// DistrictRankings is a district's team ranking table.
func DistrictRankings(district string) string { return "district/" + district + "/rankings" }

// DistrictTeams lists a district's teams.
func DistrictTeams(district string, d Detail) string {
	return "district/" + district + "/teams" + d.Suffix()
}

// DistrictHistory lists every season of a district by its abbreviation.
func DistrictHistory(abbreviation string) string {
	return "district/" + abbreviation + "/history"
}

// DistrictAwards lists the awards given at a district's events.
func DistrictAwards(district string) string { return "district/" + district + "/awards" }

// InsightsLeaderboards is the season leaderboard insight set.
func InsightsLeaderboards(season int) string {
	return "insights/leaderboards/" + strconv.Itoa(season)
}

// InsightsNotables is the season notables insight set.
func InsightsNotables(season int) string {
	return "insights/notables/" + strconv.Itoa(season)
}

// Clean strips leading slashes so raw caller paths join cleanly with a prefix.
func Clean(p string) string {
	return strings.TrimLeft(p, "/")
}
