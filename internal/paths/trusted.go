package paths

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// TrustedPrefix is the write API prefix that also takes part in request signing.
const TrustedPrefix = "/api/trusted/v1/"

// Write path templates. The single %s is the event key.
const (
	TrustedEventInfo   = "event/%s/info/update"
	TrustedAlliances   = "event/%s/alliance_selections/update"
	TrustedAwards      = "event/%s/awards/update"
	TrustedMatches     = "event/%s/matches/update"
	TrustedDeleteMatch = "event/%s/matches/delete"
	TrustedDeleteAll   = "event/%s/matches/delete_all"
	TrustedRankings    = "event/%s/rankings/update"
	TrustedTeamList    = "event/%s/team_list/update"
	TrustedMatchVideos = "event/%s/match_videos/add"
	TrustedEventMedia  = "event/%s/media/add"
)

const eventPlaceholder = "%s"

// Trusted resolves a write template for eventKey.
func Trusted(template, eventKey string) (string, error) {
	if eventKey == "" {
		return "", errors.Wrap(ErrInvalidArgument, "trusted path needs an event key")
	}
	if strings.Count(template, eventPlaceholder) != 1 {
		return "", errors.Wrapf(ErrInvalidArgument, "template %q must contain exactly one event placeholder", template)
	}
	return strings.Replace(template, eventPlaceholder, eventKey, 1), nil
}
