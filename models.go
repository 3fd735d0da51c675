package tba

import (
	"strconv"

	"github.com/frc1418/go-tba/internal/paths"
	"github.com/frc1418/go-tba/record"
)

// Entity names for the records each endpoint returns. They are aliases, so
// every one of them has the full record.Record API.
type (
	Team               = record.Record
	Event              = record.Record
	Match              = record.Record
	Award              = record.Record
	District           = record.Record
	Media              = record.Record
	Robot              = record.Record
	Profile            = record.Record
	Alliance           = record.Record
	DistrictPoints     = record.Record
	Insights           = record.Record
	OPRs               = record.Record
	Predictions        = record.Record
	Rankings           = record.Record
	DistrictRanking    = record.Record
	Status             = record.Record
	TeamStatus         = record.Record
	InsightLeaderboard = record.Record
	InsightNotable     = record.Record
	APIStatus          = record.Record
)

// Detail selects full, simple or key-only listings.
type Detail = paths.Detail

// Listing detail levels.
const (
	Full   = paths.Full
	Simple = paths.Simple
	Keys   = paths.Keys
)

// MatchSpec and MatchType describe a match by its parts.
type (
	MatchSpec = paths.MatchSpec
	MatchType = paths.MatchType
)

// Match phases.
const (
	Qualification = paths.Qualification
	EighthFinal   = paths.EighthFinal
	QuarterFinal  = paths.QuarterFinal
	SemiFinal     = paths.SemiFinal
	Final         = paths.Final
)

// PageSize is the number of teams per listing page.
const PageSize = paths.PageSize

// TeamID identifies a team either by number or by key. It is implemented by
// TeamNumber and TeamKey only.
type TeamID interface {
	teamKey() string
	String() string
}

// TeamNumber is a team number such as 1418.
type TeamNumber int

func (n TeamNumber) teamKey() string { return paths.TeamKey(n) }

func (n TeamNumber) String() string { return strconv.Itoa(int(n)) }

// TeamKey is a full team key such as "frc1418". It is sent unchanged.
type TeamKey string

func (k TeamKey) teamKey() string { return paths.TeamKey(k) }

func (k TeamKey) String() string { return string(k) }

// TeamKeyOf returns the key form of id, such as "frc1418" for TeamNumber(1418).
func TeamKeyOf(id TeamID) string { return id.teamKey() }

// MatchKey builds a match key such as "2017chcmp_sf2m1" from its parts.
func MatchKey(spec MatchSpec) (string, error) {
	//nolint:wrapcheck // paths errors already wrap ErrInvalidArgument
	return paths.MatchKey(spec)
}
