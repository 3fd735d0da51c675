package paths

import (
	"strconv"

	"github.com/cockroachdb/errors"
)

// MatchType is the competition-phase code embedded in a match key.
type MatchType string

// Competition phases in the order they are played.
const (
	Qualification MatchType = "qm"
	EighthFinal   MatchType = "ef"
	QuarterFinal  MatchType = "qf"
	SemiFinal     MatchType = "sf"
	Final         MatchType = "f"
)

// Valid reports whether t is one of the known phase codes.
func (t MatchType) Valid() bool {
	switch t {
	case Qualification, EighthFinal, QuarterFinal, SemiFinal, Final:
		return true
	default:
		return false
	}
}

// MatchSpec identifies a match by its parts instead of a pre-formed key.
type MatchSpec struct {
	// Year is required unless Event already starts with the season, as "2017chcmp" does.
	Year int
	// Event is the event code, with or without the season prefix.
	Event string
	// Type defaults to Qualification.
	Type MatchType
	// Number follows the phase code and must be positive.
	Number int
	// Round is written after the "m" of playoff keys. Ignored for qualifications.
	Round int
}

// MatchKey synthesises the server's match key from its parts, for example
// 2017chcmp_sf2m1 or 2019cmptx_qm12.
func MatchKey(spec MatchSpec) (string, error) {
	if spec.Event == "" {
		return "", errors.Wrap(ErrInvalidArgument, "match key needs an event")
	}
	if spec.Number <= 0 {
		return "", errors.Wrapf(ErrInvalidArgument, "match number must be positive, got %d", spec.Number)
	}

	matchType := spec.Type
	if matchType == "" {
		matchType = Qualification
	}
	if !matchType.Valid() {
		return "", errors.Wrapf(ErrInvalidArgument, "unknown match type %q", matchType)
	}

	prefix := ""
	if !startsWithDigit(spec.Event) {
		if spec.Year == 0 {
			return "", errors.Wrapf(ErrInvalidArgument, "event %q has no season prefix and no year was given", spec.Event)
		}
		prefix = strconv.Itoa(spec.Year)
	}

	key := prefix + spec.Event + "_" + string(matchType) + strconv.Itoa(spec.Number)

	if matchType != Qualification {
		if spec.Round <= 0 {
			return "", errors.Wrapf(ErrInvalidArgument, "%s match needs a positive round, got %d", matchType, spec.Round)
		}
		key += "m" + strconv.Itoa(spec.Round)
	}

	return key, nil
}

func startsWithDigit(s string) bool {
	return s != "" && s[0] >= '0' && s[0] <= '9'
}
