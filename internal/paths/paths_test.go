package paths_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frc1418/go-tba/internal/paths"
)

type teamName string

func TestTeamKey(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, 1, 254, 1418, 9999} {
		assert.Equal(t, "frc"+strconv.Itoa(n), paths.TeamKey(n))
	}

	for _, s := range []string{"frc254", "", "254", "anything"} {
		assert.Equal(t, s, paths.TeamKey(s))
	}

	assert.Equal(t, "frc1418", paths.TeamKey(teamName("frc1418")))
}

func TestMatchKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		spec paths.MatchSpec
		want string
	}{
		{
			name: "playoff with year",
			spec: paths.MatchSpec{Year: 2017, Event: "chcmp", Type: paths.SemiFinal, Number: 2, Round: 1},
			want: "2017chcmp_sf2m1",
		},
		{
			name: "digit-leading event ignores year",
			spec: paths.MatchSpec{Event: "2017chcmp", Type: paths.SemiFinal, Number: 2, Round: 1},
			want: "2017chcmp_sf2m1",
		},
		{
			name: "digit-leading event with year set",
			spec: paths.MatchSpec{Year: 2030, Event: "2017chcmp", Type: paths.SemiFinal, Number: 2, Round: 1},
			want: "2017chcmp_sf2m1",
		},
		{
			name: "qualification default type",
			spec: paths.MatchSpec{Year: 2019, Event: "cmptx", Number: 12},
			want: "2019cmptx_qm12",
		},
		{
			name: "qualification ignores round",
			spec: paths.MatchSpec{Year: 2019, Event: "cmptx", Type: paths.Qualification, Number: 12, Round: 4},
			want: "2019cmptx_qm12",
		},
		{
			name: "final",
			spec: paths.MatchSpec{Year: 2018, Event: "casj", Type: paths.Final, Number: 1, Round: 3},
			want: "2018casj_f1m3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := paths.MatchKey(tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchKeyInvalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		spec paths.MatchSpec
	}{
		{name: "missing number", spec: paths.MatchSpec{Year: 2019, Event: "cmptx"}},
		{name: "missing event", spec: paths.MatchSpec{Year: 2019, Number: 1}},
		{name: "missing year", spec: paths.MatchSpec{Event: "cmptx", Number: 1}},
		{name: "unknown type", spec: paths.MatchSpec{Year: 2019, Event: "cmptx", Type: "xx", Number: 1}},
		{name: "playoff without round", spec: paths.MatchSpec{Year: 2019, Event: "cmptx", Type: paths.QuarterFinal, Number: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := paths.MatchKey(tt.spec)
			require.ErrorIs(t, err, paths.ErrInvalidArgument)
		})
	}
}

func TestTeamsPage(t *testing.T) {
	t.Parallel()

	p, err := paths.TeamsPage(0, 0, paths.Full)
	require.NoError(t, err)
	assert.Equal(t, "teams/0", p)

	p, err = paths.TeamsPage(3, 2019, paths.Simple)
	require.NoError(t, err)
	assert.Equal(t, "teams/2019/3/simple", p)

	p, err = paths.TeamsPage(1, 0, paths.Keys)
	require.NoError(t, err)
	assert.Equal(t, "teams/1/keys", p)

	_, err = paths.TeamsPage(-1, 0, paths.Full)
	require.ErrorIs(t, err, paths.ErrInvalidArgument)
}

func TestBuilders(t *testing.T) {
	t.Parallel()

	mustMatches := func(p string, err error) string {
		require.NoError(t, err)
		return p
	}

	tests := []struct {
		got  string
		want string
	}{
		{paths.Status(), "status"},
		{paths.Team("frc254", paths.Full), "team/frc254"},
		{paths.Team("frc254", paths.Simple), "team/frc254/simple"},
		{paths.Team("frc254", paths.Keys), "team/frc254"},
		{paths.TeamEvents("frc254", 0, paths.Full), "team/frc254/events"},
		{paths.TeamEvents("frc254", 2019, paths.Keys), "team/frc254/events/2019/keys"},
		{paths.TeamAwards("frc254", "", 0), "team/frc254/awards"},
		{paths.TeamAwards("frc254", "", 2018), "team/frc254/awards/2018"},
		{paths.TeamAwards("frc254", "2018casj", 2018), "team/frc254/event/2018casj/awards"},
		{mustMatches(paths.TeamMatches("frc254", "2018casj", 0, paths.Simple)), "team/frc254/event/2018casj/matches/simple"},
		{mustMatches(paths.TeamMatches("frc254", "", 2018, paths.Keys)), "team/frc254/matches/2018/keys"},
		{paths.TeamYears("frc254"), "team/frc254/years_participated"},
		{paths.TeamMedia("frc254", "", 0), "team/frc254/media"},
		{paths.TeamMedia("frc254", "", 2019), "team/frc254/media/2019"},
		{paths.TeamMedia("frc254", "avatar", 2019), "team/frc254/media/tag/avatar/2019"},
		{paths.TeamRobots("frc254"), "team/frc254/robots"},
		{paths.TeamDistricts("frc254"), "team/frc254/districts"},
		{paths.TeamSocialMedia("frc254"), "team/frc254/social_media"},
		{paths.TeamEventStatus("frc254", "2019cmptx"), "team/frc254/event/2019cmptx/status"},
		{mustMatches(paths.TeamEventStatuses("frc254", 2019)), "team/frc254/events/2019/statuses"},
		{paths.Events(2019, paths.Simple), "events/2019/simple"},
		{paths.Event("2019cmptx", paths.Full), "event/2019cmptx"},
		{paths.EventResource("2019cmptx", "oprs"), "event/2019cmptx/oprs"},
		{paths.EventTeams("2019cmptx", paths.Keys), "event/2019cmptx/teams/keys"},
		{paths.EventTeamStatuses("2019cmptx"), "event/2019cmptx/teams/statuses"},
		{paths.EventMatches("2019cmptx", paths.Simple), "event/2019cmptx/matches/simple"},
		{paths.Match("2019cmptx_qm1", paths.Simple), "match/2019cmptx_qm1/simple"},
		{paths.Districts(2019), "districts/2019"},
		{paths.DistrictEvents("2019fim", paths.Keys), "district/2019fim/events/keys"},
		{paths.DistrictRankings("2019fim"), "district/2019fim/rankings"},
		{paths.DistrictTeams("2019fim", paths.Simple), "district/2019fim/teams/simple"},
		{paths.DistrictHistory("fim"), "district/fim/history"},
		{paths.DistrictAwards("2019fim"), "district/2019fim/awards"},
		{paths.InsightsLeaderboards(2019), "insights/leaderboards/2019"},
		{paths.InsightsNotables(2019), "insights/notables/2019"},
		{paths.Clean("//team/frc254"), "team/frc254"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.got)
	}
}

func TestPathErrors(t *testing.T) {
	t.Parallel()

	_, err := paths.TeamMatches("frc254", "", 0, paths.Full)
	require.ErrorIs(t, err, paths.ErrInvalidArgument)

	_, err = paths.TeamEventStatuses("frc254", 0)
	require.ErrorIs(t, err, paths.ErrInvalidArgument)
}

func TestTrusted(t *testing.T) {
	t.Parallel()

	p, err := paths.Trusted(paths.TrustedTeamList, "2019casj")
	require.NoError(t, err)
	assert.Equal(t, "event/2019casj/team_list/update", p)

	p, err = paths.Trusted(paths.TrustedDeleteAll, "2019casj")
	require.NoError(t, err)
	assert.Equal(t, "event/2019casj/matches/delete_all", p)

	_, err = paths.Trusted(paths.TrustedTeamList, "")
	require.ErrorIs(t, err, paths.ErrInvalidArgument)

	_, err = paths.Trusted("event/info", "2019casj")
	require.ErrorIs(t, err, paths.ErrInvalidArgument)
}

func TestDetailSuffix(t *testing.T) {
	t.Parallel()

	assert.Empty(t, paths.Full.Suffix())
	assert.Equal(t, "/simple", paths.Simple.Suffix())
	assert.Equal(t, "/keys", paths.Keys.Suffix())
	assert.Equal(t, "keys", paths.Keys.String())
}
