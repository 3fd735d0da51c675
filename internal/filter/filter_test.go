package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frc1418/go-tba/record"
)

func records(t *testing.T) []record.Record {
	t.Helper()

	data := `[
		{"key":"frc254","team_number":254,"nickname":"The Cheesy Poofs","city":"San Jose"},
		{"key":"frc1418","team_number":1418,"nickname":"Vae Victis","city":"Falls Church","motto":null},
		{"key":"frc9999","nickname":"No Number"}
	]`
	rs, err := record.MaterializeList([]byte(data))
	require.NoError(t, err)
	return rs
}

func keysOf(t *testing.T, rs []record.Record) []string {
	t.Helper()

	out := make([]string, len(rs))
	for i, r := range rs {
		key, err := r.Str("key")
		require.NoError(t, err)
		out[i] = key
	}
	return out
}

func TestCompileErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		expression string
		reason     string
	}{
		{name: "empty", expression: "  ", reason: "empty expression"},
		{name: "syntax", expression: "team_number >", reason: "failed to compile expression"},
		{name: "not boolean", expression: `"frc1418"`, reason: "failed to compile expression"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Compile(tt.expression)
			require.Error(t, err)

			var compileErr *CompilationError
			require.ErrorAs(t, err, &compileErr)
			assert.Equal(t, tt.reason, compileErr.Reason)
		})
	}
}

func TestRecords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		expression string
		want       []string
	}{
		{name: "numeric comparison", expression: "team_number > 1000", want: []string{"frc1418"}},
		{name: "missing field never matches", expression: "team_number < 100000", want: []string{"frc254", "frc1418"}},
		{name: "case-insensitive contains", expression: `icontains(city, "falls")`, want: []string{"frc1418"}},
		{name: "contains operator", expression: `nickname contains "o"`, want: []string{"frc254", "frc9999"}},
		{name: "builtin lower", expression: `lower(nickname) == "vae victis"`, want: []string{"frc1418"}},
		{name: "null field is present", expression: `hasField("motto")`, want: []string{"frc1418"}},
		{name: "absent field is nil", expression: "team_number == nil", want: []string{"frc9999"}},
		{name: "combined", expression: `team_number >= 254 and not (city startsWith "Falls")`, want: []string{"frc254"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f, err := Compile(tt.expression)
			require.NoError(t, err)
			assert.Equal(t, tt.expression, f.Expression())

			assert.Equal(t, tt.want, keysOf(t, f.Records(records(t))))
		})
	}
}

func TestRecordMap(t *testing.T) {
	t.Parallel()

	statuses, err := record.MaterializeMap([]byte(`{
		"frc1418": {"overall_status_str":"Won"},
		"frc254": {"overall_status_str":"Lost"},
		"frc971": null
	}`))
	require.NoError(t, err)

	f, err := Compile(`mapKey == "frc254" or overall_status_str == "Won"`)
	require.NoError(t, err)

	got := f.RecordMap(statuses)
	assert.Len(t, got, 2)
	assert.Contains(t, got, "frc1418")
	assert.Contains(t, got, "frc254")
}

func TestStrings(t *testing.T) {
	t.Parallel()

	f, err := Compile(`mapKey startsWith "frc14"`)
	require.NoError(t, err)

	assert.Equal(t, []string{"frc1418", "frc1403"}, f.Strings([]string{"frc254", "frc1418", "frc1403"}))
}
