package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frc1418/go-tba/record"
)

func mustRecord(t *testing.T, data string) record.Record {
	t.Helper()

	r, err := record.Materialize([]byte(data))
	require.NoError(t, err)
	return r
}

func TestNewPrinterRejectsUnknownFormat(t *testing.T) {
	t.Parallel()

	_, err := newPrinter(&bytes.Buffer{}, "yaml", nil)
	require.Error(t, err)
}

func TestPrinterTable(t *testing.T) {
	t.Parallel()

	teams := []record.Record{
		mustRecord(t, `{"key":"frc254","nickname":"The Cheesy Poofs","rookie_year":1999}`),
		mustRecord(t, `{"key":"frc1418","nickname":"Vae Victis"}`),
	}

	tests := []struct {
		name        string
		columns     []string
		value       any
		contains    []string
		notContains []string
	}{
		{
			name:     "rows with chosen columns",
			columns:  []string{"key", "rookie_year"},
			value:    teams,
			contains: []string{"frc254", "1999", "frc1418", "2 rows"},
			// absent fields print as empty cells
			notContains: []string{"Vae Victis"},
		},
		{
			name:     "rows with union of keys",
			value:    teams,
			contains: []string{"NICKNAME", "ROOKIE_YEAR", "The Cheesy Poofs"},
		},
		{
			name:     "single record as fields",
			value:    teams[0],
			contains: []string{"FIELD", "nickname", "The Cheesy Poofs"},
		},
		{
			name:     "record map keyed",
			columns:  []string{"overall_status_str"},
			value:    map[string]record.Record{"2019vahay": mustRecord(t, `{"overall_status_str":"Won"}`)},
			contains: []string{"2019vahay", "Won"},
		},
		{
			name:     "keys",
			value:    []string{"frc1", "frc4"},
			contains: []string{"KEY", "frc1", "frc4"},
		},
		{
			name:     "years",
			value:    []int{2004, 2005},
			contains: []string{"VALUE", "2004", "2005"},
		},
		{
			name:     "fallback to json",
			value:    map[string]any{"team": 1},
			contains: []string{`"team": 1`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			p, err := newPrinter(&buf, formatTable, tt.columns)
			require.NoError(t, err)
			require.NoError(t, p.print(tt.value))

			out := buf.String()
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
			for _, unwanted := range tt.notContains {
				assert.NotContains(t, out, unwanted)
			}
		})
	}
}

func TestPrinterJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p, err := newPrinter(&buf, formatJSON, []string{"ignored"})
	require.NoError(t, err)
	require.NoError(t, p.print(mustRecord(t, `{"key":"frc1418","motto":null}`)))

	assert.JSONEq(t, `{"key":"frc1418","motto":null}`, buf.String())
	assert.True(t, strings.HasSuffix(buf.String(), "\n"))
}

func TestCell(t *testing.T) {
	t.Parallel()

	r := mustRecord(t, `{"name":"Bolt","rank":3,"dq":false,"score":12.5,"missing":null,"record":{"wins":9}}`)

	assert.Equal(t, "Bolt", cell(r, "name"))
	assert.Equal(t, "3", cell(r, "rank"))
	assert.Equal(t, "false", cell(r, "dq"))
	assert.Equal(t, "12.5", cell(r, "score"))
	assert.Empty(t, cell(r, "missing"))
	assert.Empty(t, cell(r, "absent"))
	assert.Equal(t, `{"wins":9}`, cell(r, "record"))
}

func TestSplitList(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"key", "name"}, splitList(" key, ,name,"))
	assert.Nil(t, splitList(""))
}
