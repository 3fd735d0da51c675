package middleware

import (
	"bufio"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frc1418/go-tba/observability"
)

func TestObservabilityLogsRequestID(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Last-Modified", "Wed, 21 Oct 2015 07:28:00 GMT")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	var buf bytes.Buffer
	logger := observability.NewZerolog(zerolog.New(&buf).Level(zerolog.DebugLevel))
	client := &http.Client{Transport: Observability(logger, nil)(http.DefaultTransport)}

	resp, err := client.Get(server.URL + "/api/v3/team/frc1418")
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	var entries []map[string]any
	scanner := bufio.NewScanner(&buf)
	for scanner.Scan() {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		entries = append(entries, entry)
	}
	require.Len(t, entries, 2)

	assert.Equal(t, "http request started", entries[0]["message"])
	assert.Equal(t, "http request completed", entries[1]["message"])
	assert.NotEmpty(t, entries[0]["request_id"])
	assert.Equal(t, entries[0]["request_id"], entries[1]["request_id"])
	assert.Equal(t, "Wed, 21 Oct 2015 07:28:00 GMT", entries[1]["last_modified"])
}

func TestNormalizePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "team key and season",
			input:    "/api/v3/team/frc254/events/2019/simple",
			expected: "/api/v3/team/:team/events/:n/simple",
		},
		{
			name:     "playoff match key",
			input:    "/api/v3/match/2019casj_qf1m2",
			expected: "/api/v3/match/:match",
		},
		{
			name:     "qualification match key",
			input:    "/api/v3/match/2019casj_qm14/simple",
			expected: "/api/v3/match/:match/simple",
		},
		{
			name:     "event key",
			input:    "/api/v3/event/2019casj/oprs",
			expected: "/api/v3/event/:key/oprs",
		},
		{
			name:     "team at event",
			input:    "/api/v3/team/frc1418/event/2019vahay/matches/keys",
			expected: "/api/v3/team/:team/event/:key/matches/keys",
		},
		{
			name:     "team listing page",
			input:    "/api/v3/teams/2019/3",
			expected: "/api/v3/teams/:n/:n",
		},
		{
			name:     "trusted write",
			input:    "/api/trusted/v1/event/2019casj/info/update",
			expected: "/api/trusted/v1/event/:key/info/update",
		},
		{
			name:     "district abbreviation is kept",
			input:    "/api/v3/district/fim/history",
			expected: "/api/v3/district/fim/history",
		},
		{
			name:     "status",
			input:    "/api/v3/status",
			expected: "/api/v3/status",
		},
		{
			name:     "Empty path",
			input:    "",
			expected: "",
		},
		{
			name:     "Root path",
			input:    "/",
			expected: "/",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			result := normalizePath(testCase.input)
			if result != testCase.expected {
				t.Errorf("normalizePath(%q) = %q, want %q", testCase.input, result, testCase.expected)
			}
		})
	}
}

func BenchmarkNormalizePath(b *testing.B) {
	paths := []string{
		"/api/v3/team/frc254/events/2019/simple",
		"/api/v3/match/2019casj_qf1m2",
		"/api/v3/event/2019casj/oprs",
		"/api/v3/status",
	}

	b.ResetTimer()
	for b.Loop() {
		for _, path := range paths {
			_ = normalizePath(path)
		}
	}
}
