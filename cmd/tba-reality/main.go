// Command tba-reality checks the client against the live API: every probe
// reports its status, timing and the fields that came back null or missing.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	tba "github.com/frc1418/go-tba"
	"github.com/frc1418/go-tba/record"
)

type probeResult struct {
	Endpoint      string
	Success       bool
	Error         string
	Duration      time.Duration
	StatusCode    int
	Fields        int
	NullFields    []string
	MissingFields []string
	JSONSample    string
}

// probe is one read call and the fields its first record must carry.
type probe struct {
	endpoint string
	expect   []string
	call     func(ctx context.Context, c *tba.Client, opts ...tba.RequestOption) (any, error)
}

var probes = []probe{
	{
		endpoint: "status",
		expect:   []string{"current_season", "max_season", "is_datafeed_down"},
		call: func(ctx context.Context, c *tba.Client, opts ...tba.RequestOption) (any, error) {
			return c.Status(ctx, opts...)
		},
	},
	{
		endpoint: "team/frc1418",
		expect:   []string{"key", "team_number", "nickname", "rookie_year"},
		call: func(ctx context.Context, c *tba.Client, opts ...tba.RequestOption) (any, error) {
			return c.Team(ctx, tba.TeamNumber(1418), tba.Full, opts...)
		},
	},
	{
		endpoint: "team/frc1418/robots",
		expect:   []string{"key", "year", "robot_name"},
		call: func(ctx context.Context, c *tba.Client, opts ...tba.RequestOption) (any, error) {
			return c.TeamRobots(ctx, tba.TeamNumber(1418), opts...)
		},
	},
	{
		endpoint: "events/2019/simple",
		expect:   []string{"key", "name", "event_type", "start_date"},
		call: func(ctx context.Context, c *tba.Client, opts ...tba.RequestOption) (any, error) {
			return c.Events(ctx, 2019, tba.Simple, opts...)
		},
	},
	{
		endpoint: "match/2019cmptx_f1m1",
		expect:   []string{"key", "comp_level", "alliances", "score_breakdown"},
		call: func(ctx context.Context, c *tba.Client, opts ...tba.RequestOption) (any, error) {
			return c.MatchBySpec(ctx, tba.MatchSpec{Event: "2019cmptx", Type: tba.Final, Number: 1, Round: 1}, tba.Full, opts...)
		},
	},
	{
		endpoint: "district/2019chs/rankings",
		expect:   []string{"team_key", "rank", "point_total"},
		call: func(ctx context.Context, c *tba.Client, opts ...tba.RequestOption) (any, error) {
			return c.DistrictRankings(ctx, "2019chs", opts...)
		},
	},
	{
		endpoint: "insights/leaderboards/2019",
		expect:   []string{"data", "name", "year"},
		call: func(ctx context.Context, c *tba.Client, opts ...tba.RequestOption) (any, error) {
			return c.InsightsLeaderboards(ctx, 2019, opts...)
		},
	},
}

func main() {
	var (
		authKey string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:          "tba-reality",
		Short:        "Probe the live Blue Alliance API",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if authKey == "" {
				return errors.New("auth key is required; use --auth-key or TBA_AUTH_KEY")
			}

			client, err := tba.New(authKey)
			if err != nil {
				return errors.Wrap(err, "failed to create client")
			}

			results := make([]probeResult, 0, len(probes))
			for _, p := range probes {
				results = append(results, runProbe(cmd.Context(), client, p, verbose))
			}

			if issues := printSummary(results, verbose); issues > 0 {
				return errors.Newf("found %d issues", issues)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&authKey, "auth-key", os.Getenv("TBA_AUTH_KEY"), "read API key (or use TBA_AUTH_KEY env)")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "print a JSON sample of every response")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runProbe(ctx context.Context, client *tba.Client, p probe, verbose bool) probeResult {
	result := probeResult{Endpoint: p.endpoint}

	var meta tba.ResponseMeta
	start := time.Now()
	value, err := p.call(ctx, client, tba.WithResponseMeta(&meta))
	result.Duration = time.Since(start)
	result.StatusCode = meta.StatusCode

	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.Success = true

	sample, ok := first(value)
	if !ok {
		result.Error = "empty response"
		return result
	}

	result.Fields = sample.Len()
	for _, key := range sample.Keys() {
		if v, _ := sample.Get(key); v == nil {
			result.NullFields = append(result.NullFields, key)
		}
	}
	for _, key := range p.expect {
		if !sample.Has(key) {
			result.MissingFields = append(result.MissingFields, key)
		}
	}

	if verbose {
		data, _ := json.MarshalIndent(sample, "", "  ")
		result.JSONSample = string(data)
	}

	return result
}

// first returns the record to inspect: the value itself or a listing's first element.
func first(v any) (record.Record, bool) {
	switch value := v.(type) {
	case record.Record:
		return value, !value.IsZero()
	case []record.Record:
		if len(value) == 0 {
			return record.Record{}, false
		}
		return value[0], true
	default:
		return record.Record{}, false
	}
}

func printSummary(results []probeResult, verbose bool) int {
	fmt.Println()
	fmt.Println("Probe Summary")
	fmt.Println(strings.Repeat("=", 61))
	fmt.Println()

	issues := 0
	for _, result := range results {
		status := "ok  "
		switch {
		case !result.Success || result.Error != "":
			status = "FAIL"
			issues++
		case len(result.MissingFields) > 0:
			status = "WARN"
		}

		fmt.Printf("%s %s (HTTP %d, %v, %d fields)\n", status, result.Endpoint, result.StatusCode, result.Duration, result.Fields)

		if result.Error != "" {
			fmt.Printf("     Error: %s\n", result.Error)
		}
		if len(result.MissingFields) > 0 {
			fmt.Printf("     Missing: %s\n", strings.Join(result.MissingFields, ", "))
			issues += len(result.MissingFields)
		}
		if len(result.NullFields) > 0 {
			fmt.Printf("     Null: %s\n", strings.Join(result.NullFields, ", "))
		}
		if verbose && result.JSONSample != "" {
			fmt.Printf("     JSON Sample:\n%s\n", indentJSON(result.JSONSample, "       "))
		}
	}

	fmt.Println()
	fmt.Println(strings.Repeat("=", 61))
	if issues == 0 {
		fmt.Println("All probes passed.")
	} else {
		fmt.Printf("Found %d issues\n", issues)
	}

	return issues
}

func indentJSON(jsonStr, indent string) string {
	lines := strings.Split(jsonStr, "\n")
	for i, line := range lines {
		lines[i] = indent + line
	}
	return strings.Join(lines, "\n")
}
