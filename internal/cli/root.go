// Package cli implements the tba command line tool.
package cli

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	tba "github.com/frc1418/go-tba"
	"github.com/frc1418/go-tba/internal/config"
	"github.com/frc1418/go-tba/internal/filter"
	"github.com/frc1418/go-tba/observability"
	"github.com/frc1418/go-tba/record"
)

// app carries the state shared by every command of one invocation.
type app struct {
	cfgFile    string
	logLevel   string
	output     string
	columns    string
	filterExpr string

	// conditional request flags
	ifModifiedSince string
	lastModified    bool

	stats       bool
	statsReader *sdkmetric.ManualReader

	cfg      *config.Config
	logger   zerolog.Logger
	client   *tba.Client
	selector *filter.Filter
}

// NewRootCommand builds the command tree.
func NewRootCommand(version string) *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "tba",
		Short: "Query The Blue Alliance API",
		Long: `tba reads teams, events, matches and districts from The Blue Alliance
read API and, with trusted credentials, updates event data through the
write API.

Configuration comes from config.yaml (current directory, ~/.config/tba or
/etc/tba) and TBA_* environment variables such as TBA_AUTH_KEY.`,
		Version:            version,
		SilenceUsage:       true,
		PersistentPreRunE:  a.initialize,
		PersistentPostRunE: a.finish,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is ./config.yaml)")
	flags.StringVar(&a.logLevel, "log-level", "", "override logging.level (debug, info, warn, error)")
	flags.StringVarP(&a.output, "output", "o", formatJSON, "output format: json or table")
	flags.StringVar(&a.columns, "columns", "", "comma-separated fields shown by --output table")
	flags.StringVarP(&a.filterExpr, "filter", "f", "", `keep listing entries matching an expression, e.g. "team_number > 1000"`)
	flags.StringVar(&a.ifModifiedSince, "if-modified-since", "", "only return data changed after this time (HTTP date, RFC 3339 or YYYY-MM-DD)")
	flags.BoolVar(&a.lastModified, "last-modified", false, "print the Last-Modified header to stderr")
	flags.BoolVar(&a.stats, "stats", false, "print request statistics to stderr")

	rootCmd.AddCommand(
		a.statusCmd(),
		a.teamCmd(),
		a.teamsCmd(),
		a.teamEventsCmd(),
		a.eventCmd(),
		a.eventsCmd(),
		a.eventTeamsCmd(),
		a.eventMatchesCmd(),
		a.eventRankingsCmd(),
		a.matchCmd(),
		a.districtsCmd(),
		a.districtRankingsCmd(),
		a.getCmd(),
		a.trustedCmd(),
	)

	return rootCmd
}

// Execute runs the command tree and exits non-zero on failure.
func Execute(version string) {
	if err := NewRootCommand(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// initialize loads the configuration and creates the client.
func (a *app) initialize(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	a.cfg = cfg

	a.logger, err = setupLogger(cfg.Logging, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	if a.filterExpr != "" {
		a.selector, err = filter.Compile(a.filterExpr)
		if err != nil {
			return errors.Mark(errors.Wrap(err, "invalid --filter"), tba.ErrInvalidArgument)
		}
	}

	clientCfg := cfg.ClientConfig()
	clientCfg.Logger = observability.NewZerolog(a.logger)
	if a.stats {
		clientCfg.Metrics, a.statsReader, err = newStats()
		if err != nil {
			return err
		}
	}

	a.client, err = tba.NewWithConfig(clientCfg)
	if err != nil {
		return errors.Wrap(err, "failed to create client")
	}

	a.logger.Debug().Str("base_url", cfg.BaseURL).Msg("client ready")
	return nil
}

// finish prints the request statistics when --stats is set.
func (a *app) finish(cmd *cobra.Command, _ []string) error {
	if a.statsReader == nil {
		return nil
	}

	s, err := collectStats(cmd.Context(), a.statsReader)
	if err != nil {
		return err
	}
	s.print(cmd.ErrOrStderr())
	return nil
}

// setupLogger configures the zerolog logger. Colour is only used on a terminal.
func setupLogger(cfg config.LoggingConfig, w io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.Nop(), errors.Newf("invalid logging level: %s", cfg.Level)
	}

	if cfg.Format == "json" {
		return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
	}

	noColor := !cfg.Color
	if f, ok := w.(*os.File); !ok || (!isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())) {
		noColor = true
	}

	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    noColor,
	}

	return zerolog.New(output).Level(level).With().Timestamp().Logger(), nil
}

func (a *app) printer(cmd *cobra.Command, defaultColumns ...string) (*printer, error) {
	columns := splitList(a.columns)
	if len(columns) == 0 {
		columns = defaultColumns
	}
	return newPrinter(cmd.OutOrStdout(), a.output, columns)
}

// request bundles the per-call options derived from the conditional flags.
type request struct {
	opts         []tba.RequestOption
	meta         tba.ResponseMeta
	lastModified tba.LastModified
}

func (a *app) newRequest() (*request, error) {
	r := &request{}
	r.opts = append(r.opts, tba.WithResponseMeta(&r.meta))
	if a.lastModified {
		// The out-parameter makes the read skip the cache, so the printed
		// timestamp comes from the server.
		r.opts = append(r.opts, tba.WithLastModified(&r.lastModified))
	}

	if a.ifModifiedSince != "" {
		since, err := parseTime(a.ifModifiedSince)
		if err != nil {
			return nil, err
		}
		r.opts = append(r.opts, tba.IfModifiedSince(since))
	}

	return r, nil
}

// run performs one read and prints its result, or a not-modified notice.
func run[T any](cmd *cobra.Command, a *app, columns []string, call func(ctx context.Context, opts []tba.RequestOption) (T, error)) error {
	req, err := a.newRequest()
	if err != nil {
		return err
	}

	p, err := a.printer(cmd, columns...)
	if err != nil {
		return err
	}

	value, err := call(cmd.Context(), req.opts)
	if err != nil {
		return err
	}

	stderr := cmd.ErrOrStderr()
	if a.lastModified && !req.meta.LastModified.IsZero() {
		fmt.Fprintf(stderr, "Last-Modified: %s\n", req.meta.LastModified)
	}
	if req.meta.NotModified {
		fmt.Fprintf(stderr, "not modified since %s\n", req.meta.LastModified)
		return nil
	}

	return p.print(a.applyFilter(value))
}

// applyFilter narrows listings to the entries matching --filter. Single
// records and other values pass through.
func (a *app) applyFilter(v any) any {
	if a.selector == nil {
		return v
	}

	switch value := v.(type) {
	case []record.Record:
		kept := a.selector.Records(value)
		a.logger.Debug().Int("total", len(value)).Int("kept", len(kept)).Str("filter", a.filterExpr).Msg("filter applied")
		return kept
	case map[string]record.Record:
		return a.selector.RecordMap(value)
	case []string:
		return a.selector.Strings(value)
	default:
		return v
	}
}

// parseTime accepts an HTTP date, RFC 3339 or a plain date (UTC midnight).
func parseTime(s string) (time.Time, error) {
	if t, err := http.ParseTime(s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	return time.Time{}, errors.Wrapf(tba.ErrInvalidArgument, "cannot parse time %q", s)
}

// parseTeam reads "1418" as a team number and anything else as a key.
func parseTeam(s string) tba.TeamID {
	if n, err := strconv.Atoi(s); err == nil {
		return tba.TeamNumber(n)
	}
	return tba.TeamKey(s)
}

func parseYear(s string) (int, error) {
	year, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Wrapf(tba.ErrInvalidArgument, "year %q is not a number", s)
	}
	return year, nil
}

func detail(simple, keys bool) tba.Detail {
	switch {
	case keys:
		return tba.Keys
	case simple:
		return tba.Simple
	default:
		return tba.Full
	}
}
