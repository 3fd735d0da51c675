package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/titanous/json5"

	tba "github.com/frc1418/go-tba"
)

func (a *app) trustedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trusted",
		Short: "Update event data through the trusted write API",
		Long: `Trusted commands write to the event set by trusted.event_key using the
trusted.auth_id and trusted.auth_secret credentials issued for it.`,
	}

	cmd.AddCommand(
		a.teamListCmd(),
		a.deleteMatchesCmd(),
		a.matchVideosCmd(),
		a.eventMediaCmd(),
		a.alliancesCmd(),
		a.uploadCmd("matches", "Create or update matches from a JSON file"),
		a.uploadCmd("rankings", "Replace the rankings from a JSON file"),
		a.uploadCmd("awards", "Replace the awards from a JSON file"),
		a.uploadCmd("info", "Replace the event details from a JSON file"),
	)

	return cmd
}

// write performs one trusted call and reports the response status.
func (a *app) write(cmd *cobra.Command, call func(ctx context.Context) (*tba.WriteResult, error)) error {
	if a.client.EventKey() == "" {
		return errors.Wrap(tba.ErrNoEventScope, "set trusted.event_key or TBA_TRUSTED_EVENT_KEY")
	}

	res, err := call(cmd.Context())
	if err != nil {
		return err
	}

	a.logger.Info().Str("event", a.client.EventKey()).Int("status", res.StatusCode).Msg("write accepted")

	out := cmd.OutOrStdout()
	if len(res.Body) > 0 {
		_, err = fmt.Fprintln(out, strings.TrimSpace(string(res.Body)))
		return errors.Wrap(err, "write output")
	}
	_, err = fmt.Fprintf(out, "%d %s\n", res.StatusCode, a.client.EventKey())
	return errors.Wrap(err, "write output")
}

func (a *app) teamListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "team-list <team>...",
		Short: "Replace the event's team list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keys := make([]string, len(args))
			for i, arg := range args {
				keys[i] = tba.TeamKeyOf(parseTeam(arg))
			}
			return a.write(cmd, func(ctx context.Context) (*tba.WriteResult, error) {
				return a.client.UpdateEventTeamList(ctx, keys)
			})
		},
	}
}

func (a *app) deleteMatchesCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "delete-matches [match]...",
		Short: "Delete matches by short key, such as qm1, or all of them",
		RunE: func(cmd *cobra.Command, args []string) error {
			if all == (len(args) > 0) {
				return errors.Wrap(tba.ErrInvalidArgument, "give match keys or --all, not both")
			}

			var keys []string
			if !all {
				keys = args
			}
			return a.write(cmd, func(ctx context.Context) (*tba.WriteResult, error) {
				return a.client.DeleteEventMatches(ctx, keys)
			})
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "delete every match of the event")

	return cmd
}

func (a *app) matchVideosCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "match-videos <match=video>...",
		Short:   "Link YouTube videos to matches",
		Example: "  tba trusted match-videos qm1=aFZy8iibMD0 sf1m1=RpSgUrsghv4",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			videos := make(map[string]string, len(args))
			for _, arg := range args {
				match, video, ok := strings.Cut(arg, "=")
				if !ok || match == "" || video == "" {
					return errors.Wrapf(tba.ErrInvalidArgument, "expected match=video, got %q", arg)
				}
				videos[match] = video
			}
			return a.write(cmd, func(ctx context.Context) (*tba.WriteResult, error) {
				return a.client.AddMatchVideos(ctx, videos)
			})
		},
	}
}

func (a *app) eventMediaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "event-media <video>...",
		Short: "Add YouTube videos to the event",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.write(cmd, func(ctx context.Context) (*tba.WriteResult, error) {
				return a.client.AddEventMedia(ctx, args)
			})
		},
	}
}

func (a *app) alliancesCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "alliances <team,team,team>...",
		Short:   "Replace the alliance selections, one argument per alliance",
		Example: "  tba trusted alliances frc971,frc254,frc1662 frc1678,frc1323,frc5026",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			alliances := make([][]string, len(args))
			for i, arg := range args {
				for _, team := range splitList(arg) {
					alliances[i] = append(alliances[i], tba.TeamKeyOf(parseTeam(team)))
				}
			}
			return a.write(cmd, func(ctx context.Context) (*tba.WriteResult, error) {
				return a.client.UpdateEventAlliances(ctx, alliances)
			})
		},
	}
}

// uploadCmd sends a JSON document read from a file, or stdin for "-".
func (a *app) uploadCmd(name, short string) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <file|->",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := readJSON(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			upload := a.uploader(name)
			return a.write(cmd, func(ctx context.Context) (*tba.WriteResult, error) {
				return upload(ctx, payload)
			})
		},
	}
}

// uploader is resolved at run time; the client only exists after flag parsing.
func (a *app) uploader(name string) func(context.Context, any) (*tba.WriteResult, error) {
	switch name {
	case "matches":
		return a.client.UpdateEventMatches
	case "rankings":
		return a.client.UpdateEventRankings
	case "awards":
		return a.client.UpdateEventAwards
	default:
		return a.client.UpdateEventInfo
	}
}

// readJSON loads a JSON5 document and re-encodes it as strict JSON, so
// hand-written upload files may carry comments and trailing commas.
// Malformed input fails before anything is signed and sent.
func readJSON(stdin io.Reader, path string) (json.RawMessage, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}

	var doc any
	if err := json5.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(tba.ErrInvalidArgument, "%s is not valid JSON: %v", path, err)
	}

	out, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.Wrapf(err, "encode %s", path)
	}
	return json.RawMessage(out), nil
}
