package tba

import (
	"context"

	"github.com/frc1418/go-tba/internal/paths"
)

// Trusted writes act on the event set by ClientConfig.EventKey or SetTrusted.
// Every payload is sent as JSON and signed with the auth secret. Calls made
// without an event or without credentials fail before any request.

// UpdateEventInfo replaces the editable event details.
func (c *Client) UpdateEventInfo(ctx context.Context, info any) (*WriteResult, error) {
	return c.post(ctx, c.trustedAuth(), paths.TrustedEventInfo, info)
}

// UpdateEventAlliances replaces the alliance selections, one list of team
// keys per alliance.
func (c *Client) UpdateEventAlliances(ctx context.Context, alliances [][]string) (*WriteResult, error) {
	return c.post(ctx, c.trustedAuth(), paths.TrustedAlliances, alliances)
}

// UpdateEventAwards replaces the event's awards.
func (c *Client) UpdateEventAwards(ctx context.Context, awards any) (*WriteResult, error) {
	return c.post(ctx, c.trustedAuth(), paths.TrustedAwards, awards)
}

// UpdateEventMatches creates or updates matches.
func (c *Client) UpdateEventMatches(ctx context.Context, matches any) (*WriteResult, error) {
	return c.post(ctx, c.trustedAuth(), paths.TrustedMatches, matches)
}

// DeleteEventMatches deletes the matches with the given short keys, such as
// "qm1". A nil slice deletes every match of the event.
func (c *Client) DeleteEventMatches(ctx context.Context, matchKeys []string) (*WriteResult, error) {
	auth := c.trustedAuth()
	if matchKeys == nil {
		return c.post(ctx, auth, paths.TrustedDeleteAll, auth.eventKey)
	}
	return c.post(ctx, auth, paths.TrustedDeleteMatch, matchKeys)
}

// UpdateEventRankings replaces the ranking table.
func (c *Client) UpdateEventRankings(ctx context.Context, rankings any) (*WriteResult, error) {
	return c.post(ctx, c.trustedAuth(), paths.TrustedRankings, rankings)
}

// UpdateEventTeamList replaces the list of attending team keys.
func (c *Client) UpdateEventTeamList(ctx context.Context, teamKeys []string) (*WriteResult, error) {
	return c.post(ctx, c.trustedAuth(), paths.TrustedTeamList, teamKeys)
}

// AddMatchVideos links YouTube video ids to matches, keyed by short match key.
func (c *Client) AddMatchVideos(ctx context.Context, videos map[string]string) (*WriteResult, error) {
	return c.post(ctx, c.trustedAuth(), paths.TrustedMatchVideos, videos)
}

// AddEventMedia adds YouTube video ids to the event itself.
func (c *Client) AddEventMedia(ctx context.Context, videoIDs []string) (*WriteResult, error) {
	return c.post(ctx, c.trustedAuth(), paths.TrustedEventMedia, videoIDs)
}
