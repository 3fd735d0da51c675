// Package tba is a client for The Blue Alliance read API (v3) and trusted
// write API (v1).
//
// Responses are not mapped to fixed structs. Every JSON object is wrapped in
// a record.Record, so fields the server adds later are available without a
// library release, and an absent field is an error instead of a silent zero.
//
// # Example Usage
//
//	client, err := tba.New("your-read-key")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	team, err := client.Team(ctx, tba.TeamNumber(1418), tba.Full)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	nickname, _ := team.Str("nickname")
//
// # Conditional Requests
//
// Every read accepts RequestOptions. IfModifiedSince sends If-Modified-Since;
// an unchanged resource returns the zero value with a nil error, or a
// *NotModifiedError when FailOnNotModified is also given. WithLastModified
// captures the Last-Modified header of a fresh answer. Conditional calls never
// read or fill the response cache.
//
//	var lm tba.LastModified
//	events, err := client.TeamEvents(ctx, tba.TeamNumber(1418), 2019, tba.Simple,
//	    tba.WithLastModified(&lm))
//	// later
//	events, err = client.TeamEvents(ctx, tba.TeamNumber(1418), 2019, tba.Simple,
//	    tba.IfModifiedSince(lm.Time))
//
// # Errors
//
// A body of the form {"Errors": [...]} becomes an *APIErrorList whatever the
// status. Other non-2xx answers become a *StatusError. Both match ErrAPI.
// Invalid identifiers fail with ErrInvalidArgument before a request is made.
//
// # Trusted Writes
//
// Writes need an auth id, secret and event key, given in ClientConfig or via
// SetTrusted. Each request is signed with md5(secret + path + body).
//
//	client.SetTrusted("id", "secret", "2019cmptx")
//	_, err = client.UpdateEventTeamList(ctx, []string{"frc254", "frc1418"})
package tba
