package tba

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/cockroachdb/errors"

	"github.com/frc1418/go-tba/internal/middleware"
	"github.com/frc1418/go-tba/internal/paths"
	"github.com/frc1418/go-tba/internal/response"
	"github.com/frc1418/go-tba/record"
)

// get performs one read. notModified is true for a 304 answered in silent
// mode, in which case body is nil and so is err.
func (c *Client) get(ctx context.Context, path string, opts []RequestOption) (body []byte, notModified bool, err error) {
	o := collectOptions(opts)
	if o.conditional() {
		ctx = middleware.WithoutCache(ctx)
	}

	path = paths.Clean(path)
	req, err := c.http.NewRequest(ctx, http.MethodGet, ReadPrefix+path, nil)
	if err != nil {
		return nil, false, err
	}

	var sentSince string
	if !o.ifModifiedSince.IsZero() {
		sentSince = o.ifModifiedSince.UTC().Format(http.TimeFormat)
		req.Header.Set("If-Modified-Since", sentSince)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, false, err
	}

	meta := ResponseMeta{
		StatusCode: resp.StatusCode,
		Cache:      resp.Header.Get(middleware.CacheStatusHeader),
	}
	lastModified := resp.Header.Get("Last-Modified")

	// A 304 carries no JSON body; it is settled before any decoding.
	if resp.StatusCode == http.StatusNotModified {
		_, _ = response.Read(resp)

		if lastModified == "" {
			lastModified = sentSince
		}
		meta.NotModified = true
		meta.LastModified = parseLastModified(lastModified)
		o.report(path, meta)

		if o.strict {
			return nil, false, &NotModifiedError{Path: path, LastModified: meta.LastModified}
		}
		return nil, true, nil
	}

	body, err = response.Read(resp)
	if err != nil {
		return nil, false, errors.Wrapf(err, "GET %s", path)
	}

	if lastModified != "" {
		meta.LastModified = parseLastModified(lastModified)
	}
	o.report(path, meta)

	if err := checkResponse(path, resp.StatusCode, body); err != nil {
		return nil, false, err
	}

	if o.lastModified != nil && lastModified != "" {
		*o.lastModified = meta.LastModified
	}

	return body, false, nil
}

func (o *requestOptions) report(path string, meta ResponseMeta) {
	if o.meta != nil {
		*o.meta = meta
	}
	if o.observe != nil {
		o.observe(path, meta)
	}
}

// checkResponse turns an error payload of any status into *APIErrorList and
// any other non-2xx answer into *StatusError.
func checkResponse(path string, status int, body []byte) error {
	if pairs, ok := response.ExtractErrors(body); ok {
		list := &APIErrorList{
			StatusCode: status,
			Path:       path,
			Errors:     make([]APIError, len(pairs)),
		}
		for i, p := range pairs {
			list.Errors[i] = APIError{Kind: p.Kind, Message: p.Message}
		}
		return list
	}

	if !response.IsSuccess(status) {
		return &StatusError{
			StatusCode: status,
			Path:       path,
			Message:    response.ErrorMessage(body),
			Body:       body,
		}
	}

	return nil
}

// fetch reads path and decodes the body. A silent 304 yields the zero T.
func fetch[T any](ctx context.Context, c *Client, path string, decode func([]byte) (T, error), opts []RequestOption) (T, error) {
	var zero T

	body, notModified, err := c.get(ctx, path, opts)
	if err != nil || notModified {
		return zero, err
	}

	out, err := decode(body)
	if err != nil {
		return zero, errors.Wrapf(err, "failed to decode %s", path)
	}
	return out, nil
}

func decodeJSON[T any](body []byte) (T, error) {
	var out T
	//nolint:wrapcheck // fetch adds the path
	return out, json.Unmarshal(body, &out)
}

func getRecord(ctx context.Context, c *Client, path string, opts []RequestOption) (record.Record, error) {
	return fetch(ctx, c, path, record.Materialize, opts)
}

func getRecords(ctx context.Context, c *Client, path string, opts []RequestOption) ([]record.Record, error) {
	return fetch(ctx, c, path, record.MaterializeList, opts)
}

func getRecordMap(ctx context.Context, c *Client, path string, opts []RequestOption) (map[string]record.Record, error) {
	return fetch(ctx, c, path, record.MaterializeMap, opts)
}

func getKeys(ctx context.Context, c *Client, path string, opts []RequestOption) ([]string, error) {
	return fetch(ctx, c, path, decodeJSON[[]string], opts)
}

// Get reads any v3 path, such as "team/frc254/history", and returns the body
// unparsed. Error payloads and request options are handled as for every
// other read.
func (c *Client) Get(ctx context.Context, path string, opts ...RequestOption) (json.RawMessage, error) {
	return fetch(ctx, c, path, decodeJSON[json.RawMessage], opts)
}

// WriteResult is the server's answer to a trusted write.
type WriteResult struct {
	StatusCode int
	Body       json.RawMessage
}

// post signs and sends one trusted write using auth as captured by the caller.
func (c *Client) post(ctx context.Context, auth trustedAuth, template string, payload any) (*WriteResult, error) {
	if auth.eventKey == "" {
		return nil, ErrNoEventScope
	}
	if auth.id == "" || auth.secret == "" {
		return nil, ErrNoTrustedCredentials
	}

	path, err := paths.Trusted(template, auth.eventKey)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to encode payload for %s", path)
	}

	req, err := c.http.NewRequest(ctx, http.MethodPost, TrustedPrefix+path, data)
	if err != nil {
		return nil, err
	}
	req.Header.Set(headerAuthID, auth.id)
	req.Header.Set(headerAuthSig, c.signer.Sign(auth.secret, path, data))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}

	body, err := response.Read(resp)
	if err != nil {
		return nil, errors.Wrapf(err, "POST %s", path)
	}

	if err := checkResponse(path, resp.StatusCode, body); err != nil {
		return nil, err
	}

	return &WriteResult{StatusCode: resp.StatusCode, Body: body}, nil
}
