// Package response reads API response bodies and recognises the API's two
// error shapes: {"Errors": [{kind: message}, ...]} and {"Error": message}.
package response

import (
	"bytes"
	"encoding/json"
	"io"
	"maps"
	"net/http"
	"slices"

	"github.com/cockroachdb/errors"
)

// ErrorPair is one (kind, message) entry of an Errors payload.
type ErrorPair struct {
	Kind    string
	Message string
}

// Read drains and closes resp.Body.
func Read(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response body")
	}
	return body, nil
}

// IsSuccess reports whether statusCode is 2xx.
func IsSuccess(statusCode int) bool {
	return statusCode >= http.StatusOK && statusCode < http.StatusMultipleChoices
}

// ExtractErrors returns the entries of an Errors payload in server order.
// ok is false when body is not a JSON object with a non-null "Errors" key.
// Entries holding more than one key contribute every key, sorted.
func ExtractErrors(body []byte) ([]ErrorPair, bool) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, false
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, false
	}

	raw, ok := envelope["Errors"]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, false
	}

	var entries []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		// An Errors key of an unexpected shape still marks the body as failed.
		return []ErrorPair{{Kind: "Errors", Message: string(raw)}}, true
	}

	pairs := make([]ErrorPair, 0, len(entries))
	for _, entry := range entries {
		for _, kind := range slices.Sorted(maps.Keys(entry)) {
			pairs = append(pairs, ErrorPair{Kind: kind, Message: text(entry[kind])})
		}
	}

	return pairs, true
}

// ErrorMessage returns the "Error" string the API sends with some 4xx
// responses, or "" when absent.
func ErrorMessage(body []byte) string {
	var payload struct {
		Error string `json:"Error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Error
}

func text(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
