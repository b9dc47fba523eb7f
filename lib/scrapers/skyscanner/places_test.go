package skyscanner

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"farescan/lib/fares"

	"github.com/stretchr/testify/require"
)

func TestResolvePlace(t *testing.T) {
	testCases := []struct {
		name     string
		query    string
		body     string
		expected fares.ID
	}{
		{
			name:  "exact match that is not first",
			query: "  PARIS ",
			body: `[
				{"PlaceName": "Paris Beauvais", "PlaceId": "BVA"},
				{"PlaceName": "Paris", "PlaceId": "PARI"},
				{"PlaceName": "paris", "PlaceId": "SECOND"}
			]`,
			expected: "PARI",
		},
		{
			name:  "no exact match falls back to first",
			query: "lon",
			body: `[
				{"PlaceName": "London", "PlaceId": "LOND"},
				{"PlaceName": "Long Beach", "PlaceId": "LGB"}
			]`,
			expected: "LOND",
		},
		{
			name:     "single candidate is accepted",
			query:    "edinburgh",
			body:     `[{"PlaceName": "Edinburgh", "PlaceId": "EDI"}]`,
			expected: "EDI",
		},
		{
			name:     "numeric place id",
			query:    "berlin",
			body:     `[{"PlaceName": "Berlin", "PlaceId": 4012}, {"PlaceName": "Berlin Brandenburg", "PlaceId": 4013}]`,
			expected: "4012",
		},
	}

	for _, test := range testCases {
		u := newUpstream(t)
		u.handle(pattern_autosuggest, writeBody(test.body))

		id, err := u.client().ResolvePlace(context.Background(), test.query)
		require.NoError(t, err, test.name)
		require.Equal(t, test.expected, id, test.name)
	}
}

func TestResolvePlaceSendsNormalizedQuery(t *testing.T) {
	u := newUpstream(t)
	var received string
	u.handle(pattern_autosuggest, func(w http.ResponseWriter, r *http.Request) {
		received = r.PathValue("query")
		w.Write([]byte(`[{"PlaceName": "New York", "PlaceId": "NYCA"}]`))
	})

	id, err := u.client().ResolvePlace(context.Background(), "  New York\n")
	require.NoError(t, err)
	require.Equal(t, fares.ID("NYCA"), id)
	require.Equal(t, "new york", received)
	require.Equal(t, []string{DefaultUserAgent}, u.userAgents)
}

func TestResolvePlaceSingleCandidateRejected(t *testing.T) {
	u := newUpstream(t)
	u.handle(pattern_autosuggest, writeBody(`[{"PlaceName": "Edinburgh", "PlaceId": "EDI"}]`))

	client := u.client(func(opts *ClientOptions) {
		opts.RejectSingleCandidate = true
	})
	_, err := client.ResolvePlace(context.Background(), "edinburgh")
	require.ErrorIs(t, err, ErrResolution)

	var resolutionErr *ResolutionError
	require.True(t, errors.As(err, &resolutionErr))
	require.Equal(t, "edinburgh", resolutionErr.Query)
}

func TestResolvePlaceFailures(t *testing.T) {
	testCases := []struct {
		name     string
		query    string
		status   int
		body     string
		expected error
	}{
		{name: "no candidates", query: "atlantis", body: `[]`, expected: ErrResolution},
		{name: "missing place id", query: "x", body: `[{"PlaceName": "X"}, {"PlaceName": "Y", "PlaceId": "Y"}]`, expected: ErrResolution},
		{name: "empty query", query: "   ", body: `[]`, expected: ErrResolution},
		{name: "not json", query: "paris", body: `<html>blocked</html>`, expected: ErrDataLoad},
		{name: "server error", query: "paris", status: http.StatusInternalServerError, body: `[]`, expected: ErrDataLoad},
	}

	for _, test := range testCases {
		u := newUpstream(t)
		u.handle(pattern_autosuggest, func(w http.ResponseWriter, r *http.Request) {
			if test.status != 0 {
				w.WriteHeader(test.status)
			}
			w.Write([]byte(test.body))
		})

		_, err := u.client().ResolvePlace(context.Background(), test.query)
		require.ErrorIs(t, err, test.expected, test.name)
	}
}
