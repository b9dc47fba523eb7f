package skyscanner

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"farescan/lib/dateutil"
	"farescan/lib/fares"
	"farescan/lib/restyutil"
	"farescan/lib/telemetry"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const scenarioRouteDate = `{
	"Quotes": [
		{"Id": "q1", "QuoteRequestId": "qr1", "Price": 100},
		{"Id": "q2", "QuoteRequestId": "qr2", "Price": 50}
	],
	"QuoteRequests": [
		{"Id": "qr1", "AgentId": "agentA"},
		{"Id": "qr2", "AgentId": "agentB"}
	],
	"Agents": [
		{"Id": "agentA", "Name": "Acme"},
		{"Id": "agentB", "Name": "Globe"}
	]
}`

const scenarioWhoSells = `{
	"Agents": [
		{"AgentId": "agentA"},
		{"AgentId": "agentB", "Routes": [
			{"OriginPlaceId": "LOND", "DestinationPlaceId": "PARI", "DeepLink": "/deal/2"}
		]}
	]
}`

func scenarioUpstream(t testing.TB) *upstream {
	u := newUpstream(t)
	u.handle(pattern_autosuggest, func(w http.ResponseWriter, r *http.Request) {
		switch r.PathValue("query") {
		case "london":
			w.Write([]byte(`[{"PlaceName": "London", "PlaceId": "LOND"}, {"PlaceName": "London Stansted", "PlaceId": "STN"}]`))
		case "paris":
			w.Write([]byte(`[{"PlaceName": "Paris Orly", "PlaceId": "ORY"}, {"PlaceName": "Paris", "PlaceId": "PARI"}]`))
		default:
			w.Write([]byte(`[]`))
		}
	})
	u.handle(pattern_search_page, func(w http.ResponseWriter, r *http.Request) {
		w.Write(searchPageTest)
	})
	u.handle(pattern_route_date, writeBody(scenarioRouteDate))
	u.handle(pattern_who_sells, writeBody(scenarioWhoSells))
	return u
}

var scenarioRequest = SearchRequest{
	From:   "London",
	To:     "PARIS",
	Depart: "25/12/2024",
	Return: "2/1/2025",
}

func TestSearch(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "skyscanner")
	defer cleanup()

	u := scenarioUpstream(t)

	client := u.client(func(opts *ClientOptions) {
		opts.Extractor = ScriptExtractor{}
	})
	results, err := client.Search(context.Background(), scenarioRequest)
	require.NoError(t, err)

	diff := cmp.Diff([]fares.Result{
		{Agent: "Globe", Price: 50, Link: u.server.URL + "/deal/2"},
	}, results)
	if diff != "" {
		t.Fatal(diff)
	}

	require.Equal(t, []string{
		"/dataservices/geo/v1.0/autosuggest/uk/en/london",
		"/dataservices/geo/v1.0/autosuggest/uk/en/paris",
		"/flights/LOND/PARI/241225/250102/x.html",
		"/dataservices/routedate/v2.0/3f1d2c4b-5a6e-4f70-8a9b-0c1d2e3f4a5b",
		"/dataservices/whosells/v1.0/UK/gbp/en/LOND/PARI/2024-12-25/2025-01-02?requestId=9b8a7c6d-5e4f-4a3b-2c1d-0e9f8a7b6c5d&src=alsoflies",
	}, u.uris)
	for _, ua := range u.userAgents {
		require.Equal(t, DefaultUserAgent, ua)
	}
}

func TestSearchRawExtractor(t *testing.T) {
	u := scenarioUpstream(t)

	results, err := u.client().Search(context.Background(), scenarioRequest)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Contains(t, u.uris, "/dataservices/routedate/v2.0/ZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZ")
}

func TestSearchStopsAtFailingStage(t *testing.T) {
	testCases := []struct {
		name     string
		req      SearchRequest
		expected error
		reached  []string
		skipped  []string
	}{
		{
			name: "unknown origin",
			req: SearchRequest{
				From: "atlantis", To: "paris",
				Depart: "25/12/2024", Return: "2/1/2025",
			},
			expected: ErrResolution,
			reached:  []string{pattern_autosuggest},
			skipped:  []string{pattern_search_page, pattern_route_date, pattern_who_sells},
		},
		{
			name: "malformed date",
			req: SearchRequest{
				From: "london", To: "paris",
				Depart: "2024-12-25", Return: "2/1/2025",
			},
			expected: dateutil.ErrDateFormat,
			reached:  []string{pattern_autosuggest},
			skipped:  []string{pattern_search_page, pattern_route_date, pattern_who_sells},
		},
		{
			name: "invalid calendar date",
			req: SearchRequest{
				From: "london", To: "paris",
				Depart: "25/12/2024", Return: "31/02/2025",
			},
			expected: dateutil.ErrDateFormat,
			reached:  []string{pattern_autosuggest},
			skipped:  []string{pattern_search_page, pattern_route_date, pattern_who_sells},
		},
	}

	for _, test := range testCases {
		u := scenarioUpstream(t)
		_, err := u.client().Search(context.Background(), test.req)
		require.ErrorIs(t, err, test.expected, test.name)
		for _, pattern := range test.reached {
			require.NotZero(t, u.count(pattern), test.name)
		}
		for _, pattern := range test.skipped {
			require.Zero(t, u.count(pattern), test.name)
		}
	}
}

func TestSearchRouteDataFailureSkipsSellers(t *testing.T) {
	u := newUpstream(t)
	u.handle(pattern_autosuggest, writeBody(`[{"PlaceName": "X", "PlaceId": "X"}, {"PlaceName": "Y", "PlaceId": "Y"}]`))
	u.handle(pattern_search_page, func(w http.ResponseWriter, r *http.Request) {
		w.Write(searchPageTest)
	})
	u.handle(pattern_route_date, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	u.handle(pattern_who_sells, writeBody(scenarioWhoSells))

	_, err := u.client().Search(context.Background(), scenarioRequest)
	require.ErrorIs(t, err, ErrDataLoad)
	require.Equal(t, 1, u.count(pattern_route_date))
	require.Zero(t, u.count(pattern_who_sells))
}

func TestSearchNoOffers(t *testing.T) {
	u := newUpstream(t)
	u.handle(pattern_autosuggest, writeBody(`[{"PlaceName": "X", "PlaceId": "X"}, {"PlaceName": "Y", "PlaceId": "Y"}]`))
	u.handle(pattern_search_page, func(w http.ResponseWriter, r *http.Request) {
		w.Write(searchPageTest)
	})
	u.handle(pattern_route_date, writeBody(`{"Quotes": [], "QuoteRequests": [], "Agents": []}`))
	u.handle(pattern_who_sells, writeBody(`{"Agents": []}`))

	results, err := u.client().Search(context.Background(), scenarioRequest)
	require.NoError(t, err)
	require.Empty(t, results)
}

func TestSearchDumpsHttpMessages(t *testing.T) {
	u := scenarioUpstream(t)
	dir := filepath.Join(t.TempDir(), "dump")
	out, err := restyutil.NewFilesystemOutput(dir)
	require.NoError(t, err)

	client := u.client(func(opts *ClientOptions) {
		opts.InstrumentOutput = out
	})
	results, err := client.Search(context.Background(), scenarioRequest)
	require.NoError(t, err)
	require.Len(t, results, 1)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 5)

	autosuggest, err := os.ReadFile(filepath.Join(dir, "1"))
	require.NoError(t, err)
	require.Contains(t, string(autosuggest), "---- REQUEST ----")
	require.Contains(t, string(autosuggest), "<NO BODY>")
	require.Contains(t, string(autosuggest), "/dataservices/geo/v1.0/autosuggest/uk/en/london")
}
