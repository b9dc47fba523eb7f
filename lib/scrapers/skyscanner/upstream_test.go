package skyscanner

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// upstream is a fake of the search site, handlers are registered per test and
// every request is counted by path pattern.
type upstream struct {
	mux    *http.ServeMux
	server *httptest.Server

	lock       sync.Mutex
	hits       map[string]int
	userAgents []string
	uris       []string
}

func newUpstream(t testing.TB) *upstream {
	u := &upstream{
		mux:  http.NewServeMux(),
		hits: map[string]int{},
	}
	u.server = httptest.NewServer(u.mux)
	t.Cleanup(u.server.Close)
	return u
}

func (u *upstream) handle(pattern string, handler http.HandlerFunc) {
	u.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		u.lock.Lock()
		u.hits[pattern]++
		u.userAgents = append(u.userAgents, r.UserAgent())
		u.uris = append(u.uris, r.RequestURI)
		u.lock.Unlock()
		handler(w, r)
	})
}

func (u *upstream) count(pattern string) int {
	u.lock.Lock()
	defer u.lock.Unlock()
	return u.hits[pattern]
}

func (u *upstream) client(modify ...func(opts *ClientOptions)) *Client {
	opts := DefaultClientOptions()
	opts.BaseUrl = u.server.URL
	opts.RequestsPerSecond = 0
	opts.Settle.Delay = 0
	for _, m := range modify {
		m(&opts)
	}
	return NewClient(opts)
}

func writeBody(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("content-type", "application/json")
		w.Write([]byte(body))
	}
}

const (
	pattern_autosuggest = "GET /dataservices/geo/v1.0/autosuggest/uk/en/{query}"
	pattern_search_page = "GET /flights/{from}/{to}/{depart}/{return}/x.html"
	pattern_route_date  = "GET /dataservices/routedate/v2.0/{sessionKey}"
	pattern_who_sells   = "GET /dataservices/whosells/v1.0/UK/gbp/en/{from}/{to}/{depart}/{return}"
)
