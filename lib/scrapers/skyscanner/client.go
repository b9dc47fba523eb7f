package skyscanner

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"farescan/lib/restyutil"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseUrl   = "http://www.skyscanner.net"
	DefaultUserAgent = "PyScanner (https://github.com/richardasaurus/pyscanner)"
)

const (
	endpoint_autosuggest = "autosuggest"
	endpoint_search_page = "search page"
	endpoint_route_date  = "route date"
	endpoint_who_sells   = "who sells"
)

const (
	path_autosuggest = "/dataservices/geo/v1.0/autosuggest/uk/en/{query}"
	path_search_page = "/flights/{from}/{to}/{depart}/{return}/x.html"
	path_route_date  = "/dataservices/routedate/v2.0/{sessionKey}"
	path_who_sells   = "/dataservices/whosells/v1.0/UK/gbp/en/{from}/{to}/{depart}/{return}"
)

type ClientOptions struct {
	// defaults to DefaultBaseUrl, deep links are made absolute against it too
	BaseUrl string
	// sent as the user-agent of every request, defaults to DefaultUserAgent
	UserAgent string
	// 0 means no timeout
	Timeout time.Duration
	// <= 0 means requests are not throttled
	RequestsPerSecond float64
	Settle            SettlePolicy
	// defaults to RawExtractor
	Extractor TokenExtractor
	// when set, an autosuggest response with exactly one candidate counts as no match
	RejectSingleCandidate bool
	// can be nil, receives a dump of every http message when set
	InstrumentOutput restyutil.InstrumentOutput
}

// DefaultClientOptions are the options that reproduce the site's expected
// client behavior.
func DefaultClientOptions() ClientOptions {
	return ClientOptions{
		BaseUrl:           DefaultBaseUrl,
		UserAgent:         DefaultUserAgent,
		Timeout:           time.Second * 30,
		RequestsPerSecond: 2,
		Settle:            DefaultSettlePolicy(),
		Extractor:         RawExtractor{},
	}
}

// Client drives the search site's web and data endpoints. It holds no state
// between searches so it can be reused.
type Client struct {
	http                  *resty.Client
	baseUrl               string
	settle                SettlePolicy
	extractor             TokenExtractor
	rejectSingleCandidate bool
}

func NewClient(opts ClientOptions) *Client {
	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Extractor == nil {
		opts.Extractor = RawExtractor{}
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	client.SetHeader("user-agent", opts.UserAgent)
	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}

	if opts.RequestsPerSecond > 0 {
		// max burst >= 2 just means that no requests will be dropped
		rateLimiter := rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 2)
		client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			return rateLimiter.Wait(req.Context())
		})
	}
	restyutil.InstrumentClient(client, tracer, opts.InstrumentOutput)

	return &Client{
		http:                  client,
		baseUrl:               opts.BaseUrl,
		settle:                opts.Settle,
		extractor:             opts.Extractor,
		rejectSingleCandidate: opts.RejectSingleCandidate,
	}
}

// decodeJson checks the response status and unmarshals its body into out,
// both failures are reported as a *DataLoadError.
func decodeJson(span trace.Span, endpoint string, res *resty.Response, out any) error {
	if res.IsError() {
		err := &DataLoadError{
			Endpoint: endpoint,
			Err:      fmt.Errorf("unexpected status %s", res.Status()),
		}
		span.SetStatus(codes.Error, "unexpected status")
		return err
	}
	err := json.Unmarshal(res.Body(), out)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse json response")
		return &DataLoadError{Endpoint: endpoint, Err: err}
	}
	return nil
}

func failFetch(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, "failed to fetch")
	return err
}

func (c *Client) request(ctx context.Context) *resty.Request {
	return c.http.R().SetContext(ctx)
}
