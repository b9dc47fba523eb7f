package skyscanner

import (
	"bytes"
	"context"
	"io"
	"regexp"

	"farescan/lib/fares"
	"farescan/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Session holds the tokens a search results page hands out, both are single
// use per search.
type Session struct {
	SessionKey string
	RequestId  string
}

// TokenExtractor pulls the session tokens out of a search results page.
type TokenExtractor interface {
	Extract(ctx context.Context, body []byte) (Session, error)
}

var sessionKeyRegex = regexp.MustCompile(`"SessionKey":"([A-Za-z0-9_-]{36})","OriginPlace"`)
var requestIdRegex = regexp.MustCompile(`"RequestId":"([A-Za-z0-9_-]{36})","WebsiteLogId"`)

// firstMatch returns the first capture of `pattern` across `sources` in order.
func firstMatch(pattern *regexp.Regexp, sources []string) (string, bool) {
	for _, src := range sources {
		groups := pattern.FindStringSubmatch(src)
		if len(groups) >= 2 {
			return groups[1], true
		}
	}
	return "", false
}

func extractTokens(sources []string) (Session, error) {
	sessionKey, ok := firstMatch(sessionKeyRegex, sources)
	if !ok {
		return Session{}, &ParseError{Token: "SessionKey"}
	}
	requestId, ok := firstMatch(requestIdRegex, sources)
	if !ok {
		return Session{}, &ParseError{Token: "RequestId"}
	}
	return Session{SessionKey: sessionKey, RequestId: requestId}, nil
}

// RawExtractor matches the token patterns against the raw page body.
type RawExtractor struct{}

func (RawExtractor) Extract(ctx context.Context, body []byte) (Session, error) {
	return extractTokens([]string{string(body)})
}

// ScriptExtractor parses the page and only matches the token patterns against
// the contents of inline <script> elements, in document order.
type ScriptExtractor struct{}

func (e ScriptExtractor) Extract(ctx context.Context, body []byte) (Session, error) {
	return e.extractFrom(ctx, bytes.NewReader(body))
}

func (ScriptExtractor) extractFrom(ctx context.Context, page io.Reader) (Session, error) {
	doc, err := goquery.NewDocumentFromReader(page)
	if err != nil {
		return Session{}, &ParseError{Token: "search page", Err: err}
	}
	return extractTokens(htmlutil.ScriptTexts(ctx, doc))
}

// FetchSession loads the search results page for a route and date pair
// (dates in YYMMDD form) and extracts its session tokens.
func (c *Client) FetchSession(ctx context.Context, origin, destination fares.ID, departCompact, returnCompact string) (Session, error) {
	ctx, span := tracer.Start(ctx, "client:FetchSession")
	defer span.End()

	res, err := c.request(ctx).
		SetPathParams(map[string]string{
			"from":   origin.String(),
			"to":     destination.String(),
			"depart": departCompact,
			"return": returnCompact,
		}).
		Get(path_search_page)
	if err != nil {
		return Session{}, failFetch(span, err)
	}
	span.SetAttributes(
		attribute.Int("status", res.StatusCode()),
		attribute.Int("body_size", len(res.Body())),
	)

	session, err := c.extractor.Extract(ctx, res.Body())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to extract session tokens")
		return Session{}, err
	}
	return session, nil
}
