package skyscanner

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"farescan/lib/fares"

	"github.com/cenkalti/backoff/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// SettlePolicy controls how the route-date endpoint is polled. Right after a
// session is created the endpoint answers with no content for a short while.
type SettlePolicy struct {
	// fixed wait before the first request
	Delay time.Duration
	// number of additional attempts made while the endpoint has no content yet,
	// 0 means a single attempt
	MaxRetries int
	// exponential backoff bounds between retries, zero values fall back to
	// the backoff package defaults
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

func DefaultSettlePolicy() SettlePolicy {
	return SettlePolicy{
		Delay:          time.Millisecond * 800,
		MaxRetries:     0,
		InitialBackoff: time.Millisecond * 500,
		MaxBackoff:     time.Second * 4,
	}
}

func (p SettlePolicy) wait(ctx context.Context) error {
	if p.Delay <= 0 {
		return nil
	}
	timer := time.NewTimer(p.Delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (p SettlePolicy) backOff(ctx context.Context) backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	if p.InitialBackoff > 0 {
		exp.InitialInterval = p.InitialBackoff
	}
	if p.MaxBackoff > 0 {
		exp.MaxInterval = p.MaxBackoff
	}
	exp.MaxElapsedTime = 0

	retries := p.MaxRetries
	if retries < 0 {
		retries = 0
	}
	return backoff.WithContext(backoff.WithMaxRetries(exp, uint64(retries)), ctx)
}

var errNoContent = errors.New("endpoint has no content yet")

// FetchRouteData waits for the session to settle and then loads its quotes,
// quote requests and agents.
func (c *Client) FetchRouteData(ctx context.Context, sessionKey string) (fares.RouteGraph, error) {
	ctx, span := tracer.Start(ctx, "client:FetchRouteData")
	defer span.End()

	err := c.settle.wait(ctx)
	if err != nil {
		span.SetStatus(codes.Error, "cancelled while settling")
		return fares.RouteGraph{}, err
	}

	attempts := 0
	var graph fares.RouteGraph
	operation := func() error {
		attempts++
		res, err := c.request(ctx).
			SetPathParam("sessionKey", sessionKey).
			Get(path_route_date)
		if err != nil {
			return backoff.Permanent(err)
		}
		if res.StatusCode() == http.StatusNoContent || len(bytes.TrimSpace(res.Body())) == 0 {
			return &DataLoadError{Endpoint: endpoint_route_date, Err: errNoContent}
		}
		err = decodeJson(span, endpoint_route_date, res, &graph)
		if err != nil {
			return backoff.Permanent(err)
		}
		return nil
	}

	err = backoff.RetryNotify(
		operation,
		c.settle.backOff(ctx),
		func(err error, next time.Duration) {
			slog.DebugContext(
				ctx, "route data not ready, retrying",
				"err", err,
				"next", next,
			)
		},
	)
	span.SetAttributes(attribute.Int("attempts", attempts))
	if err != nil {
		return fares.RouteGraph{}, failFetch(span, err)
	}

	span.SetAttributes(
		attribute.Int("quotes", len(graph.Quotes)),
		attribute.Int("quote_requests", len(graph.QuoteRequests)),
		attribute.Int("agents", len(graph.Agents)),
	)
	return graph, nil
}
