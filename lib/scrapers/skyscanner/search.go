package skyscanner

import (
	"context"
	"log/slog"

	"farescan/lib/dateutil"
	"farescan/lib/fares"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
)

type SearchRequest struct {
	From string
	To   string
	// DD/MM/YYYY
	Depart string
	// DD/MM/YYYY
	Return string
}

type encodedDates struct {
	departCompact string
	returnCompact string
	departIso     string
	returnIso     string
}

func encodeDates(depart, ret string) (encodedDates, error) {
	departTime, err := dateutil.Parse(depart)
	if err != nil {
		return encodedDates{}, err
	}
	returnTime, err := dateutil.Parse(ret)
	if err != nil {
		return encodedDates{}, err
	}
	return encodedDates{
		departCompact: dateutil.Compact(departTime),
		returnCompact: dateutil.Compact(returnTime),
		departIso:     dateutil.ISO(departTime),
		returnIso:     dateutil.ISO(returnTime),
	}, nil
}

// Search finds the offers for a return trip between two free-text places,
// cheapest first. Any failing stage aborts the whole search.
func (c *Client) Search(ctx context.Context, req SearchRequest) ([]fares.Result, error) {
	ctx, span := tracer.Start(ctx, "client:Search")
	defer span.End()

	results, err := c.search(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "search failed")
		searchCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "failed")))
		return nil, err
	}

	searchCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "ok")))
	offersHistogram.Record(ctx, int64(len(results)))
	span.SetAttributes(attribute.Int("results", len(results)))
	return results, nil
}

func (c *Client) search(ctx context.Context, req SearchRequest) ([]fares.Result, error) {
	origin, err := c.ResolvePlace(ctx, req.From)
	if err != nil {
		return nil, err
	}
	destination, err := c.ResolvePlace(ctx, req.To)
	if err != nil {
		return nil, err
	}

	dates, err := encodeDates(req.Depart, req.Return)
	if err != nil {
		return nil, err
	}

	session, err := c.FetchSession(ctx, origin, destination, dates.departCompact, dates.returnCompact)
	if err != nil {
		return nil, err
	}
	slog.DebugContext(
		ctx, "search session created",
		"session_key", session.SessionKey,
		"request_id", session.RequestId,
	)

	routeData, err := c.FetchRouteData(ctx, session.SessionKey)
	if err != nil {
		return nil, err
	}
	sellers, err := c.FetchSellers(
		ctx,
		origin, destination,
		dates.departIso, dates.returnIso,
		session.RequestId,
	)
	if err != nil {
		return nil, err
	}

	results := fares.Join(routeData, sellers, origin, destination, c.baseUrl)
	slog.DebugContext(
		ctx, "joined offers",
		"quotes", len(routeData.Quotes),
		"results", len(results),
	)
	return results, nil
}
