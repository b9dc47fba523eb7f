package skyscanner

import (
	"context"

	"farescan/lib/fares"

	"go.opentelemetry.io/otel/attribute"
)

// FetchSellers loads which agents sell the route, dates are in YYYY-MM-DD form.
func (c *Client) FetchSellers(
	ctx context.Context,
	origin, destination fares.ID,
	departIso, returnIso string,
	requestId string,
) (fares.SellerGraph, error) {
	ctx, span := tracer.Start(ctx, "client:FetchSellers")
	defer span.End()

	res, err := c.request(ctx).
		SetPathParams(map[string]string{
			"from":   origin.String(),
			"to":     destination.String(),
			"depart": departIso,
			"return": returnIso,
		}).
		SetQueryParams(map[string]string{
			"requestId": requestId,
			"src":       "alsoflies",
		}).
		Get(path_who_sells)
	if err != nil {
		return fares.SellerGraph{}, failFetch(span, err)
	}

	var graph fares.SellerGraph
	err = decodeJson(span, endpoint_who_sells, res, &graph)
	if err != nil {
		return fares.SellerGraph{}, err
	}
	span.SetAttributes(attribute.Int("agents", len(graph.Agents)))
	return graph, nil
}
