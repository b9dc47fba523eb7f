package skyscanner

import (
	"context"
	"log/slog"

	"farescan/lib/fares"
	"farescan/lib/textutil"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type place struct {
	PlaceName string   `json:"PlaceName"`
	PlaceId   fares.ID `json:"PlaceId"`
}

// selectPlace picks the candidate for a normalized query: an exact (case
// folded) name match if there is one, otherwise the first candidate.
func selectPlace(places []place, normalized string, rejectSingle bool) (place, string) {
	if len(places) == 0 {
		return place{}, "no match"
	}
	if len(places) == 1 && rejectSingle {
		return place{}, "no match (single candidate rejected)"
	}
	for _, p := range places {
		if textutil.EqualNames(p.PlaceName, normalized) {
			return p, ""
		}
	}
	return places[0], ""
}

// ResolvePlace maps a free-text place name to the site's short place id.
func (c *Client) ResolvePlace(ctx context.Context, query string) (fares.ID, error) {
	ctx, span := tracer.Start(ctx, "client:ResolvePlace")
	defer span.End()

	normalized := textutil.NormalizeQuery(query)
	span.SetAttributes(attribute.String("query", normalized))
	if normalized == "" {
		span.SetStatus(codes.Error, "empty query")
		return "", &ResolutionError{Query: query, Reason: "empty query"}
	}

	res, err := c.request(ctx).
		SetPathParam("query", normalized).
		Get(path_autosuggest)
	if err != nil {
		return "", failFetch(span, err)
	}

	var places []place
	err = decodeJson(span, endpoint_autosuggest, res, &places)
	if err != nil {
		return "", err
	}
	span.SetAttributes(attribute.Int("candidates", len(places)))

	selected, reason := selectPlace(places, normalized, c.rejectSingleCandidate)
	if reason != "" {
		span.SetStatus(codes.Error, reason)
		return "", &ResolutionError{Query: query, Reason: reason}
	}
	if selected.PlaceId == "" {
		span.SetStatus(codes.Error, "candidate has no place id")
		return "", &ResolutionError{
			Query:  query,
			Reason: "no place id found in location " + selected.PlaceName,
		}
	}

	slog.DebugContext(
		ctx, "resolved place",
		"query", normalized,
		"place_name", selected.PlaceName,
		"place_id", selected.PlaceId,
	)
	return selected.PlaceId, nil
}
