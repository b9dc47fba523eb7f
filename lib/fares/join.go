package fares

import (
	"cmp"
	"slices"
	"strings"
)

// joinedQuote is a quote while it is being enriched, it still carries the
// linkage fields needed to look up its agent and seller.
type joinedQuote struct {
	Quote
	AgentId   ID
	AgentName string
	Link      string
}

func findQuoteRequest(requests []QuoteRequest, id ID) (QuoteRequest, bool) {
	for _, qr := range requests {
		if qr.Id == id {
			return qr, true
		}
	}
	return QuoteRequest{}, false
}

func findAgent(agents []Agent, id ID) (Agent, bool) {
	for _, a := range agents {
		if a.Id == id {
			return a, true
		}
	}
	return Agent{}, false
}

// MakeLink turns a deep link fragment into an absolute url under base. An
// empty fragment links to base itself, so a seller route without a deep link
// still keeps its offer.
func MakeLink(base, deepLink string) string {
	base = strings.TrimSuffix(base, "/")
	if deepLink == "" {
		return base
	}
	if !strings.HasPrefix(deepLink, "/") {
		deepLink = "/" + deepLink
	}
	return base + deepLink
}

// sellerLink finds the deep link for an agent on the searched route.
//
// every seller agent with a matching id that publishes routes resets the link
// and contributes the first route that matches origin and destination, so the
// last such agent decides the link.
func sellerLink(sellers []SellerAgent, agentId ID, origin, destination ID, linkBase string) string {
	link := ""
	for _, agent := range sellers {
		if agent.AgentId != agentId || agent.Routes == nil {
			continue
		}
		link = ""
		for _, route := range agent.Routes {
			if route.DestinationPlaceId == destination && route.OriginPlaceId == origin {
				link = MakeLink(linkBase, route.DeepLink)
				break
			}
		}
	}
	return link
}

// CompareOffers is the total order offers are returned in: price ascending,
// then agent name, link, outbound leg and inbound leg.
func CompareOffers(a, b Offer) int {
	return cmp.Or(
		cmp.Compare(a.Price, b.Price),
		strings.Compare(a.AgentName, b.AgentName),
		strings.Compare(a.Link, b.Link),
		strings.Compare(string(a.OutboundLegId), string(b.OutboundLegId)),
		strings.Compare(string(a.InboundLegId), string(b.InboundLegId)),
	)
}

// JoinOffers cross references the route graph and the seller graph into sorted
// offers for the route origin -> destination. Quotes that do not end up with a
// seller link on that route are dropped. Missing linkage is never an error.
func JoinOffers(route RouteGraph, sellers SellerGraph, origin, destination ID, linkBase string) []Offer {
	joined := make([]joinedQuote, len(route.Quotes))
	for i, q := range route.Quotes {
		joined[i] = joinedQuote{Quote: q}
	}

	for i := range joined {
		q := &joined[i]
		qr, ok := findQuoteRequest(route.QuoteRequests, q.QuoteRequestId)
		if !ok {
			continue
		}
		q.AgentId = qr.AgentId
	}

	for i := range joined {
		q := &joined[i]
		if q.AgentId == "" {
			continue
		}
		agent, ok := findAgent(route.Agents, q.AgentId)
		if !ok {
			continue
		}
		q.AgentName = agent.Name
	}

	for i := range joined {
		q := &joined[i]
		if q.AgentId == "" {
			continue
		}
		q.Link = sellerLink(sellers.Agents, q.AgentId, origin, destination, linkBase)
	}

	offers := make([]Offer, 0, len(joined))
	for _, q := range joined {
		offer := Offer{
			AgentName:     q.AgentName,
			Price:         q.Price,
			Link:          q.Link,
			OutboundLegId: q.OutboundLegId,
			InboundLegId:  q.InboundLegId,
		}
		if offer.Link == "" {
			continue
		}
		offers = append(offers, offer)
	}

	slices.SortStableFunc(offers, CompareOffers)
	return offers
}

// Join is JoinOffers mapped into results.
func Join(route RouteGraph, sellers SellerGraph, origin, destination ID, linkBase string) []Result {
	offers := JoinOffers(route, sellers, origin, destination, linkBase)
	results := make([]Result, len(offers))
	for i, o := range offers {
		results[i] = Result{
			Agent: o.AgentName,
			Price: o.Price,
			Link:  o.Link,
		}
	}
	return results
}
