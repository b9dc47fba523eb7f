package fares

import "encoding/json"

// Quote is a single fare as returned by the route-date endpoint.
type Quote struct {
	Id             ID      `json:"Id"`
	QuoteRequestId ID      `json:"QuoteRequestId"`
	Price          float64 `json:"Price"`
	OutboundLegId  ID      `json:"OutboundLegId"`
	InboundLegId   ID      `json:"InboundLegId"`

	// bookkeeping fields, their types vary between responses and nothing reads them
	Age             json.RawMessage `json:"Age"`
	IsReturn        json.RawMessage `json:"IsReturn"`
	RequestDateTime json.RawMessage `json:"RequestDateTime"`
}

// QuoteRequest links a quote to the agent that was asked for it.
type QuoteRequest struct {
	Id      ID `json:"Id"`
	AgentId ID `json:"AgentId"`
}

type Agent struct {
	Id   ID     `json:"Id"`
	Name string `json:"Name"`
}

// RouteGraph is the body of the route-date endpoint.
type RouteGraph struct {
	Quotes        []Quote        `json:"Quotes"`
	QuoteRequests []QuoteRequest `json:"QuoteRequests"`
	Agents        []Agent        `json:"Agents"`
}

type SellerRoute struct {
	OriginPlaceId      ID     `json:"OriginPlaceId"`
	DestinationPlaceId ID     `json:"DestinationPlaceId"`
	DeepLink           string `json:"DeepLink"`
}

// SellerAgent is an agent in the who-sells dataset. Routes is nil when the
// agent publishes no routes at all.
type SellerAgent struct {
	AgentId ID            `json:"AgentId"`
	Routes  []SellerRoute `json:"Routes"`
}

// SellerGraph is the body of the who-sells endpoint.
type SellerGraph struct {
	Agents []SellerAgent `json:"Agents"`
}

// Offer is a quote after joining, with every linkage and bookkeeping field
// dropped.
type Offer struct {
	AgentName     string
	Price         float64
	Link          string
	OutboundLegId ID
	InboundLegId  ID
}

// Result is the public view of an offer.
type Result struct {
	Agent string  `json:"agent"`
	Price float64 `json:"price"`
	Link  string  `json:"link"`
}
