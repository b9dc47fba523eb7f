package skyscanner

import (
	"farescan/lib/telemetry"

	"go.opentelemetry.io/otel/metric"
)

const library_name = "farescan.lib.scrapers.skyscanner"

var tracer = telemetry.Tracer(library_name)
var meter = telemetry.Meter(library_name)

var searchCounter, _ = meter.Int64Counter(
	"farescan.search.count",
	metric.WithDescription("searches finished, by outcome"),
)
var offersHistogram, _ = meter.Int64Histogram(
	"farescan.search.offers",
	metric.WithDescription("offers returned by a successful search"),
)
