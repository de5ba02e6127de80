// Package tracer provides a lightweight tracing abstraction for the gateway.
//
// Services depend on the Tracer interface instead of OpenTelemetry APIs, so
// tests can run with NoopTracer and production wires OTelTracer.
package tracer

import (
	"context"
	"time"
)

// Span represents an active trace span.
type Span interface {
	// End completes the span, recording err when non-nil.
	// End must be called exactly once, typically via defer.
	End(err error)

	SetAttributes(attrs ...Attribute)

	AddEvent(name string, attrs ...Attribute)
}

// Tracer creates spans for distributed tracing.
// Implementations must be safe for concurrent use.
type Tracer interface {
	// Start creates a new span with the given name and attributes.
	// The returned context carries the span and should be passed to child operations.
	//
	// Example:
	//   ctx, span := tr.Start(ctx, tracer.SpanQueryStatistic,
	//       tracer.String(tracer.AttrStatus, status),
	//   )
	//   defer func() { span.End(err) }()
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Attribute represents a key-value pair attached to spans.
type Attribute struct {
	Key   string
	Value any
}

// String creates a string attribute.
func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

// Bool creates a boolean attribute.
func Bool(key string, value bool) Attribute {
	return Attribute{Key: key, Value: value}
}

// Int creates an integer attribute.
func Int(key string, value int) Attribute {
	return Attribute{Key: key, Value: value}
}

// Duration creates a duration attribute in milliseconds.
func Duration(key string, value time.Duration) Attribute {
	return Attribute{Key: key, Value: value.Milliseconds()}
}

// Span names.
const (
	SpanQueryAll       = "characters.query.all"
	SpanQueryByID      = "characters.query.by_id"
	SpanQueryByStatus  = "characters.query.by_status"
	SpanQueryStatistic = "characters.query.species_statistic"
	SpanUpstreamFetch  = "characters.upstream.fetch"
)

// Attribute keys.
const (
	AttrCharacterID     = "character.id"
	AttrStatus          = "character.status"
	AttrSpecies         = "character.species"
	AttrResultCount     = "result.count"
	AttrMatchCount      = "statistic.count"
	AttrUpstreamPath    = "upstream.path"
	AttrUpstreamStatus  = "upstream.status_code"
	AttrUpstreamTotal   = "upstream.info.count"
	AttrUpstreamTimeout = "upstream.timeout"
	AttrUpstreamMillis  = "upstream.duration_ms"
)

// Event names.
const (
	EventUpstreamDecoded = "upstream.decoded"
)
