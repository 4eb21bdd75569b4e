// Tracing instrumentation for log loading.
package replay

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/delta/tickreplay/internal/replay"

func tracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// startLoadSpan starts a span covering read and segmentation of a log.
func startLoadSpan(ctx context.Context, path string) (context.Context, trace.Span) {
	ctx, span := tracer().Start(ctx, "replay.load")
	span.SetAttributes(
		attribute.String("log.path", path),
	)
	return ctx, span
}

// endLoadSpan ends the load span with result info.
func endLoadSpan(span trace.Span, log *Log, err error) {
	if log != nil {
		span.SetAttributes(
			attribute.Int("log.ticks", len(log.Ticks)),
			attribute.Int("log.records", log.Records),
			attribute.Int("log.discarded", log.Discarded),
		)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// startSegmentSpan starts a span for the segmentation fold.
func startSegmentSpan(ctx context.Context, lines int) (context.Context, trace.Span) {
	ctx, span := tracer().Start(ctx, "timeline.segment")
	span.SetAttributes(attribute.Int("log.lines", lines))
	return ctx, span
}

// endSpan ends a span, recording err if set.
func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
