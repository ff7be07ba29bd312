package middleware

import (
	"net/http"

	"simplesocial/internal/observability"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// HeaderTraceID carries the request's trace id back to the client.
const HeaderTraceID = "X-Trace-ID"

// resource ids copied from route params onto the server span
var spanParams = map[string]string{
	"postId":    "post.id",
	"commentId": "comment.id",
}

// TracingMiddleware starts a server span for each request, continuing any
// trace propagated by the caller. The span is named after the matched route
// template ("GET /api/posts/:postId"), or the bare method when nothing matched.
func TracingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// fiber reuses request buffers once the handler returns; span data outlives it
		method := utils.CopyString(c.Method())

		ctx := otel.GetTextMapPropagator().Extract(c.UserContext(), propagation.HeaderCarrier(c.GetReqHeaders()))
		ctx, span := observability.Tracer.Start(ctx, method, trace.WithSpanKind(trace.SpanKindServer))
		defer span.End()

		traceID := span.SpanContext().TraceID().String()
		c.Locals("traceID", traceID)
		c.Set(HeaderTraceID, traceID)
		c.SetUserContext(ctx)

		err := c.Next()

		status := ResponseStatus(c, err)
		attrs := []attribute.KeyValue{
			attribute.String("http.request.method", method),
			attribute.String("url.path", utils.CopyString(c.Path())),
			attribute.Int("http.response.status_code", status),
		}
		if rid, ok := c.Locals("requestid").(string); ok {
			attrs = append(attrs, attribute.String("request.id", utils.CopyString(rid)))
		}
		if route, ok := routeTemplate(c, err); ok {
			span.SetName(method + " " + route)
			attrs = append(attrs, attribute.String("http.route", route))
			for param, key := range spanParams {
				if v := c.Params(param); v != "" {
					attrs = append(attrs, attribute.String(key, utils.CopyString(v)))
				}
			}
		}
		span.SetAttributes(attrs...)

		if err != nil {
			span.RecordError(err)
		}
		if status >= fiber.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
		return err
	}
}
