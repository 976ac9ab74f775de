package observability

import (
	"github.com/joshuahuffman02/Keepr-sub014/internal/observability/metrics"
	"github.com/joshuahuffman02/Keepr-sub014/internal/observability/tracing"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/fx"
)

var Module = fx.Module("observability",
	fx.Provide(
		tracing.NewProvider,
		metrics.NewHTTPMetrics,
		metrics.NewPricingMetrics,
	),
	fx.Invoke(ensureTracingProvider),
)

func ensureTracingProvider(_ *sdktrace.TracerProvider) {}
