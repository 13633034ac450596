package observability

import (
	"context"
	"time"

	"github.com/annel0/shapebuilder/internal/logging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

// ShutdownFunc завершает работу TracerProvider
type ShutdownFunc func(context.Context) error

func noopShutdown(context.Context) error { return nil }

// Setup включает трассировку, только если enabled. Иначе остаётся глобальный
// no-op провайдер и возвращается пустой shutdown.
func Setup(ctx context.Context, enabled bool, serviceName string) (ShutdownFunc, error) {
	if !enabled {
		logging.Debug("OpenTelemetry выключен")
		return noopShutdown, nil
	}
	return InitTelemetry(ctx, serviceName)
}

// InitTelemetry настраивает OTLP экспортер и устанавливает глобальный TracerProvider.
// Адрес коллектора берётся из OTEL_EXPORTER_OTLP_ENDPOINT (по умолчанию localhost:4318).
func InitTelemetry(ctx context.Context, serviceName string) (ShutdownFunc, error) {
	exp, err := otlptracehttp.New(ctx)
	if err != nil {
		return nil, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceNamespace("shapebuilder"),
		),
	)
	if err != nil {
		return nil, err
	}

	tp := trace.NewTracerProvider(
		trace.WithBatcher(exp),
		trace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	logging.Info("📡 OpenTelemetry инициализирован (OTLP HTTP, service=%s)", serviceName)

	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return tp.Shutdown(ctx)
	}, nil
}
