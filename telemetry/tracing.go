package telemetry

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"google.golang.org/grpc/credentials"

	"github.com/zero-day-ai/streamplan"
	"github.com/zero-day-ai/streamplan/pkg/version"
)

// defaultBatchTimeout bounds how long finished spans wait in the export
// batch before a flush.
const defaultBatchTimeout = 5 * time.Second

// TracingOption overrides one piece of the tracer provider assembly.
type TracingOption func(*tracingOptions)

type tracingOptions struct {
	sampler      sdktrace.Sampler
	resource     *resource.Resource
	batchTimeout time.Duration
}

// WithSampler replaces the ratio sampler derived from the configured sample
// rate.
func WithSampler(sampler sdktrace.Sampler) TracingOption {
	return func(o *tracingOptions) {
		o.sampler = sampler
	}
}

// WithResource replaces the default resource describing this process in
// exported spans.
func WithResource(res *resource.Resource) TracingOption {
	return func(o *tracingOptions) {
		o.resource = res
	}
}

// WithBatchTimeout overrides how long spans may wait in the export batch
// before a flush, full batch or not.
func WithBatchTimeout(timeout time.Duration) TracingOption {
	return func(o *tracingOptions) {
		o.batchTimeout = timeout
	}
}

// InitTracing builds the tracer provider the configuration asks for and
// installs exporter-backed providers as the OpenTelemetry global. A disabled
// configuration, and the noop provider, yield a provider that records
// nothing and never touches the global.
//
// Failures carry the TRACING_INIT_FAILED code: an invalid configuration,
// unreadable TLS material, or an exporter that cannot be constructed.
func InitTracing(ctx context.Context, cfg TracingConfig, opts ...TracingOption) (*sdktrace.TracerProvider, error) {
	if !cfg.Enabled {
		return sdktrace.NewTracerProvider(), nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, streamplan.WrapError(streamplan.TRACING_INIT_FAILED, "invalid tracing configuration", err)
	}

	var exporter sdktrace.SpanExporter
	switch strings.ToLower(cfg.Provider) {
	case "noop":
		return sdktrace.NewTracerProvider(), nil
	case "otlp":
		var err error
		if exporter, err = newOTLPExporter(ctx, cfg); err != nil {
			return nil, err
		}
	default:
		return nil, streamplan.NewError(streamplan.TRACING_INIT_FAILED,
			fmt.Sprintf("unsupported tracing provider: %s", cfg.Provider))
	}

	options := &tracingOptions{batchTimeout: defaultBatchTimeout}
	for _, opt := range opts {
		opt(options)
	}
	if options.sampler == nil {
		options.sampler = sdktrace.TraceIDRatioBased(cfg.SampleRate)
	}
	if options.resource == nil {
		res, err := newResource(ctx, cfg.ServiceName)
		if err != nil {
			return nil, err
		}
		options.resource = res
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(options.batchTimeout)),
		sdktrace.WithSampler(options.sampler),
		sdktrace.WithResource(options.resource),
	)
	otel.SetTracerProvider(tp)

	return tp, nil
}

// newOTLPExporter dials the configured OTLP/gRPC collector. Transport
// security defaults to system TLS; TLSCertFile supplies a certificate bundle
// for private CAs, and InsecureMode switches to plaintext for local
// collectors.
func newOTLPExporter(ctx context.Context, cfg TracingConfig) (sdktrace.SpanExporter, error) {
	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.Endpoint)}

	switch {
	case cfg.TLSCertFile != "":
		creds, err := credentials.NewClientTLSFromFile(cfg.TLSCertFile, "")
		if err != nil {
			return nil, streamplan.WrapError(streamplan.TRACING_INIT_FAILED,
				"failed to load TLS credentials", err)
		}
		opts = append(opts, otlptracegrpc.WithTLSCredentials(creds))
	case cfg.InsecureMode:
		opts = append(opts, otlptracegrpc.WithInsecure())
	default:
		opts = append(opts, otlptracegrpc.WithTLSCredentials(credentials.NewTLS(nil)))
	}

	exporter, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		return nil, streamplan.WrapError(streamplan.TRACING_INIT_FAILED,
			fmt.Sprintf("failed to connect exporter to %s", cfg.Endpoint), err)
	}
	return exporter, nil
}

// newResource describes this process in exported spans. It builds with
// resource.New rather than merging resource.Default: the default carries its
// own schema URL, and merges across schema versions fail.
func newResource(ctx context.Context, serviceName string) (*resource.Resource, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(version.Version),
		),
		resource.WithFromEnv(),
		resource.WithTelemetrySDK(),
	)
	if err != nil {
		return nil, streamplan.WrapError(streamplan.TRACING_INIT_FAILED, "failed to create resource", err)
	}
	return res, nil
}

// ShutdownTracing flushes pending spans and shuts the provider down. Call it
// before process exit with a context timeout of a few seconds so in-flight
// exports complete. A nil provider is a no-op.
func ShutdownTracing(ctx context.Context, provider *sdktrace.TracerProvider) error {
	if provider == nil {
		return nil
	}

	if err := provider.Shutdown(ctx); err != nil {
		return streamplan.WrapError(streamplan.TRACING_SHUTDOWN_FAILED, "failed to shutdown tracer provider", err)
	}
	return nil
}
