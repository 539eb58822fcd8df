//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package trace bootstraps the process-wide OpenTelemetry TracerProvider used
// to instrument pass and driver execution. There is no network exporter: spans
// are either dropped (default) or handed to a SpanExporter supplied through
// WithExporter, which callers typically wire to an in-memory or stdout
// exporter for local inspection.
package trace

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/flowgraph/rvsdg-go/internal/telemetry"
)

// Tracer is the package-wide tracer used to start pass and driver spans once
// Start has installed a TracerProvider. Before Start runs it resolves to the
// global no-op tracer, same as any other otel.Tracer call.
var Tracer trace.Tracer = otel.Tracer(telemetry.InstrumentName)

type options struct {
	serviceName        string
	serviceNamespace   string
	serviceVersion     string
	resourceAttributes *[]attribute.KeyValue
	exporter           sdktrace.SpanExporter
}

// Option configures Start.
type Option func(*options)

// WithServiceName overrides the default service.name resource attribute.
func WithServiceName(name string) Option {
	return func(o *options) { o.serviceName = name }
}

// WithServiceNamespace overrides the default service.namespace resource attribute.
func WithServiceNamespace(ns string) Option {
	return func(o *options) { o.serviceNamespace = ns }
}

// WithServiceVersion overrides the default service.version resource attribute.
func WithServiceVersion(v string) Option {
	return func(o *options) { o.serviceVersion = v }
}

// WithResourceAttributes adds extra resource attributes, taking precedence
// over both the code defaults and OTEL_RESOURCE_ATTRIBUTES for matching keys.
func WithResourceAttributes(attrs ...attribute.KeyValue) Option {
	return func(o *options) { o.resourceAttributes = &attrs }
}

// WithExporter sets the SpanExporter spans are batched to. Without it, Start
// builds a TracerProvider with no span processor: spans are created (and can
// be inspected via their recorded attributes) but never leave the process.
func WithExporter(exp sdktrace.SpanExporter) Option {
	return func(o *options) { o.exporter = exp }
}

// Start installs a TracerProvider built from opts as the global tracer
// provider and returns a shutdown function that flushes and releases it.
func Start(ctx context.Context, opts ...Option) (func(context.Context) error, error) {
	o := &options{
		serviceName:      telemetry.ServiceName,
		serviceNamespace: telemetry.ServiceNamespace,
		serviceVersion:   telemetry.ServiceVersion,
	}
	for _, opt := range opts {
		opt(o)
	}

	res, err := buildResource(ctx, o)
	if err != nil {
		return nil, err
	}

	tpOpts := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}
	if o.exporter != nil {
		tpOpts = append(tpOpts, sdktrace.WithBatcher(o.exporter))
	}
	tp := sdktrace.NewTracerProvider(tpOpts...)

	otel.SetTracerProvider(tp)
	Tracer = tp.Tracer(telemetry.InstrumentName)

	return tp.Shutdown, nil
}

// buildResource layers, from lowest to highest precedence: code defaults from
// opts, OTEL_SERVICE_NAME / OTEL_RESOURCE_ATTRIBUTES, then opts.resourceAttributes.
func buildResource(ctx context.Context, o *options) (*sdkresource.Resource, error) {
	attrs := []attribute.KeyValue{
		semconv.ServiceNameKey.String(o.serviceName),
		semconv.ServiceNamespaceKey.String(o.serviceNamespace),
		semconv.ServiceVersionKey.String(o.serviceVersion),
	}

	res, err := sdkresource.New(ctx,
		sdkresource.WithAttributes(attrs...),
		sdkresource.WithFromEnv(),
	)
	if err != nil {
		return nil, err
	}

	if o.resourceAttributes != nil && len(*o.resourceAttributes) > 0 {
		override, err := sdkresource.New(ctx, sdkresource.WithAttributes((*o.resourceAttributes)...))
		if err != nil {
			return nil, err
		}
		res, err = sdkresource.Merge(res, override)
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}
