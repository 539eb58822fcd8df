//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package metric bootstraps the process-wide OpenTelemetry MeterProvider used
// to record pass and driver execution metrics. There is no network exporter:
// a sdkmetric.ManualReader backs the default provider and callers pull its
// accumulated data by calling Reader.Collect directly (or swap in their own
// Reader through WithReader).
package metric

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	otelmetric "go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"

	"github.com/flowgraph/rvsdg-go/internal/telemetry"
)

type options struct {
	serviceName        string
	serviceNamespace   string
	serviceVersion     string
	resourceAttributes *[]attribute.KeyValue
	reader             sdkmetric.Reader
}

// Option configures NewMeterProvider.
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

// WithReader swaps the default ManualReader for reader, e.g. a periodic
// reader wrapping a real exporter.
func WithReader(reader sdkmetric.Reader) Option {
	return func(o *options) { o.reader = reader }
}

// NewMeterProvider builds a MeterProvider from opts. Without WithReader, the
// provider owns a fresh sdkmetric.ManualReader callers can pull from with
// Collect; there is no background export loop.
func NewMeterProvider(ctx context.Context, opts ...Option) (*sdkmetric.MeterProvider, error) {
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

	reader := o.reader
	if reader == nil {
		reader = sdkmetric.NewManualReader()
	}

	return sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(reader),
	), nil
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

// InitMeterProvider installs mp as the global meter provider for the
// internal/telemetry instruments (re)creating every pass and driver metric.
func InitMeterProvider(mp otelmetric.MeterProvider) error {
	return telemetry.InitMeterProvider(mp)
}

// GetMeterProvider returns the currently installed meter provider.
func GetMeterProvider() otelmetric.MeterProvider {
	return telemetry.MeterProvider
}
