//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package telemetry wires the trace and metric subpackages together into a
// single process-local Provider: a TracerProvider with no network exporter
// and a MeterProvider backed by a ManualReader callers pull from directly.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/flowgraph/rvsdg-go/telemetry/metric"
	"github.com/flowgraph/rvsdg-go/telemetry/trace"
)

// Provider bundles the tracer and meter providers instrumented pass and
// driver runs report to.
type Provider struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Reader         *sdkmetric.ManualReader

	shutdownTrace func(context.Context) error
}

// NewProvider builds a Provider for serviceName: a TracerProvider with no
// exporter, so spans never leave the process, and a MeterProvider reading
// from an owned ManualReader.
func NewProvider(ctx context.Context, serviceName string) (*Provider, error) {
	reader := sdkmetric.NewManualReader()

	mp, err := metric.NewMeterProvider(ctx,
		metric.WithServiceName(serviceName),
		metric.WithReader(reader),
	)
	if err != nil {
		return nil, err
	}
	if err := metric.InitMeterProvider(mp); err != nil {
		return nil, err
	}

	shutdown, err := trace.Start(ctx, trace.WithServiceName(serviceName))
	if err != nil {
		return nil, err
	}
	tp, _ := otel.GetTracerProvider().(*sdktrace.TracerProvider)

	return &Provider{
		TracerProvider: tp,
		MeterProvider:  mp,
		Reader:         reader,
		shutdownTrace:  shutdown,
	}, nil
}

// Shutdown flushes and releases the tracer provider and shuts down the
// meter provider, releasing its reader.
func (p *Provider) Shutdown(ctx context.Context) error {
	if err := p.shutdownTrace(ctx); err != nil {
		return err
	}
	return p.MeterProvider.Shutdown(ctx)
}
