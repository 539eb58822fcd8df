//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package trace

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

func resourceAttrs(t *testing.T, o *options) map[string]string {
	t.Helper()
	res, err := buildResource(context.Background(), o)
	require.NoError(t, err)

	out := make(map[string]string)
	iter := res.Iter()
	for iter.Next() {
		kv := iter.Attribute()
		if kv.Value.Type() == attribute.STRING {
			out[string(kv.Key)] = kv.Value.AsString()
		}
	}
	return out
}

func TestStartInstallsTracerAndReturnsShutdown(t *testing.T) {
	ctx := context.Background()
	shutdown, err := Start(ctx, WithServiceName("rvsdg-test"))
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	defer func() { _ = shutdown(ctx) }()

	_, span := Tracer.Start(ctx, "test-span")
	span.End()
}

func TestStartWithExporterRecordsSpans(t *testing.T) {
	exp := tracetest.NewInMemoryExporter()
	ctx := context.Background()
	shutdown, err := Start(ctx, WithServiceName("rvsdg-test"), WithExporter(exp))
	require.NoError(t, err)
	defer func() { _ = shutdown(ctx) }()

	_, span := Tracer.Start(ctx, "pass.run dead-node-elimination")
	span.End()
	require.NoError(t, shutdown(ctx))

	spans := exp.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "pass.run dead-node-elimination", spans[0].Name)
}

func TestBuildResourceCodeDefaults(t *testing.T) {
	o := &options{serviceName: "svc", serviceNamespace: "ns", serviceVersion: "1.0.0"}
	attrs := resourceAttrs(t, o)
	assert.Equal(t, "svc", attrs[string(semconv.ServiceNameKey)])
	assert.Equal(t, "ns", attrs[string(semconv.ServiceNamespaceKey)])
	assert.Equal(t, "1.0.0", attrs[string(semconv.ServiceVersionKey)])
}

func TestBuildResourceEnvOverridesServiceName(t *testing.T) {
	origName := os.Getenv("OTEL_SERVICE_NAME")
	defer func() { _ = os.Setenv("OTEL_SERVICE_NAME", origName) }()
	require.NoError(t, os.Setenv("OTEL_SERVICE_NAME", "env-service"))

	o := &options{serviceName: "code-service"}
	attrs := resourceAttrs(t, o)
	assert.Equal(t, "env-service", attrs[string(semconv.ServiceNameKey)])
}

func TestBuildResourceExplicitAttributesOverrideEverything(t *testing.T) {
	origAttrs := os.Getenv("OTEL_RESOURCE_ATTRIBUTES")
	defer func() { _ = os.Setenv("OTEL_RESOURCE_ATTRIBUTES", origAttrs) }()
	require.NoError(t, os.Setenv("OTEL_RESOURCE_ATTRIBUTES", "team=ops"))

	o := &options{serviceName: "svc"}
	WithResourceAttributes(attribute.String("team", "compilers"))(o)

	attrs := resourceAttrs(t, o)
	assert.Equal(t, "compilers", attrs["team"])
}
