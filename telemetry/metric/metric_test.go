//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package metric

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"

	"github.com/flowgraph/rvsdg-go/internal/telemetry"
)

func TestNewMeterProviderDefaultsToManualReader(t *testing.T) {
	ctx := context.Background()
	mp, err := NewMeterProvider(ctx, WithServiceName("rvsdg-test"))
	require.NoError(t, err)
	require.NotNil(t, mp)
}

func TestNewMeterProviderWithCustomReader(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	ctx := context.Background()
	mp, err := NewMeterProvider(ctx, WithReader(reader))
	require.NoError(t, err)
	require.NotNil(t, mp)
}

func TestInitMeterProviderAndGetMeterProvider(t *testing.T) {
	origMP := telemetry.MeterProvider
	defer func() { telemetry.MeterProvider = origMP }()

	ctx := context.Background()
	mp, err := NewMeterProvider(ctx)
	require.NoError(t, err)

	require.NoError(t, InitMeterProvider(mp))
	assert.Equal(t, mp, GetMeterProvider())
	assert.NotNil(t, telemetry.PassMetricDuration)
	assert.NotNil(t, telemetry.DriverMetricDuration)
}

func TestBuildResourceCodeDefaults(t *testing.T) {
	o := &options{serviceName: "svc", serviceNamespace: "ns", serviceVersion: "1.0.0"}
	res, err := buildResource(context.Background(), o)
	require.NoError(t, err)

	attrs := make(map[string]string)
	iter := res.Iter()
	for iter.Next() {
		kv := iter.Attribute()
		if kv.Value.Type() == attribute.STRING {
			attrs[string(kv.Key)] = kv.Value.AsString()
		}
	}
	assert.Equal(t, "svc", attrs[string(semconv.ServiceNameKey)])
	assert.Equal(t, "ns", attrs[string(semconv.ServiceNamespaceKey)])
}

func TestBuildResourceEnvOverridesServiceName(t *testing.T) {
	origName := os.Getenv("OTEL_SERVICE_NAME")
	defer func() { _ = os.Setenv("OTEL_SERVICE_NAME", origName) }()
	require.NoError(t, os.Setenv("OTEL_SERVICE_NAME", "env-metric-service"))

	o := &options{serviceName: "code-service"}
	res, err := buildResource(context.Background(), o)
	require.NoError(t, err)

	attrs := make(map[string]string)
	iter := res.Iter()
	for iter.Next() {
		kv := iter.Attribute()
		if kv.Value.Type() == attribute.STRING {
			attrs[string(kv.Key)] = kv.Value.AsString()
		}
	}
	assert.Equal(t, "env-metric-service", attrs[string(semconv.ServiceNameKey)])
}

func TestOptionsApplyIndependently(t *testing.T) {
	o := &options{}
	WithServiceName("s")(o)
	WithServiceNamespace("ns")(o)
	WithServiceVersion("v1")(o)
	WithResourceAttributes(attribute.String("k", "v"))(o)

	assert.Equal(t, "s", o.serviceName)
	assert.Equal(t, "ns", o.serviceNamespace)
	assert.Equal(t, "v1", o.serviceVersion)
	require.NotNil(t, o.resourceAttributes)
	assert.Len(t, *o.resourceAttributes, 1)
}
