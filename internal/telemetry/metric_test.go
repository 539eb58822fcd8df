//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.
// All rights reserved.
//
// If you have downloaded a copy of the tRPC source code from Tencent,
// please note that tRPC source code is licensed under the  Apache 2.0 License,
// A copy of the Apache 2.0 License is included in this file.
//
//

package telemetry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// mockMeter fails instrument construction for a single named instrument,
// letting tests exercise InitMeterProvider's per-instrument error wrapping.
type mockMeter struct {
	noop.Meter
	failOn string
}

func (m *mockMeter) Float64Histogram(name string, _ ...metric.Float64HistogramOption) (metric.Float64Histogram, error) {
	if name == m.failOn {
		return nil, errors.New("mock: histogram creation failed")
	}
	return noop.Float64Histogram{}, nil
}

func (m *mockMeter) Int64Counter(name string, _ ...metric.Int64CounterOption) (metric.Int64Counter, error) {
	if name == m.failOn {
		return nil, errors.New("mock: counter creation failed")
	}
	return noop.Int64Counter{}, nil
}

func (m *mockMeter) Int64Histogram(name string, _ ...metric.Int64HistogramOption) (metric.Int64Histogram, error) {
	if name == m.failOn {
		return nil, errors.New("mock: histogram creation failed")
	}
	return noop.Int64Histogram{}, nil
}

type mockMeterProvider struct {
	noop.MeterProvider
	meter *mockMeter
}

func (m *mockMeterProvider) Meter(string, ...metric.MeterOption) metric.Meter { return m.meter }

func TestInitMeterProviderCreatesEveryInstrument(t *testing.T) {
	origMP, origMeter := MeterProvider, PassMeter
	defer func() { MeterProvider, PassMeter = origMP, origMeter }()

	require.NoError(t, InitMeterProvider(noop.NewMeterProvider()))
	assert.NotNil(t, PassMetricRunsTotal)
	assert.NotNil(t, PassMetricDuration)
	assert.NotNil(t, PassMetricCounterDelta)
	assert.NotNil(t, PassMetricSizeDelta)
	assert.NotNil(t, DriverMetricRunsTotal)
	assert.NotNil(t, DriverMetricDuration)
}

func TestInitMeterProviderWrapsInstrumentConstructionFailure(t *testing.T) {
	origMP, origMeter := MeterProvider, PassMeter
	defer func() { MeterProvider, PassMeter = origMP, origMeter }()

	mp := &mockMeterProvider{meter: &mockMeter{failOn: "rvsdg.driver.runs_total"}}
	err := InitMeterProvider(mp)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DriverMetricRunsTotal")
}
