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
	"fmt"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

var (
	// MeterProvider is the global OpenTelemetry meter provider instruments
	// are created from. It defaults to a no-op implementation; callers
	// route telemetry/metric.NewMeterProvider's result through
	// InitMeterProvider to replace it with one backed by a real reader.
	MeterProvider metric.MeterProvider = noop.NewMeterProvider()

	// PassMeter is the meter used for pass- and driver-level instruments.
	PassMeter metric.Meter = MeterProvider.Meter(InstrumentName)

	// PassMetricRunsTotal counts completed pass runs, labeled by pass ID
	// and whether the run errored.
	PassMetricRunsTotal metric.Int64Counter = noop.Int64Counter{}
	// PassMetricDuration records the wall-clock duration of a single pass
	// run, in seconds.
	PassMetricDuration *DynamicFloat64Histogram
	// PassMetricCounterDelta records each entry of a pass's Result.Counters
	// map as its own data point, labeled by pass ID and counter name, so a
	// dashboard can break nodes-removed, calls-inlined, and so on out
	// per-pass without a fixed schema of instrument names.
	PassMetricCounterDelta metric.Int64Counter = noop.Int64Counter{}
	// PassMetricSizeDelta records the module-size delta (ModuleSize after
	// minus before) a single pass run produced.
	PassMetricSizeDelta metric.Int64Histogram = noop.Int64Histogram{}

	// DriverMetricRunsTotal counts completed Driver.Run invocations.
	DriverMetricRunsTotal metric.Int64Counter = noop.Int64Counter{}
	// DriverMetricDuration records the wall-clock duration of an entire
	// ordered pipeline run, in seconds.
	DriverMetricDuration *DynamicFloat64Histogram
)

// InitMeterProvider installs mp as the global MeterProvider and (re)creates
// every instrument this package exposes. Returns an error naming the first
// instrument that failed to construct, mirroring how a pass run fails fast
// on its first graph-invariant violation rather than continuing degraded.
func InitMeterProvider(mp metric.MeterProvider) error {
	MeterProvider = mp
	PassMeter = mp.Meter(InstrumentName)

	var err error
	if PassMetricRunsTotal, err = PassMeter.Int64Counter(
		"rvsdg.pass.runs_total",
		metric.WithDescription("Number of completed optimization pass runs."),
	); err != nil {
		return fmt.Errorf("failed to create metric PassMetricRunsTotal: %w", err)
	}
	if PassMetricDuration, err = NewDynamicFloat64Histogram(
		PassMeter,
		"rvsdg.pass.duration",
		"Wall-clock duration of a single optimization pass run.",
		"s",
		nil,
	); err != nil {
		return fmt.Errorf("failed to create metric PassMetricDuration: %w", err)
	}
	if PassMetricCounterDelta, err = PassMeter.Int64Counter(
		"rvsdg.pass.counter_delta",
		metric.WithDescription("Per-pass named counters (nodes removed, calls inlined, and so on)."),
	); err != nil {
		return fmt.Errorf("failed to create metric PassMetricCounterDelta: %w", err)
	}
	if PassMetricSizeDelta, err = PassMeter.Int64Histogram(
		"rvsdg.pass.size_delta",
		metric.WithDescription("Module node-count delta (after minus before) a single pass run produced."),
	); err != nil {
		return fmt.Errorf("failed to create metric PassMetricSizeDelta: %w", err)
	}
	if DriverMetricRunsTotal, err = PassMeter.Int64Counter(
		"rvsdg.driver.runs_total",
		metric.WithDescription("Number of completed Driver.Run pipeline invocations."),
	); err != nil {
		return fmt.Errorf("failed to create metric DriverMetricRunsTotal: %w", err)
	}
	if DriverMetricDuration, err = NewDynamicFloat64Histogram(
		PassMeter,
		"rvsdg.driver.duration",
		"Wall-clock duration of an entire ordered pass pipeline run.",
		"s",
		nil,
	); err != nil {
		return fmt.Errorf("failed to create metric DriverMetricDuration: %w", err)
	}
	return nil
}
