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
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

func (a DriverRunAttributes) toAttributes() []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String(KeyModuleName, a.ModuleName),
		attribute.Int(KeyPassCount, a.PassCount),
	}
	if a.Error != nil {
		attrs = append(attrs, attribute.String(KeyErrorType, ToErrorType(a.Error, ValueDefaultErrorType)))
	}
	return attrs
}

// ReportDriverMetrics records the run-count and duration metrics for one
// Driver.Run invocation over the whole ordered pipeline.
func ReportDriverMetrics(ctx context.Context, attrs DriverRunAttributes, duration time.Duration) {
	as := attrs.toAttributes()
	if DriverMetricRunsTotal != nil {
		DriverMetricRunsTotal.Add(ctx, 1, metric.WithAttributes(as...))
	}
	if DriverMetricDuration != nil {
		DriverMetricDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(as...))
	}
}
