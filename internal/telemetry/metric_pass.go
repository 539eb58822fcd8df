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

// passAttributes is the attributes recorded alongside every pass metric.
type passAttributes struct {
	PassID     string
	ModuleName string
	ErrorType  string
	Error      error
}

func (a passAttributes) toAttributes() []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String(KeyPassID, a.PassID),
		attribute.String(KeyModuleName, a.ModuleName),
	}
	if a.ErrorType != "" {
		attrs = append(attrs, attribute.String(KeyErrorType, a.ErrorType))
	} else if a.Error != nil {
		attrs = append(attrs, attribute.String(KeyErrorType, ValueDefaultErrorType))
	}
	return attrs
}

// PassMetricsTracker tracks metrics for a single pass run lifecycle.
type PassMetricsTracker struct {
	ctx        context.Context
	start      time.Time
	passID     string
	moduleName string
	err        *error // pointer to capture final error
}

// NewPassMetricsTracker creates a new telemetry tracker for one pass run.
func NewPassMetricsTracker(ctx context.Context, passID, moduleName string, err *error) *PassMetricsTracker {
	return &PassMetricsTracker{
		ctx:        ctx,
		start:      time.Now(),
		passID:     passID,
		moduleName: moduleName,
		err:        err,
	}
}

// RecordMetrics returns a defer function that records the run's duration,
// size delta, and every named counter in counters. Should be called with
// defer immediately after creating the tracker.
func (t *PassMetricsTracker) RecordMetrics(counters map[string]int64, sizeBefore, sizeAfter int) func() {
	return func() {
		duration := time.Since(t.start)
		attrs := t.buildAttributes()
		otelAttrs := attrs.toAttributes()

		if PassMetricRunsTotal != nil {
			PassMetricRunsTotal.Add(t.ctx, 1, metric.WithAttributes(otelAttrs...))
		}
		if PassMetricDuration != nil {
			PassMetricDuration.Record(t.ctx, duration.Seconds(), metric.WithAttributes(otelAttrs...))
		}
		if PassMetricSizeDelta != nil {
			PassMetricSizeDelta.Record(t.ctx, int64(sizeAfter-sizeBefore), metric.WithAttributes(otelAttrs...))
		}
		if PassMetricCounterDelta != nil {
			for name, delta := range counters {
				PassMetricCounterDelta.Add(t.ctx, delta, metric.WithAttributes(
					append(append([]attribute.KeyValue{}, otelAttrs...), attribute.String(KeyCounterName, name))...,
				))
			}
		}
	}
}

func (t *PassMetricsTracker) buildAttributes() passAttributes {
	attrs := passAttributes{PassID: t.passID, ModuleName: t.moduleName}
	if t.err != nil && *t.err != nil {
		attrs.Error = *t.err
		attrs.ErrorType = ToErrorType(*t.err, ValueDefaultErrorType)
	}
	return attrs
}
