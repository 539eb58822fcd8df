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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
)

func TestPassMetricsTrackerRecordsCountersWithoutPanicking(t *testing.T) {
	origMP, origMeter := MeterProvider, PassMeter
	defer func() { MeterProvider, PassMeter = origMP, origMeter }()
	require.NoError(t, InitMeterProvider(noop.NewMeterProvider()))

	var runErr error
	tracker := NewPassMetricsTracker(context.Background(), "dead-node-elimination", "main", &runErr)
	record := tracker.RecordMetrics(map[string]int64{"nodes_removed": 3}, 10, 7)
	assert.NotPanics(t, func() { record() })
}

func TestPassMetricsTrackerBuildAttributesReportsErrorType(t *testing.T) {
	runErr := errors.New("boom")
	tracker := &PassMetricsTracker{passID: "inline", moduleName: "main", err: &runErr}
	attrs := tracker.buildAttributes()
	assert.Equal(t, "inline", attrs.PassID)
	assert.Equal(t, ValueDefaultErrorType, attrs.ErrorType)
}
