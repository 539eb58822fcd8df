//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	itelemetry "github.com/flowgraph/rvsdg-go/internal/telemetry"
)

func TestNewProviderWiresTracerAndManualReader(t *testing.T) {
	origMP, origMeter := itelemetry.MeterProvider, itelemetry.PassMeter
	defer func() { itelemetry.MeterProvider, itelemetry.PassMeter = origMP, origMeter }()

	ctx := context.Background()
	p, err := NewProvider(ctx, "rvsdg-test")
	require.NoError(t, err)
	require.NotNil(t, p.Reader)
	require.NotNil(t, p.MeterProvider)
	require.NotNil(t, p.TracerProvider)

	assert.NoError(t, p.Shutdown(ctx))
}
