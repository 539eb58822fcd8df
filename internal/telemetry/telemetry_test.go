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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPassSpanName(t *testing.T) {
	assert.Equal(t, "pass.run dead-node-elimination", NewPassSpanName("dead-node-elimination"))
}

func TestNewDriverSpanName(t *testing.T) {
	assert.Equal(t, "driver.run 3-passes", NewDriverSpanName(3))
}
