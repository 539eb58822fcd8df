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

// Package telemetry holds the attribute keys, span-name builders, and
// metric instruments shared by the public telemetry/trace and
// telemetry/metric packages that bootstrap OTel providers. Business code
// instruments pass and driver execution through the helpers here; it never
// talks to the OTel SDK directly.
package telemetry

import "fmt"

// telemetry service constants.
const (
	ServiceName      = "rvsdg-go"
	ServiceVersion   = "v0.1.0"
	ServiceNamespace = "rvsdg"
	InstrumentName   = "rvsdg.opt"

	SpanNamePrefixPassRun   = "pass.run"
	SpanNamePrefixDriverRun = "driver.run"

	OperationPassRun   = "pass.run"
	OperationDriverRun = "driver.run"
)

// telemetry attributes constants.
var (
	KeyModuleName   = "rvsdg.module_name"
	KeyPassID       = "rvsdg.pass_id"
	KeyPassCount    = "rvsdg.pass_count"
	KeySizeBefore   = "rvsdg.size_before"
	KeySizeAfter    = "rvsdg.size_after"
	KeyCounterName  = "rvsdg.counter_name"
	KeyCounterDelta = "rvsdg.counter_delta"
	KeyErrorType    = "error.type"
	KeyErrorMessage = "error.message"

	ValueDefaultErrorType = "_OTHER"
)

// NewPassSpanName builds the span name for a single pass run, e.g.
// "pass.run dead-node-elimination".
func NewPassSpanName(passID string) string {
	return fmt.Sprintf("%s %s", SpanNamePrefixPassRun, passID)
}

// NewDriverSpanName builds the span name wrapping an entire ordered
// pipeline run, e.g. "driver.run 7-passes".
func NewDriverSpanName(passCount int) string {
	return fmt.Sprintf("%s %d-passes", SpanNamePrefixDriverRun, passCount)
}

// DriverRunAttributes describes one Driver.Run invocation. Both
// TraceDriverRun and ReportDriverMetrics take the same struct so a caller
// builds the facts about a run once and feeds them to both recorders.
type DriverRunAttributes struct {
	ModuleName string
	PassCount  int
	Error      error
}
