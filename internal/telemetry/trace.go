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
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracePassRun decorates span with the facts of one completed pass run:
// which pass, which module, its size before/after, every named counter it
// reported, and its outcome.
func TracePassRun(span trace.Span, passID, moduleName string, counters map[string]int64, sizeBefore, sizeAfter int, err error) {
	span.SetAttributes(
		attribute.String(KeyPassID, passID),
		attribute.String(KeyModuleName, moduleName),
		attribute.Int(KeySizeBefore, sizeBefore),
		attribute.Int(KeySizeAfter, sizeAfter),
	)
	for name, delta := range counters {
		span.SetAttributes(attribute.Int64(KeyCounterName+"."+name, delta))
	}
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(
			attribute.String(KeyErrorType, ToErrorType(err, ValueDefaultErrorType)),
			attribute.String(KeyErrorMessage, err.Error()),
		)
	}
}
