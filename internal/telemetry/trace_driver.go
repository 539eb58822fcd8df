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

// TraceDriverRun decorates span with the facts of one Driver.Run
// invocation over an entire ordered pass pipeline.
func TraceDriverRun(span trace.Span, attrs DriverRunAttributes) {
	span.SetAttributes(
		attribute.String(KeyModuleName, attrs.ModuleName),
		attribute.Int(KeyPassCount, attrs.PassCount),
	)
	if attrs.Error != nil {
		span.SetStatus(codes.Error, attrs.Error.Error())
		span.SetAttributes(
			attribute.String(KeyErrorType, ToErrorType(attrs.Error, ValueDefaultErrorType)),
			attribute.String(KeyErrorMessage, attrs.Error.Error()),
		)
	}
}
