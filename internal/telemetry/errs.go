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

import "github.com/flowgraph/rvsdg-go/rvsdgerr"

// ToErrorType classifies err into one of the three rvsdgerr kinds, falling
// back to errorType when err doesn't match any of them (or is nil).
func ToErrorType(err error, errorType string) string {
	switch {
	case err == nil:
		return errorType
	case rvsdgerr.IsDomain(err):
		return "domain_error"
	case rvsdgerr.IsInvariant(err):
		return "invariant_violation"
	case rvsdgerr.IsUnimplemented(err):
		return "unimplemented"
	default:
		return errorType
	}
}
