//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package graph

import "github.com/flowgraph/rvsdg-go/rvsdgerr"

func domainErrorf(code, format string, args ...any) *rvsdgerr.DomainError {
	return rvsdgerr.Domainf(code, format, args...)
}

func invariantf(invariant, format string, args ...any) *rvsdgerr.InvariantViolation {
	return rvsdgerr.Invariantf(invariant, format, args...)
}
