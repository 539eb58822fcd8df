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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flowgraph/rvsdg-go/rvsdgerr"
)

func TestToErrorTypeClassifiesRVSDGErrors(t *testing.T) {
	assert.Equal(t, ValueDefaultErrorType, ToErrorType(nil, ValueDefaultErrorType))
	assert.Equal(t, "domain_error", ToErrorType(rvsdgerr.Domainf("bad-arity", "wrong arity"), ValueDefaultErrorType))
	assert.Equal(t, "invariant_violation", ToErrorType(rvsdgerr.Invariantf("dominance", "broken"), ValueDefaultErrorType))
	assert.Equal(t, "unimplemented", ToErrorType(rvsdgerr.NewUnimplemented("sdiv-fold", nil), ValueDefaultErrorType))
	assert.Equal(t, ValueDefaultErrorType, ToErrorType(errors.New("plain"), ValueDefaultErrorType))
}
