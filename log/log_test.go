//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package log_test

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/flowgraph/rvsdg-go/log"
)

func TestLog(t *testing.T) {
	original := log.Default
	t.Cleanup(func() {
		log.Default = original
	})
	log.Default = &noopLogger{}
	log.Debug("test")
	log.Debugf("test")
	log.Info("test")
	log.Infof("test")
	log.Warn("test")
	log.Warnf("test")
	log.Error("test")
	log.Errorf("test")
	log.Fatal("test")
	log.Fatalf("test")
}

func TestInfofCallerReportsCallSite(t *testing.T) {
	original := log.Default
	observed, wrapped := wrapLoggerWithObserver(t, log.Default)
	log.Default = wrapped
	t.Cleanup(func() {
		log.Default = original
	})

	format := "infof caller check %s"
	expectedMessage := fmt.Sprintf(format, "ok")
	expectedFile, expectedLine := captureInfofCall(t, format, "ok")

	entries := observed.FilterMessage(expectedMessage).All()
	require.Len(t, entries, 1)
	assertCallerMatches(t, entries[0].Entry.Caller, expectedFile, expectedLine)
}

type noopLogger struct{}

func (*noopLogger) Debug(args ...any)                 {}
func (*noopLogger) Debugf(format string, args ...any) {}
func (*noopLogger) Info(args ...any)                  {}
func (*noopLogger) Infof(format string, args ...any)  {}
func (*noopLogger) Warn(args ...any)                  {}
func (*noopLogger) Warnf(format string, args ...any)  {}
func (*noopLogger) Error(args ...any)                 {}
func (*noopLogger) Errorf(format string, args ...any) {}
func (*noopLogger) Fatal(args ...any)                 {}
func (*noopLogger) Fatalf(format string, args ...any) {}

func wrapLoggerWithObserver(t *testing.T, logger log.Logger) (*observer.ObservedLogs, log.Logger) {
	t.Helper()
	sugar, ok := logger.(*zap.SugaredLogger)
	require.True(t, ok, "Logger is not *zap.SugaredLogger")
	core, observed := observer.New(zapcore.DebugLevel)
	wrapped := sugar.Desugar().WithOptions(zap.WrapCore(func(existing zapcore.Core) zapcore.Core {
		return zapcore.NewTee(existing, core)
	}))
	return observed, wrapped.Sugar()
}

func captureInfofCall(t *testing.T, format string, args ...any) (string, int) {
	t.Helper()
	file := currentTestFile(t)
	line := findLogCallLine(t, file, "captureInfofCall", "Infof")
	log.Infof(format, args...)
	return file, line
}

func assertCallerMatches(t *testing.T, caller zapcore.EntryCaller, expectedFile string, expectedLine int) {
	t.Helper()
	require.True(t, caller.Defined, "Caller should be defined")
	require.Equal(t, filepath.Base(expectedFile), filepath.Base(caller.File))
	require.Equal(t, expectedLine, caller.Line)
}

func currentTestFile(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok, "runtime.Caller failed")
	return file
}

// findLogCallLine locates the line of log.<selector> in the named helper function.
func findLogCallLine(t *testing.T, file string, funcName string, selector string) int {
	t.Helper()
	fset := token.NewFileSet()
	node, err := parser.ParseFile(fset, file, nil, 0)
	require.NoError(t, err, "parse file failed")

	var line int
	ast.Inspect(node, func(n ast.Node) bool {
		if line != 0 {
			return false
		}
		fn, ok := n.(*ast.FuncDecl)
		if !ok || fn.Name.Name != funcName {
			return true
		}
		ast.Inspect(fn.Body, func(n ast.Node) bool {
			if line != 0 {
				return false
			}
			call, ok := n.(*ast.CallExpr)
			if !ok {
				return true
			}
			sel, ok := call.Fun.(*ast.SelectorExpr)
			if !ok {
				return true
			}
			pkg, ok := sel.X.(*ast.Ident)
			if !ok {
				return true
			}
			if pkg.Name == "log" && sel.Sel.Name == selector {
				line = fset.Position(call.Pos()).Line
				return false
			}
			return true
		})
		return false
	})

	require.NotZero(t, line, "log call not found")
	return line
}
