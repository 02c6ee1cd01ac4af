//go:build tools

// Package tools tracks build tooling (task runner, linter) as module
// dependencies so `go tool`-style invocations resolve on a fresh checkout.
package tools

import (
	_ "github.com/go-task/task/v3/cmd/task"
	_ "github.com/golangci/golangci-lint/v2/cmd/golangci-lint"
)
