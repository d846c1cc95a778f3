//go:build tools
// +build tools

// Package tools pins the mockgen version used by the go:generate
// directives so `go generate ./...` works on a fresh checkout.
package greeter_proxy

import (
	_ "go.uber.org/mock/mockgen"
)
