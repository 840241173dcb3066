//go:build tools
// +build tools

package lrtables

// Tools used by go:generate, pinned in go.mod.
import (
	_ "golang.org/x/tools/cmd/stringer"
)
