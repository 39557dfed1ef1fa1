//go:build !linux && !windows

package inject

import (
	"fmt"
	"runtime"

	"github.com/taglme/typist/typing"
)

// newKeybd always fails here; keybd_event only drives linux and windows.
func newKeybd() (typing.Injector, error) {
	return nil, fmt.Errorf("keybd on %s: %w", runtime.GOOS, ErrUnsupported)
}
