// Package inject provides the platform keyboard backends the typing engine
// drives: robotgo on every desktop platform and keybd_event on linux and
// windows.
package inject

import (
	"errors"
	"fmt"
	"strings"

	"github.com/taglme/typist/typing"
)

// Backend names accepted by New.
const (
	BackendRobotgo = "robotgo"
	BackendKeybd   = "keybd"
)

var (
	// ErrUnknownKey means the backend has no discrete key for the name.
	ErrUnknownKey = errors.New("key not available on this backend")
	// ErrUnsupported means the backend cannot run on this platform.
	ErrUnsupported = errors.New("backend not supported on this platform")
)

// Backends lists the valid backend names.
func Backends() []string {
	return []string{BackendRobotgo, BackendKeybd}
}

// ValidBackend reports whether name is a known backend.
func ValidBackend(name string) bool {
	for _, b := range Backends() {
		if strings.EqualFold(b, name) {
			return true
		}
	}
	return false
}

// New returns the injector for backend.
func New(backend string) (typing.Injector, error) {
	switch strings.ToLower(backend) {
	case BackendRobotgo, "":
		return NewRobotgo(), nil
	case BackendKeybd:
		return newKeybd()
	default:
		return nil, fmt.Errorf("unknown injection backend %q, options: %s", backend, strings.Join(Backends(), ", "))
	}
}
