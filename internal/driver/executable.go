package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrUnsupportedPlatform is returned for operating systems without a known
// build output layout.
var ErrUnsupportedPlatform = errors.New("unsupported platform")

// MissingExecutableError reports that the compiled benchmark binary is absent.
type MissingExecutableError struct {
	Path string
}

func (e *MissingExecutableError) Error() string {
	return fmt.Sprintf("executable %s not found", e.Path)
}

// Is lets callers match the error with os.ErrNotExist.
func (e *MissingExecutableError) Is(target error) bool {
	return target == os.ErrNotExist
}

// ExecutablePath returns build/<os>/<arch>/<mode>/<name> under baseDir, with an
// .exe suffix on Windows. Only windows and linux are recognised.
func ExecutablePath(baseDir, goos, arch, mode, name string) (string, error) {
	switch goos {
	case "windows":
		name += ".exe"
	case "linux":
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedPlatform, goos)
	}
	return filepath.Join(baseDir, "build", goos, arch, mode, name), nil
}

// ResolveExecutable computes the executable path and verifies it exists.
func ResolveExecutable(baseDir, goos, arch, mode, name string) (string, error) {
	path, err := ExecutablePath(baseDir, goos, arch, mode, name)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", &MissingExecutableError{Path: path}
		}
		return "", fmt.Errorf("executable %q not accessible: %w", path, err)
	}
	return path, nil
}
