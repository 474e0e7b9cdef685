package fs

import (
	"fmt"
	"os"
	"path/filepath"
)

// AbsolutePath represents a platform-dependent absolute path on the filesystem,
// and is used to enforce correct path manipulation
type AbsolutePath string

// CheckedToAbsolutePath returns s as an AbsolutePath, or an error if it is relative.
func CheckedToAbsolutePath(s string) (AbsolutePath, error) {
	if filepath.IsAbs(s) {
		return AbsolutePath(filepath.Clean(s)), nil
	}
	return "", fmt.Errorf("%v is not an absolute path", s)
}

// ResolvePath anchors p at base unless p is already absolute.
func ResolvePath(base AbsolutePath, p string) AbsolutePath {
	if filepath.IsAbs(p) {
		return AbsolutePath(filepath.Clean(p))
	}
	return base.Join(p)
}

// GetCwd returns the current working directory as an AbsolutePath.
func GetCwd() (AbsolutePath, error) {
	cwdRaw, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("invalid working directory: %w", err)
	}
	cwd, err := CheckedToAbsolutePath(cwdRaw)
	if err != nil {
		return "", fmt.Errorf("cwd is not an absolute path %v: %v", cwdRaw, err)
	}
	return cwd, nil
}

func (ap AbsolutePath) ToString() string {
	return string(ap)
}

func (ap AbsolutePath) Join(args ...string) AbsolutePath {
	return AbsolutePath(filepath.Join(ap.ToString(), filepath.Join(args...)))
}

func (ap AbsolutePath) Dir() AbsolutePath {
	return AbsolutePath(filepath.Dir(ap.ToString()))
}

func (ap AbsolutePath) MkdirAll() error {
	return EnsureDir(ap.ToString())
}

func (ap AbsolutePath) ReadFile() ([]byte, error) {
	return os.ReadFile(ap.ToString())
}

func (ap AbsolutePath) FileExists() bool {
	return FileExists(ap.ToString())
}

func (ap AbsolutePath) DirExists() bool {
	return IsDirectory(ap.ToString())
}
