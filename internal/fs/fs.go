package fs

import (
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"frontbuild/internal/util"

	"github.com/pkg/errors"
)

// DirPermissions are the default permission bits we apply to directories.
const DirPermissions = os.ModeDir | 0775

// EnsureDir ensures that the given directory and all of its parents exist.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, DirPermissions); err != nil {
		return errors.Wrapf(err, "creating directory %v", dir)
	}
	return nil
}

var nonRelativeSentinel string = ".." + string(filepath.Separator)

// DirContainsPath returns true if the path 'target' is contained within 'dir'
// Expects both paths to be absolute and does not verify that either path exists.
func DirContainsPath(dir string, target string) (bool, error) {
	// Paths on different windows volumes never contain one another.
	if runtime.GOOS == "windows" && filepath.VolumeName(dir) != filepath.VolumeName(target) {
		return false, nil
	}
	rel, err := filepath.Rel(dir, target)
	if err != nil {
		return false, err
	}
	return rel != ".." && !strings.HasPrefix(rel, nonRelativeSentinel), nil
}

// PathExists returns true if the given path exists, as a file or a directory.
func PathExists(filename string) bool {
	_, err := os.Lstat(filename)
	return err == nil
}

// FileExists returns true if the given path exists and is a file.
func FileExists(filename string) bool {
	info, err := os.Lstat(filename)
	return err == nil && !info.IsDir()
}

// IsDirectory checks if a given path is a directory
func IsDirectory(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// CopyFile copies the bytes of 'from' into 'to', truncating any file already
// there. The source permission bits are carried over to a newly created file.
func CopyFile(from string, to string) (err error) {
	in, err := os.Open(from)
	if err != nil {
		return err
	}
	defer util.CloseAndIgnoreError(in)

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(to, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	defer func() {
		if e := out.Close(); e != nil && err == nil {
			err = e
		}
	}()

	_, err = io.Copy(out, in)
	return err
}
