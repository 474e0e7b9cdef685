package fs

import (
	"os"

	"github.com/karrick/godirwalk"
	"github.com/pkg/errors"
)

// RecursiveCopy mirrors the tree rooted at from onto to.
//
// Directories are created one level at a time as they are reached, so the
// parent of to must already exist. Files are copied byte for byte and replace
// whatever was at the destination. Nothing at the destination is ever removed.
// A source that does not exist is not an error: there is simply nothing to copy.
//
// Siblings are visited in the order the filesystem lists them. The first
// failure stops the walk; files copied before it are left in place.
func RecursiveCopy(from AbsolutePath, to AbsolutePath) error {
	// Stat rather than Lstat: a link to a directory is copied as a directory,
	// and a dangling link counts as missing.
	info, err := os.Stat(from.ToString())
	if os.IsNotExist(err) {
		return nil
	} else if err != nil {
		return errors.Wrapf(err, "reading %v", from)
	}

	if !info.IsDir() {
		if err := CopyFile(from.ToString(), to.ToString()); err != nil {
			return errors.Wrapf(err, "copying %v to %v", from, to)
		}
		return nil
	}

	if !PathExists(to.ToString()) {
		if err := os.Mkdir(to.ToString(), DirPermissions); err != nil {
			return errors.Wrapf(err, "creating directory %v", to)
		}
	}

	names, err := godirwalk.ReadDirnames(from.ToString(), nil)
	if err != nil {
		return errors.Wrapf(err, "listing %v", from)
	}
	for _, name := range names {
		if err := RecursiveCopy(from.Join(name), to.Join(name)); err != nil {
			return err
		}
	}
	return nil
}
