package run

import (
	"flag"
	"fmt"
	"strings"

	"frontbuild/internal/config"
	"frontbuild/internal/fs"

	"github.com/mitchellh/cli"
	"github.com/pkg/errors"
)

// CopyCommand is a Command implementation that mirrors one directory onto another
type CopyCommand struct {
	Ui *cli.ColoredUi

	Config *config.Config
}

// Synopsis of copy command
func (c *CopyCommand) Synopsis() string {
	return "Mirror a directory tree onto another"
}

// Help returns information about the `copy` command
func (c *CopyCommand) Help() string {
	helpText := `
Usage: frontbuild copy <source> <destination>

    Copy every file and directory under source to the same relative place
    under destination. Existing files with the same name are overwritten;
    nothing in destination is deleted. The parent of destination must exist.

    A missing source is not an error; there is simply nothing to copy.
    Relative paths are resolved against FRONTBUILD_ROOT.

Options:
  --help                 Show this message.
`
	return strings.TrimSpace(helpText)
}

// Run executes the copy
func (c *CopyCommand) Run(args []string) int {
	flags := flag.NewFlagSet("copy", flag.ContinueOnError)
	flags.Usage = func() { c.Ui.Output(c.Help()) }
	if err := flags.Parse(args); err != nil {
		return 1
	}
	if flags.NArg() != 2 {
		logError(c.Ui, c.Config.Logger, "", errors.Errorf("expected <source> <destination>, got %d arguments", flags.NArg()))
		return 1
	}

	from := fs.ResolvePath(c.Config.Root, flags.Arg(0))
	to := fs.ResolvePath(c.Config.Root, flags.Arg(1))
	if !fs.PathExists(from.ToString()) {
		logWarning(c.Ui, c.Config.Logger, "", fmt.Errorf("%v does not exist, nothing to copy", from))
		return 0
	}

	// Copying a directory into itself would never terminate.
	if inside, err := fs.DirContainsPath(from.ToString(), to.ToString()); err != nil {
		logError(c.Ui, c.Config.Logger, "", err)
		return 1
	} else if inside && fs.IsDirectory(from.ToString()) || from == to {
		logError(c.Ui, c.Config.Logger, "", errors.Errorf("cannot copy %v into itself", from))
		return 1
	}

	if err := fs.RecursiveCopy(from, to); err != nil {
		logError(c.Ui, c.Config.Logger, "copy failed", err)
		return 1
	}
	c.Ui.Output(fmt.Sprintf("Copied %v to %v", from, to))
	return 0
}
