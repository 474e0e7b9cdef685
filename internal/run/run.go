package run

import (
	"fmt"

	"frontbuild/internal/process"
	"frontbuild/internal/ui"

	"github.com/fatih/color"
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/pkg/errors"
)

// ExitCode maps an error from a command to the process exit code. A child
// that failed passes its own exit code through.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var childExit *process.ChildExit
	if errors.As(err, &childExit) && childExit.ExitCode > 0 {
		return childExit.ExitCode
	}
	return 1
}

// logError logs an error and outputs it to the UI.
func logError(out cli.Ui, log hclog.Logger, prefix string, err error) {
	log.Error(prefix, "error", err)

	if prefix != "" {
		prefix += ": "
	}

	out.Error(fmt.Sprintf("%s %s%s", ui.ERROR_PREFIX, prefix, color.RedString("%v", err)))
}

// logWarning logs a warning and outputs it to the UI.
func logWarning(out cli.Ui, log hclog.Logger, prefix string, err error) {
	log.Warn(prefix, "warning", err)

	if prefix != "" {
		prefix += ": "
	}

	out.Warn(fmt.Sprintf("%s %s%s", ui.WARNING_PREFIX, prefix, color.YellowString("%v", err)))
}
