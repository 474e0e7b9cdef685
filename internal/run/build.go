package run

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"frontbuild/internal/build"
	"frontbuild/internal/config"
	"frontbuild/internal/process"
	"frontbuild/internal/ui"

	"github.com/google/chrometracing"
	"github.com/mitchellh/cli"
	"github.com/pkg/errors"
)

// BuildCommand is a Command implementation that builds the frontend and
// copies its output into place
type BuildCommand struct {
	Ui *cli.ColoredUi

	Config *config.Config

	// Processes runs the package manager; closing it interrupts the build.
	Processes *process.Manager
}

// Synopsis of build command
func (c *BuildCommand) Synopsis() string {
	return "Install, build and copy the frontend (default)"
}

// Help returns information about the `build` command
func (c *BuildCommand) Help() string {
	helpText := `
Usage: frontbuild [build]

    Install the frontend's dependencies, run its production build and copy
    the build output to the target directory.

    The steps run in order and the first failure stops the build. When the
    package manager exits with a non-zero code, frontbuild exits with the
    same code and nothing is copied.

Environment:
  FRONTBUILD_ROOT             Directory other paths are relative to.
                              (default: current directory)
  FRONTBUILD_FRONTEND_DIR     Directory containing package.json.
                              (default: FullStackApp/frontend)
  FRONTBUILD_OUTPUT_DIR       Build output, relative to the frontend.
                              (default: build)
  FRONTBUILD_TARGET_DIR       Where the output is copied to.
                              (default: build)
  FRONTBUILD_PACKAGE_MANAGER  One of npm, yarn, pnpm. (default: detected)
  FRONTBUILD_SKIP_INSTALL     Skip installing dependencies.
  FRONTBUILD_PROFILE          Write a chrome trace of the build steps.
  FRONTBUILD_KILL_TIMEOUT     How long an interrupted child gets to exit
                              before it is killed. (default: 10s)
  BUILD_PATH                  Passed to the bundler; also the copy source.
  PUBLIC_URL                  Passed to the bundler.
  FRONTBUILD_LOG_LEVEL        Log level (trace, debug, info, warn, error).

Options:
  --help                      Show this message.
  -v, -vv, -vvv               Increase log verbosity.
`
	return strings.TrimSpace(helpText)
}

// Run executes the build
func (c *BuildCommand) Run(args []string) int {
	startAt := time.Now()
	flags := flag.NewFlagSet("build", flag.ContinueOnError)
	flags.Usage = func() { c.Ui.Output(c.Help()) }
	if err := flags.Parse(args); err != nil {
		return 1
	}
	if flags.NArg() > 0 {
		logError(c.Ui, c.Config.Logger, "", errors.Errorf("unexpected arguments: %v", strings.Join(flags.Args(), " ")))
		return 1
	}

	if c.Config.Profile {
		chrometracing.EnableTracing()
	}

	pipeline := build.New(c.Config, c.Processes, c.Ui)
	if err := pipeline.Run(); err != nil {
		if errors.Is(err, process.ErrClosing) {
			logError(c.Ui, c.Config.Logger, "", errors.New("build interrupted"))
		} else {
			logError(c.Ui, c.Config.Logger, "", err)
		}
		return ExitCode(err)
	}

	if path := chrometracing.Path(); c.Config.Profile && path != "" {
		c.Ui.Output(fmt.Sprintf("Trace of the build written to %s", ui.Bold(path)))
	}
	c.Ui.Output(ui.Dim(fmt.Sprintf("Done in %v", time.Since(startAt).Round(time.Millisecond))))
	return 0
}
