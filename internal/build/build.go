// Package build runs a frontend's production build and relocates the output.
//
// A build is three steps, each of which must succeed before the next starts:
// install dependencies, run the package's "build" script, and mirror the
// bundler's output directory into the target directory.
package build

import (
	"io"
	"os"
	"os/exec"

	"frontbuild/internal/api"
	"frontbuild/internal/backends"
	"frontbuild/internal/config"
	"frontbuild/internal/fs"
	"frontbuild/internal/ui"

	"github.com/google/chrometracing"
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/pkg/errors"
)

// Script is the package.json script that produces the bundle
const Script = "build"

// Runner runs a prepared command to completion, returning a
// *process.ChildExit when it exits non-zero.
type Runner interface {
	Exec(cmd *exec.Cmd) error
}

// Pipeline is a single build of one frontend.
type Pipeline struct {
	config *config.Config
	runner Runner
	ui     cli.Ui
	logger hclog.Logger

	// Stdout and Stderr are handed to the child processes.
	Stdout io.Writer
	Stderr io.Writer
}

// New returns a pipeline that builds the frontend described by cfg, running
// external tools through runner.
func New(cfg *config.Config, runner Runner, terminal cli.Ui) *Pipeline {
	return &Pipeline{
		config: cfg,
		runner: runner,
		ui:     terminal,
		logger: cfg.Logger.Named("build"),
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Run installs, builds and copies, stopping at the first failure. Failures of
// the external tools come back as the runner reported them.
func (p *Pipeline) Run() error {
	backend, err := p.prepare()
	if err != nil {
		return err
	}

	if p.config.SkipInstall {
		p.logger.Info("skipping install")
	} else {
		p.ui.Output("Installing dependencies...")
		if err := p.step("install", func() error {
			return p.exec(backend.InstallArgs(), nil)
		}); err != nil {
			return err
		}
	}

	p.ui.Output("Building...")
	if err := p.step("build", func() error {
		return p.exec(backend.RunArgs(Script), p.config.BuildEnv)
	}); err != nil {
		return err
	}

	p.ui.Output("Copying build files...")
	if err := p.step("copy", p.copyOutput); err != nil {
		return err
	}

	p.ui.Output(ui.SUCCESS_PREFIX + " Build process completed successfully!")
	return nil
}

// prepare checks that there is something to build and picks the package
// manager to build it with.
func (p *Pipeline) prepare() (*api.LanguageBackend, error) {
	frontendDir := p.config.FrontendDir
	if !frontendDir.DirExists() {
		return nil, errors.Errorf("frontend directory %v does not exist", frontendDir)
	}
	pkg, err := fs.ReadPackageJSON(frontendDir.Join("package.json"))
	if err != nil {
		return nil, err
	}
	if err := pkg.RequireScript(Script); err != nil {
		return nil, err
	}
	backend, err := backends.GetBackend(frontendDir, p.config.PackageManager, pkg, p.logger)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("using package manager", "backend", backend.Name, "package", pkg.Name)
	return backend, nil
}

func (p *Pipeline) step(name string, fn func() error) error {
	defer chrometracing.Event(name).Done()
	p.logger.Debug("starting step", "step", name)
	if err := fn(); err != nil {
		p.logger.Error("step failed", "step", name, "error", err)
		return err
	}
	p.logger.Debug("finished step", "step", name)
	return nil
}

// exec runs argv in the frontend directory. extraEnv, when set, is layered
// over the inherited environment.
func (p *Pipeline) exec(argv []string, extraEnv []string) error {
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = p.config.FrontendDir.ToString()
	cmd.Stdout = p.Stdout
	cmd.Stderr = p.Stderr
	if len(extraEnv) > 0 {
		cmd.Env = append(os.Environ(), extraEnv...)
	}
	return p.runner.Exec(cmd)
}

func (p *Pipeline) copyOutput() error {
	from := p.config.OutputDir
	to := p.config.TargetDir

	if from == to {
		p.logger.Info("output is already in place", "dir", from)
		return nil
	}
	// Copying a directory into itself would never terminate.
	inside, err := fs.DirContainsPath(from.ToString(), to.ToString())
	if err != nil {
		return err
	}
	if inside {
		return errors.Errorf("target directory %v is inside the build output %v", to, from)
	}

	if !from.DirExists() {
		p.ui.Warn(ui.WARNING_PREFIX + " no build output found at " + from.ToString() + ", nothing to copy")
	}
	if err := to.MkdirAll(); err != nil {
		return err
	}
	if err := fs.RecursiveCopy(from, to); err != nil {
		return err
	}
	p.logger.Debug("copied build output", "from", from, "to", to)
	return nil
}
