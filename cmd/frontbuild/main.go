package main

import (
	"fmt"
	"os"

	"frontbuild/internal/config"
	"frontbuild/internal/process"
	"frontbuild/internal/run"
	uiPkg "frontbuild/internal/ui"

	"github.com/fatih/color"
	"github.com/mitchellh/cli"
)

var frontbuildVersion = "dev"

func main() {
	os.Exit(realMain(os.Args[1:]))
}

func realMain(args []string) int {
	ui := uiPkg.Default()

	// Parse and validate env vars and verbosity flags
	cf, args, err := config.ParseAndValidate(args)
	if err != nil {
		ui.Error(fmt.Sprintf("%s %s", uiPkg.ERROR_PREFIX, color.RedString(err.Error())))
		return 1
	}

	// No arguments runs the whole build.
	if len(args) == 0 {
		args = []string{"build"}
	}

	processes := process.NewManager(cf.Logger.Named("process"))
	processes.KillTimeout = cf.KillTimeout
	doneCh := watchSignals(func() {
		ui.Warn("Interrupted, stopping child processes...")
		processes.Close()
	})

	c := cli.NewCLI("frontbuild", frontbuildVersion)
	c.Args = args
	c.HelpWriter = os.Stdout
	c.ErrorWriter = os.Stderr
	c.Commands = map[string]cli.CommandFactory{
		"build": func() (cli.Command, error) {
			return &run.BuildCommand{Config: cf, Ui: ui, Processes: processes}, nil
		},
		"copy": func() (cli.Command, error) {
			return &run.CopyCommand{Config: cf, Ui: ui}, nil
		},
	}

	exitCode, err := c.Run()
	if err != nil {
		ui.Error(err.Error())
		exitCode = 1
	}

	// If a signal arrived, wait for the children to be stopped before leaving.
	select {
	case <-doneCh:
		if exitCode == 0 {
			exitCode = 1
		}
	default:
	}
	processes.Close()
	return exitCode
}
