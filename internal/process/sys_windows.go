//go:build windows
// +build windows

package process

import (
	"os"
	"os/exec"
)

func setSetpgid(cmd *exec.Cmd, value bool) {}

// Windows has no process groups to signal, and os.Interrupt is not
// deliverable, so the child is killed outright.
func signalPid(pid int, s os.Signal) error {
	if pid < 0 {
		pid = -pid
	}
	p, err := os.FindProcess(pid)
	if err != nil {
		return err
	}
	return p.Kill()
}

func processNotFoundErr(err error) bool {
	return false
}
