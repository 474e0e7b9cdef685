package process

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"
)

var (
	// ExitCodeOK is the exit code of a child that finished successfully.
	ExitCodeOK = 0

	// ExitCodeError is reported when the child failed without a usable exit
	// code, e.g. because it was killed by a signal.
	ExitCodeError = -1
)

// Child is a single external command under management. It runs to completion
// unless it is stopped, in which case it is interrupted and, if it does not
// exit within its kill timeout, killed.
type Child struct {
	mu      sync.Mutex
	stopped bool

	cmd *exec.Cmd

	killSignal  os.Signal
	killTimeout time.Duration

	// exitCh receives the exit code, or is closed without a value if the
	// child was stopped. doneCh is closed once the process has been reaped.
	exitCh chan int
	doneCh chan struct{}

	// whether to run the child in its own process group (default on)
	setpgid bool

	Label string

	logger hclog.Logger
}

func newChild(cmd *exec.Cmd, killSignal os.Signal, killTimeout time.Duration, logger hclog.Logger) *Child {
	label := fmt.Sprintf("(%v) %v", cmd.Dir, strings.Join(cmd.Args, " "))
	return &Child{
		cmd:         cmd,
		killSignal:  killSignal,
		killTimeout: killTimeout,
		exitCh:      make(chan int, 1),
		doneCh:      make(chan struct{}),
		setpgid:     true,
		Label:       label,
		logger:      logger.Named(cmd.Args[0]),
	}
}

// Command returns the human-formatted command with arguments.
func (c *Child) Command() string {
	return c.Label
}

// ExitCh returns the channel the exit code is delivered on.
func (c *Child) ExitCh() <-chan int {
	return c.exitCh
}

// Start launches the process. Errors that prevent the process from starting
// are returned directly; everything after that is reported on ExitCh.
func (c *Child) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return ErrClosing
	}
	c.logger.Debug("spawning", "command", c.Label)
	setSetpgid(c.cmd, c.setpgid)
	if err := c.cmd.Start(); err != nil {
		return err
	}
	go c.wait()
	return nil
}

func (c *Child) wait() {
	code := exitCode(c.cmd.Wait())
	c.logger.Debug("exited", "code", code)

	c.mu.Lock()
	stopped := c.stopped
	c.mu.Unlock()
	if !stopped {
		c.exitCh <- code
	}
	close(c.exitCh)
	close(c.doneCh)
}

func exitCode(err error) int {
	if err == nil {
		return ExitCodeOK
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		if code := exitErr.ExitCode(); code > 0 {
			return code
		}
	}
	return ExitCodeError
}

// Stop interrupts the process with the kill signal and waits for it to exit,
// force-killing it after the kill timeout. A stopped child never reports an
// exit code. Stop is safe to call more than once.
func (c *Child) Stop() {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	c.stopped = true
	started := c.cmd.Process != nil
	c.mu.Unlock()

	if !started {
		return
	}
	select {
	case <-c.doneCh:
		return
	default:
	}

	if c.killSignal != nil {
		if err := c.signal(c.killSignal); err != nil && !processNotFoundErr(err) {
			c.logger.Debug("signal failed", "error", err)
		}
		select {
		case <-c.doneCh:
			return
		case <-time.After(c.killTimeout):
			c.logger.Debug("timed out waiting for exit", "timeout", c.killTimeout)
		}
	}
	c.logger.Debug("killing")
	_ = c.cmd.Process.Kill()
	<-c.doneCh
}

func (c *Child) signal(s os.Signal) error {
	pid := c.cmd.Process.Pid
	if c.setpgid {
		// negative pid addresses the whole process group
		pid = -pid
	}
	return signalPid(pid, s)
}
