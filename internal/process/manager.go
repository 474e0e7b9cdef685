package process

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"
)

// ErrClosing is returned when the process manager is in the process of closing,
// meaning that no more child processes can be Exec'd, and existing, non-failed
// child processes will be stopped with this error.
var ErrClosing = errors.New("process manager is already closing")

// ChildExit is returned when a child process exits with a non-zero exit code
type ChildExit struct {
	ExitCode int
	Command  string
}

func (ce *ChildExit) Error() string {
	if ce.ExitCode == ExitCodeError {
		return fmt.Sprintf("command %s was terminated", ce.Command)
	}
	return fmt.Sprintf("command %s exited (%d)", ce.Command, ce.ExitCode)
}

// Manager tracks all of the child processes that have been spawned
type Manager struct {
	done     bool
	children map[*Child]struct{}
	mu       sync.Mutex
	doneCh   chan struct{}
	logger   hclog.Logger

	// KillTimeout is how long a stopped child gets to exit after SIGINT.
	KillTimeout time.Duration
}

// NewManager creates a new properly-initialized Manager instance
func NewManager(logger hclog.Logger) *Manager {
	return &Manager{
		children:    make(map[*Child]struct{}),
		doneCh:      make(chan struct{}),
		logger:      logger,
		KillTimeout: 10 * time.Second,
	}
}

// Exec spawns a child process to run the given command, then blocks
// until it completes. Returns a nil error if the child process finished
// successfully, ErrClosing if the manager closed during execution, and
// a ChildExit error if the child process exited with a non-zero exit code.
func (m *Manager) Exec(cmd *exec.Cmd) error {
	m.mu.Lock()
	if m.done {
		m.mu.Unlock()
		return ErrClosing
	}
	child := newChild(cmd, os.Interrupt, m.KillTimeout, m.logger)
	m.children[child] = struct{}{}
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		delete(m.children, child)
		m.mu.Unlock()
	}()

	if err := child.Start(); err != nil {
		return err
	}
	exitCode, ok := <-child.ExitCh()
	if !ok {
		return ErrClosing
	} else if exitCode != ExitCodeOK {
		return &ChildExit{
			ExitCode: exitCode,
			Command:  child.Command(),
		}
	}
	return nil
}

// Close interrupts all child processes if it hasn't been done yet,
// and in either case blocks until they all exit or are killed
func (m *Manager) Close() {
	m.mu.Lock()
	if m.done {
		m.mu.Unlock()
		<-m.doneCh
		return
	}
	m.done = true
	wg := sync.WaitGroup{}
	for child := range m.children {
		child := child
		wg.Add(1)
		go func() {
			defer wg.Done()
			child.Stop()
		}()
	}
	m.mu.Unlock()
	wg.Wait()
	close(m.doneCh)
}
