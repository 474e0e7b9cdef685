//go:build !windows
// +build !windows

package main

import (
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchSignals(t *testing.T) {
	for _, sig := range []syscall.Signal{syscall.SIGTERM, syscall.SIGQUIT} {
		t.Run(sig.String(), func(t *testing.T) {
			closed := make(chan struct{})
			doneCh := watchSignals(func() { close(closed) })

			require.NoError(t, syscall.Kill(os.Getpid(), sig))

			select {
			case <-doneCh:
			case <-time.After(5 * time.Second):
				t.Fatalf("%v did not stop the build", sig)
			}
			select {
			case <-closed:
			default:
				assert.Fail(t, "onClose was not called before done")
			}
		})
	}
}
