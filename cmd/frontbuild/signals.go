package main

import (
	"os"
	"os/signal"
	"syscall"
)

// watchSignals calls onClose once, the first time the process is asked to
// stop, and closes the returned channel when onClose has finished.
func watchSignals(onClose func()) <-chan struct{} {
	doneCh := make(chan struct{})
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		<-signalCh
		onClose()
		close(doneCh)
	}()
	return doneCh
}
