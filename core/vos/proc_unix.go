//go:build unix

package vos

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// SignalName returns the conventional name of the signal, e.g. "SIGKILL".
func SignalName(sig syscall.Signal) string {
	if name := unix.SignalName(sig); name != "" {
		return name
	}
	return sig.String()
}
