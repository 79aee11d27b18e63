//go:build !unix

package vos

import "syscall"

// SignalName returns the description of the signal.
func SignalName(sig syscall.Signal) string {
	return sig.String()
}
