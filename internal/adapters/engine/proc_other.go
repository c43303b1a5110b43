//go:build !unix

package engine

import "os/exec"

// killProcessGroupOnCancel leaves the default cancellation in place;
// WaitDelay still bounds the wait for inherited pipes.
func killProcessGroupOnCancel(cmd *exec.Cmd) {}
