//go:build !windows

package testers

import (
	"errors"
	"os"
	"os/exec"
	"syscall"
)

// setupProcessGroup runs cmd in its own process group so that killing the
// group reaches every child the shell started.
func setupProcessGroup(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.Setpgid = true
}

// killProcessGroup kills the process group led by cmd, then the process itself.
func killProcessGroup(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	// the group id equals the pid since Setpgid is set
	_ = syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)

	if err := cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return err
	}
	return nil
}
