package testers

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"platina/internal/config"
	"platina/internal/domain"
)

// Parameters read and written by the exec tester
const (
	ParamCommand  = "command"
	ParamStdin    = "stdin"
	ParamStdout   = "stdout"
	ParamExitCode = "exit_code"
	ParamError    = "error"
)

// waitDelay bounds the wait for the output pipes once the process group was
// killed on timeout.
const waitDelay = 2 * time.Second

// Exec runs the [command] of each case through a shell and compares its
// combined output and exit code.
type Exec struct {
	shell   string
	timeout time.Duration
	env     []string
	dir     string
	logger  *zap.Logger
}

// NewExec creates an Exec tester. env is added to the process environment.
func NewExec(cfg config.ExecConfig, env map[string]string, logger *zap.Logger) *Exec {
	if logger == nil {
		logger = zap.NewNop()
	}
	shell := cfg.Shell
	if shell == "" {
		shell = config.DefaultShell
	}
	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = time.Duration(config.DefaultExecTimeoutSec) * time.Second
	}

	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	vars := make([]string, 0, len(keys))
	for _, k := range keys {
		vars = append(vars, k+"="+env[k])
	}

	return &Exec{shell: shell, timeout: timeout, env: vars, logger: logger}
}

// ForFile returns a copy that runs commands in the directory of path.
func (e *Exec) ForFile(path string) *Exec {
	cp := *e
	cp.dir = filepath.Dir(path)
	return &cp
}

// RunTestCase runs the case's command and declares stdout and, when the case
// has one or the command failed, exit_code. A command exceeding the timeout
// also declares error.
func (e *Exec) RunTestCase(c *domain.TestCase) {
	command, ok := c.Get(ParamCommand)
	if !ok {
		c.CompareAndUpdate(ParamError, "missing [command] parameter")
		return
	}

	output, code, timedOut := e.run(command, c)
	c.CompareAndUpdate(ParamStdout, strings.TrimSuffix(output, "\n"))

	if _, declared := c.Get(ParamExitCode); declared || code != 0 {
		c.CompareAndUpdate(ParamExitCode, strconv.Itoa(code))
	}
	if timedOut {
		c.CompareAndUpdate(ParamError, "command timed out after "+e.timeout.String())
	}
}

// run executes command in its own process group. On timeout the whole group
// is killed, so children holding the output pipe cannot outlive the deadline;
// the output written until then is kept.
func (e *Exec) run(command string, c *domain.TestCase) (string, int, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, e.shell, "-c", command)
	cmd.Dir = e.dir
	cmd.Env = append(os.Environ(), e.env...)
	if stdin, ok := c.Get(ParamStdin); ok {
		cmd.Stdin = strings.NewReader(stdin)
	}
	setupProcessGroup(cmd)
	cmd.Cancel = func() error { return killProcessGroup(cmd) }
	cmd.WaitDelay = waitDelay

	start := time.Now()
	out, err := cmd.CombinedOutput()
	log := e.logger.With(zap.String("case", c.Name), zap.Duration("duration", time.Since(start)))

	if ctx.Err() != nil {
		log.Warn("command timed out", zap.Duration("timeout", e.timeout))
		return string(out), -1, true
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		log.Debug("command finished")
		return string(out), 0, false
	case errors.As(err, &exitErr):
		log.Debug("command failed", zap.Int("exit_code", exitErr.ExitCode()))
		return string(out), exitErr.ExitCode(), false
	default:
		log.Warn("command could not start", zap.Error(err))
		return err.Error(), -1, false
	}
}
