package launcher

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
)

var ErrEmptyCommand = errors.New("empty command")

// Runner starts a command and waits for it to exit.
type Runner interface {
	Run(ctx context.Context, argv []string, dir string, env []string) (int, error)
}

// ExecRunner runs commands as child processes. Nil streams are inherited
// from the current process. The environment is the current one plus env.
type ExecRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func (r *ExecRunner) Run(ctx context.Context, argv []string, dir string, env []string) (int, error) {
	if len(argv) <= 0 {
		return 0, ErrEmptyCommand
	}
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), env...)
	cmd.Stdin = r.Stdin
	if cmd.Stdin == nil {
		cmd.Stdin = os.Stdin
	}
	cmd.Stdout = r.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = r.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	err := cmd.Run()
	var exit *exec.ExitError
	if errors.As(err, &exit) {
		return exit.ExitCode(), nil
	}
	if err != nil {
		return -1, err
	}
	return 0, nil
}
