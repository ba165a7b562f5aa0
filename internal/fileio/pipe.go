package fileio

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// Pipe runs an external filter command, feeding it input on stdin and
// collecting its stdout (spec §6: "Pipe(command, input) -> output").
// Grounded on the teacher's git.Client, which shells out via an
// injectable exec.Command and wraps failures with the command that
// produced them.
type Pipe struct {
	execCommand func(ctx context.Context, name string, arg ...string) *exec.Cmd
}

// NewPipe returns a Pipe backed by the real os/exec.
func NewPipe() *Pipe {
	return &Pipe{execCommand: exec.CommandContext}
}

// Run executes name with args, writes input to its stdin, and returns
// its stdout. Stderr is captured into the returned error on failure.
func (p *Pipe) Run(ctx context.Context, input []byte, name string, args ...string) ([]byte, error) {
	cmdFn := p.execCommand
	if cmdFn == nil {
		cmdFn = exec.CommandContext
	}
	cmd := cmdFn(ctx, name, args...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, &PipeError{Command: name, Err: err}
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return nil, &PipeError{Command: name, Err: err}
	}
	if _, err := stdin.Write(input); err != nil {
		_ = stdin.Close()
		_ = cmd.Wait()
		return nil, &PipeError{Command: name, Err: err}
	}
	if err := stdin.Close(); err != nil {
		_ = cmd.Wait()
		return nil, &PipeError{Command: name, Err: err}
	}

	if err := cmd.Wait(); err != nil {
		return nil, &PipeError{Command: name, Err: err, Stderr: stderr.String()}
	}
	return stdout.Bytes(), nil
}

// PipeError reports a failed external-filter invocation.
type PipeError struct {
	Command string
	Stderr  string
	Err     error
}

func (e *PipeError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("fileio: pipe %q failed: %s (%s)", e.Command, e.Err, e.Stderr)
	}
	return fmt.Sprintf("fileio: pipe %q failed: %s", e.Command, e.Err)
}

func (e *PipeError) Unwrap() error { return e.Err }
