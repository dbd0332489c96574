package ctl

import (
	"context"
	"io"
	"os"
	"os/exec"

	"github.com/creack/pty"
)

// Process describes a running control tool.
type Process interface {
	io.ReadWriter

	// Wait blocks until the process has exited.
	Wait() error

	// Kill stops the process immediately.
	Kill() error

	// Close releases the terminal attached to the process.
	Close() error
}

// Spawner starts a new control tool process.
type Spawner func(ctx context.Context) (Process, error)

// PtySpawner returns a spawner that runs the control tool on a pseudo-terminal,
// since the tool only prints its prompt when attached to one.
func PtySpawner(path string, args ...string) Spawner {
	return func(ctx context.Context) (Process, error) {
		cmd := exec.CommandContext(ctx, path, args...)

		tty, err := pty.Start(cmd)
		if err != nil {
			return nil, err
		}

		return &ptyProcess{cmd: cmd, tty: tty}, nil
	}
}

// ptyProcess is a control tool attached to a pseudo-terminal.
type ptyProcess struct {
	cmd *exec.Cmd
	tty *os.File
}

func (p *ptyProcess) Read(b []byte) (int, error) {
	return p.tty.Read(b)
}

func (p *ptyProcess) Write(b []byte) (int, error) {
	return p.tty.Write(b)
}

func (p *ptyProcess) Wait() error {
	return p.cmd.Wait()
}

func (p *ptyProcess) Kill() error {
	if p.cmd.Process == nil {
		return nil
	}

	return p.cmd.Process.Kill()
}

func (p *ptyProcess) Close() error {
	return p.tty.Close()
}
