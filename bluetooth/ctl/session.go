package ctl

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"
)

// errEnded is returned by waitForPrompt when the control tool closed its output.
var errEnded = errors.New("control session ended")

// session holds a single running control tool and the output
// that has not yet been attributed to a command.
type session struct {
	proc Process

	chunks  chan string
	done    chan struct{}
	pending string

	ended, closed atomic.Bool

	group  errgroup.Group
	logger zerolog.Logger
}

// newSession returns a session over the process and starts reading its output.
func newSession(proc Process, logger zerolog.Logger) *session {
	s := &session{
		proc:   proc,
		chunks: make(chan string),
		done:   make(chan struct{}),
		logger: logger,
	}

	s.group.Go(s.read)

	return s
}

// read forwards the process output until the process closes it.
// Once the session is closing, output is read and dropped so
// the process never blocks on a full terminal buffer.
func (s *session) read() error {
	defer close(s.chunks)

	buf := make([]byte, 4096)
	for {
		n, err := s.proc.Read(buf)
		if n > 0 {
			select {
			case s.chunks <- string(buf[:n]):
			case <-s.done:
			}
		}

		if err != nil {
			s.ended.Store(true)
			if !errors.Is(err, io.EOF) {
				s.logger.Debug().Err(err).Msg("output closed")
			}

			return nil
		}
	}
}

// send writes a command line to the process.
func (s *session) send(command string) error {
	s.logger.Debug().Str("command", command).Msg("send")

	_, err := io.WriteString(s.proc, command+"\n")

	return err
}

// waitForPrompt waits until the process prints its prompt, and returns the
// cleaned output received before it. On a timeout, a cancelled context or the
// end of the output, everything received so far is returned along with the error.
func (s *session) waitForPrompt(ctx context.Context, timeout time.Duration) (string, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		if output, ok := cutPrompt(sanitize(s.pending)); ok {
			s.pending = ""
			return output, nil
		}

		select {
		case chunk, ok := <-s.chunks:
			if !ok {
				return s.drain(), errEnded
			}

			s.pending += chunk

		case <-timer.C:
			return s.drain(), ErrPromptTimeout

		case <-ctx.Done():
			return s.drain(), ctx.Err()
		}
	}
}

// drain returns and clears the pending output.
func (s *session) drain() string {
	output := strings.TrimRight(sanitize(s.pending), " \t")
	s.pending = ""

	return output
}

// close asks the process to exit, and kills it if it has not
// exited within the grace period. It is safe to call more than once.
func (s *session) close(grace time.Duration) error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}

	close(s.done)

	if !s.ended.Load() {
		if err := s.send(exitCommand); err != nil {
			s.logger.Debug().Err(err).Msg("exit command not sent")
		}
	}

	waited := make(chan error, 1)
	go func() {
		waited <- s.proc.Wait()
	}()

	timer := time.NewTimer(grace)
	defer timer.Stop()

	select {
	case err := <-waited:
		s.logger.Debug().AnErr("wait", err).Msg("exited")

	case <-timer.C:
		s.logger.Debug().Dur("grace", grace).Msg("killing unresponsive control tool")
		if err := s.proc.Kill(); err != nil {
			s.logger.Debug().Err(err).Msg("kill")
		}
		<-waited
	}

	closeErr := s.proc.Close()
	if err := s.group.Wait(); err != nil {
		return err
	}

	return closeErr
}
