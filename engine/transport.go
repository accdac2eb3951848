package engine

import (
	"fmt"
	"io"
	"net"
	"os"
	"os/exec"

	"github.com/grovetools/nvimgui/pkg/process"
)

// Duplex is a byte-stream connection to the editor backend: one of a
// Unix socket or an embedded child process's stdin/stdout pipes.
// Go's os.File and net.Conn don't expose a WouldBlock-style
// non-blocking Read the way a raw fd does, so Duplex is read from a
// dedicated goroutine instead (see readLoop in io.go) — that goroutine
// blocks on Read while the I/O thread polls a channel, which keeps the
// main loop from ever blocking on backend I/O without needing
// platform-specific fcntl calls.
type Duplex interface {
	io.ReadWriteCloser
}

// SocketTransport dials a Unix domain socket at path.
func SocketTransport(path string) (Duplex, error) {
	conn, err := net.Dial("unix", path)
	if err != nil {
		return nil, fmt.Errorf("engine: dialing socket %s: %w", path, err)
	}
	return conn, nil
}

// EmbeddedTransport launches command with args, wiring its stdin/stdout
// as the duplex; stderr is inherited by the parent process so backend
// diagnostics still reach the terminal the GUI was launched from.
type EmbeddedTransport struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout io.ReadCloser
}

func EmbedTransport(command string, args []string, stderr io.Writer) (*EmbeddedTransport, error) {
	return EmbedTransportEnv(command, args, stderr, nil)
}

// EmbedTransportEnv is EmbedTransport with additional environment
// variables appended to the child's inherited environment (os.Environ()
// plus these), for the rare backend that needs a variable steering it
// (e.g. a runtime dir or a plugin-path override) that the caller
// doesn't want to set process-wide.
func EmbedTransportEnv(command string, args []string, stderr io.Writer, env map[string]string) (*EmbeddedTransport, error) {
	cmd := exec.Command(command, args...)
	cmd.Stderr = stderr
	if len(env) > 0 {
		cmd.Env = os.Environ()
		for k, v := range env {
			cmd.Env = append(cmd.Env, k+"="+v)
		}
	}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("engine: opening stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("engine: opening stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("engine: starting %s: %w", command, err)
	}

	return &EmbeddedTransport{cmd: cmd, stdin: stdin, stdout: stdout}, nil
}

func (t *EmbeddedTransport) Read(p []byte) (int, error)  { return t.stdout.Read(p) }
func (t *EmbeddedTransport) Write(p []byte) (int, error) { return t.stdin.Write(p) }

// Close closes the pipes and waits for the child to exit. Wait's error
// (typically "signal: killed" once Close has already closed the pipes
// out from under it) is not propagated: the caller asked to stop, and
// the child exiting uncleanly in response isn't a transport failure.
func (t *EmbeddedTransport) Close() error {
	t.stdin.Close()
	t.stdout.Close()
	_ = t.cmd.Wait()
	return nil
}

// Alive reports whether the embedded backend process is still running.
// Close does not consult it and never signals the child. cmd.Wait
// hasn't necessarily been reaped yet at the point callers ask this, so
// this checks the PID directly rather than trusting cmd.ProcessState.
func (t *EmbeddedTransport) Alive() bool {
	if t.cmd.Process == nil {
		return false
	}
	if t.cmd.ProcessState != nil {
		return false
	}
	return process.IsProcessAlive(t.cmd.Process.Pid)
}
