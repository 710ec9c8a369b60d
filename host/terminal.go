// Package host provides the process-level glue a CLI front end needs to
// drive an interactive z80 shell: raw terminal input delivered through a
// channel, and signal-driven shutdown.
package host

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"golang.org/x/term"
)

// ExitKey is the byte that requests an immediate shutdown when read from
// the terminal, conventionally Ctrl-].
const ExitKey = 0x1D

// TerminalHost puts stdin into raw, non-blocking mode and feeds bytes read
// from it into a buffered channel, translating ExitKey into a channel
// close rather than a delivered byte.
type TerminalHost struct {
	bytes chan byte

	stopCh  chan struct{}
	done    chan struct{}
	stopped sync.Once

	fd           int
	nonblockSet  bool
	oldTermState *term.State
}

// NewTerminalHost constructs a host that has not yet taken over the
// terminal; call Start to begin reading.
func NewTerminalHost() *TerminalHost {
	return &TerminalHost{
		bytes:  make(chan byte, 256),
		stopCh: make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Bytes returns the channel bytes read from stdin are delivered on. It is
// closed when the exit key is read or Stop is called.
func (h *TerminalHost) Bytes() <-chan byte { return h.bytes }

// Start switches stdin to raw, non-blocking mode and begins reading it on
// a dedicated goroutine.
func (h *TerminalHost) Start() error {
	h.fd = int(os.Stdin.Fd())

	// On failure the bytes channel is left open but never written to:
	// Poll reports no data and no exit request, so a caller that chooses
	// to continue without raw mode (stdin is not a TTY) keeps working.
	oldState, err := term.MakeRaw(h.fd)
	if err != nil {
		return fmt.Errorf("host: failed to set raw mode: %w", err)
	}
	h.oldTermState = oldState

	if err := syscall.SetNonblock(h.fd, true); err != nil {
		_ = term.Restore(h.fd, h.oldTermState)
		h.oldTermState = nil
		return fmt.Errorf("host: failed to set nonblocking stdin: %w", err)
	}
	h.nonblockSet = true

	go h.readLoop()
	return nil
}

func (h *TerminalHost) readLoop() {
	defer close(h.done)
	defer close(h.bytes)

	buf := make([]byte, 1)
	for {
		select {
		case <-h.stopCh:
			return
		default:
		}

		n, err := syscall.Read(h.fd, buf)
		if n > 0 {
			b := buf[0]
			if b == ExitKey {
				return
			}
			if b == '\r' {
				b = '\n'
			}
			select {
			case h.bytes <- b:
			case <-h.stopCh:
				return
			}
		}
		if err == syscall.EAGAIN || err == syscall.EWOULDBLOCK {
			time.Sleep(5 * time.Millisecond)
			continue
		}
		if err != nil {
			return
		}
		if n == 0 {
			time.Sleep(5 * time.Millisecond)
		}
	}
}

// Poll returns a basicsbc.PollFunc-shaped triple for one non-blocking
// sample of the input channel: a received byte, whether one was ready,
// and whether the channel has closed (exit requested).
func (h *TerminalHost) Poll() (b byte, ok bool, exit bool) {
	select {
	case v, open := <-h.bytes:
		if !open {
			return 0, false, true
		}
		return v, true, false
	default:
		return 0, false, false
	}
}

// Stop terminates the reader goroutine and restores the terminal to its
// original mode. Safe to call more than once.
func (h *TerminalHost) Stop() {
	h.stopped.Do(func() {
		close(h.stopCh)
	})
	<-h.done
	if h.nonblockSet {
		_ = syscall.SetNonblock(h.fd, false)
		h.nonblockSet = false
	}
	if h.oldTermState != nil {
		_ = term.Restore(h.fd, h.oldTermState)
		h.oldTermState = nil
	}
}

// NotifyContext returns a context cancelled when the process receives
// SIGINT or SIGTERM, alongside the stop function the caller must defer.
func NotifyContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
