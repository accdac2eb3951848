package engine

import (
	"context"
	"sync"
	"time"

	engineerrors "github.com/grovetools/nvimgui/errors"
	"github.com/grovetools/nvimgui/engine/rpc"
	"github.com/sirupsen/logrus"
)

// IoThread is the exclusive owner of the transport and the read
// buffer. It drains queued writes, reads whatever bytes are
// available, decodes complete messages, and pushes typed events onto
// an EventQueue — never blocking the caller that constructed it (see
// Duplex's doc comment for how non-blocking reads are simulated).
type IoThread struct {
	transport Duplex
	queue     *EventQueue
	wake      Wakeup
	log       *logrus.Entry

	writeMu    sync.Mutex
	writeQueue [][]byte

	pendingMu sync.Mutex
	pending   map[uint64]chan rpc.Response
	nextID    uint64

	readCh  chan []byte
	errCh   chan error
	stopCh  chan struct{}
	stopped sync.Once

	buf []byte
}

// NewIoThread wraps transport; call Run to start the read/write/dispatch
// loop in the background.
func NewIoThread(transport Duplex, queue *EventQueue, wake Wakeup, log *logrus.Entry) *IoThread {
	return &IoThread{
		transport: transport,
		queue:     queue,
		wake:      wake,
		log:       log,
		pending:   make(map[uint64]chan rpc.Response),
		readCh:    make(chan []byte, 64),
		errCh:     make(chan error, 1),
		stopCh:    make(chan struct{}),
	}
}

// Run starts the background reader goroutine and the dispatch loop,
// blocking until Stop is called or the transport fails. Intended to be
// invoked via `go thread.Run()`.
func (t *IoThread) Run() {
	go t.readLoop()

	for {
		t.flushWrites()

		select {
		case <-t.stopCh:
			return
		case chunk, ok := <-t.readCh:
			if !ok {
				t.handleTransportClosed("read channel closed")
				return
			}
			t.buf = append(t.buf, chunk...)
			t.dispatchDecodable()
		case err := <-t.errCh:
			t.handleTransportClosed(err.Error())
			return
		}
	}
}

// readLoop owns the only blocking Read call against the transport,
// shuttling chunks (or the terminal error) to the dispatch loop over
// channels so Run never itself blocks on I/O.
func (t *IoThread) readLoop() {
	buf := make([]byte, 64*1024)
	for {
		n, err := t.transport.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			select {
			case t.readCh <- chunk:
			case <-t.stopCh:
				return
			}
		}
		if err != nil {
			select {
			case t.errCh <- err:
			case <-t.stopCh:
			}
			return
		}
	}
}

func (t *IoThread) dispatchDecodable() {
	for len(t.buf) > 0 {
		msg, n, err := rpc.Decode(t.buf)
		if err == rpc.ErrShortBuffer {
			return
		}
		if err != nil {
			t.log.WithError(err).Warn("dropping unparseable bytes from read buffer")
			t.buf = t.buf[:0]
			return
		}
		t.buf = t.buf[n:]
		t.handleMessage(msg)
	}
}

func (t *IoThread) handleMessage(msg interface{}) {
	switch m := msg.(type) {
	case rpc.Request:
		t.log.WithError(engineerrors.UnsupportedRequestFromBackend(m.Method)).Warn("ignoring request from backend")

	case rpc.Response:
		t.pendingMu.Lock()
		ch, ok := t.pending[m.ID]
		if ok {
			delete(t.pending, m.ID)
		}
		t.pendingMu.Unlock()
		if ok {
			ch <- m
		}

	case rpc.Notification:
		if m.Method != "redraw" {
			return
		}
		decodeRedrawParams(m.Params, t.queue, t.wake, func(err error) {
			t.log.WithError(err).Debug("dropping malformed redraw event")
		})
	}
}

func (t *IoThread) handleTransportClosed(reason string) {
	t.log.WithError(engineerrors.TransportClosed(reason)).Warn("transport closed")
	t.queue.Push(NvimExitedEvent{})
	t.pendingMu.Lock()
	for id, ch := range t.pending {
		close(ch)
		delete(t.pending, id)
	}
	t.pendingMu.Unlock()
}

// flushWrites drains the queued bulk writes under the write lock.
func (t *IoThread) flushWrites() {
	t.writeMu.Lock()
	pending := t.writeQueue
	t.writeQueue = nil
	t.writeMu.Unlock()

	for _, frame := range pending {
		if _, err := t.transport.Write(frame); err != nil {
			t.log.WithError(engineerrors.TransportWriteFailed(err)).Warn("write failed")
			return
		}
	}
}

// QueueWrite enqueues a pre-encoded frame for the I/O loop to drain;
// used for bulk operations (resize, commands) that don't need to beat
// the queue.
func (t *IoThread) QueueWrite(frame []byte) {
	t.writeMu.Lock()
	t.writeQueue = append(t.writeQueue, frame)
	t.writeMu.Unlock()
}

// SendInputDirect takes the fast path for keyboard input: encode a
// single input(keys) notification and write it immediately, bypassing
// the write queue, since input latency is the one path this protocol
// treats as load-bearing.
func (t *IoThread) SendInputDirect(keys string) error {
	frame, err := rpc.EncodeNotification("input", []interface{}{keys})
	if err != nil {
		return err
	}
	t.writeMu.Lock()
	_, err = t.transport.Write(frame)
	t.writeMu.Unlock()
	if err != nil {
		return engineerrors.TransportWriteFailed(err)
	}
	return nil
}

// Notify encodes and queues a fire-and-forget notification (e.g.
// ui_try_resize, input_mouse, command).
func (t *IoThread) Notify(method string, params []interface{}) error {
	frame, err := rpc.EncodeNotification(method, params)
	if err != nil {
		return err
	}
	t.QueueWrite(frame)
	return nil
}

// Request performs the synchronous attach handshake: encode a Request,
// write it directly, and block until the matching Response arrives or
// ctx is done. This is the sole synchronous call in the protocol — all
// other outbound calls are notifications.
func (t *IoThread) Request(ctx context.Context, method string, params []interface{}) (rpc.Response, error) {
	t.pendingMu.Lock()
	id := t.nextID
	t.nextID++
	ch := make(chan rpc.Response, 1)
	t.pending[id] = ch
	t.pendingMu.Unlock()

	frame, err := rpc.EncodeRequest(id, method, params)
	if err != nil {
		t.pendingMu.Lock()
		delete(t.pending, id)
		t.pendingMu.Unlock()
		return rpc.Response{}, err
	}

	t.writeMu.Lock()
	_, err = t.transport.Write(frame)
	t.writeMu.Unlock()
	if err != nil {
		t.pendingMu.Lock()
		delete(t.pending, id)
		t.pendingMu.Unlock()
		return rpc.Response{}, engineerrors.TransportWriteFailed(err)
	}

	select {
	case resp, ok := <-ch:
		if !ok {
			return rpc.Response{}, engineerrors.TransportClosed("closed while awaiting response")
		}
		return resp, nil
	case <-ctx.Done():
		t.pendingMu.Lock()
		delete(t.pending, id)
		t.pendingMu.Unlock()
		return rpc.Response{}, ctx.Err()
	}
}

// Stop signals the read and dispatch loops to exit. Safe to call more
// than once and safe to call before Run's goroutines have observed the
// transport close on their own.
func (t *IoThread) Stop() {
	t.stopped.Do(func() {
		close(t.stopCh)
	})
}

// AttachTimeout is a convenience wrapper combining Request with the
// deadline the attach handshake is required to respect (§5).
func (t *IoThread) AttachTimeout(timeout time.Duration, width, height int) (rpc.Response, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return t.Request(ctx, "nvim_ui_attach", []interface{}{
		int64(width), int64(height),
		map[string]interface{}{"rgb": true, "ext_linegrid": true, "ext_multigrid": true},
	})
}
