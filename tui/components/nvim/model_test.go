package nvim

import (
	"net"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/grovetools/nvimgui/engine"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestModel builds a Model wired to an in-process net.Pipe instead of
// a spawned backend, mirroring engine/io_test.go's newTestIoThread helper
// so Model's message handling can be exercised without New()'s
// EmbedTransport call.
func newTestModel(t *testing.T) (Model, net.Conn) {
	t.Helper()
	client, server := net.Pipe()

	queue := &engine.EventQueue{}
	wakeCh := make(chan struct{}, 1)
	wake := engine.Wakeup{Notify: func(interface{}) {
		select {
		case wakeCh <- struct{}{}:
		default:
		}
	}}

	logger := logrus.NewEntry(logrus.New())
	thread := engine.NewIoThread(client, queue, wake, logger)
	go thread.Run()
	t.Cleanup(func() {
		thread.Stop()
		client.Close()
		server.Close()
	})

	m := Model{
		transport: client,
		io:        thread,
		queue:     queue,
		state:     engine.NewEditorState(0.3, 0, 0, logger),
		wakeCh:    wakeCh,
		width:     80,
		height:    24,
	}
	return m, server
}

func TestKeyToNvimTranslatesNamedAndModifiedKeys(t *testing.T) {
	cases := []struct {
		msg  tea.KeyMsg
		want string
	}{
		{tea.KeyMsg{Type: tea.KeySpace}, "<Space>"},
		{tea.KeyMsg{Type: tea.KeyEnter}, "<CR>"},
		{tea.KeyMsg{Type: tea.KeyBackspace}, "<BS>"},
		{tea.KeyMsg{Type: tea.KeyTab}, "<Tab>"},
		{tea.KeyMsg{Type: tea.KeyEsc}, "<Esc>"},
		{tea.KeyMsg{Type: tea.KeyUp}, "<Up>"},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("<")}, "<LT>"},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("\\")}, "<Bslash>"},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")}, "a"},
		{tea.KeyMsg{Type: tea.KeyCtrlA}, "<C-a>"},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, keyToNvim(c.msg))
	}
}

func TestModelUpdateKeyMsgSendsInput(t *testing.T) {
	m, server := newTestModel(t)

	done := make(chan struct{})
	go func() {
		defer close(done)
		buf := make([]byte, 4096)
		n, err := server.Read(buf)
		require.NoError(t, err)
		assert.Contains(t, string(buf[:n]), "nvim_input")
	}()

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	_ = updated.(Model)
	<-done
}

func TestModelDrainEventsAppliesQueuedEventsToState(t *testing.T) {
	m, _ := newTestModel(t)

	m.queue.Push(engine.GridResizeEvent{Grid: 1, Width: 10, Height: 4})
	m.queue.Push(engine.WinPosEvent{Grid: 1, StartRow: 0, StartCol: 0, Width: 10, Height: 4})
	m.queue.Push(engine.GridLineEvent{
		Grid: 1, Row: 0, ColStart: 0,
		Cells: []engine.GridLineCell{{Text: "q", Repeat: 1}},
	})

	m.drainEvents()

	w, ok := m.state.Window(1)
	require.True(t, ok)
	assert.Equal(t, 10, w.GridWidth)
}

func TestModelViewRendersFirstRootWindow(t *testing.T) {
	m, _ := newTestModel(t)

	require.NoError(t, m.state.HandleEvent(engine.GridResizeEvent{Grid: 1, Width: 3, Height: 1}))
	require.NoError(t, m.state.HandleEvent(engine.WinPosEvent{Grid: 1, StartRow: 0, StartCol: 0, Width: 3, Height: 1}))
	require.NoError(t, m.state.HandleEvent(engine.GridLineEvent{
		Grid: 1, Row: 0, ColStart: 0,
		Cells: []engine.GridLineCell{{Text: "h", Repeat: 1}, {Text: "i", Repeat: 1}},
	}))

	out := m.View()
	assert.Contains(t, out, "h")
	assert.Contains(t, out, "i")
}

func TestModelViewReportsErrorInstead(t *testing.T) {
	m, _ := newTestModel(t)
	m.err = assert.AnError

	assert.Contains(t, m.View(), "nvim error")
}
