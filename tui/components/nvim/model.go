// Package nvim is a reusable Bubble Tea component that drives the engine
// package against an embedded or socket-connected editor backend and
// renders its GuiFrame snapshots as a terminal grid. It is a thin
// consumer of engine.IoThread/EditorState/BuildFrame, not a
// reimplementation of their logic — the component's job is only to
// translate bubbletea key/resize messages into engine calls and a
// GuiFrame into styled terminal text.
package nvim

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/grovetools/nvimgui/config"
	"github.com/grovetools/nvimgui/engine"
	"github.com/grovetools/nvimgui/engine/debugserver"
	"github.com/grovetools/nvimgui/logging"
	"github.com/sirupsen/logrus"
)

var log *logrus.Entry

func init() {
	log = logging.NewLogger("nvim-component")
}

// cellHeight is the nominal pixel height of a terminal cell used only to
// drive the engine's sub-row scroll-offset math (§4.3's SubLineOffset);
// a terminal component has no sub-cell pixels to show, so View ignores
// the offset and draws whole rows through Cell.
const cellHeight = 16.0

// Options holds configuration for creating a new component instance.
type Options struct {
	Width      int
	Height     int
	FileToOpen string
	Config     config.Config
}

// Model is the Bubble Tea model wrapping one engine session.
type Model struct {
	transport engine.Duplex
	io        *engine.IoThread
	queue     *engine.EventQueue
	state     *engine.EditorState
	wakeCh    chan struct{}

	width   int
	height  int
	focused bool
	err     error

	debug *debugserver.Server
}

// SetDebugServer wires a debug websocket server into the component: the
// model publishes a frame snapshot to it every time it drains engine
// events, right here on the goroutine that owns EditorState, satisfying
// the single-threaded ownership the engine requires of a GuiFrame's
// cell accessors.
func (m *Model) SetDebugServer(s *debugserver.Server) {
	m.debug = s
}

// New launches the configured backend, performs the attach handshake,
// and returns a Model ready to receive bubbletea messages.
func New(opts Options) (Model, error) {
	if opts.Width == 0 {
		opts.Width = opts.Config.Attach.Width
	}
	if opts.Width == 0 {
		opts.Width = 80
	}
	if opts.Height == 0 {
		opts.Height = opts.Config.Attach.Height
	}
	if opts.Height == 0 {
		opts.Height = 24
	}

	var backendEnv map[string]string
	if err := opts.Config.UnmarshalExtension("env", &backendEnv); err != nil {
		log.WithError(err).Warn("ignoring malformed env extension")
	}

	transport, err := engine.EmbedTransportEnv(opts.Config.Transport.Command, opts.Config.Transport.Args, os.Stderr, backendEnv)
	if err != nil {
		return Model{}, fmt.Errorf("nvim: launching backend: %w", err)
	}

	wakeCh := make(chan struct{}, 1)
	queue := &engine.EventQueue{}
	wake := engine.Wakeup{Notify: func(interface{}) {
		select {
		case wakeCh <- struct{}{}:
		default:
		}
	}}

	thread := engine.NewIoThread(transport, queue, wake, log)
	go thread.Run()

	anim := opts.Config.Animation
	state := engine.NewEditorState(anim.ScrollLengthSeconds, anim.ScrollbackSnapEpsilon, anim.FarScrollLineBudget, log)

	m := Model{
		transport: transport,
		io:        thread,
		queue:     queue,
		state:     state,
		wakeCh:    wakeCh,
		width:     opts.Width,
		height:    opts.Height,
	}

	timeout := opts.Config.Attach.Timeout()
	attachOpts := engine.AttachOptions{
		Timeout:     timeout,
		Width:       opts.Width,
		Height:      opts.Height,
		Attempts:    3,
		BaseBackoff: 100 * time.Millisecond,
	}
	if _, err := thread.AttachWithRetry(context.Background(), attachOpts); err != nil {
		thread.Stop()
		transport.Close()
		return Model{}, fmt.Errorf("nvim: attach handshake: %w", err)
	}

	if opts.FileToOpen != "" {
		m.OpenFile(opts.FileToOpen)
	}

	return m, nil
}

type redrawMsg struct{}

func (m Model) waitForRedraw() tea.Cmd {
	return func() tea.Msg {
		<-m.wakeCh
		return redrawMsg{}
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.waitForRedraw()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if err := m.io.SendInputDirect(keyToNvim(msg)); err != nil {
			m.err = err
			return m, tea.Quit
		}

	case redrawMsg:
		m.drainEvents()
		if m.state.Exited() {
			return m, tea.Quit
		}
		cmds = append(cmds, m.waitForRedraw())

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if err := m.io.Notify("nvim_ui_try_resize", []interface{}{int64(msg.Width), int64(msg.Height)}); err != nil {
			log.WithError(err).Warn("failed to notify backend of resize")
		}

	case error:
		m.err = msg
		return m, tea.Quit
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) drainEvents() {
	events := m.queue.PopAll(nil)
	for _, e := range events {
		if err := m.state.HandleEvent(e); err != nil {
			log.WithError(err).Warn("failed to apply event")
		}
	}
	if m.debug != nil {
		m.debug.Publish(engine.BuildFrame(m.state, cellHeight))
	}
}

// View implements tea.Model: it snapshots the current EditorState and
// renders the first root window (grid 1, the only window this demo's
// --embed session without multigrid splits ever creates) as styled text.
// Floating windows are not composited here — the terminal component is a
// reference consumer of BuildFrame, not the renderer the protocol is
// specified around.
func (m Model) View() string {
	if m.err != nil {
		return fmt.Sprintf("nvim error: %v\n", m.err)
	}

	frame := engine.BuildFrame(m.state, cellHeight)
	if len(frame.Roots) == 0 {
		return ""
	}
	root := frame.Roots[0]

	var b strings.Builder
	for r := 0; r < root.Height; r++ {
		for c := 0; c < root.Width; c++ {
			cell := root.Cell(r, c)
			style := resolvedStyle(cell.Style)
			if m.focused && frame.HasCursor && frame.Cursor.ScreenRow == r && frame.Cursor.ScreenCol == c {
				style = style.Reverse(true)
			}
			b.WriteString(style.Render(cellText(cell.Text)))
		}
		if r < root.Height-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

func cellText(s string) string {
	if s == "" {
		return " "
	}
	return s
}

// resolvedStyle builds a lipgloss.Style from a fully-resolved highlight,
// rendering only the subset of attributes a terminal cell can show.
func resolvedStyle(r engine.Resolved) lipgloss.Style {
	style := lipgloss.NewStyle().
		Foreground(rgbColor(r.Foreground)).
		Background(rgbColor(r.Background))

	if r.Bold {
		style = style.Bold(true)
	}
	if r.Italic {
		style = style.Italic(true)
	}
	if r.Underline || r.Undercurl || r.Underdouble || r.Underdashed || r.Underdotted {
		style = style.Underline(true)
	}
	if r.Strikethrough {
		style = style.Strikethrough(true)
	}
	if r.Reverse {
		style = style.Reverse(true)
	}
	return style
}

func rgbColor(v int32) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%06x", uint32(v)&0xffffff))
}

// SetSize updates the component's reported terminal size and informs the
// backend.
func (m *Model) SetSize(width, height int) tea.Cmd {
	m.width = width
	m.height = height
	if err := m.io.Notify("nvim_ui_try_resize", []interface{}{int64(width), int64(height)}); err != nil {
		log.WithError(err).Warn("failed to notify backend of resize")
	}
	return nil
}

// SetFocused sets whether this component currently has focus (drives
// cursor rendering).
func (m *Model) SetFocused(focused bool) {
	m.focused = focused
}

// OpenFile asks the backend to edit filepath.
func (m *Model) OpenFile(filepath string) {
	if err := m.io.Notify("nvim_command", []interface{}{"edit " + filepath}); err != nil {
		log.WithError(err).Warn("failed to open file")
	}
}

// Close tears down the I/O thread and the backend transport.
func (m *Model) Close() error {
	m.io.Stop()
	return m.transport.Close()
}

// Mode returns the current editor mode name.
func (m Model) Mode() string {
	return engine.BuildFrame(m.state, cellHeight).Mode
}

// CursorPosition returns the current screen-space cursor row/col, if known.
func (m Model) CursorPosition() (int, int) {
	frame := engine.BuildFrame(m.state, cellHeight)
	return frame.Cursor.ScreenRow, frame.Cursor.ScreenCol
}
