package main

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/grovetools/nvimgui/config"
	"github.com/grovetools/nvimgui/engine/debugserver"
	"github.com/grovetools/nvimgui/logging"
	"github.com/grovetools/nvimgui/tui/components/nvim"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var log *logrus.Entry

func init() {
	log = logging.NewLogger("nvimgui-run")
}

type focusState int

const (
	focusFileList focusState = iota
	focusNvim
)

// fileItem implements list.Item for the file picker pane.
type fileItem struct {
	path  string
	name  string
	isDir bool
}

func (f fileItem) FilterValue() string { return f.name }
func (f fileItem) Title() string {
	if f.isDir {
		return "[D] " + f.name
	}
	return "[F] " + f.name
}
func (f fileItem) Description() string { return f.path }

func loadFileList(dir string) []list.Item {
	var items []list.Item

	if dir != "." {
		items = append(items, fileItem{path: filepath.Dir(dir), name: "..", isDir: true})
	}

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if path == dir {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Dir(path) != dir {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		items = append(items, fileItem{path: path, name: d.Name(), isDir: d.IsDir()})
		return nil
	})
	if err != nil {
		return []list.Item{fileItem{name: "Error loading files", path: ""}}
	}

	return items
}

// runModel is the parent Bubble Tea model pairing a file picker with
// one embedded nvim.Model.
type runModel struct {
	fileList    list.Model
	nvimModel   nvim.Model
	focus       focusState
	width       int
	height      int
	currentFile string
	err         error
}

func newRunModel(cfg config.Config, initialFile string) (runModel, error) {
	items := loadFileList(".")
	delegate := list.NewDefaultDelegate()
	fileList := list.New(items, delegate, 30, 20)
	fileList.Title = "Files"
	fileList.SetShowStatusBar(false)
	fileList.SetFilteringEnabled(true)

	nvimModel, err := nvim.New(nvim.Options{
		Width:      80,
		Height:     24,
		FileToOpen: initialFile,
		Config:     cfg,
	})
	if err != nil {
		return runModel{}, fmt.Errorf("creating nvim component: %w", err)
	}

	return runModel{
		fileList:    fileList,
		nvimModel:   nvimModel,
		focus:       focusFileList,
		width:       80,
		height:      24,
		currentFile: initialFile,
	}, nil
}

func (m runModel) Init() tea.Cmd {
	return m.nvimModel.Init()
}

func (m runModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.nvimModel.Close()
			return m, tea.Quit
		}

		if msg.Type == tea.KeyCtrlB {
			if m.focus == focusFileList {
				m.focus = focusNvim
				m.nvimModel.SetFocused(true)
			} else {
				m.focus = focusFileList
				m.nvimModel.SetFocused(false)
			}
			return m, nil
		}

		if m.focus == focusFileList {
			if msg.Type == tea.KeyEnter {
				if item, ok := m.fileList.SelectedItem().(fileItem); ok {
					if item.isDir {
						absPath, _ := filepath.Abs(item.path)
						m.fileList.SetItems(loadFileList(absPath))
						m.fileList.Title = "Files: " + absPath
					} else {
						m.currentFile = item.path
						m.nvimModel.OpenFile(item.path)
						m.focus = focusNvim
						m.nvimModel.SetFocused(true)
					}
				}
				return m, nil
			}
			m.fileList, cmd = m.fileList.Update(msg)
			cmds = append(cmds, cmd)
		} else {
			var updatedModel tea.Model
			updatedModel, cmd = m.nvimModel.Update(msg)
			m.nvimModel = updatedModel.(nvim.Model)
			cmds = append(cmds, cmd)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		fileListWidth := m.width * 30 / 100
		nvimWidth := m.width - fileListWidth - 2
		nvimHeight := m.height - 3

		m.fileList.SetSize(fileListWidth, nvimHeight)
		cmd = m.nvimModel.SetSize(nvimWidth, nvimHeight)
		cmds = append(cmds, cmd)

	case error:
		m.err = msg
		return m, tea.Quit

	default:
		var updatedModel tea.Model
		updatedModel, cmd = m.nvimModel.Update(msg)
		m.nvimModel = updatedModel.(nvim.Model)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m runModel) View() string {
	if m.err != nil {
		return fmt.Sprintf("An error occurred: %v\n", m.err)
	}

	focusedStyle := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("62"))
	normalStyle := lipgloss.NewStyle().Border(lipgloss.Border{}).BorderForeground(lipgloss.Color("240"))

	fileListStyle := normalStyle
	if m.focus == focusFileList {
		fileListStyle = focusedStyle
	}
	fileListView := fileListStyle.Render(m.fileList.View())
	nvimView := m.nvimModel.View()
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, fileListView, nvimView)

	statusText := " Ctrl+B: Switch Focus | Ctrl+C: Quit"
	if m.currentFile != "" {
		statusText = fmt.Sprintf(" File: %s | Mode: %s | Ctrl+B: Switch Focus | Ctrl+C: Quit",
			m.currentFile, strings.ToUpper(m.nvimModel.Mode()))
	}

	focusIndicator := "[FILES]"
	if m.focus == focusNvim {
		focusIndicator = "[NVIM]"
	}

	statusStyle := lipgloss.NewStyle().
		Background(lipgloss.Color("62")).
		Foreground(lipgloss.Color("230")).
		Width(m.width).
		Padding(0, 1)

	statusLine := statusStyle.Render(focusIndicator + statusText)

	return lipgloss.JoinVertical(lipgloss.Left, mainView, statusLine)
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [file]",
		Short: "Launch the file picker and embedded editor view",
		Long: `Launches a side-by-side view: a file picker on the left and the
engine-driven editor grid on the right. Press Ctrl+B to switch focus
between the two panes, Ctrl+C to quit.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
				return fmt.Errorf("run: stdout is not a terminal, refusing to start the alt-screen view")
			}

			var fileToOpen string
			if len(args) > 0 {
				fileToOpen = args[0]
			}

			configPath, _ := cmd.Flags().GetString("config")
			cfg, err := config.LoadOrDefault(configPath)
			if err != nil {
				log.WithError(err).Warn("failed to load config, using defaults")
				cfg = config.Default()
			}
			logging.Init(logging.Config{Level: cfg.Logging.Level, ReportCaller: cfg.Logging.ReportCaller})

			m, err := newRunModel(cfg, fileToOpen)
			if err != nil {
				return fmt.Errorf("initializing run view: %w", err)
			}

			debugAddr, _ := cmd.Flags().GetString("debug-addr")
			if debugAddr != "" {
				srv := debugserver.New(logging.NewLogger("debugserver"))
				m.nvimModel.SetDebugServer(srv)

				httpServer := &http.Server{Addr: debugAddr, Handler: srv}
				go func() {
					if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
						log.WithError(err).Warn("debug server exited")
					}
				}()
				defer func() {
					ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
					defer cancel()
					httpServer.Shutdown(ctx)
				}()
				log.WithField("addr", debugAddr).Info("streaming frame snapshots")
			}

			p := tea.NewProgram(m, tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("running: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().String("debug-addr", "", "Serve a websocket frame-snapshot stream at this address (e.g. :9999)")

	return cmd
}
