// Package watch keeps a rendered table on screen and lays it out again when
// the terminal is resized or the input file changes.
package watch

import (
	"fmt"
	"path/filepath"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/fsnotify/fsnotify"
	"github.com/go-logr/logr"

	"github.com/oakwood-commons/tabletron/internal/render"
	"github.com/oakwood-commons/tabletron/pkg/layout"
	"github.com/oakwood-commons/tabletron/pkg/logger"
)

// Options configures a Model.
type Options struct {
	// Load rebuilds the renderer from the input and config files.
	Load func() (*render.Renderer, error)
	// Width pins the available width. 0 follows the window; negative is
	// unbounded.
	Width int
	// Paths are the files whose changes trigger a reload.
	Paths   []string
	NoColor bool
	Log     logr.Logger
}

type changedMsg struct{ path string }

type watchErrMsg struct{ err error }

var (
	statusStyle = lipgloss.NewStyle().Faint(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// Model is the bubbletea model for watch mode.
type Model struct {
	opts     Options
	renderer *render.Renderer
	viewport viewport.Model

	events <-chan fsnotify.Event
	errs   <-chan error
	names  map[string]bool

	winWidth  int
	winHeight int
	ready     bool
	content   string
	reloads   int
	err       error
}

// NewModel returns a model showing r. Call Watch to follow file changes.
func NewModel(r *render.Renderer, opts Options) *Model {
	return &Model{
		opts:     opts,
		renderer: r,
		viewport: viewport.New(),
	}
}

// Watch makes the model reload when one of its paths changes. events and
// errs usually come from an fsnotify.Watcher.
func (m *Model) Watch(events <-chan fsnotify.Event, errs <-chan error) {
	m.events = events
	m.errs = errs
	m.names = make(map[string]bool, len(m.opts.Paths))
	for _, p := range m.opts.Paths {
		m.names[filepath.Clean(p)] = true
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.waitForChange()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.winWidth, m.winHeight = msg.Width, msg.Height
		m.viewport.SetWidth(msg.Width)
		m.viewport.SetHeight(max(msg.Height-1, 1))
		m.ready = true
		m.refresh()
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "r":
			m.reload("manual")
			return m, nil
		}

	case changedMsg:
		m.reload(msg.path)
		return m, m.waitForChange()

	case watchErrMsg:
		m.opts.Log.Error(msg.err, "file watch failed")
		m.err = msg.err
		return m, m.waitForChange()
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() tea.View {
	if !m.ready {
		return tea.NewView("")
	}
	v := tea.NewView(m.viewport.View() + "\n" + m.status())
	v.AltScreen = true
	return v
}

// Content returns the last rendered table.
func (m *Model) Content() string {
	return m.content
}

// Err returns the last render or reload error, nil after a clean render.
func (m *Model) Err() error {
	return m.err
}

// available is the width handed to the renderer.
func (m *Model) available() int {
	switch {
	case m.opts.Width < 0:
		return layout.Unbounded
	case m.opts.Width > 0:
		return m.opts.Width
	}
	return m.winWidth
}

func (m *Model) refresh() {
	if !m.ready || m.renderer == nil {
		return
	}
	out, err := m.renderer.Render(m.available())
	if err != nil {
		m.opts.Log.Error(err, "render failed", logger.AvailableKey, layout.FormatAvailable(m.available()))
		m.err = err
		return
	}
	m.err = nil
	m.content = out
	m.viewport.SetContent(out)
}

func (m *Model) reload(reason string) {
	if m.opts.Load == nil {
		return
	}
	m.opts.Log.V(1).Info("reloading", logger.InputKey, reason)
	r, err := m.opts.Load()
	if err != nil {
		m.opts.Log.Error(err, "reload failed", logger.InputKey, reason)
		m.err = err
		return
	}
	m.renderer = r
	m.reloads++
	m.refresh()
}

func (m *Model) status() string {
	if m.err != nil {
		return errorStyle.Render("error: " + m.err.Error())
	}
	rows := 0
	if m.renderer != nil {
		rows = len(m.renderer.Rows())
	}
	s := fmt.Sprintf("width %s  rows %d  reloads %d  r reload  q quit",
		layout.FormatAvailable(m.available()), rows, m.reloads)
	if m.opts.NoColor {
		return s
	}
	return statusStyle.Render(s)
}

// waitForChange blocks until a watched path is written or created.
func (m *Model) waitForChange() tea.Cmd {
	if m.events == nil {
		return nil
	}
	events, errs, names := m.events, m.errs, m.names
	return func() tea.Msg {
		for {
			select {
			case ev, ok := <-events:
				if !ok {
					return nil
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 || !names[filepath.Clean(ev.Name)] {
					continue
				}
				return changedMsg{path: ev.Name}
			case err, ok := <-errs:
				if !ok {
					return nil
				}
				return watchErrMsg{err: err}
			}
		}
	}
}
