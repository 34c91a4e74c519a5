package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/fsnotify/fsnotify"
	"golang.org/x/term"

	"github.com/oakwood-commons/tabletron/pkg/logger"
)

// Run loads the table and shows it until the user quits.
func Run(ctx context.Context, opts Options) error {
	r, err := opts.Load()
	if err != nil {
		return err
	}
	m := NewModel(r, opts)

	if len(opts.Paths) > 0 {
		w, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("failed to start file watcher: %w", err)
		}
		defer w.Close()
		// Watch directories so editors that replace files on save still
		// produce events.
		dirs := map[string]bool{}
		for _, p := range opts.Paths {
			dir := filepath.Dir(p)
			if dirs[dir] {
				continue
			}
			dirs[dir] = true
			if err := w.Add(dir); err != nil {
				return fmt.Errorf("failed to watch %s: %w", dir, err)
			}
			opts.Log.V(1).Info("watching", logger.InputKey, p)
		}
		m.Watch(w.Events, w.Errors)
	}

	progOpts, cleanup := programOptions(ctx)
	defer cleanup()

	_, err = tea.NewProgram(m, progOpts...).Run()
	return err
}

// stdinIsPiped and openTerminalIOFn are variables so tests can stub them.
var (
	stdinIsPiped = func() bool {
		stat, err := os.Stdin.Stat()
		if err != nil {
			return false
		}
		return stat.Mode()&os.ModeCharDevice == 0
	}
	openTerminalIOFn = openTerminalIO
	termGetSize      = term.GetSize
)

// programOptions reopens the terminal for keyboard input and resize events
// when the table was piped in on stdin.
func programOptions(ctx context.Context) ([]tea.ProgramOption, func()) {
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if !stdinIsPiped() {
		return opts, func() {}
	}

	ttyIn, ttyOut, err := openTerminalIOFn()
	if err != nil {
		return opts, func() {}
	}
	ctx, cancel := context.WithCancel(ctx)
	opts = []tea.ProgramOption{tea.WithContext(ctx), tea.WithInput(ttyIn)}
	if ttyOut != nil {
		opts = append(opts, tea.WithOutput(ttyOut), withResizePolling(ctx, ttyOut))
	}
	return opts, func() {
		cancel()
		_ = ttyIn.Close()
		if ttyOut != nil && ttyOut != ttyIn {
			_ = ttyOut.Close()
		}
	}
}

func openTerminalIO() (*os.File, *os.File, error) {
	in, out := terminalDeviceNames(runtime.GOOS)

	input, err := os.OpenFile(in, os.O_RDWR, 0)
	if err != nil {
		return nil, nil, err
	}
	if out == in {
		return input, input, nil
	}
	output, err := os.OpenFile(out, os.O_RDWR, 0)
	if err != nil {
		return input, nil, err
	}
	return input, output, nil
}

func terminalDeviceNames(goos string) (input string, output string) {
	if goos == "windows" {
		return "CONIN$", "CONOUT$"
	}
	return "/dev/tty", "/dev/tty"
}

// withResizePolling sends a WindowSizeMsg whenever the size of out changes.
// Resize signals do not reach the program when stdin is a pipe on some
// platforms.
func withResizePolling(ctx context.Context, out *os.File) tea.ProgramOption {
	return func(p *tea.Program) {
		go func() {
			t := time.NewTicker(250 * time.Millisecond)
			defer t.Stop()

			lastW, lastH := 0, 0
			for {
				select {
				case <-ctx.Done():
					return
				case <-t.C:
					w, h, err := termGetSize(int(out.Fd()))
					if err != nil || (w == lastW && h == lastH) {
						continue
					}
					lastW, lastH = w, h
					p.Send(tea.WindowSizeMsg{Width: w, Height: h})
				}
			}
		}()
	}
}
