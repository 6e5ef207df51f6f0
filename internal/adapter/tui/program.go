package tui

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/niksmo/visioncart/internal/core/port"
)

// Program runs the terminal UI on its own goroutine.
type Program struct {
	p       *tea.Program
	done    chan struct{}
	once    sync.Once
	started atomic.Bool
}

// NewProgram builds a program over the given streams. A nil in or out falls
// back to the process terminal.
func NewProgram(
	sf port.Storefront, currency string, in io.Reader, out io.Writer,
) *Program {
	var opts []tea.ProgramOption
	if in != nil {
		opts = append(opts, tea.WithInput(in))
	}
	if out != nil {
		opts = append(opts, tea.WithOutput(out))
	}
	opts = append(opts, tea.WithAltScreen(), tea.WithoutSignalHandler())

	return &Program{
		p:    tea.NewProgram(NewModel(sf, currency), opts...),
		done: make(chan struct{}),
	}
}

// Run starts the UI loop and calls stopFn once the user quits or the loop
// fails.
func (p *Program) Run(stopFn func()) {
	const op = "Program.Run"
	log := slog.With("op", op)

	p.started.Store(true)
	go func() {
		defer close(p.done)
		defer stopFn()

		log.Info("terminal UI is running")
		_, err := p.p.Run()
		if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			log.Error("terminal UI stopped with error", "err", err)
			return
		}
		log.Info("terminal UI stopped")
	}()
}

// Close quits the UI loop and waits for the terminal to be restored.
func (p *Program) Close() {
	const op = "Program.Close"
	log := slog.With("op", op)

	p.once.Do(func() {
		if !p.started.Load() {
			return
		}
		p.p.Quit()
		<-p.done
		log.Info("terminal UI is closed")
	})
}
