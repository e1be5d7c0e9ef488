package app

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/multierr"

	"github.com/kobzarvs/boxedit/internal/config"
	"github.com/kobzarvs/boxedit/internal/editor"
	"github.com/kobzarvs/boxedit/internal/logger"
	"github.com/kobzarvs/boxedit/internal/textfile"
)

var (
	ErrMissingArgument = errors.New("missing file argument, usage: boxedit <path>")
	ErrTerminal        = errors.New("terminal error")

	errScreenClosed = errors.New("screen closed while editing")
)

const defaultPollInterval = 250 * time.Millisecond

// App is the top-level runtime for boxedit.
type App struct {
	args      []string
	newScreen func() (tcell.Screen, error)
}

func New(args []string) *App {
	return &App{args: args, newScreen: tcell.NewScreen}
}

// Run edits the file named by the first argument. The file is written only
// when the session ends with a save.
func (a *App) Run() (err error) {
	if len(a.args) == 0 || a.args[0] == "" {
		return ErrMissingArgument
	}
	path := a.args[0]

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.Log.File, cfg.Log.Debug); err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, logger.Close())
	}()

	text, err := textfile.Load(path)
	if err != nil {
		return err
	}

	ed, err := a.edit(cfg, path, text)
	if err != nil {
		logger.Error("editing session failed", "path", path, "error", err)
		return err
	}
	inserted, deleted := ed.Changes()
	logger.Info("editing session finished", "path", path, "outcome", ed.Outcome().String(),
		"inserted", inserted, "deleted", deleted)
	if ed.Outcome() != editor.OutcomeSaved {
		return nil
	}
	return textfile.Save(path, ed.Text())
}

// edit owns the terminal for the length of one session. The screen is
// finalized on every return path, panics included.
func (a *App) edit(cfg config.Config, path, text string) (*editor.Editor, error) {
	s, err := a.newScreen()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTerminal, err)
	}
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTerminal, err)
	}
	defer s.Fini()

	ed := editor.New(cfg, text)
	ed.SetFilename(filepath.Base(path))
	if err := runLoop(s, ed, cfg.Editor.PollInterval); err != nil {
		return nil, err
	}
	return ed, nil
}

// runLoop redraws and dispatches events until the editor leaves the editing
// state. A ticker wakes PollEvent at least once per interval; only this
// goroutine touches the editor.
func runLoop(s tcell.Screen, ed *editor.Editor, interval time.Duration) error {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				_ = s.PostEvent(tcell.NewEventInterrupt(nil))
			}
		}
	}()

	for {
		ed.Render(s)
		switch ev := s.PollEvent().(type) {
		case nil:
			return fmt.Errorf("%w: %w", ErrTerminal, errScreenClosed)
		case *tcell.EventKey:
			if ed.HandleKey(ev) != editor.OutcomeEditing {
				return nil
			}
		case *tcell.EventResize:
			s.Sync()
		}
	}
}
