package editor

import (
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/atotto/clipboard"
	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/boxedit/internal/buffer"
	"github.com/kobzarvs/boxedit/internal/config"
	"github.com/kobzarvs/boxedit/internal/logger"
)

// Outcome is the state of an editing session.
type Outcome int

const (
	OutcomeEditing Outcome = iota
	OutcomeSaved
	OutcomeCancelled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSaved:
		return "saved"
	case OutcomeCancelled:
		return "cancelled"
	default:
		return "editing"
	}
}

const (
	actionSave      = "save"
	actionCancel    = "cancel"
	actionNewline   = "newline"
	actionBackspace = "backspace"
	actionMoveLeft  = "move_left"
	actionMoveRight = "move_right"
	actionMoveUp    = "move_up"
	actionMoveDown  = "move_down"
	actionInsertTab = "insert_tab"
	actionLineStart = "line_start"
	actionLineEnd   = "line_end"
	actionPaste     = "paste"
)

type Editor struct {
	buf      *buffer.Buffer
	original string
	filename string
	title    string
	keymap   map[string]string
	outcome  Outcome
	tabWidth int
	scrollX  int
	scrollY  int

	styleText   tcell.Style
	styleBorder tcell.Style
	styleTitle  tcell.Style
	styleHint   tcell.Style

	readClipboard func() (string, error)

	// actionHook, when set, sees every action before it runs.
	actionHook func(action string)
}

func New(cfg config.Config, text string) *Editor {
	keymap := make(map[string]string, len(cfg.Keymap))
	for k, v := range cfg.Keymap {
		keymap[k] = v
	}
	tabWidth := cfg.Editor.TabWidth
	if tabWidth < 1 {
		tabWidth = 1
	}
	bg := parseColor(cfg.Theme.Background, tcell.ColorDefault)
	base := tcell.StyleDefault.Background(bg)
	buf := buffer.New(text)
	return &Editor{
		buf:         buf,
		original:    buf.Text(),
		title:       cfg.Editor.Title,
		keymap:      keymap,
		tabWidth:    tabWidth,
		styleText:   base.Foreground(parseColor(cfg.Theme.Foreground, tcell.ColorYellow)),
		styleBorder: base.Foreground(parseColor(cfg.Theme.Border, tcell.ColorDefault)),
		styleTitle:  base.Foreground(parseColor(cfg.Theme.Title, tcell.ColorDefault)).Bold(true),
		styleHint:   base.Foreground(parseColor(cfg.Theme.Hint, tcell.ColorGray)),

		readClipboard: clipboard.ReadAll,
	}
}

func (e *Editor) SetFilename(name string) {
	e.filename = name
}

// Text is the current buffer content. After OutcomeSaved it is the text to
// persist.
func (e *Editor) Text() string {
	return e.buf.Text()
}

func (e *Editor) Outcome() Outcome {
	return e.outcome
}

// Dirty reports whether the buffer differs from the text it was opened with.
func (e *Editor) Dirty() bool {
	return e.buf.Text() != e.original
}

func (e *Editor) Location() buffer.Location {
	return e.buf.Location()
}

// HandleKey applies one key event. Every event either runs one action,
// types one character, or is ignored. Once the session has ended further
// keys are ignored.
func (e *Editor) HandleKey(ev *tcell.EventKey) Outcome {
	if e.outcome != OutcomeEditing {
		return e.outcome
	}
	if action, ok := e.lookup(ev); ok {
		e.execAction(action)
		return e.outcome
	}
	if r, ok := printableRune(ev); ok {
		e.buf.Insert(r)
	}
	return e.outcome
}

// lookup finds the action bound to ev. A modified key with no binding of its
// own falls back to the unmodified key, so shift+left still moves left.
func (e *Editor) lookup(ev *tcell.EventKey) (string, bool) {
	if name := KeyName(ev); name != "" {
		if action, ok := e.keymap[name]; ok {
			return action, true
		}
	}
	if bare := bareKeyName(ev); bare != "" {
		action, ok := e.keymap[bare]
		return action, ok
	}
	return "", false
}

func (e *Editor) execAction(action string) {
	if e.actionHook != nil {
		e.actionHook(action)
	}
	switch action {
	case actionSave:
		e.outcome = OutcomeSaved
		inserted, deleted := e.Changes()
		logger.Debug("save requested", "bytes", e.buf.Len(), "inserted", inserted, "deleted", deleted)
	case actionCancel:
		e.outcome = OutcomeCancelled
		logger.Debug("cancel requested", "dirty", e.Dirty())
	case actionNewline:
		e.buf.Insert('\n')
	case actionBackspace:
		e.buf.Backspace()
	case actionMoveLeft:
		e.buf.MoveLeft()
	case actionMoveRight:
		e.buf.MoveRight()
	case actionMoveUp:
		e.buf.MoveUp()
	case actionMoveDown:
		e.buf.MoveDown()
	case actionInsertTab:
		e.buf.Insert('\t')
	case actionLineStart:
		e.buf.MoveLineStart()
	case actionLineEnd:
		e.buf.MoveLineEnd()
	case actionPaste:
		e.paste()
	default:
		logger.Warn("unknown action in keymap", "action", action)
	}
}

// paste inserts the system clipboard at the cursor. Line endings become
// '\n' and other control characters are dropped.
func (e *Editor) paste() {
	text, err := e.readClipboard()
	if err != nil {
		logger.Warn("clipboard read failed", "error", err)
		return
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' || unicode.IsGraphic(r) {
			return r
		}
		return -1
	}, text)
	e.buf.InsertString(text)
}

// keyFor returns the first key, in sorted order, bound to action.
func (e *Editor) keyFor(action string) string {
	keys := make([]string, 0, 1)
	for k, v := range e.keymap {
		if v == action {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)
	return keys[0]
}

func parseColor(name string, fallback tcell.Color) tcell.Color {
	name = strings.TrimSpace(name)
	if name == "" {
		return fallback
	}
	if strings.HasPrefix(name, "#") && len(name) == 7 {
		r, err1 := strconv.ParseInt(name[1:3], 16, 32)
		g, err2 := strconv.ParseInt(name[3:5], 16, 32)
		b, err3 := strconv.ParseInt(name[5:7], 16, 32)
		if err1 == nil && err2 == nil && err3 == nil {
			return tcell.NewRGBColor(int32(r), int32(g), int32(b))
		}
		return fallback
	}
	name = strings.ToLower(name)
	if name == "default" {
		return tcell.ColorDefault
	}
	c := tcell.GetColor(name)
	if c == tcell.ColorDefault {
		return fallback
	}
	return c
}
