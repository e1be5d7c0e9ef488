package editor

import (
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// KeyName turns a key event into the name used by the keymap, such as
// "ctrl+s", "esc", "shift+left" or "a". Unnamed keys return "".
func KeyName(ev *tcell.EventKey) string {
	mod := ev.Modifiers()
	switch ev.Key() {
	case tcell.KeyRune:
		r := ev.Rune()
		name := string(r)
		if r == ' ' {
			name = "space"
		}
		switch {
		case mod&tcell.ModCtrl != 0:
			return "ctrl+" + strings.ToLower(name)
		case mod&tcell.ModMeta != 0:
			return "cmd+" + strings.ToLower(name)
		case mod&tcell.ModAlt != 0:
			return "alt+" + name
		}
		return name
	// These share codes with ctrl+m, ctrl+h, ctrl+i and ctrl+[ so they are
	// matched before the ctrl letters below.
	case tcell.KeyEnter:
		return withModifiers(mod, "enter")
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return withModifiers(mod&^tcell.ModCtrl, "backspace")
	case tcell.KeyTab:
		if mod&tcell.ModShift != 0 {
			return "shift+tab"
		}
		return "tab"
	case tcell.KeyBacktab:
		return "shift+tab"
	case tcell.KeyEscape:
		return "esc"
	case tcell.KeyUp:
		return withModifiers(mod, "up")
	case tcell.KeyDown:
		return withModifiers(mod, "down")
	case tcell.KeyLeft:
		return withModifiers(mod, "left")
	case tcell.KeyRight:
		return withModifiers(mod, "right")
	case tcell.KeyHome:
		return withModifiers(mod, "home")
	case tcell.KeyEnd:
		return withModifiers(mod, "end")
	case tcell.KeyPgUp:
		return withModifiers(mod, "pgup")
	case tcell.KeyPgDn:
		return withModifiers(mod, "pgdn")
	case tcell.KeyDelete:
		return withModifiers(mod, "del")
	}
	if k := ev.Key(); k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return "ctrl+" + string(rune('a'+int(k-tcell.KeyCtrlA)))
	}
	return ""
}

// bareKeyName is KeyName with the modifiers dropped. Character keys have no
// bare form, so a held modifier never turns them into text.
func bareKeyName(ev *tcell.EventKey) string {
	if ev.Key() == tcell.KeyRune || ev.Modifiers() == tcell.ModNone {
		return ""
	}
	return KeyName(tcell.NewEventKey(ev.Key(), ev.Rune(), tcell.ModNone))
}

func withModifiers(mod tcell.ModMask, base string) string {
	var b strings.Builder
	if mod&tcell.ModMeta != 0 {
		b.WriteString("cmd+")
	}
	if mod&tcell.ModCtrl != 0 {
		b.WriteString("ctrl+")
	}
	if mod&tcell.ModAlt != 0 {
		b.WriteString("alt+")
	}
	if mod&tcell.ModShift != 0 {
		b.WriteString("shift+")
	}
	b.WriteString(base)
	return b.String()
}

// printableRune reports the rune a plain character key types. Keys held with
// ctrl, alt or cmd never type text.
func printableRune(ev *tcell.EventKey) (rune, bool) {
	if ev.Key() != tcell.KeyRune {
		return 0, false
	}
	if ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt|tcell.ModMeta) != 0 {
		return 0, false
	}
	r := ev.Rune()
	if !unicode.IsGraphic(r) {
		return 0, false
	}
	return r, true
}
