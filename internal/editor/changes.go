package editor

import (
	"unicode/utf8"

	dmp "github.com/sergi/go-diff/diffmatchpatch"
)

// Changes counts the runes inserted and deleted relative to the text the
// editor was opened with.
func (e *Editor) Changes() (inserted, deleted int) {
	if !e.Dirty() {
		return 0, 0
	}
	d := dmp.New()
	diffs := d.DiffMain(e.original, e.buf.Text(), false)
	d.DiffCleanupSemantic(diffs)
	for _, df := range diffs {
		switch df.Type {
		case dmp.DiffInsert:
			inserted += utf8.RuneCountInString(df.Text)
		case dmp.DiffDelete:
			deleted += utf8.RuneCountInString(df.Text)
		}
	}
	return inserted, deleted
}
