package inputline

import "github.com/mightemacs-go/memacs/internal/keymap"

// Arrow/Home/End pseudo key codes, matching internal/term's decodeCSI
// convention (FKeyCode(20) = up ... FKeyCode(25) = end).
const (
	fkeyUp    = 20
	fkeyDown  = 21
	fkeyRight = 22
	fkeyLeft  = 23
	fkeyHome  = 24
	fkeyEnd   = 25
)

// Feed processes one resolved key against the input line and reports
// what happened. Feed is a no-op returning ActionNone once Done.
func (r *Reader) Feed(kc keymap.KeyCode) Action {
	if r.finished {
		return ActionNone
	}
	if r.quoteNext {
		r.quoteNext = false
		c := kc.Char()
		if kc.Has(keymap.Ctrl) {
			c &= 0x1f
		}
		return r.insertByte(c)
	}

	switch {
	case kc == keymap.CtrlKey('Q'):
		r.quoteNext = true
		return ActionQuotePending
	case kc == keymap.PlainKey(13): // Return
		return r.stop(Result{Text: r.Text()})
	case kc == keymap.CtrlKey(' '):
		return r.stop(Result{Null: true})
	case kc == keymap.PlainKey(0x1b): // Escape
		return r.stop(Result{Cancelled: true})
	case kc == keymap.CtrlKey('B') || kc == keymap.FKeyCode(fkeyLeft):
		return r.moveTo(r.cursor - 1)
	case kc == keymap.CtrlKey('F') || kc == keymap.FKeyCode(fkeyRight):
		return r.moveTo(r.cursor + 1)
	case kc == keymap.CtrlKey('A') || kc == keymap.FKeyCode(fkeyHome):
		return r.moveTo(0)
	case kc == keymap.CtrlKey('E') || kc == keymap.FKeyCode(fkeyEnd):
		return r.moveTo(len(r.cells))
	case kc == keymap.CtrlKey('D'):
		return r.deleteAt()
	case kc == keymap.PlainKey(0x7F) || kc == keymap.CtrlKey('H'):
		return r.deleteBefore()
	case kc == keymap.CtrlKey('K'):
		return r.truncate()
	case kc == keymap.CtrlKey('U'):
		return r.erase()
	case kc == keymap.CtrlKey('P') || kc == keymap.FKeyCode(fkeyUp):
		return r.cycleRing(false)
	case kc == keymap.CtrlKey('N') || kc == keymap.FKeyCode(fkeyDown):
		return r.cycleRing(true)
	case kc == keymap.PlainKey(0x09) || kc == keymap.CtrlKey('I'): // Tab
		return r.complete()
	case kc == keymap.PlainKey('?') && r.opts.Kind != KindNone:
		return r.list()
	}

	if kc.Flags() != 0 {
		return ActionBeep
	}
	c := kc.Char()
	if c < 0x20 || c == 0x7F {
		return ActionBeep
	}
	act := r.insertByte(c)
	if act == ActionInserted && r.opts.Kind == KindFilename && c == '/' {
		if expanded := r.tryExpandVar(); expanded {
			return ActionInserted
		}
	}
	return act
}

// tryExpandVar implements spec §4.7's "~/", "~user/", "$VAR/" filename
// expansion: if everything typed so far (up to and including the '/'
// just inserted) is exactly one such token, replace the whole buffer
// with the expansion plus a trailing slash, per
// original_source/memacs-9.4.0/src/input.c's replvar().
func (r *Reader) tryExpandVar() bool {
	if r.source == nil || r.cursor != len(r.cells) {
		return false
	}
	text := r.Text()
	if len(text) < 2 || text[len(text)-1] != '/' {
		return false
	}
	token := text[:len(text)-1]
	if token[0] != '~' && token[0] != '$' {
		return false
	}
	value, ok := r.source.ExpandVar(token)
	if !ok {
		return false
	}
	if r.opts.MaxLen > 0 && len(value)+1 > r.opts.MaxLen {
		return false
	}
	r.setText(value + "/")
	return true
}
