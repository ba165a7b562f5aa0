package keymap

// DefaultKeymap returns the editor's built-in keymap: an Emacs-style
// binding set over the built-in command registry's actual names,
// generalized from internal/keybindings's CreateEmacsProfile (which
// bound the same chord shapes to ggc's fuzzy-finder actions instead of
// an editor's text-editing commands).
func DefaultKeymap() *Keymap {
	km := New("default")

	km.MustBindSpec("C-f", "forward-char")
	km.MustBindSpec("C-b", "backward-char")
	km.MustBindSpec("C-n", "forward-line")
	km.MustBindSpec("C-p", "backward-line")
	km.MustBindSpec("C-a", "beginning-of-line")
	km.MustBindSpec("C-e", "end-of-line")
	km.MustBindSpec("M-g", "goto-line")

	km.MustBindSpec("C-d", "delete-forward-char")
	km.MustBindSpec("del", "delete-backward-char")
	km.MustBindSpec("C-k", "kill-line")
	km.MustBindSpec("C-w", "kill-region")
	km.MustBindSpec("C-y", "yank")
	km.MustBindSpec("M-y", "yank-pop")
	km.MustBindSpec("C-@", "set-mark")
	km.MustBindSpec("C-x C-x", "exchange-point-and-mark")

	km.MustBindSpec("C-s", "search-forward")
	km.MustBindSpec("C-r", "search-backward")
	km.MustBindSpec("M-s", "hunt-forward")
	km.MustBindSpec("M-r", "hunt-backward")
	km.MustBindSpec("M-%", "query-replace")
	km.MustBindSpec("C-x C-r", "replace-string")

	km.MustBindSpec("C-x C-f", "find-file")
	km.MustBindSpec("C-x C-s", "save-buffer")
	km.MustBindSpec("C-x b", "switch-buffer")
	km.MustBindSpec("C-x k", "kill-buffer")
	km.MustBindSpec("C-x C-b", "list-buffers")
	km.MustBindSpec("M-m", "change-mode")

	km.MustBindSpec("C-x e", "execute-macro")
	km.MustBindSpec("C-x (", "begin-keyboard-macro")
	km.MustBindSpec("C-x )", "end-keyboard-macro")
	km.MustBindSpec("C-x C-e", "call-last-keyboard-macro")

	km.MustBindSpec("C-u", "universal-argument")
	km.MustBindSpec("C-g", "keyboard-quit")
	km.MustBindSpec("C-x C-c", "quit")

	return km
}
