package editor

import (
	"fmt"

	"github.com/mightemacs-go/memacs/internal/buffer"
	"github.com/mightemacs-go/memacs/internal/inputline"
)

// SwitchBuffer makes the buffer named by PendingArg current (spec
// §4.7's select-buffer).
func (s *Session) SwitchBuffer(n int64) error {
	name, err := s.takePendingArg("switch-buffer", "Switch to buffer: ", inputline.KindBuffer, nil)
	if err != nil {
		return err
	}
	b, ok := s.BufferNamed(name)
	if !ok {
		return fmt.Errorf("editor: switch-buffer: no buffer named %q", name)
	}
	s.switchTo(b)
	return nil
}

// KillBuffer discards the buffer named by PendingArg (spec §4.7's
// delete-buffer). Killing the current buffer leaves whichever other
// buffer is next in display order current, falling back to a fresh
// "unnamed" buffer if it was the last one.
func (s *Session) KillBuffer(n int64) error {
	name, err := s.takePendingArg("kill-buffer", "Kill buffer: ", inputline.KindBuffer, nil)
	if err != nil {
		return err
	}
	idx := -1
	for i, b := range s.buffers {
		if b.Name == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("editor: kill-buffer: no buffer named %q", name)
	}
	victim := s.buffers[idx]
	delete(s.bufferModes, victim)
	s.buffers = append(s.buffers[:idx], s.buffers[idx+1:]...)

	if s.current != victim {
		return nil
	}
	if len(s.buffers) == 0 {
		s.addBuffer(buffer.New("unnamed"))
		s.switchTo(s.buffers[0])
		return nil
	}
	next := idx
	if next >= len(s.buffers) {
		next = len(s.buffers) - 1
	}
	s.switchTo(s.buffers[next])
	return nil
}

// ListBuffers returns the current buffer catalog's names, in display
// order (spec §4.7's show-buffers), for the wiring layer to render.
func (s *Session) ListBuffers() []string {
	names := make([]string, len(s.buffers))
	for i, b := range s.buffers {
		names[i] = b.Name
	}
	return names
}
