package editor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// newSession builds a Session with its current buffer preloaded with
// text, point at the start, ready for a command under test.
func newSession(t *testing.T, text string) *Session {
	t.Helper()
	s := New(DefaultConfig())
	if text != "" {
		_, err := s.current.InsertString(s.current.FirstPoint(), []byte(text))
		require.NoError(t, err)
		s.point = s.current.FirstPoint()
	}
	return s
}
