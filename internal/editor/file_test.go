package editor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mightemacs-go/memacs/internal/buffer"
)

func TestFindFileReadsContentIntoANewCurrentBuffer(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "greeting.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello\nworld"), 0o644))

	s := New(DefaultConfig())
	s.SetPendingArg(path)
	require.NoError(t, s.FindFile(1))

	assert.Equal(t, "greeting.txt", s.Current().Name)
	assert.Equal(t, "hello\nworld", string(s.Current().Bytes()))
}

func TestFindFileRevisitingSameFileSwitchesBufferInstead(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("one"), 0o644))

	s := New(DefaultConfig())
	s.SetPendingArg(path)
	require.NoError(t, s.FindFile(1))
	first := s.Current()

	s.SetPendingArg(path)
	require.NoError(t, s.FindFile(1))
	assert.Same(t, first, s.Current())
}

func TestSaveBufferWritesCurrentBufferToItsFileName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	s := newSession(t, "saved text")
	s.current.FileName = path
	require.NoError(t, s.SaveBuffer(1))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "saved text\n", string(data))
	assert.False(t, s.current.Attr(buffer.AttrChanged))
}

func TestSaveBufferWithNoFileNameUsesPendingArg(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "new.txt")

	s := newSession(t, "content")
	s.SetPendingArg(path)
	require.NoError(t, s.SaveBuffer(1))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "content\n", string(data))
}
