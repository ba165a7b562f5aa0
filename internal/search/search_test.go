package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mightemacs-go/memacs/internal/buffer"
)

func TestParsePatternSuffixFlags(t *testing.T) {
	text, opts, err := ParsePattern("foo:ir", Options{})
	require.NoError(t, err)
	assert.Equal(t, "foo", text)
	assert.True(t, opts.IgnoreCase)
	assert.True(t, opts.Regex)
}

func TestParsePatternLeavesConflictingSuffixLiteral(t *testing.T) {
	text, opts, err := ParsePattern("foo:ie", Options{})
	require.NoError(t, err)
	assert.Equal(t, "foo:ie", text)
	assert.Equal(t, Options{}, opts)
}

func TestParsePatternIgnoresLeadingColon(t *testing.T) {
	text, _, err := ParsePattern(":abc", Options{})
	require.NoError(t, err)
	assert.Equal(t, ":abc", text)
}

func TestBoyerMooreAgreesWithBruteForce(t *testing.T) {
	text := []byte("the quick brown fox jumps over the lazy dog the end")
	for _, pattern := range []string{"the", "o", "dog", "zz", "the end"} {
		want := plainIndexAll(text, []byte(pattern), false)
		pos := 0
		var got []int
		for {
			idx, ok := bmForward(text, []byte(pattern), pos, false)
			if !ok {
				break
			}
			got = append(got, idx)
			pos = idx + 1
		}
		assert.Equal(t, want, got, "pattern %q", pattern)
	}
}

func TestBoyerMooreCaseFoldAgreesWithBruteForce(t *testing.T) {
	text := []byte("AbAbAbbAbAABB")
	for _, pattern := range []string{"ab", "abb", "bb", "aabb"} {
		want := plainIndexAll(text, []byte(pattern), true)
		pos := 0
		var got []int
		for {
			idx, ok := bmForward(text, []byte(pattern), pos, true)
			if !ok {
				break
			}
			got = append(got, idx)
			pos = idx + 1
		}
		assert.Equal(t, want, got, "pattern %q", pattern)
	}
}

func TestBoyerMooreCaseFold(t *testing.T) {
	text := []byte("The Quick Brown FOX")
	idx, ok := bmForward(text, []byte("fox"), 0, true)
	require.True(t, ok)
	assert.Equal(t, 16, idx)
}

func TestBoyerMooreBackward(t *testing.T) {
	text := []byte("abc abc abc")
	idx, ok := bmBackward(text, []byte("abc"), len(text), false)
	require.True(t, ok)
	assert.Equal(t, 8, idx)
}

func TestPlainAndRegexAgreeOnLiteralPattern(t *testing.T) {
	text := []byte("one two three two one")
	plain, err := Compile("two", Options{}, "")
	require.NoError(t, err)
	rx, err := Compile("two:r", Options{}, "")
	require.NoError(t, err)

	var plainHits, rxHits []int
	pos := 0
	for plain.FindForward(text, pos) {
		plainHits = append(plainHits, plain.Groups[0].Start)
		pos = plain.Groups[0].End
	}
	pos = 0
	for rx.FindForward(text, pos) {
		rxHits = append(rxHits, rx.Groups[0].Start)
		pos = rx.Groups[0].End
	}
	assert.Equal(t, plainHits, rxHits)
}

func TestRegexGroupsAndClosures(t *testing.T) {
	m, err := Compile(`(\w+)@(\w+)\.com:r`, Options{}, "")
	require.NoError(t, err)
	text := []byte("contact alice@example.com for help")
	require.True(t, m.FindForward(text, 0))
	whole, _ := GroupText(text, m.Groups, 0)
	user, _ := GroupText(text, m.Groups, 1)
	host, _ := GroupText(text, m.Groups, 2)
	assert.Equal(t, "alice@example.com", string(whole))
	assert.Equal(t, "alice", string(user))
	assert.Equal(t, "example", string(host))
}

func TestRegexLazyVsGreedy(t *testing.T) {
	text := []byte("<a><b>")
	greedy, err := Compile("<.+>:r", Options{}, "")
	require.NoError(t, err)
	require.True(t, greedy.FindForward(text, 0))
	assert.Equal(t, "<a><b>", greedy.LastMatchString)

	lazy, err := Compile("<.+?>:r", Options{}, "")
	require.NoError(t, err)
	require.True(t, lazy.FindForward(text, 0))
	assert.Equal(t, "<a>", lazy.LastMatchString)
}

func TestRegexAnchorsAndClasses(t *testing.T) {
	m, err := Compile(`^\d+:r`, Options{}, "")
	require.NoError(t, err)
	require.True(t, m.FindForward([]byte("123abc"), 0))
	assert.Equal(t, "123", m.LastMatchString)
	assert.False(t, m.FindForward([]byte("abc123"), 0))
}

func TestClosureOnGroupIsACompileError(t *testing.T) {
	_, err := Compile(`(ab)+:r`, Options{}, "")
	assert.Error(t, err)

	_, err = Compile(`(ab)*:r`, Options{}, "")
	assert.Error(t, err)

	// a closure on the atom inside the group is still fine.
	_, err = Compile(`(ab+)*:r`, Options{}, "")
	assert.NoError(t, err)
}

func TestRegexEscapesCRFFAndLetterClasses(t *testing.T) {
	m, err := Compile(`a\rb\fc:r`, Options{}, "")
	require.NoError(t, err)
	require.True(t, m.FindForward([]byte("a\rb\fc"), 0))
	assert.Equal(t, "a\rb\fc", m.LastMatchString)

	letters, err := Compile(`\l+:r`, Options{}, "")
	require.NoError(t, err)
	require.True(t, letters.FindForward([]byte("123abcXYZ456"), 0))
	assert.Equal(t, "abcXYZ", letters.LastMatchString)

	nonLetters, err := Compile(`\L+:r`, Options{}, "")
	require.NoError(t, err)
	require.True(t, nonLetters.FindForward([]byte("abc123!@#xyz"), 0))
	assert.Equal(t, "123!@#", nonLetters.LastMatchString)
}

func TestSearchAgainstBuffer(t *testing.T) {
	b := buffer.New("scratch")
	end, err := b.InsertString(b.FirstPoint(), []byte("line one\nline two\nline three\n"))
	require.NoError(t, err)
	_ = end

	m, err := Compile("line", Options{}, "")
	require.NoError(t, err)
	res, err := Search(b, b.FirstPoint(), m, Forward, 2)
	require.NoError(t, err)
	assert.Equal(t, 9, res.StartOff)

	_, err = Search(b, b.FirstPoint(), m, Forward, 99)
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestSearchBackwardFromEnd(t *testing.T) {
	b := buffer.New("scratch")
	_, _ = b.InsertString(b.FirstPoint(), []byte("abc abc abc"))
	m, err := Compile("abc", Options{}, "")
	require.NoError(t, err)
	res, err := Search(b, b.LastPoint(), m, Backward, 1)
	require.NoError(t, err)
	assert.Equal(t, 8, res.StartOff)
}
