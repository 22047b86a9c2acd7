package words

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMask(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"apple", "_____"},
		{"apple juice", "_____ _____"},
		{"  ice   cream ", "___ _____"},
		{"café", "____"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Mask(tt.in))
		})
	}
}

func TestMaskIsIdempotent(t *testing.T) {
	once := Mask("hot air balloon")
	assert.Equal(t, once, Mask(once))
}

func TestRandomReturnsDistinctWords(t *testing.T) {
	list := New([]string{"a", "b", "c", "d", "e"})

	got := list.Random(3)
	require.Len(t, got, 3)

	seen := map[string]bool{}
	for _, w := range got {
		assert.False(t, seen[w], "duplicate %q", w)
		seen[w] = true
	}
}

func TestRandomCapsAtListSize(t *testing.T) {
	list := New([]string{"a", "b"})
	assert.ElementsMatch(t, []string{"a", "b"}, list.Random(5))
	assert.Nil(t, list.Random(0))
	assert.Nil(t, New(nil).Random(3))
}

func TestNewDropsBlanksAndDuplicates(t *testing.T) {
	list := New([]string{"tree", " ", "tree", " house "})
	assert.Equal(t, []string{"tree", "house"}, list.Words())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("apple\n\nbanana\ncherry pie\n"), 0o644))

	list, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, list.Len())
	assert.Contains(t, list.Words(), "cherry pie")
}

func TestLoadFileEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(path, []byte("\n\n"), 0o644))

	_, err := LoadFile(path)
	assert.ErrorIs(t, err, ErrEmptyList)
}
