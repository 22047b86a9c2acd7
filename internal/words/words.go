package words

import (
	"bufio"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"
)

var ErrEmptyList = errors.New("word list is empty")

// List is an immutable set of guessable words
type List struct {
	words []string
}

// New builds a list from raw entries, dropping blanks and duplicates
func New(entries []string) *List {
	seen := make(map[string]struct{}, len(entries))
	words := make([]string, 0, len(entries))
	for _, e := range entries {
		w := strings.TrimSpace(e)
		if w == "" {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		words = append(words, w)
	}
	return &List{words: words}
}

// LoadFile reads one word per line
func LoadFile(path string) (*List, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()

	var entries []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		entries = append(entries, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read word list: %w", err)
	}

	list := New(entries)
	if list.Len() == 0 {
		return nil, ErrEmptyList
	}
	return list, nil
}

func (l *List) Len() int {
	return len(l.words)
}

// Words returns a copy of all entries
func (l *List) Words() []string {
	out := make([]string, len(l.words))
	copy(out, l.words)
	return out
}

// Random returns n distinct words. A shorter list yields all of its words, shuffled.
func (l *List) Random(n int) []string {
	if n <= 0 || len(l.words) == 0 {
		return nil
	}
	idx := rand.Perm(len(l.words))
	if n > len(idx) {
		n = len(idx)
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = l.words[idx[i]]
	}
	return out
}

// Mask replaces every character of every whitespace-separated token with an
// underscore and joins the tokens with single spaces.
func Mask(word string) string {
	tokens := strings.Fields(word)
	for i, t := range tokens {
		tokens[i] = strings.Repeat("_", len([]rune(t)))
	}
	return strings.Join(tokens, " ")
}
