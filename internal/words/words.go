// internal/words/words.go
//
// Word list management for the game engine and agents.
//
// Responsibilities:
//   - Load answer and allowed-guess lists from files, or fall back to the
//     embedded defaults.
//   - Materialize them into a Corpus: the core never sees file paths, only
//     fully-loaded ordered word lists.
//   - Validate the corpus invariant: every answer is also an allowed guess.
//
// Word Lists:
//   - "answers": words the game will ask agents to solve, in sequence.
//   - "allowed": valid guesses (always includes the answers).
//
// Constraints:
//   • Words must be exactly 5 alphabetic letters (a–z).
//   • Lists are normalized to lowercase; other lines are dropped.

package words

import (
	"bufio"
	_ "embed"
	"fmt"
	"os"
	"strings"
)

// WordLen is the fixed word length for the whole module.
const WordLen = 5

// --- embedded tiny defaults (so the CLI runs with no files configured) ---

//go:embed default_answers.txt
var embeddedAnswers string

//go:embed default_allowed.txt
var embeddedAllowed string

// Corpus holds the fully-materialized word lists handed to a game session.
// Answers keep their input order; Allowed is a stable list backed by a
// lookup set.
type Corpus struct {
	Answers []string
	Allowed []string

	allowedSet map[string]struct{}
}

// NewCorpus builds a Corpus from already-loaded lists. The allowed set always
// includes the answers. Returns an error if the answer list is empty.
func NewCorpus(answers, allowed []string) (*Corpus, error) {
	if len(answers) == 0 {
		return nil, fmt.Errorf("words: answers list is empty")
	}
	c := &Corpus{
		Answers:    append([]string(nil), answers...),
		allowedSet: make(map[string]struct{}, len(allowed)+len(answers)),
	}
	for _, w := range allowed {
		if _, ok := c.allowedSet[w]; !ok {
			c.allowedSet[w] = struct{}{}
			c.Allowed = append(c.Allowed, w)
		}
	}
	// Answers are always guessable.
	for _, w := range answers {
		if _, ok := c.allowedSet[w]; !ok {
			c.allowedSet[w] = struct{}{}
			c.Allowed = append(c.Allowed, w)
		}
	}
	return c, nil
}

// IsAllowed reports whether w is a valid guess.
func (c *Corpus) IsAllowed(w string) bool {
	_, ok := c.allowedSet[w]
	return ok
}

// Load reads one word per line from a file, lowercases, trims, and keeps only
// valid 5-letter alphabetic words.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("words: open %s: %w", path, err)
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		w := strings.TrimSpace(strings.ToLower(sc.Text()))
		if len(w) == WordLen && IsAlpha(w) {
			out = append(out, w)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("words: read %s: %w", path, err)
	}
	return out, nil
}

// Default returns a Corpus built from the embedded word lists.
func Default() (*Corpus, error) {
	return NewCorpus(normalizeLines(embeddedAnswers), normalizeLines(embeddedAllowed))
}

// normalizeLines processes an embedded multiline string into a slice of valid
// lowercase 5-letter words.
func normalizeLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		w := strings.TrimSpace(strings.ToLower(line))
		if len(w) == WordLen && IsAlpha(w) {
			out = append(out, w)
		}
	}
	return out
}

// IsAlpha reports whether s is all lowercase ASCII letters.
func IsAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
