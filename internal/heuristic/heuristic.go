// internal/heuristic/heuristic.go
//
// Precomputed guess-quality tables consumed by the action functions.
//
// Two derived, read-only-after-build structures:
//   - Positions: for each letter and word position, the frequency of that
//     letter at that position across the answer corpus (26×5 matrix).
//   - TGLP (total green-letter probability): for each allowed word, the sum
//     of its letters' positional probabilities. Higher TGLP means more
//     letters likely to land green.
//
// Both persist as JSON so repeated runs can skip the derivation.

package heuristic

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/robalobadob/wordle-rl/internal/words"
)

// Positions holds letter-at-position probabilities, indexed [letter][position].
type Positions [26][words.WordLen]float64

// TGLP maps each word to its summed positional letter probability.
type TGLP map[string]float64

// BuildPositions derives the positional probability matrix from the answer
// corpus.
func BuildPositions(answers []string) *Positions {
	var p Positions
	if len(answers) == 0 {
		return &p
	}
	for _, w := range answers {
		for i := 0; i < words.WordLen; i++ {
			p[w[i]-'a'][i]++
		}
	}
	n := float64(len(answers))
	for l := range p {
		for i := range p[l] {
			p[l][i] /= n
		}
	}
	return &p
}

// TGLPOf computes one word's total green-letter probability.
func (p *Positions) TGLPOf(word string) float64 {
	var total float64
	for i := 0; i < words.WordLen; i++ {
		total += p[word[i]-'a'][i]
	}
	return total
}

// BuildTGLP derives the TGLP table for every allowed word.
func BuildTGLP(allowed []string, p *Positions) TGLP {
	t := make(TGLP, len(allowed))
	for _, w := range allowed {
		t[w] = p.TGLPOf(w)
	}
	return t
}

// Save writes the matrix to path as a 26×5 JSON array of floats.
func (p *Positions) Save(path string) error {
	return saveJSON(path, p)
}

// LoadPositions reads a matrix written by Save.
func LoadPositions(path string) (*Positions, error) {
	var p Positions
	if err := loadJSON(path, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Save writes the table to path as a JSON word→float object.
func (t TGLP) Save(path string) error {
	return saveJSON(path, t)
}

// LoadTGLP reads a table written by Save.
func LoadTGLP(path string) (TGLP, error) {
	var t TGLP
	if err := loadJSON(path, &t); err != nil {
		return nil, err
	}
	return t, nil
}

func saveJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("heuristic: encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("heuristic: save %s: %w", path, err)
	}
	return nil
}

func loadJSON(path string, v any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("heuristic: load %s: %w", path, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("heuristic: parse %s: %w", path, err)
	}
	return nil
}
