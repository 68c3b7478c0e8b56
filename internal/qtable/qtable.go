// internal/qtable/qtable.go
//
// The tabular value store behind the learning agents: a sparse, lazily
// populated map from state to a fixed-length vector of action values.
//
// Responsibilities:
//   - Get-or-insert-zero lookup (an unseen state is stored as a zero vector
//     and updated in place thereafter).
//   - Visit counting, independent of value storage, for exploration stats.
//   - Deep-copy snapshots plus raw/RMS delta between snapshots.
//   - Lossless JSON persistence: keys are the comma-joined numeric state
//     encoding, values are plain float lists.

package qtable

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

// State is the encoded summary of game progress used as the table key: the
// marks of the most recent score joined with commas ("2,0,1,0,0"), or the
// episode-start sentinel. The same string is the key in persisted files.
type State string

// Start is the episode-start sentinel. Its encoding has a different length
// from any real score, so it can never collide with one.
const Start State = "0"

// ErrCorrupt marks a value-store file that could not be parsed.
var ErrCorrupt = errors.New("qtable: corrupt value store")

// Table is the Q(s,a) function for one agent. Not safe for concurrent use;
// each agent owns exactly one.
type Table struct {
	actions int
	values  map[State][]float64
	counts  map[State]int
}

// New creates an empty table with the given fixed action count.
func New(actions int) *Table {
	return &Table{
		actions: actions,
		values:  make(map[State][]float64),
		counts:  make(map[State]int),
	}
}

// Actions returns the fixed action-vector length.
func (t *Table) Actions() int { return t.actions }

// Get returns the action-value vector for s, inserting a zero vector first if
// the state has never been referenced. The returned slice is the stored one:
// in-place updates persist.
func (t *Table) Get(s State) []float64 {
	v, ok := t.values[s]
	if !ok {
		v = make([]float64, t.actions)
		t.values[s] = v
	}
	return v
}

// Visit increments the visit counter for s. Counters are independent of the
// value vectors and feed statistics only.
func (t *Table) Visit(s State) { t.counts[s]++ }

// ResetCounts clears the visit counters (values are untouched).
func (t *Table) ResetCounts() { t.counts = make(map[State]int) }

// Snapshot returns a deep copy of the state→vector mapping. Later updates to
// the table are not reflected in the copy.
func (t *Table) Snapshot() map[State][]float64 {
	out := make(map[State][]float64, len(t.values))
	for k, v := range t.values {
		out[k] = append([]float64(nil), v...)
	}
	return out
}

// Stats summarizes table usage during training.
type Stats struct {
	States    int           `json:"states"`
	Visits    map[State]int `json:"visits"`
	AvgVisits float64       `json:"avgVisits"`
}

// Statistics reports distinct states, per-state visit counts, and the mean
// number of visits per state.
func (t *Table) Statistics() Stats {
	st := Stats{
		States: len(t.values),
		Visits: make(map[State]int, len(t.counts)),
	}
	total := 0
	for k, n := range t.counts {
		st.Visits[k] = n
		total += n
	}
	if st.States > 0 {
		st.AvgVisits = float64(total) / float64(st.States)
	}
	return st
}

// Save writes the table to path as a JSON document mapping encoded state keys
// to value vectors. I/O failures are returned to the caller.
func (t *Table) Save(path string) error {
	doc := make(map[string][]float64, len(t.values))
	for k, v := range t.values {
		doc[string(k)] = v
	}
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("qtable: encode: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("qtable: save %s: %w", path, err)
	}
	return nil
}

// Load reads a table previously written by Save. Existing contents are
// discarded. A missing or malformed file is an explicit error; the caller
// asked for that table and must not silently get an empty one.
func (t *Table) Load(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("qtable: load %s: %w", path, err)
	}
	var doc map[string][]float64
	if err := json.Unmarshal(b, &doc); err != nil {
		return fmt.Errorf("qtable: load %s: %w: %v", path, ErrCorrupt, err)
	}
	values := make(map[State][]float64, len(doc))
	for k, v := range doc {
		// Keys must be comma-joined numbers; anything else is corruption.
		for _, part := range strings.Split(k, ",") {
			if _, err := strconv.ParseFloat(part, 64); err != nil {
				return fmt.Errorf("qtable: load %s: %w: bad state key %q", path, ErrCorrupt, k)
			}
		}
		if len(v) != t.actions {
			return fmt.Errorf("qtable: load %s: %w: state %q has %d values, want %d",
				path, ErrCorrupt, k, len(v), t.actions)
		}
		values[State(k)] = v
	}
	t.values = values
	t.counts = make(map[State]int)
	return nil
}

// Delta compares two snapshots. raw is the summed absolute difference across
// every vector entry; rms is the root-mean-square of those differences.
// States present in only one snapshot are compared against zero vectors.
func Delta(pre, post map[State][]float64) (raw, rms float64) {
	keys := make(map[State]struct{}, len(pre)+len(post))
	for k := range pre {
		keys[k] = struct{}{}
	}
	for k := range post {
		keys[k] = struct{}{}
	}

	var sumSq float64
	n := 0
	for k := range keys {
		a, b := pre[k], post[k]
		size := len(a)
		if len(b) > size {
			size = len(b)
		}
		for i := 0; i < size; i++ {
			var av, bv float64
			if i < len(a) {
				av = a[i]
			}
			if i < len(b) {
				bv = b[i]
			}
			d := bv - av
			raw += math.Abs(d)
			sumSq += d * d
			n++
		}
	}
	if n > 0 {
		rms = math.Sqrt(sumSq / float64(n))
	}
	return raw, rms
}
