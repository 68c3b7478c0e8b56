package qtable

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetInsertsZeroVector(t *testing.T) {
	tb := New(3)
	v := tb.Get(State("2,0,1,0,0"))
	assert.Equal(t, []float64{0, 0, 0}, v)

	// In-place updates persist.
	v[1] = 4.5
	assert.Equal(t, 4.5, tb.Get(State("2,0,1,0,0"))[1])
	assert.Equal(t, 1, tb.Statistics().States)
}

func TestVisitCountsAreIndependent(t *testing.T) {
	tb := New(3)
	tb.Visit(Start)
	tb.Visit(Start)
	tb.Visit(State("1,1,0,0,0"))

	st := tb.Statistics()
	assert.Equal(t, 0, st.States, "visits alone must not create value entries")
	assert.Equal(t, 2, st.Visits[Start])

	tb.Get(Start)
	tb.Get(State("1,1,0,0,0"))
	st = tb.Statistics()
	assert.Equal(t, 2, st.States)
	assert.InDelta(t, 1.5, st.AvgVisits, 1e-12)
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	tb := New(2)
	tb.Get(Start)[0] = 1.25
	snap := tb.Snapshot()
	tb.Get(Start)[0] = 9.0
	assert.Equal(t, 1.25, snap[Start][0])
}

func TestSaveLoadRoundTrip(t *testing.T) {
	tb := New(3)
	tb.Get(Start)[2] = -0.5
	tb.Get(State("2,2,2,2,2"))[0] = 5.0625
	tb.Get(State("0,1,0,2,0"))[1] = 0.3333333333333333

	path := filepath.Join(t.TempDir(), "q.json")
	require.NoError(t, tb.Save(path))

	loaded := New(3)
	require.NoError(t, loaded.Load(path))
	assert.Equal(t, tb.Snapshot(), loaded.Snapshot())
}

func TestLoadFailures(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		tb := New(3)
		err := tb.Load(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})

	t.Run("not json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "q.json")
		require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))
		tb := New(3)
		assert.ErrorIs(t, tb.Load(path), ErrCorrupt)
	})

	t.Run("bad state key", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "q.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"x,y": [0,0,0]}`), 0o644))
		tb := New(3)
		assert.ErrorIs(t, tb.Load(path), ErrCorrupt)
	})

	t.Run("wrong vector length", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "q.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"0": [0,0]}`), 0o644))
		tb := New(3)
		assert.ErrorIs(t, tb.Load(path), ErrCorrupt)
	})

	t.Run("unwritable save path", func(t *testing.T) {
		tb := New(3)
		err := tb.Save(filepath.Join(t.TempDir(), "no", "such", "dir", "q.json"))
		assert.Error(t, err)
	})
}

func TestDelta(t *testing.T) {
	pre := map[State][]float64{
		Start: {1, 0},
	}
	post := map[State][]float64{
		Start:              {0, 0},
		State("2,0,0,0,0"): {0, 2},
	}
	raw, rms := Delta(pre, post)
	assert.InDelta(t, 3.0, raw, 1e-12)
	// Differences are (-1, 0, 0, 2) over 4 entries → sqrt(5/4).
	assert.InDelta(t, 1.118033988749895, rms, 1e-12)

	raw, rms = Delta(nil, nil)
	assert.Zero(t, raw)
	assert.Zero(t, rms)
}
