package kv

import (
	"testing"

	"lintang/congestionnav/pkg/simulation"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memDB(t *testing.T) *KVDB {
	db, err := pebble.Open("", &pebble.Options{FS: vfs.NewMem()})
	require.NoError(t, err)
	k := NewKVDB(db)
	t.Cleanup(func() { k.Close() })
	return k
}

func round(n int, lat, lon float64) simulation.RoundResult {
	return simulation.RoundResult{
		RunID:     "run-1",
		Round:     n,
		Start:     int64(n),
		End:       int64(n + 1),
		StartLat:  lat,
		StartLon:  lon,
		Ticks:     10 * n,
		Completed: true,
		Agents: []simulation.AgentMetrics{
			{Type: "dynamic", Arrived: true, Moves: n, Dist: 1234.5, Replans: 2, ProcessTimeNs: 99, PathLen: 4},
			{Type: "static", Arrived: true, Moves: n, Dist: 1000, PathLen: 3},
		},
	}
}

func TestCompressRounds(t *testing.T) {
	in := []simulation.RoundResult{round(1, -19.92, -43.93), round(2, -19.92, -43.93)}
	bb, err := CompressRounds(in)
	require.NoError(t, err)
	out, err := LoadRounds(bb)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	_, err = LoadRounds([]byte("not zstd"))
	assert.Error(t, err)
}

func TestSaveAndGetRoundsNear(t *testing.T) {
	k := memDB(t)

	// belo horizonte dan ipatinga, jauh
	require.NoError(t, k.SaveRounds([]simulation.RoundResult{
		round(1, -19.9200, -43.9300),
		round(2, -19.9201, -43.9301),
		round(3, -19.4700, -42.5400),
	}))
	// append ke bucket yang sama
	require.NoError(t, k.SaveRounds([]simulation.RoundResult{round(4, -19.9200, -43.9300)}))

	near, err := k.GetRoundsNear(-19.92, -43.93, 0.5)
	require.NoError(t, err)
	rounds := map[int]bool{}
	for _, r := range near {
		rounds[r.Round] = true
	}
	assert.Equal(t, map[int]bool{1: true, 2: true, 4: true}, rounds)

	far, err := k.GetRoundsNear(-19.47, -42.54, 0.5)
	require.NoError(t, err)
	require.Len(t, far, 1)
	assert.Equal(t, 3, far[0].Round)

	empty, err := k.GetRoundsNear(0, 0, 0.5)
	require.NoError(t, err)
	assert.Empty(t, empty)

	assert.NoError(t, k.SaveRounds(nil))
}

func TestKRingIndexesArea(t *testing.T) {
	assert.Len(t, kRingIndexesArea(-19.92, -43.93, 0), 1)
	assert.Greater(t, len(kRingIndexesArea(-19.92, -43.93, 1)), 7)
}
