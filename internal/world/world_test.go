package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/tuning"
)

var districts = []string{"A", "B", "C"}

func TestDefault(t *testing.T) {
	l := Default(districts, tuning.Default().World)
	require.Len(t, l, 3)
	assert.Equal(t, DistrictState{70, 30, 0}, l["B"])
	assert.Equal(t, DistrictState{70, 30, 0}, l.Get("unknown", tuning.Default().World))
}

func TestApply_Success(t *testing.T) {
	cfg := tuning.Default().World
	l := Ledger{"A": {98, 3, 1}, "B": {70, 30, 0}}

	next := l.Apply("A", true, cfg)
	assert.Equal(t, DistrictState{100, 0, 0}, next["A"])
	assert.Equal(t, DistrictState{70, 30, 0}, next["B"], "no spillover on success")
	assert.Equal(t, DistrictState{98, 3, 1}, l["A"], "input untouched")
}

func TestApply_FailureSpillover(t *testing.T) {
	cfg := tuning.Default().World
	l := Ledger{"A": {5, 95, 2}, "B": {70, 30, 0}, "C": {50, 99, 4}}

	next := l.Apply("A", false, cfg)
	assert.Equal(t, DistrictState{0, 100, 3}, next["A"], "primary deltas only")
	assert.Equal(t, DistrictState{70, 32, 0}, next["B"])
	assert.Equal(t, DistrictState{50, 100, 4}, next["C"], "spillover capped")
}

func TestApply_UnknownDistrictStartsFromDefault(t *testing.T) {
	cfg := tuning.Default().World
	next := Ledger{"B": {70, 30, 0}}.Apply("Z", false, cfg)
	assert.Equal(t, DistrictState{62, 40, 1}, next["Z"])
	assert.Equal(t, 32, next["B"].SystemStress)
}

func TestApply_RepeatedFailuresStayInRange(t *testing.T) {
	cfg := tuning.Default().World
	l := Default(districts, cfg)
	for i := 0; i < 30; i++ {
		l = l.Apply(districts[i%3], i%4 == 0, cfg)
		for name, s := range l {
			require.True(t, s.StabilityLevel >= 0 && s.StabilityLevel <= 100, name)
			require.True(t, s.SystemStress >= 0 && s.SystemStress <= 100, name)
			require.GreaterOrEqual(t, s.RecentFailures, 0, name)
		}
	}
}

func TestEncodeDecode(t *testing.T) {
	cfg := tuning.Default().World
	l := Default(districts, cfg).Apply("A", false, cfg)
	data, err := Encode(l)
	require.NoError(t, err)

	got, err := Decode(data, districts, cfg)
	require.NoError(t, err)
	assert.Equal(t, l, got)
}

func TestDecode_MergesAndClamps(t *testing.T) {
	cfg := tuning.Default().World
	got, err := Decode([]byte(`{"A": {"systemStress": 140}, "Legacy": {"stabilityLevel": -3, "recentFailures": -1}}`), districts, cfg)
	require.NoError(t, err)
	assert.Equal(t, DistrictState{70, 100, 0}, got["A"])
	assert.Equal(t, DistrictState{70, 30, 0}, got["C"])
	assert.Equal(t, DistrictState{0, 30, 0}, got["Legacy"])
}

func TestDecode_Malformed(t *testing.T) {
	_, err := Decode([]byte(`[1,2]`), districts, tuning.Default().World)
	assert.Error(t, err)
}
