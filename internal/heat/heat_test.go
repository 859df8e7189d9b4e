package heat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/catalog"
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/profile"
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/tuning"
)

func TestOf(t *testing.T) {
	cfg := tuning.Default().Heat
	p := profile.Default("p")

	// (1 − 0.56) × 0.28 = 0.1232
	assert.Equal(t, 0.12, Of(p, catalog.DomainMedical, cfg))
	// pharm has no heat weight of its own: (1 − 0) × 0.15
	p.DomainScores[catalog.DomainPharm] = 0
	assert.Equal(t, 0.15, Of(p, catalog.DomainPharm, cfg))

	p.PriorityErrorRate = 0.16
	p.RecentFailures = 1
	// 0.1232 + 0.08 + 0.25
	assert.Equal(t, 0.45, Of(p, catalog.DomainMedical, cfg))

	p.RecentFailures = 4
	assert.Equal(t, 1.0, Of(p, catalog.DomainMedical, cfg))
}

func TestBandFor(t *testing.T) {
	cfg := tuning.Default().Heat
	assert.Equal(t, BandLow, BandFor(0, cfg))
	assert.Equal(t, BandLow, BandFor(0.34, cfg))
	assert.Equal(t, BandModerate, BandFor(0.35, cfg))
	assert.Equal(t, BandModerate, BandFor(0.64, cfg))
	assert.Equal(t, BandHigh, BandFor(0.65, cfg))
	assert.Equal(t, BandHigh, BandFor(1, cfg))
}

func TestMap_AllDistricts(t *testing.T) {
	cfg := tuning.Default().Heat
	p := profile.Default("p")
	p.DomainScores[catalog.DomainCardiology] = 100

	got := Map(p, cfg)
	require.Len(t, got, 6)
	assert.Equal(t, "Downtown Core", got[0].Name)
	assert.Equal(t, 0.0, got[0].Heat)
	assert.Equal(t, BandLow, got[0].Band)
	for _, d := range got {
		assert.GreaterOrEqual(t, d.Heat, 0.0)
		assert.LessOrEqual(t, d.Heat, 1.0)
	}
}
