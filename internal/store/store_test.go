package store

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/catalog"
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/diagnosis"
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/logger"
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/modifiers"
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/profile"
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/readiness"
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/tuning"
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/world"
)

func openTestStore(t *testing.T) (*Store, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.WarnLevel)
	s, err := Open(filepath.Join(t.TempDir(), "test.db"), logger.NewFromCore(core))
	require.NoError(t, err, "open test store")
	t.Cleanup(func() { s.Close() })
	return s, logs
}

func defaultCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	return c
}

func codecOf(t *testing.T, s *Store, key string) string {
	t.Helper()
	var codec string
	err := s.DB().QueryRow("SELECT codec FROM "+recordsTable+" WHERE key = ?", key).Scan(&codec)
	require.NoError(t, err)
	return codec
}

func TestPragmasApplied(t *testing.T) {
	s, _ := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestLoadProfile_MissingIsDefault(t *testing.T) {
	s, logs := openTestStore(t)
	p, err := s.LoadProfile(context.Background(), "alice", tuning.Default().Profile)
	require.NoError(t, err)
	assert.Equal(t, profile.Default("alice"), p)
	assert.Zero(t, logs.Len())
}

func TestProfile_RoundTripPreservesReadiness(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()
	tun := tuning.Default()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	p := profile.Default("alice")
	domains := catalog.AllDomains()
	for i := 0; i < 40; i++ {
		a := profile.Answer{
			Domain:     domains[i%len(domains)].ID,
			Difficulty: 1 + i%5,
			Correct:    i%3 != 0,
			Pediatric:  i%7 == 0,
			At:         now.Add(-time.Duration(i) * 36 * time.Hour),
		}
		if !a.Correct {
			a.ErrorType = diagnosis.ErrDelayedCare
			a.Code = diagnosis.CodeDelayed
		}
		p.RecordAnswer(a, tun.Profile)
	}
	p.MarkCompleted("DT-AIR-01")
	p.XP = 420

	require.NoError(t, s.SaveProfile(ctx, p))
	got, err := s.LoadProfile(ctx, "alice", tun.Profile)
	require.NoError(t, err)

	assert.Equal(t, readiness.Score(p, now, tun), readiness.Score(got, now, tun))
	assert.Len(t, got.History, 40)
	assert.Equal(t, p.DomainScores, got.DomainScores)
	assert.Equal(t, p.CompletedNodes, got.CompletedNodes)
	assert.Equal(t, 420, got.XP)
}

func TestProfile_LargeRecordsCompressed(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()
	tun := tuning.Default()

	p := profile.Default("big")
	at := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 200; i++ {
		p.RecordAnswer(profile.Answer{Domain: catalog.DomainMedical, Difficulty: 2, Correct: true, At: at}, tun.Profile)
	}
	require.NoError(t, s.SaveProfile(ctx, p))
	assert.Equal(t, string(CodecZstd), codecOf(t, s, profileKey("big")))

	got, err := s.LoadProfile(ctx, "big", tun.Profile)
	require.NoError(t, err)
	assert.Len(t, got.History, 200)

	small := profile.Default("small")
	require.NoError(t, s.SaveProfile(ctx, small))
	assert.Equal(t, string(CodecJSON), codecOf(t, s, profileKey("small")))
}

func TestLoadProfile_FallsBackToDefaults(t *testing.T) {
	tests := []struct {
		name    string
		version string
		value   string
		codec   Codec
	}{
		{"malformed json", profile.Version, `{"xp":`, CodecJSON},
		{"unknown codec", profile.Version, `{"xp":100}`, "gzip"},
		{"corrupt zstd", profile.Version, `not zstd`, CodecZstd},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, logs := openTestStore(t)
			ctx := context.Background()
			_, err := s.DB().Exec(
				"INSERT INTO "+recordsTable+" (key, value, codec, version, updated_at) VALUES (?, ?, ?, ?, ?)",
				profileKey("bob"), []byte(tt.value), string(tt.codec), tt.version, time.Now().UTC(),
			)
			require.NoError(t, err)

			p, err := s.LoadProfile(ctx, "bob", tuning.Default().Profile)
			require.NoError(t, err)
			assert.Equal(t, profile.Default("bob"), p)
			assert.Equal(t, 1, logs.FilterLevelExact(zap.WarnLevel).Len())
		})
	}
}

func TestLoadProfile_OtherVersionsStillDecode(t *testing.T) {
	tests := []struct {
		name    string
		version string
	}{
		{"newer version", "v1.1.0"},
		{"invalid version", "one"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, logs := openTestStore(t)
			ctx := context.Background()
			raw := `{"xp":900,"completedNodes":["DT-CARD-01"],"streakFreeze":2,` +
				`"history":[{"domain":"cardiology","difficulty":2,"correct":true,"mode":"study",` +
				`"timestamp":"2026-03-01T09:00:00Z","errorType":"none"}]}`
			require.NoError(t, s.put(ctx, profileKey("alice"), tt.version, []byte(raw)))

			p, err := s.LoadProfile(ctx, "alice", tuning.Default().Profile)
			require.NoError(t, err)
			assert.Equal(t, 900, p.XP)
			assert.Equal(t, []string{"DT-CARD-01"}, p.CompletedNodes)
			require.Len(t, p.History, 1)
			assert.Equal(t, catalog.DomainCardiology, p.History[0].Domain)
			assert.Equal(t, profile.Default("alice").DomainScores, p.DomainScores)
			assert.Equal(t, 1, logs.FilterLevelExact(zap.WarnLevel).Len())
		})
	}
}

func TestLoadDistricts_NewerVersionStillDecodes(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()
	cfg := tuning.Default().World
	names := defaultCatalog(t).DistrictNames()

	raw := `{"` + names[0] + `":{"systemStress":55,"lockdown":true}}`
	require.NoError(t, s.put(ctx, districtsKey("alice"), "v2.0.0", []byte(raw)))

	got, err := s.LoadDistricts(ctx, "alice", names, cfg)
	require.NoError(t, err)
	assert.Equal(t, 55, got[names[0]].SystemStress)
	assert.Len(t, got, len(names))
}

func TestLoadProfile_OlderVersionMerges(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.put(ctx, profileKey("carol"), "v0.9.0", []byte(`{"xp":75,"domainScores":{"airway":80}}`)))

	p, err := s.LoadProfile(ctx, "carol", tuning.Default().Profile)
	require.NoError(t, err)
	assert.Equal(t, 75, p.XP)
	assert.Equal(t, 80, p.DomainScores[catalog.DomainAirway])
	assert.Equal(t, profile.Default("carol").DomainScores[catalog.DomainTrauma], p.DomainScores[catalog.DomainTrauma])
	assert.Equal(t, profile.Version, p.Version)
}

func TestDistricts_MergeOverDefaults(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()
	cfg := tuning.Default().World
	names := defaultCatalog(t).DistrictNames()
	require.NotEmpty(t, names)

	l, err := s.LoadDistricts(ctx, "alice", names, cfg)
	require.NoError(t, err)
	assert.Equal(t, world.Default(names, cfg), l)

	l = l.Apply(names[0], false, cfg)
	require.NoError(t, s.SaveDistricts(ctx, "alice", l))

	got, err := s.LoadDistricts(ctx, "alice", names, cfg)
	require.NoError(t, err)
	assert.Equal(t, l, got)

	partial := `{"` + names[0] + `":{"systemStress":250}}`
	require.NoError(t, s.put(ctx, districtsKey("dave"), world.Version, []byte(partial)))
	got, err = s.LoadDistricts(ctx, "dave", names, cfg)
	require.NoError(t, err)
	assert.Equal(t, 100, got[names[0]].SystemStress)
	assert.Equal(t, cfg.Default.StabilityLevel, got[names[0]].StabilityLevel)
	assert.Len(t, got, len(names))
}

func TestLoadOrCreateDailySeed(t *testing.T) {
	s, logs := openTestStore(t)
	ctx := context.Background()

	first, err := s.LoadOrCreateDailySeed(ctx, "alice", "2026-03-01")
	require.NoError(t, err)
	again, err := s.LoadOrCreateDailySeed(ctx, "alice", "2026-03-01")
	require.NoError(t, err)
	assert.Equal(t, first, again, "seed is stable within a day")

	// A new day rotates the seed. Collisions are possible but vanishingly rare.
	next, err := s.LoadOrCreateDailySeed(ctx, "alice", "2026-03-02")
	require.NoError(t, err)
	assert.NotEqual(t, first, next)

	_, err = s.LoadOrCreateDailySeed(ctx, "bob", "2026-03-02")
	require.NoError(t, err)
	stillNext, err := s.LoadOrCreateDailySeed(ctx, "alice", "2026-03-02")
	require.NoError(t, err)
	assert.Equal(t, next, stillNext, "seeds are kept per profile")
	assert.Zero(t, logs.Len())
}

func TestModifierCache_RoundTrip(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	c, err := s.LoadModifierCache(ctx, "alice")
	require.NoError(t, err)
	assert.Nil(t, c)

	nodes := defaultCatalog(t).Nodes
	built, rebuilt := modifiers.Resolve(nil, nodes, 1234, tuning.Default().Modifiers)
	require.True(t, rebuilt)
	require.NoError(t, s.SaveModifierCache(ctx, "alice", built))

	c, err = s.LoadModifierCache(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, built, *c)

	_, rebuilt = modifiers.Resolve(c, nodes, 1234, tuning.Default().Modifiers)
	assert.False(t, rebuilt, "cached table is reused for the same seed")
}

func TestReset(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()
	tun := tuning.Default()

	p := profile.Default("alice")
	p.XP = 10
	require.NoError(t, s.SaveProfile(ctx, p))
	require.NoError(t, s.SaveProfile(ctx, profile.Default("bob")))
	_, err := s.LoadOrCreateDailySeed(ctx, "alice", "2026-03-01")
	require.NoError(t, err)

	require.NoError(t, s.Reset(ctx, "alice"))

	got, err := s.LoadProfile(ctx, "alice", tun.Profile)
	require.NoError(t, err)
	assert.Zero(t, got.XP)

	var n int
	require.NoError(t, s.DB().QueryRow("SELECT COUNT(*) FROM "+recordsTable).Scan(&n))
	assert.Equal(t, 1, n, "other profiles are untouched")

	var key string
	require.NoError(t, s.DB().QueryRow("SELECT key FROM "+recordsTable).Scan(&key))
	assert.True(t, strings.HasPrefix(key, "profile:bob"))
}
