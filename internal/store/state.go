package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/modifiers"
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/profile"
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/tuning"
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/world"
)

// Version is written on records that carry no version of their own.
const Version = "v1.0.0"

func profileKey(id string) string   { return "profile:" + id }
func districtsKey(id string) string { return "districts:" + id }
func seedKey(id string) string      { return "seed:" + id }
func modifiersKey(id string) string { return "modifiers:" + id }

// DailySeed is the cached session seed of one calendar day.
type DailySeed struct {
	DayKey string `json:"dayKey"`
	Seed   uint32 `json:"seed"`
}

// load fetches key and returns its decoded payload. ok is false when the
// record is missing or its payload cannot be decoded. Records from another
// version are still returned; callers merge them over defaults.
func (s *Store) load(ctx context.Context, key, version string) ([]byte, bool, error) {
	r, found, err := s.get(ctx, key)
	if err != nil || !found {
		return nil, false, err
	}
	if err := r.checkVersion(version); err != nil {
		s.log.Warn("reading record from unexpected version", "key", key, "error", err)
	}
	data, err := r.payload()
	if err != nil {
		s.log.Warn("ignoring stored record", "key", key, "error", err)
		return nil, false, nil
	}
	return data, true, nil
}

// LoadProfile returns the stored profile for id, or a default profile when
// none is stored or the stored one cannot be read.
func (s *Store) LoadProfile(ctx context.Context, id string, cfg tuning.Profile) (*profile.Profile, error) {
	data, ok, err := s.load(ctx, profileKey(id), profile.Version)
	if err != nil {
		return nil, err
	}
	if !ok {
		return profile.Default(id), nil
	}
	p, err := profile.Decode(data, id, cfg)
	if err != nil {
		s.log.Warn("malformed profile, using defaults", "profile", id, "error", err)
		return profile.Default(id), nil
	}
	return p, nil
}

// SaveProfile writes p under its id.
func (s *Store) SaveProfile(ctx context.Context, p *profile.Profile) error {
	data, err := profile.Encode(p)
	if err != nil {
		return err
	}
	return s.put(ctx, profileKey(p.ID), profile.Version, data)
}

// LoadDistricts returns the stored district ledger for id merged over the
// defaults for districts.
func (s *Store) LoadDistricts(ctx context.Context, id string, districts []string, cfg tuning.World) (world.Ledger, error) {
	data, ok, err := s.load(ctx, districtsKey(id), world.Version)
	if err != nil {
		return nil, err
	}
	if !ok {
		return world.Default(districts, cfg), nil
	}
	l, err := world.Decode(data, districts, cfg)
	if err != nil {
		s.log.Warn("malformed districts, using defaults", "profile", id, "error", err)
		return world.Default(districts, cfg), nil
	}
	return l, nil
}

func (s *Store) SaveDistricts(ctx context.Context, id string, l world.Ledger) error {
	data, err := world.Encode(l)
	if err != nil {
		return err
	}
	return s.put(ctx, districtsKey(id), world.Version, data)
}

// LoadOrCreateDailySeed returns the cached seed for dayKey. A new seed is
// derived and stored when the cache is missing or belongs to another day.
func (s *Store) LoadOrCreateDailySeed(ctx context.Context, id, dayKey string) (uint32, error) {
	data, ok, err := s.load(ctx, seedKey(id), Version)
	if err != nil {
		return 0, err
	}
	if ok {
		var cached DailySeed
		if err := json.Unmarshal(data, &cached); err != nil {
			s.log.Warn("malformed daily seed, regenerating", "profile", id, "error", err)
		} else if cached.DayKey == dayKey {
			return cached.Seed, nil
		}
	}

	seed := DailySeed{DayKey: dayKey, Seed: modifiers.NewDaySeed(dayKey)}
	data, err = json.Marshal(seed)
	if err != nil {
		return 0, fmt.Errorf("encode daily seed: %w", err)
	}
	if err := s.put(ctx, seedKey(id), Version, data); err != nil {
		return 0, err
	}
	s.log.Info("rotated daily seed", "profile", id, "day", dayKey)
	return seed.Seed, nil
}

// LoadModifierCache returns the cached modifier table, or nil if none is
// stored.
func (s *Store) LoadModifierCache(ctx context.Context, id string) (*modifiers.Cache, error) {
	data, ok, err := s.load(ctx, modifiersKey(id), Version)
	if err != nil || !ok {
		return nil, err
	}
	var c modifiers.Cache
	if err := json.Unmarshal(data, &c); err != nil {
		s.log.Warn("malformed modifier cache, discarding", "profile", id, "error", err)
		return nil, nil
	}
	return &c, nil
}

func (s *Store) SaveModifierCache(ctx context.Context, id string, c modifiers.Cache) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode modifier cache: %w", err)
	}
	return s.put(ctx, modifiersKey(id), Version, data)
}

// Reset deletes every record belonging to id.
func (s *Store) Reset(ctx context.Context, id string) error {
	return s.delete(ctx, profileKey(id), districtsKey(id), seedKey(id), modifiersKey(id))
}
