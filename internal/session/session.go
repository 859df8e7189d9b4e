// Package session owns one learner's live state: the profile, the district
// ledger, today's modifiers and at most one encounter in progress. Every
// mutation goes through a Session; nothing is held in package state.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/catalog"
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/encounter"
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/heat"
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/logger"
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/modifiers"
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/profile"
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/progression"
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/readiness"
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/tuning"
	"github.com/tinyfoundry/NREMT-Crawler-Paramedic/internal/world"
)

// Store persists session state between processes.
type Store interface {
	LoadProfile(ctx context.Context, id string, cfg tuning.Profile) (*profile.Profile, error)
	SaveProfile(ctx context.Context, p *profile.Profile) error
	LoadDistricts(ctx context.Context, id string, districts []string, cfg tuning.World) (world.Ledger, error)
	SaveDistricts(ctx context.Context, id string, l world.Ledger) error
	LoadOrCreateDailySeed(ctx context.Context, id, dayKey string) (uint32, error)
	LoadModifierCache(ctx context.Context, id string) (*modifiers.Cache, error)
	SaveModifierCache(ctx context.Context, id string, c modifiers.Cache) error
	Reset(ctx context.Context, id string) error
}

// Options configures Load.
type Options struct {
	ProfileID string
	Catalog   *catalog.Catalog
	Tuning    *tuning.Tuning
	Store     Store
	Logger    *logger.Logger

	// Now defaults to time.Now.
	Now func() time.Time
}

// Session is the explicit context every core operation runs against.
// A Session is not safe for concurrent use.
type Session struct {
	id        string
	catalog   *catalog.Catalog
	graph     *progression.Graph
	assembler *encounter.Assembler
	tuning    *tuning.Tuning
	store     Store
	log       *logger.Logger
	now       func() time.Time

	profile *profile.Profile
	ledger  world.Ledger
	dayKey  string
	daySeed uint32
	mods    modifiers.Cache

	active *active
}

// active is the encounter in progress and what it was started from.
type active struct {
	enc             *encounter.Encounter
	view            progression.NodeView
	readinessBefore int
	available       []string
}

// Load restores the session for opts.ProfileID from the store.
func Load(ctx context.Context, opts Options) (*Session, error) {
	if opts.Catalog == nil || opts.Tuning == nil || opts.Store == nil {
		return nil, fmt.Errorf("session: catalog, tuning and store are required")
	}
	if opts.ProfileID == "" {
		return nil, fmt.Errorf("session: profile id is required")
	}
	graph, err := progression.New(opts.Catalog.Nodes)
	if err != nil {
		return nil, err
	}

	s := &Session{
		id:        opts.ProfileID,
		catalog:   opts.Catalog,
		graph:     graph,
		assembler: encounter.NewAssembler(opts.Catalog.Questions, opts.Tuning),
		tuning:    opts.Tuning,
		store:     opts.Store,
		log:       opts.Logger,
		now:       opts.Now,
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.log = s.log.With("profile", s.id)
	for _, w := range opts.Catalog.Warnings {
		s.log.Warn("catalog warning", "detail", w)
	}

	if err := s.restore(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) restore(ctx context.Context) error {
	p, err := s.store.LoadProfile(ctx, s.id, s.tuning.Profile)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}
	l, err := s.store.LoadDistricts(ctx, s.id, s.catalog.DistrictNames(), s.tuning.World)
	if err != nil {
		return fmt.Errorf("load districts: %w", err)
	}
	s.profile, s.ledger = p, l
	s.dayKey = ""
	return s.refreshDay(ctx)
}

// refreshDay loads or rotates the daily seed and the modifier table when
// the calendar day has changed.
func (s *Session) refreshDay(ctx context.Context) error {
	dayKey := modifiers.DayKey(s.now())
	if dayKey == s.dayKey {
		return nil
	}
	seed, err := s.store.LoadOrCreateDailySeed(ctx, s.id, dayKey)
	if err != nil {
		return fmt.Errorf("load daily seed: %w", err)
	}
	cached, err := s.store.LoadModifierCache(ctx, s.id)
	if err != nil {
		return fmt.Errorf("load modifiers: %w", err)
	}
	mods, rebuilt := modifiers.Resolve(cached, s.catalog.Nodes, seed, s.tuning.Modifiers)
	if rebuilt {
		if err := s.store.SaveModifierCache(ctx, s.id, mods); err != nil {
			return fmt.Errorf("save modifiers: %w", err)
		}
		s.log.Debug("rebuilt modifier table", "day", dayKey, "nodes", len(mods.Modifiers))
	}
	s.dayKey, s.daySeed, s.mods = dayKey, seed, mods
	return nil
}

// ProfileID returns the id the session was loaded for.
func (s *Session) ProfileID() string { return s.id }

// Profile returns a copy of the learner profile.
func (s *Session) Profile() *profile.Profile { return s.profile.Clone() }

// Ledger returns a copy of the district ledger.
func (s *Session) Ledger() world.Ledger { return s.ledger.Clone() }

func (s *Session) Catalog() *catalog.Catalog { return s.catalog }

// DayKey is the calendar day today's modifiers were built for.
func (s *Session) DayKey() string { return s.dayKey }

// Modifiers returns today's modifier set for a node.
func (s *Session) Modifiers(nodeID string) modifiers.Set { return s.mods.Modifiers[nodeID] }

// Readiness computes the composite readiness breakdown now.
func (s *Session) Readiness() readiness.Breakdown {
	return readiness.Compute(s.profile, s.now(), s.tuning)
}

// Heat returns the risk heat of every district.
func (s *Session) Heat() []heat.District {
	return heat.Map(s.profile, s.tuning.Heat)
}

func (s *Session) inputs() progression.Inputs {
	return progression.Inputs{
		Profile:   s.profile,
		Readiness: readiness.Score(s.profile, s.now(), s.tuning),
		Ledger:    s.ledger,
		Modifiers: s.mods.Modifiers,
		Tuning:    s.tuning,
	}
}

// Views returns every node with its dynamic overlay, in bank order.
func (s *Session) Views() []progression.NodeView {
	return s.graph.Views(s.inputs())
}

// Eligible returns the views of nodes that can be started now.
func (s *Session) Eligible() []progression.NodeView {
	return s.graph.Eligible(s.inputs())
}

// View returns the current view of one node.
func (s *Session) View(nodeID string) (progression.NodeView, error) {
	n, err := s.graph.Node(nodeID)
	if err != nil {
		return progression.NodeView{}, fmt.Errorf("%w: %s", ErrUnknownNode, nodeID)
	}
	return progression.View(n, s.inputs()), nil
}

// SetMode switches between study and exam mode and saves the profile.
func (s *Session) SetMode(ctx context.Context, m profile.Mode) error {
	if _, ok := profile.ParseMode(string(m)); !ok {
		return fmt.Errorf("unknown mode %q", m)
	}
	s.profile.Mode = m
	return s.saveProfile(ctx)
}

// SetArchetype changes the learner archetype and saves the profile.
func (s *Session) SetArchetype(ctx context.Context, id string) error {
	if s.active != nil {
		return ErrEncounterActive
	}
	if _, err := catalog.GetArchetype(id); err != nil {
		return err
	}
	s.profile.ArchetypeID = id
	return s.saveProfile(ctx)
}

// Reset deletes all stored state for the profile and starts over.
func (s *Session) Reset(ctx context.Context) error {
	if err := s.store.Reset(ctx, s.id); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	s.active = nil
	if err := s.restore(ctx); err != nil {
		return err
	}
	s.log.Info("profile reset")
	return nil
}

func (s *Session) saveProfile(ctx context.Context) error {
	if err := s.store.SaveProfile(ctx, s.profile); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}
