package catalog

import (
	"slices"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_LoadsEmbeddedBanks(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	assert.Len(t, c.Questions, 28)
	assert.Len(t, c.Nodes, 12)

	q, ok := c.Question("AIR-001")
	require.True(t, ok)
	assert.Equal(t, DomainAirway, q.Domain)

	_, ok = c.Question("missing")
	assert.False(t, ok)
}

func TestDefault_EveryDomainHasQuestions(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	counts := map[DomainID]int{}
	for _, q := range c.Questions {
		counts[q.Domain]++
	}
	for _, d := range AllDomains() {
		assert.Positive(t, counts[d.ID], "domain %s has no questions", d.ID)
	}
}

func TestDistrictNames_FirstAppearanceOrder(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	names := c.DistrictNames()
	require.Len(t, names, 6)
	assert.Equal(t, "Downtown Core", names[0])
	assert.Equal(t, "Hospitals / Stations", names[5])
}

func TestNew_RejectsDuplicatesAndBadIndex(t *testing.T) {
	qs := []Question{
		{ID: "Q1", Domain: DomainTrauma, Difficulty: 2, Options: []string{"a", "b"}, CorrectIndex: 1},
		{ID: "Q1", Domain: DomainTrauma, Difficulty: 2, Options: []string{"a", "b"}, CorrectIndex: 2},
	}
	_, err := New(qs, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate question ID: "Q1"`)
	assert.Contains(t, err.Error(), "correctIndex 2 outside 2 options")
}

func TestNew_RejectsUnknownDistrictAndDomain(t *testing.T) {
	qs := []Question{{ID: "Q1", Domain: DomainOps, Difficulty: 1, Options: []string{"a", "b"}}}
	nodes := []NodeDefinition{{ID: "N1", District: "Atlantis", PrimaryDomain: "astrology", EncounterLength: 1}}
	_, err := New(qs, nodes)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown district "Atlantis"`)
	assert.Contains(t, err.Error(), `unknown domain "astrology"`)
}

func TestLoad_SchemaViolation(t *testing.T) {
	fsys := fstest.MapFS{
		"questions.json": {Data: []byte(`[{"id": "Q1", "domain": "airway", "difficulty": 9}]`)},
		"nodes.json":     {Data: []byte(`[]`)},
	}
	_, err := Load(fsys)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "questions.json: schema validation failed")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(fstest.MapFS{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read questions.json")
}

func TestArchetypes(t *testing.T) {
	a, err := GetArchetype("critical-care")
	require.NoError(t, err)
	assert.InDelta(t, 0.9, a.StabilityTolerance, 1e-9)
	assert.InDelta(t, 1.1, a.XPModifier(DomainAirway), 1e-9)
	assert.InDelta(t, 1.0, a.XPModifier(DomainOps), 1e-9)

	_, err = GetArchetype("lifeguard")
	assert.Error(t, err)
	assert.Equal(t, DefaultArchetypeID, ArchetypeOrDefault("lifeguard").ID)
}

func TestNodeDefinition_Domains(t *testing.T) {
	n := NodeDefinition{PrimaryDomain: DomainCardiology, SecondaryDomains: []DomainID{DomainAirway}, NodeType: NodeBoss}
	assert.Equal(t, []DomainID{DomainCardiology, DomainAirway}, n.Domains())
	assert.True(t, n.IsBoss())
}

func TestCoachingFor_EveryDomain(t *testing.T) {
	for _, d := range AllDomains() {
		c, ok := CoachingFor(d.ID)
		assert.True(t, ok, d.ID)
		assert.NotEmpty(t, c.Tip, d.ID)
		assert.Len(t, c.Pitfalls, 2, d.ID)
	}
	_, ok := CoachingFor("pediatrics")
	assert.False(t, ok)
}

func TestNew_RejectsFieldViolations(t *testing.T) {
	qs := []Question{{ID: "Q1", Domain: DomainOps, Difficulty: 7, Options: []string{"a", ""}}}
	nodes := []NodeDefinition{{
		ID: "N1", District: "Downtown Core", PrimaryDomain: DomainOps,
		DifficultyTier: 1, NodeType: "side-quest", EncounterLength: 0,
	}}
	_, err := New(qs, nodes)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `question "Q1": field Question.Difficulty failed "max"`)
	assert.Contains(t, err.Error(), `question "Q1": field Question.Options[1] failed "required"`)
	assert.Contains(t, err.Error(), `node "N1": field NodeDefinition.NodeType failed "oneof"`)
	assert.Contains(t, err.Error(), `node "N1": field NodeDefinition.EncounterLength failed "min"`)
}

func TestNew_UnknownErrorTypeIsWarning(t *testing.T) {
	base, err := Default()
	require.NoError(t, err)
	qs := slices.Clone(base.Questions)
	qs[0].ErrorType = "Forgot gloves"

	c, err := New(qs, base.Nodes)
	require.NoError(t, err)
	require.Len(t, c.Warnings, 1)
	assert.Contains(t, c.Warnings[0], `unknown error type "Forgot gloves"`)
}

func TestDefault_NoWarnings(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	assert.Empty(t, c.Warnings)
}
