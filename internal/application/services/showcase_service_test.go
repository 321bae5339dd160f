package services

import (
	"math/rand"
	"testing"

	"github.com/indastreet/providerdiscovery/internal/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func referenceProviders(n int) []*entities.Provider {
	providers := make([]*entities.Provider, 0, n)
	for i := 0; i < n; i++ {
		providers = append(providers, &entities.Provider{
			ID:     "yk-" + string(rune('a'+i)),
			Name:   "Reference Provider",
			City:   "yogyakarta",
			Status: entities.StatusAvailable,
			IsLive: true,
			Price:  150000,
		})
	}
	return providers
}

func TestIsReferenceCity_ResolvesAliases(t *testing.T) {
	svc := NewShowcaseService("yogyakarta", 5)

	assert.True(t, svc.IsReferenceCity("yogyakarta"))
	assert.True(t, svc.IsReferenceCity("Yogyakarta"))
	assert.True(t, svc.IsReferenceCity("jogja"))
	assert.False(t, svc.IsReferenceCity("bandung"))
	assert.False(t, svc.IsReferenceCity(""))
}

func TestNeedsShowcase(t *testing.T) {
	svc := NewShowcaseService("yogyakarta", 5)
	empty := []*entities.Provider{}
	real := []*entities.Provider{{ID: "p1", City: "solo"}}
	onlyClones := []*entities.Provider{{ID: "c1", City: "solo", IsShowcaseProfile: true}}

	assert.True(t, svc.NeedsShowcase(empty, "solo"))
	assert.False(t, svc.NeedsShowcase(real, "solo"))
	// Showcase clones do not count as real coverage.
	assert.True(t, svc.NeedsShowcase(onlyClones, "solo"))

	// Never for the reference city itself or for "all".
	assert.False(t, svc.NeedsShowcase(empty, "yogyakarta"))
	assert.False(t, svc.NeedsShowcase(empty, "jogja"))
	assert.False(t, svc.NeedsShowcase(empty, CityAll))
	assert.False(t, svc.NeedsShowcase(empty, ""))
}

func TestBuildShowcase_RelabelsClones(t *testing.T) {
	svc := NewShowcaseService("yogyakarta", 5)
	rng := rand.New(rand.NewSource(42))

	all := referenceProviders(6)
	clones := svc.BuildShowcase(all, "solo", rng)
	require.Len(t, clones, 5)

	for _, c := range clones {
		assert.True(t, c.IsShowcaseProfile)
		assert.Equal(t, "solo", c.City)
		assert.Equal(t, "solo", c.LocationID)
		assert.Equal(t, "solo", c.ShowcaseCity)
		assert.Equal(t, entities.StatusBusy, c.Status)
		assert.False(t, c.IsAvailable)
		assert.False(t, c.IsLive)
		assert.NotEmpty(t, c.ShowcaseSourceID)
		// Original keeps its own identity for share links.
		assert.Equal(t, c.ID, c.ShowcaseSourceID)
	}
}

func TestBuildShowcase_DoesNotMutateSources(t *testing.T) {
	svc := NewShowcaseService("yogyakarta", 5)
	rng := rand.New(rand.NewSource(42))

	all := referenceProviders(3)
	_ = svc.BuildShowcase(all, "solo", rng)

	for _, p := range all {
		assert.Equal(t, "yogyakarta", p.City)
		assert.False(t, p.IsShowcaseProfile)
		assert.Equal(t, entities.StatusAvailable, p.Status)
	}
}

func TestBuildShowcase_ExpandsSmallSource(t *testing.T) {
	svc := NewShowcaseService("yogyakarta", 5)
	rng := rand.New(rand.NewSource(7))

	// Two source providers still yield five showcase entries.
	clones := svc.BuildShowcase(referenceProviders(2), "malang", rng)
	assert.Len(t, clones, 5)
}

func TestBuildShowcase_NeverForReferenceCity(t *testing.T) {
	svc := NewShowcaseService("yogyakarta", 5)
	rng := rand.New(rand.NewSource(7))

	assert.Nil(t, svc.BuildShowcase(referenceProviders(3), "yogyakarta", rng))
	assert.Nil(t, svc.BuildShowcase(referenceProviders(3), "jogja", rng))
}

func TestBuildShowcase_ClonesNeverSeedClones(t *testing.T) {
	svc := NewShowcaseService("yogyakarta", 5)
	rng := rand.New(rand.NewSource(7))

	all := referenceProviders(2)
	firstWave := svc.BuildShowcase(all, "solo", rng)
	require.NotEmpty(t, firstWave)

	// Feed the clones back in as if they had been persisted; only the two
	// genuine reference providers may seed the next wave.
	mixed := append(append([]*entities.Provider{}, all...), firstWave...)
	secondWave := svc.BuildShowcase(mixed, "malang", rng)
	require.Len(t, secondWave, 5)
	for _, c := range secondWave {
		assert.Contains(t, []string{all[0].ID, all[1].ID}, c.ShowcaseSourceID)
	}
}

func TestBuildShowcase_NoReferenceProviders(t *testing.T) {
	svc := NewShowcaseService("yogyakarta", 5)
	rng := rand.New(rand.NewSource(7))

	elsewhere := []*entities.Provider{{ID: "b1", City: "bandung"}}
	assert.Nil(t, svc.BuildShowcase(elsewhere, "solo", rng))
	assert.Nil(t, svc.BuildShowcase(nil, "solo", rng))
}
