package game

import (
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCatalog = `
cards:
  - id: bridge
    title: New Bridge
    description: Connect the east bank.
    tags: [infrastructure]
    left:
      label: Not now
      impacts:
        - {resource: happiness, delta: -5}
    right:
      label: Build it
      impacts:
        - {resource: Economy, delta: -20}
        - {resource: Happiness, delta: 10}
  - id: mine
    left:
      label: Keep the hills green
    right:
      label: Dig
      impacts:
        - {resource: economy, delta: 15}
        - {resource: environment, delta: -20}
`

func TestParseCatalog(t *testing.T) {
	cards, err := ParseCatalog([]byte(sampleCatalog))
	require.NoError(t, err)
	require.Len(t, cards, 2)

	bridge := cards[0]
	assert.Equal(t, "New Bridge", bridge.Title)
	assert.True(t, bridge.HasTag("Infrastructure"))
	assert.Equal(t, []Impact{{Resource: Happiness, Delta: -5}}, bridge.Left.Impacts)
	assert.Equal(t, []Impact{{Resource: Economy, Delta: -20}, {Resource: Happiness, Delta: 10}}, bridge.Right.Impacts)

	mine := cards[1]
	assert.Equal(t, "mine", mine.Title, "title defaults to id")
	assert.Empty(t, mine.Left.Impacts)
	assert.Equal(t, "Dig", mine.Choice(true).Label)
}

func TestParseCatalogErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown resource", "cards:\n  - id: x\n    right: {label: y, impacts: [{resource: Morale, delta: 1}]}\n"},
		{"missing id", "cards:\n  - title: Nameless\n"},
		{"duplicate id", "cards:\n  - id: x\n  - id: x\n"},
		{"empty entry", "cards:\n  -\n"},
		{"bad yaml", "cards: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestParseCatalogUnknownResourceIsNotFound(t *testing.T) {
	_, err := ParseCatalog([]byte("cards:\n  - id: x\n    left: {label: y, impacts: [{resource: Morale, delta: 1}]}\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestCatalogRoundTripThroughFile(t *testing.T) {
	data, err := MarshalCatalog(DefaultCatalog())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cards, err := ParseCatalogFile(path)
	require.NoError(t, err)
	require.Len(t, cards, len(CardRegistry))
	assert.Equal(t, DefaultCatalog()[0].Right.Impacts, cards[0].Right.Impacts)

	_, err = ParseCatalogFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestCatalogAddRemove(t *testing.T) {
	c := NewCatalog(makeCards(3))
	assert.Equal(t, 3, c.Len())

	assert.False(t, c.Add(testCard("b", nil, nil)))
	assert.False(t, c.Add(nil))
	assert.True(t, c.Add(testCard("z", nil, nil)))
	assert.Equal(t, []string{"a", "b", "c", "z"}, ids(c.Cards()))

	assert.True(t, c.Remove(testCard("b", nil, nil)))
	assert.False(t, c.Remove(testCard("b", nil, nil)))
	_, ok := c.Lookup("b")
	assert.False(t, ok)
	assert.Equal(t, []string{"a", "c", "z"}, ids(c.Cards()))
}

func TestCatalogByTag(t *testing.T) {
	c := NewCatalog(DefaultCatalog())
	tech := c.ByTag("technology")
	require.NotEmpty(t, tech)
	for _, card := range tech {
		assert.True(t, card.HasTag("technology"), card.ID)
	}
	assert.Len(t, c.ByTag(""), c.Len())
	assert.Empty(t, c.ByTag("no-such-tag"))
}

func TestCatalogRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	assert.Nil(t, NewCatalog(nil).Random(rng))

	c := NewCatalog(makeCards(3))
	for i := 0; i < 20; i++ {
		card := c.Random(rng)
		_, ok := c.Lookup(card.ID)
		assert.True(t, ok)
	}
}

func TestDefaultCatalog(t *testing.T) {
	cards := DefaultCatalog()
	require.Len(t, cards, len(CardRegistry))
	assert.True(t, sort.StringsAreSorted(ids(cards)))
	for _, card := range cards {
		assert.NotEmpty(t, card.Left.Label, card.ID)
		assert.NotEmpty(t, card.Right.Label, card.ID)
		for _, imp := range append(card.Left.Impacts, card.Right.Impacts...) {
			assert.True(t, imp.Resource.Valid(), card.ID)
		}
	}

	card, err := LookupCard("solar_farm")
	require.NoError(t, err)
	assert.Equal(t, "Solar Farm", card.Title)

	_, err = LookupCard("nope")
	assert.Error(t, err)
}
