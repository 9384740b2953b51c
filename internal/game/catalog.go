package game

import (
	"fmt"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"
)

// CatalogFile represents the top-level YAML structure.
type CatalogFile struct {
	Cards []*Card `yaml:"cards" json:"cards"`
}

// ParseCatalogFile reads a YAML catalog from disk.
func ParseCatalogFile(path string) ([]*Card, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseCatalog(data)
}

// ParseCatalog parses YAML catalog data and validates every card.
func ParseCatalog(data []byte) ([]*Card, error) {
	var cf CatalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parse catalog YAML: %w", err)
	}

	seen := make(map[string]bool)
	for i, card := range cf.Cards {
		if card == nil {
			return nil, fmt.Errorf("card %d: empty entry", i+1)
		}
		if card.ID == "" {
			return nil, fmt.Errorf("card %d (%q): missing id", i+1, card.Title)
		}
		if seen[card.ID] {
			return nil, fmt.Errorf("card %q: duplicate id", card.ID)
		}
		seen[card.ID] = true
		if card.Title == "" {
			card.Title = card.ID
		}
	}
	return cf.Cards, nil
}

// MarshalCatalog renders cards in the catalog YAML format.
func MarshalCatalog(cards []*Card) ([]byte, error) {
	return yaml.Marshal(CatalogFile{Cards: cards})
}

// Catalog is the set of cards a session draws from. Cards are keyed by ID.
type Catalog struct {
	cards []*Card
	byID  map[string]*Card
}

// NewCatalog builds a catalog, keeping the first card for each ID.
func NewCatalog(cards []*Card) *Catalog {
	c := &Catalog{byID: make(map[string]*Card)}
	for _, card := range cards {
		c.Add(card)
	}
	return c
}

// Cards returns the catalog in insertion order.
func (c *Catalog) Cards() []*Card {
	out := make([]*Card, len(c.cards))
	copy(out, c.cards)
	return out
}

func (c *Catalog) Len() int {
	return len(c.cards)
}

// Lookup returns the card with the given ID.
func (c *Catalog) Lookup(id string) (*Card, bool) {
	card, ok := c.byID[id]
	return card, ok
}

// Add inserts the card unless its ID is already present.
func (c *Catalog) Add(card *Card) bool {
	if card == nil {
		return false
	}
	if _, ok := c.byID[card.ID]; ok {
		return false
	}
	c.byID[card.ID] = card
	c.cards = append(c.cards, card)
	return true
}

// Remove deletes the card with the same ID.
func (c *Catalog) Remove(card *Card) bool {
	if card == nil {
		return false
	}
	if _, ok := c.byID[card.ID]; !ok {
		return false
	}
	delete(c.byID, card.ID)
	for i, existing := range c.cards {
		if existing.ID == card.ID {
			c.cards = append(c.cards[:i], c.cards[i+1:]...)
			break
		}
	}
	return true
}

// Random returns a uniformly chosen card, or nil for an empty catalog.
func (c *Catalog) Random(rng *rand.Rand) *Card {
	if len(c.cards) == 0 {
		return nil
	}
	return c.cards[rng.Intn(len(c.cards))]
}

// ByTag returns the cards carrying the tag. An empty tag returns every card.
func (c *Catalog) ByTag(tag string) []*Card {
	if tag == "" {
		return c.Cards()
	}
	var result []*Card
	for _, card := range c.cards {
		if card.HasTag(tag) {
			result = append(result, card)
		}
	}
	return result
}
