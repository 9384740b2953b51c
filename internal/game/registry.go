package game

import (
	"fmt"
	"sort"
)

// CardRegistry maps card IDs to their constructor functions.
var CardRegistry = map[string]func() *Card{
	"factory_expansion": FactoryExpansion,
	"solar_farm":        SolarFarm,
	"city_festival":     CityFestival,
	"research_grant":    ResearchGrant,
	"park_renovation":   ParkRenovation,
	"tax_cut":           TaxCut,
	"smart_grid":        SmartGrid,
	"highway_project":   HighwayProject,
	"factory_strike":    FactoryStrike,
	"recycling_program": RecyclingProgram,
	"tech_campus":       TechCampus,
	"flood_defense":     FloodDefense,
}

// LookupCard looks up a card by ID and returns a new instance.
func LookupCard(id string) (*Card, error) {
	ctor, ok := CardRegistry[id]
	if !ok {
		return nil, fmt.Errorf("card not found in registry: %q", id)
	}
	return ctor(), nil
}

// DefaultCatalog returns fresh instances of every registered card, sorted by
// ID so seeded shuffles are reproducible.
func DefaultCatalog() []*Card {
	ids := make([]string, 0, len(CardRegistry))
	for id := range CardRegistry {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	cards := make([]*Card, 0, len(ids))
	for _, id := range ids {
		cards = append(cards, CardRegistry[id]())
	}
	return cards
}
