package game

func impact(rt ResourceType, delta int) Impact {
	return Impact{Resource: rt, Delta: delta}
}

func choice(label string, impacts ...Impact) Choice {
	return Choice{Label: label, Impacts: impacts}
}

// FactoryExpansion (industry): Jobs against air quality.
func FactoryExpansion() *Card {
	return &Card{
		ID:          "factory_expansion",
		Title:       "Factory Expansion",
		Description: "A manufacturer wants to double the size of its riverside plant.",
		Image:       "factory.png",
		Tags:        []string{"industry"},
		Left:        choice("Reject the permit", impact(Economy, -10), impact(Environment, 5)),
		Right:       choice("Approve it", impact(Economy, 15), impact(Environment, -15)),
	}
}

// SolarFarm (energy): Costly but clean.
func SolarFarm() *Card {
	return &Card{
		ID:          "solar_farm",
		Title:       "Solar Farm",
		Description: "Engineers propose covering the old airfield with solar panels.",
		Image:       "solar.png",
		Tags:        []string{"energy", "technology"},
		Left:        choice("Too expensive"),
		Right:       choice("Build it", impact(Economy, -15), impact(Environment, 10), impact(Technology, 5)),
	}
}

// CityFestival (culture): Morale for money.
func CityFestival() *Card {
	return &Card{
		ID:          "city_festival",
		Title:       "City Festival",
		Description: "The arts council asks for funding for a week-long street festival.",
		Image:       "festival.png",
		Tags:        []string{"culture"},
		Left:        choice("Cancel it", impact(Happiness, -10)),
		Right:       choice("Fund the festival", impact(Economy, -10), impact(Happiness, 15)),
	}
}

// ResearchGrant (technology): Long-term investment.
func ResearchGrant() *Card {
	return &Card{
		ID:          "research_grant",
		Title:       "Research Grant",
		Description: "The university asks for a grant to open a robotics lab.",
		Image:       "lab.png",
		Tags:        []string{"technology", "education"},
		Left:        choice("Not this year", impact(Technology, -5)),
		Right:       choice("Fund the lab", impact(Economy, -10), impact(Technology, 15)),
	}
}

// ParkRenovation (environment): Green space downtown.
func ParkRenovation() *Card {
	return &Card{
		ID:          "park_renovation",
		Title:       "Park Renovation",
		Description: "Residents petition to turn a parking lot into a park.",
		Image:       "park.png",
		Tags:        []string{"environment"},
		Left:        choice("Keep the parking", impact(Economy, 5), impact(Happiness, -5)),
		Right:       choice("Plant the park", impact(Economy, -5), impact(Environment, 10), impact(Happiness, 5)),
	}
}

// TaxCut (economy): Popular now, costly later.
func TaxCut() *Card {
	return &Card{
		ID:          "tax_cut",
		Title:       "Tax Cut",
		Description: "The council proposes a sweeping cut to the municipal income tax.",
		Image:       "tax.png",
		Tags:        []string{"economy"},
		Left:        choice("Keep taxes", impact(Happiness, -5), impact(Economy, 5)),
		Right:       choice("Cut taxes", impact(Economy, -15), impact(Happiness, 10)),
	}
}

// SmartGrid (technology): Sensors on every street.
func SmartGrid() *Card {
	return &Card{
		ID:          "smart_grid",
		Title:       "Smart Grid",
		Description: "A startup offers to instrument the power grid with sensors.",
		Image:       "grid.png",
		Tags:        []string{"technology", "energy"},
		Left:        choice("Decline the offer"),
		Right:       choice("Sign the contract", impact(Technology, 10), impact(Environment, 5), impact(Economy, -5)),
	}
}

// HighwayProject (infrastructure): Faster commutes, more traffic.
func HighwayProject() *Card {
	return &Card{
		ID:          "highway_project",
		Title:       "Highway Project",
		Description: "The state offers to co-fund a new ring highway.",
		Image:       "highway.png",
		Tags:        []string{"infrastructure", "economy"},
		Left:        choice("Invest in transit instead", impact(Economy, -10), impact(Environment, 5), impact(Happiness, 5)),
		Right:       choice("Pour the asphalt", impact(Economy, 10), impact(Environment, -10)),
	}
}

// FactoryStrike (labor): Workers walk out.
func FactoryStrike() *Card {
	return &Card{
		ID:          "factory_strike",
		Title:       "Factory Strike",
		Description: "Workers at the steel mill are on strike for higher wages.",
		Image:       "strike.png",
		Tags:        []string{"industry", "labor"},
		Left:        choice("Side with the owners", impact(Happiness, -15), impact(Economy, 5)),
		Right:       choice("Side with the workers", impact(Economy, -10), impact(Happiness, 10)),
	}
}

// RecyclingProgram (environment): Small cost, steady gain.
func RecyclingProgram() *Card {
	return &Card{
		ID:          "recycling_program",
		Title:       "Recycling Program",
		Description: "Sanitation wants curbside recycling in every district.",
		Image:       "recycling.png",
		Tags:        []string{"environment"},
		Left:        choice("Maybe later", impact(Environment, -5)),
		Right:       choice("Roll it out", impact(Economy, -5), impact(Environment, 10)),
	}
}

// TechCampus (technology): A giant moves in.
func TechCampus() *Card {
	return &Card{
		ID:          "tech_campus",
		Title:       "Tech Campus",
		Description: "A tech giant wants tax breaks to build its campus here.",
		Image:       "campus.png",
		Tags:        []string{"technology", "economy"},
		Left:        choice("No special treatment", impact(Technology, -5)),
		Right:       choice("Grant the breaks", impact(Technology, 15), impact(Economy, 5), impact(Happiness, -10)),
	}
}

// FloodDefense (infrastructure): Prepare for the storm season.
func FloodDefense() *Card {
	return &Card{
		ID:          "flood_defense",
		Title:       "Flood Defense",
		Description: "Forecasters warn of a severe storm season along the river.",
		Image:       "flood.png",
		Tags:        []string{"infrastructure", "environment"},
		Left:        choice("Hope for the best", impact(Environment, -10), impact(Happiness, -5)),
		Right:       choice("Build the levees", impact(Economy, -15), impact(Happiness, 5)),
	}
}
