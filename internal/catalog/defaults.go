package catalog

// defaultSpecies is the built-in creature table. Base lines run level 1
// up to their top entry; merging two top-level creatures finds no next
// evolution and is rejected. Hybrids come only from the nursery.
var defaultSpecies = []Species{
	// cat line
	{ID: "cat_1", Name: "Tabby", Rarity: RarityCommon, Line: "cat", Level: 1, ServiceBonus: 0.1},
	{ID: "cat_2", Name: "Cream Cat", Rarity: RarityCommon, Line: "cat", Level: 2, ServiceBonus: 0.15},
	{ID: "cat_3", Name: "Coffee Cat", Rarity: RarityRare, Line: "cat", Level: 3, ServiceBonus: 0.2},
	{ID: "cat_4", Name: "Barista Cat", Rarity: RarityRare, Line: "cat", Level: 4, ServiceBonus: 0.25},
	{ID: "cat_5", Name: "Roaster Cat", Rarity: RaritySuperRare, Line: "cat", Level: 5, ServiceBonus: 0.3},
	{ID: "cat_6", Name: "Maestro Cat", Rarity: RaritySuperRare, Line: "cat", Level: 6, ServiceBonus: 0.4},
	{ID: "cat_king", Name: "Coffee King Cat", Rarity: RarityUltraRare, Line: "cat", Level: 7, ServiceBonus: 0.5},

	// dog line
	{ID: "dog_1", Name: "Puppy", Rarity: RarityCommon, Line: "dog", Level: 1, ServiceBonus: 0.1},
	{ID: "dog_2", Name: "Shiba", Rarity: RarityCommon, Line: "dog", Level: 2, ServiceBonus: 0.15},
	{ID: "dog_3", Name: "Waiter Dog", Rarity: RarityRare, Line: "dog", Level: 3, ServiceBonus: 0.2},
	{ID: "dog_4", Name: "Brewmaster Dog", Rarity: RarityRare, Line: "dog", Level: 4, ServiceBonus: 0.25},
	{ID: "dog_5", Name: "Mocha Hound", Rarity: RaritySuperRare, Line: "dog", Level: 5, ServiceBonus: 0.3},
	{ID: "dog_6", Name: "Espresso Hound", Rarity: RarityUltraRare, Line: "dog", Level: 6, ServiceBonus: 0.45},

	// rabbit line
	{ID: "rabbit_1", Name: "Bunny", Rarity: RarityCommon, Line: "rabbit", Level: 1, ServiceBonus: 0.1},
	{ID: "rabbit_2", Name: "Lop", Rarity: RarityCommon, Line: "rabbit", Level: 2, ServiceBonus: 0.15},
	{ID: "rabbit_3", Name: "Latte Rabbit", Rarity: RarityRare, Line: "rabbit", Level: 3, ServiceBonus: 0.2},
	{ID: "rabbit_4", Name: "Foam Rabbit", Rarity: RaritySuperRare, Line: "rabbit", Level: 4, ServiceBonus: 0.28},
	{ID: "rabbit_5", Name: "Macchiato Rabbit", Rarity: RaritySuperRare, Line: "rabbit", Level: 5, ServiceBonus: 0.32},

	// hybrids (bred, no evolution chain)
	{ID: "hybrid_cat_dog", Name: "Cappucat", Rarity: RarityRare, Line: LineHybrid, Level: 1, ServiceBonus: 0.25, AttractionBonus: 0.1, ParentLines: []string{"cat", "dog"}},
	{ID: "hybrid_cat_rabbit", Name: "Milk Whisker", Rarity: RarityRare, Line: LineHybrid, Level: 1, ServiceBonus: 0.2, AttractionBonus: 0.15, ParentLines: []string{"cat", "rabbit"}},
	{ID: "hybrid_dog_rabbit", Name: "Cocoa Floppy", Rarity: RarityRare, Line: LineHybrid, Level: 1, ServiceBonus: 0.22, AttractionBonus: 0.12, ParentLines: []string{"dog", "rabbit"}},
	{ID: "hybrid_double_shot", Name: "Double Shot", Rarity: RaritySuperRare, Line: LineHybrid, Level: 2, ServiceBonus: 0.35, AttractionBonus: 0.2, ParentLines: []string{"cat", "dog"}},
	{ID: "hybrid_triple", Name: "Triple Blend", Rarity: RaritySuperRare, Line: LineHybrid, Level: 1, ServiceBonus: 0.3, AttractionBonus: 0.25, ParentLines: []string{"cat", "dog"}},
	{ID: "hybrid_rainbow", Name: "Rainbow Latte", Rarity: RarityUltraRare, Line: LineHybrid, Level: 1, ServiceBonus: 0.4, AttractionBonus: 0.3, ParentLines: []string{"cat", "rabbit"}},
	{ID: "hybrid_mocha", Name: "Mocha Twin", Rarity: RaritySuperRare, Line: LineHybrid, Level: 1, ServiceBonus: 0.28, AttractionBonus: 0.18, ParentLines: []string{"dog", "rabbit"}},
	{ID: "hybrid_espresso", Name: "Little Espresso", Rarity: RarityRare, Line: LineHybrid, Level: 1, ServiceBonus: 0.26, AttractionBonus: 0.1, ParentLines: []string{"cat", "dog"}},
	{ID: "hybrid_latte", Name: "Foamy Latte", Rarity: RaritySuperRare, Line: LineHybrid, Level: 1, ServiceBonus: 0.32, AttractionBonus: 0.22, ParentLines: []string{"cat", "rabbit"}},
	{ID: "hybrid_cappuccino", Name: "Cappuccino", Rarity: RaritySuperRare, Line: LineHybrid, Level: 1, ServiceBonus: 0.3, AttractionBonus: 0.2, ParentLines: []string{"dog", "rabbit"}},
	{ID: "hybrid_bean", Name: "Bean Sprout", Rarity: RarityRare, Line: LineHybrid, Level: 1, ServiceBonus: 0.24, AttractionBonus: 0.12, ParentLines: []string{"cat", "dog"}},
}

// Default returns the built-in catalog. It always validates.
func Default() *Catalog {
	c, err := New(defaultSpecies)
	if err != nil {
		panic(err)
	}
	return c
}
