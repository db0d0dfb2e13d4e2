package market

// Recipe describes the crafting and exchange rules of the game. The values are
// configuration, not derived; DefaultRecipe carries the live game rules.
type Recipe struct {
	TimberPerCraft int `yaml:"timberPerCraft" json:"timberPerCraft"`
	TenderPerCraft int `yaml:"tenderPerCraft" json:"tenderPerCraft"`
	AbidosPerCraft int `yaml:"abidosPerCraft" json:"abidosPerCraft"`
	OrehaPerCraft  int `yaml:"orehaPerCraft" json:"orehaPerCraft"`

	// Leftover exchange: a full batch of Timber or Tender becomes powder.
	TimberPowderBatch int `yaml:"timberPowderBatch" json:"timberPowderBatch"`
	TenderPowderBatch int `yaml:"tenderPowderBatch" json:"tenderPowderBatch"`
	PowderPerBatch    int `yaml:"powderPerBatch" json:"powderPerBatch"`

	// Powder exchange: a full batch of powder becomes Abidos.
	PowderAbidosBatch int `yaml:"powderAbidosBatch" json:"powderAbidosBatch"`
	AbidosPerPowder   int `yaml:"abidosPerPowder" json:"abidosPerPowder"`

	// SaleLot is the only quantity raw materials can be listed in.
	SaleLot int `yaml:"saleLot" json:"saleLot"`
}

// DefaultRecipe returns the game's crafting rules for Oreha.
func DefaultRecipe() Recipe {
	return Recipe{
		TimberPerCraft:    86,
		TenderPerCraft:    45,
		AbidosPerCraft:    33,
		OrehaPerCraft:     10,
		TimberPowderBatch: 100,
		TenderPowderBatch: 50,
		PowderPerBatch:    80,
		PowderAbidosBatch: 100,
		AbidosPerPowder:   10,
		SaleLot:           100,
	}
}

// Validate requires every constant to be positive; all of them end up as
// divisors or batch sizes.
func (r Recipe) Validate() error {
	fields := []struct {
		name  string
		value int
	}{
		{"timberPerCraft", r.TimberPerCraft},
		{"tenderPerCraft", r.TenderPerCraft},
		{"abidosPerCraft", r.AbidosPerCraft},
		{"orehaPerCraft", r.OrehaPerCraft},
		{"timberPowderBatch", r.TimberPowderBatch},
		{"tenderPowderBatch", r.TenderPowderBatch},
		{"powderPerBatch", r.PowderPerBatch},
		{"powderAbidosBatch", r.PowderAbidosBatch},
		{"abidosPerPowder", r.AbidosPerPowder},
		{"saleLot", r.SaleLot},
	}
	for _, f := range fields {
		if f.value <= 0 {
			return invalidInput("recipe."+f.name, "must be positive, got %d", f.value)
		}
	}
	return nil
}

// IsDefault reports whether the recipe matches the game rules.
func (r Recipe) IsDefault() bool {
	return r == DefaultRecipe()
}
