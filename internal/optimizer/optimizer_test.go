package optimizer

import (
	"errors"
	"math"
	"testing"

	"github.com/iwvelando/oreha-calculator/internal/energy"
	"github.com/iwvelando/oreha-calculator/internal/market"
)

func defaultPrices() market.MarketPrices {
	return market.MarketPrices{
		TimberPackagePrice: 123,
		TenderPackagePrice: 267,
		AbidosPackagePrice: 1450,
		OrehaUnitPrice:     32.0,
		CraftCost:          376,
		CrystalPrice:       14000,
		TaxRate:            0.05,
	}
}

func defaultInventory() market.Inventory {
	return market.Inventory{Timber: 5000, Tender: 1000, Abidos: 200}
}

func mustEvaluate(t *testing.T, inv market.Inventory, prices market.MarketPrices) Result {
	t.Helper()
	res, err := Evaluate(inv, prices, market.DefaultRecipe())
	if err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}
	return res
}

func TestEvaluateDefaultScenario(t *testing.T) {
	res := mustEvaluate(t, defaultInventory(), defaultPrices())

	intChecks := []struct {
		name     string
		got      int
		expected int
	}{
		{"BaseCrafts", res.BaseCrafts, 6},
		{"PowderGenerated", res.PowderGenerated, 4640},
		{"NewAbidosFromConversion", res.NewAbidosFromConversion, 460},
		{"ExtraCraftsFromConversion", res.ExtraCraftsFromConversion, 13},
		{"TotalCrafts", res.TotalCrafts, 19},
	}
	for _, c := range intChecks {
		if c.got != c.expected {
			t.Errorf("%s = %d, expected %d", c.name, c.got, c.expected)
		}
	}

	floatChecks := []struct {
		name     string
		got      float64
		expected float64
	}{
		{"RemainingTimber", res.RemainingTimber, 4484},
		{"RemainingTender", res.RemainingTender, 730},
		{"SellValue", res.SellValue, 11134},
		{"CraftRevenue", res.CraftRevenue, 5776},
		{"CraftGoldCost", res.CraftGoldCost, 7144},
		{"CraftValue", res.CraftValue, -1368},
		{"BestValue", res.BestValue, 11134},
		{"AlternativeValue", res.AlternativeValue, -1368},
		{"EnergyCostPerUnit", res.EnergyCostPerUnit, 14000.0 / 95 * 22},
	}
	for _, c := range floatChecks {
		if math.Abs(c.got-c.expected) > 1e-6 {
			t.Errorf("%s = %v, expected %v", c.name, c.got, c.expected)
		}
	}

	if res.Strategy != StrategySellRaw {
		t.Errorf("expected %s, got %s", StrategySellRaw, res.Strategy)
	}
	if res.CraftAdvantage() >= 0 {
		t.Errorf("expected negative craft advantage, got %v", res.CraftAdvantage())
	}
}

func TestEvaluateCraftWins(t *testing.T) {
	prices := defaultPrices()
	prices.OrehaUnitPrice = 120

	res := mustEvaluate(t, defaultInventory(), prices)
	if res.Strategy != StrategyCraft {
		t.Fatalf("expected %s, got %s", StrategyCraft, res.Strategy)
	}
	if res.BestValue != res.CraftValue || res.AlternativeValue != res.SellValue {
		t.Errorf("best/alternative not mapped to craft/sell: %+v", res)
	}
}

func TestEvaluateTieSellsRaw(t *testing.T) {
	// With no inventory both strategies are worth zero; ties go to selling.
	res := mustEvaluate(t, market.Inventory{}, defaultPrices())
	if res.Strategy != StrategySellRaw {
		t.Errorf("expected %s on a tie, got %s", StrategySellRaw, res.Strategy)
	}
	if res.BestValue != 0 || res.AlternativeValue != 0 || res.TotalCrafts != 0 {
		t.Errorf("expected an all-zero result, got %+v", res)
	}
}

func TestBestValueNeverBelowAlternative(t *testing.T) {
	inventories := []market.Inventory{
		{},
		{Timber: 99, Tender: 49, Abidos: 32},
		{Timber: 86, Tender: 45, Abidos: 33},
		{Timber: 18011, Tender: 3918, Abidos: 1065},
		{Timber: 100000, Tender: 0, Abidos: 5000},
		{Timber: 250.5, Tender: 120.25, Abidos: 66.6},
	}
	orehaPrices := []float64{0, 10, 32, 60, 250}

	for _, inv := range inventories {
		for _, oreha := range orehaPrices {
			prices := defaultPrices()
			prices.OrehaUnitPrice = oreha
			res := mustEvaluate(t, inv, prices)
			if res.BestValue < res.AlternativeValue {
				t.Errorf("inv %+v oreha %v: best %v < alternative %v", inv, oreha, res.BestValue, res.AlternativeValue)
			}
			if res.TotalCrafts != res.BaseCrafts+res.ExtraCraftsFromConversion {
				t.Errorf("inv %+v: total crafts %d != %d + %d", inv, res.TotalCrafts, res.BaseCrafts, res.ExtraCraftsFromConversion)
			}
			if res.BaseCrafts < 0 || res.TotalCrafts < res.BaseCrafts {
				t.Errorf("inv %+v: invalid craft counts %+v", inv, res)
			}
			if res.PowderGenerated < 0 || res.NewAbidosFromConversion < 0 || res.ExtraCraftsFromConversion < 0 {
				t.Errorf("inv %+v: negative conversion counts %+v", inv, res)
			}
		}
	}
}

func TestSellValueBatchRounding(t *testing.T) {
	prices := defaultPrices()
	recipe := market.DefaultRecipe()

	tests := []struct {
		name string
		a, b market.Inventory
	}{
		{"Timber 199 equals 100", market.Inventory{Timber: 199}, market.Inventory{Timber: 100}},
		{"Tender 199 equals 100", market.Inventory{Tender: 199, Abidos: 300}, market.Inventory{Tender: 100, Abidos: 300}},
		{"Abidos 199 equals 100", market.Inventory{Abidos: 199}, market.Inventory{Abidos: 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if SellValue(tt.a, prices, recipe) != SellValue(tt.b, prices, recipe) {
				t.Errorf("expected equal sell values for %+v and %+v", tt.a, tt.b)
			}
		})
	}

	if got := SellValue(market.Inventory{Timber: 99, Tender: 99, Abidos: 99}, prices, recipe); got != 0 {
		t.Errorf("expected zero sell value below one lot, got %v", got)
	}
}

func TestSellValueMonotonic(t *testing.T) {
	prices := defaultPrices()
	recipe := market.DefaultRecipe()
	base := market.Inventory{Timber: 300, Tender: 300, Abidos: 300}

	for _, field := range []string{"timber", "tender", "abidos"} {
		prev := SellValue(base, prices, recipe)
		for step := 1; step <= 50; step++ {
			inv := base
			delta := float64(step * 37)
			switch field {
			case "timber":
				inv.Timber += delta
			case "tender":
				inv.Tender += delta
			case "abidos":
				inv.Abidos += delta
			}
			cur := SellValue(inv, prices, recipe)
			if cur < prev {
				t.Fatalf("%s: sell value decreased from %v to %v at +%v", field, prev, cur, delta)
			}
			prev = cur
		}
	}
}

func TestEvaluateIdempotent(t *testing.T) {
	inv := defaultInventory()
	prices := defaultPrices()
	first := mustEvaluate(t, inv, prices)
	second := mustEvaluate(t, inv, prices)
	if first != second {
		t.Errorf("expected identical results, got %+v and %+v", first, second)
	}
	if inv != defaultInventory() {
		t.Error("Evaluate must not modify the inventory")
	}
}

func TestConversionThresholds(t *testing.T) {
	tests := []struct {
		name           string
		inv            market.Inventory
		expectedPowder int
		expectedAbidos int
	}{
		{"Leftovers below both batches", market.Inventory{Timber: 99, Tender: 49}, 0, 0},
		{"One batch each", market.Inventory{Timber: 100, Tender: 50}, 160, 10},
		{"Powder below one exchange", market.Inventory{Timber: 100}, 80, 0},
		{"Abidos leftovers are not converted", market.Inventory{Abidos: 10000}, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := mustEvaluate(t, tt.inv, defaultPrices())
			if res.PowderGenerated != tt.expectedPowder {
				t.Errorf("powder = %d, expected %d", res.PowderGenerated, tt.expectedPowder)
			}
			if res.NewAbidosFromConversion != tt.expectedAbidos {
				t.Errorf("new abidos = %d, expected %d", res.NewAbidosFromConversion, tt.expectedAbidos)
			}
		})
	}
}

func TestStrictExtraCrafts(t *testing.T) {
	recipe := market.DefaultRecipe()

	// After six base crafts and the powder exchange only 84 Timber remain,
	// which cannot back a single extra craft.
	res, err := EvaluateWithOptions(defaultInventory(), defaultPrices(), recipe, Options{StrictExtraCrafts: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ExtraCraftsFromConversion != 0 || res.TotalCrafts != 6 {
		t.Errorf("expected 0 extra and 6 total crafts, got %d and %d", res.ExtraCraftsFromConversion, res.TotalCrafts)
	}

	// The lenient default keeps the uncapped count.
	lenient := mustEvaluate(t, defaultInventory(), defaultPrices())
	if lenient.ExtraCraftsFromConversion != 13 {
		t.Errorf("expected 13 extra crafts by default, got %d", lenient.ExtraCraftsFromConversion)
	}
}

func TestEvaluateRejectsInvalidInput(t *testing.T) {
	badRecipe := market.DefaultRecipe()
	badRecipe.AbidosPerCraft = 0
	badPrices := defaultPrices()
	badPrices.CraftCost = -1

	tests := []struct {
		name   string
		inv    market.Inventory
		prices market.MarketPrices
		recipe market.Recipe
	}{
		{"Negative inventory", market.Inventory{Timber: -1}, defaultPrices(), market.DefaultRecipe()},
		{"Negative price", defaultInventory(), badPrices, market.DefaultRecipe()},
		{"Zero recipe divisor", defaultInventory(), defaultPrices(), badRecipe},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Evaluate(tt.inv, tt.prices, tt.recipe)
			if !errors.Is(err, market.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			if res != (Result{}) {
				t.Errorf("expected no partial result, got %+v", res)
			}
		})
	}
}

func TestBreakEvenFromExperimentRun(t *testing.T) {
	inv := market.Inventory{Timber: 18011, Tender: 3918, Abidos: 1065}
	res := mustEvaluate(t, inv, defaultPrices())

	est, err := energy.EstimateRun(res.BestValue, 10, defaultPrices().CrystalPrice)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fair := res.BestValue / 10 / 22 * 95
	large := est.Tier(energy.Large)
	if math.Abs(large.FairPrice-fair) > 1e-6 {
		t.Fatalf("fair price = %v, expected %v", large.FairPrice, fair)
	}
	if large.Favorable != (defaultPrices().CrystalPrice < fair) {
		t.Errorf("favorable = %v inconsistent with fair price %v", large.Favorable, fair)
	}
}

func TestEvaluateRejectsQuantitiesBeyondLimit(t *testing.T) {
	res, err := Evaluate(market.Inventory{Timber: 1e20, Tender: 1e20, Abidos: 1e20}, defaultPrices(), market.DefaultRecipe())
	if !errors.Is(err, market.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if res != (Result{}) {
		t.Errorf("expected no partial result, got %+v", res)
	}
}

func TestEvaluateLargestQuantities(t *testing.T) {
	const limit = float64(1 << 53)
	res := mustEvaluate(t, market.Inventory{Timber: limit, Tender: limit, Abidos: limit}, defaultPrices())

	if res.BaseCrafts <= 0 || res.PowderGenerated < 0 || res.NewAbidosFromConversion < 0 {
		t.Fatalf("counts must stay non-negative: %+v", res)
	}
	if res.TotalCrafts < res.BaseCrafts {
		t.Errorf("total crafts %d below base crafts %d", res.TotalCrafts, res.BaseCrafts)
	}
	if res.BestValue < res.AlternativeValue {
		t.Errorf("best value %v below alternative %v", res.BestValue, res.AlternativeValue)
	}
}

func TestEvaluateRecipeOverflow(t *testing.T) {
	recipe := market.DefaultRecipe()
	recipe.PowderPerBatch = math.MaxInt / 2

	_, err := Evaluate(market.Inventory{Timber: 1000}, defaultPrices(), recipe)
	if !errors.Is(err, market.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
