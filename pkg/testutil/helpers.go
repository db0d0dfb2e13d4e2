// Package testutil provides common fixtures and helpers for testing.
package testutil

import (
	"strings"

	"github.com/iwvelando/oreha-calculator/internal/config"
	"github.com/iwvelando/oreha-calculator/internal/market"
	"github.com/iwvelando/oreha-calculator/pkg/mathutil"
)

// ScenarioPrices returns the market quotes of the reference scenario.
func ScenarioPrices() market.MarketPrices {
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

// ScenarioInventory returns the holdings of the reference scenario.
func ScenarioInventory() market.Inventory {
	return market.Inventory{Timber: 5000, Tender: 1000, Abidos: 200}
}

// ScenarioExperiment returns the collection run of the reference scenario.
func ScenarioExperiment() *config.Experiment {
	return &config.Experiment{
		Doses:     10,
		Collected: market.Inventory{Timber: 18011, Tender: 3918, Abidos: 1065},
	}
}

// ScenarioConfiguration assembles the reference scenario with the default
// recipe. The experiment is attached only when withExperiment is set.
func ScenarioConfiguration(withExperiment bool) config.Configuration {
	conf := config.Configuration{
		Market:    ScenarioPrices(),
		Inventory: ScenarioInventory(),
		Recipe:    market.DefaultRecipe(),
	}
	if withExperiment {
		conf.Experiment = ScenarioExperiment()
	}
	return conf
}

// AlmostEqual reports whether two gold amounts agree within tolerance.
func AlmostEqual(a, b, tolerance float64) bool {
	return mathutil.WithinTolerance(a, b, tolerance)
}

// ContainsWarning reports whether any warning mentions fragment.
func ContainsWarning(warnings []string, fragment string) bool {
	for _, w := range warnings {
		if strings.Contains(w, fragment) {
			return true
		}
	}
	return false
}
