// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"

	"github.com/iwvelando/oreha-calculator/pkg/constants"
)

// ValidateSaleLot warns when a held quantity does not fill a single sale lot,
// i.e. none of it can be listed on the market.
func ValidateSaleLot(material string, quantity float64, lot int) string {
	if quantity > 0 && quantity < float64(lot) {
		return fmt.Sprintf("%s quantity %.0f is below one sale lot of %d and cannot be sold raw",
			material, quantity, lot)
	}
	return ""
}

// ValidateTaxRate warns when the market tax differs from the game's fixed rate.
func ValidateTaxRate(rate float64) string {
	if rate != constants.DefaultTaxRate {
		return fmt.Sprintf("market tax rate %.4f differs from the game rate of %.2f",
			rate, constants.DefaultTaxRate)
	}
	return ""
}

// ValidateExperiment warns about experiment inputs that cannot produce a
// useful break-even price.
func ValidateExperiment(doses int, collected float64) []string {
	var warnings []string

	if doses <= 0 {
		warnings = append(warnings, fmt.Sprintf("experiment doses must be positive, got %d", doses))
	}
	if collected <= 0 {
		warnings = append(warnings, "experiment has no collected materials; break-even price will be zero")
	}

	return warnings
}
