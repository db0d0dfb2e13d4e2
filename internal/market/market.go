// Package market defines the inputs shared by every calculation: market prices,
// a snapshot of held materials, and the crafting recipe of the game.
package market

import (
	"math"

	"github.com/iwvelando/oreha-calculator/pkg/constants"
)

// MarketPrices holds the current market quotes. Material prices are quoted per
// package of constants.PackageSize units, as the in-game market lists them.
type MarketPrices struct {
	TimberPackagePrice float64 `yaml:"timberPackagePrice" json:"timberPackagePrice"`
	TenderPackagePrice float64 `yaml:"tenderPackagePrice" json:"tenderPackagePrice"`
	AbidosPackagePrice float64 `yaml:"abidosPackagePrice" json:"abidosPackagePrice"`
	OrehaUnitPrice     float64 `yaml:"orehaUnitPrice" json:"orehaUnitPrice"`
	CraftCost          float64 `yaml:"craftCost" json:"craftCost"`
	CrystalPrice       float64 `yaml:"crystalPrice" json:"crystalPrice"` // price of constants.CrystalLotSize crystals
	TaxRate            float64 `yaml:"taxRate" json:"taxRate"`
}

// TimberUnit returns the price of a single Timber.
func (p MarketPrices) TimberUnit() float64 {
	return p.TimberPackagePrice / constants.PackageSize
}

// TenderUnit returns the price of a single Tender Timber.
func (p MarketPrices) TenderUnit() float64 {
	return p.TenderPackagePrice / constants.PackageSize
}

// AbidosUnit returns the price of a single Abidos Timber.
func (p MarketPrices) AbidosUnit() float64 {
	return p.AbidosPackagePrice / constants.PackageSize
}

// AfterTax returns the share of a sale that reaches the seller.
func (p MarketPrices) AfterTax() float64 {
	return 1 - p.TaxRate
}

// Validate rejects negative prices and tax rates outside [0,1).
func (p MarketPrices) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"timberPackagePrice", p.TimberPackagePrice},
		{"tenderPackagePrice", p.TenderPackagePrice},
		{"abidosPackagePrice", p.AbidosPackagePrice},
		{"orehaUnitPrice", p.OrehaUnitPrice},
		{"craftCost", p.CraftCost},
		{"crystalPrice", p.CrystalPrice},
	}
	for _, f := range fields {
		if err := NonNegative(f.name, f.value); err != nil {
			return err
		}
	}
	if math.IsNaN(p.TaxRate) || p.TaxRate < 0 || p.TaxRate >= 1 {
		return invalidInput("taxRate", "must be within [0,1), got %v", p.TaxRate)
	}
	return nil
}

// Inventory is a snapshot of held raw materials.
type Inventory struct {
	Timber float64 `yaml:"timber" json:"timber"`
	Tender float64 `yaml:"tender" json:"tender"`
	Abidos float64 `yaml:"abidos" json:"abidos"`
}

// Validate rejects negative quantities and quantities above
// constants.MaxQuantity.
func (inv Inventory) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"timber", inv.Timber},
		{"tender", inv.Tender},
		{"abidos", inv.Abidos},
	}
	for _, f := range fields {
		if err := NonNegative(f.name, f.value); err != nil {
			return err
		}
		if f.value > constants.MaxQuantity {
			return invalidInput(f.name, "must not exceed %.0f, got %v", float64(constants.MaxQuantity), f.value)
		}
	}
	return nil
}

// NonNegative rejects NaN, infinite and negative values for field.
func NonNegative(field string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return invalidInput(field, "must be a non-negative number, got %v", value)
	}
	return nil
}
