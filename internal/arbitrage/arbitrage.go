// Package arbitrage compares burning raw materials at the NPC exchange against
// selling them and buying Abidos, and checks whether buying a full craft's
// worth of materials pays off.
//
// Conversion ratios come out of the recipe as exact decimals (125 Timber and
// 62.5 Tender per exchange with the default recipe), so comparisons never see
// binary rounding of the ratios.
package arbitrage

import (
	"github.com/shopspring/decimal"

	"github.com/iwvelando/oreha-calculator/internal/market"
	"github.com/iwvelando/oreha-calculator/pkg/constants"
)

// Decision is the recommended way to obtain Abidos.
type Decision string

const (
	// DecisionConvert exchanges the material for powder and then Abidos.
	DecisionConvert Decision = "CONVERT"
	// DecisionSellAndBuy sells the material and buys Abidos on the market.
	DecisionSellAndBuy Decision = "SELL_AND_BUY"
)

// Material names a convertible raw material.
type Material string

const (
	Timber Material = "timber"
	Tender Material = "tender"
)

// ConversionEvaluation compares the two ways of obtaining one exchange worth
// of Abidos from a material.
type ConversionEvaluation struct {
	Material        Material
	UnitsRequired   decimal.Decimal // material consumed per exchange
	AbidosYield     int
	OpportunityCost decimal.Decimal // after-tax sale value of UnitsRequired
	MarketCost      decimal.Decimal // buying AbidosYield on the market
	Decision        Decision
}

// CraftPurchase evaluates buying every material for exactly one craft.
type CraftPurchase struct {
	MaterialCost decimal.Decimal
	CraftCost    decimal.Decimal
	TotalCost    decimal.Decimal
	Revenue      decimal.Decimal // after-tax sale of one craft's Oreha
	Profit       decimal.Decimal
	Profitable   bool
}

// Evaluation is the full arbitrage analysis.
type Evaluation struct {
	Conversions []ConversionEvaluation
	Purchase    CraftPurchase
}

// Conversion returns the evaluation for m.
func (e Evaluation) Conversion(m Material) (ConversionEvaluation, bool) {
	for _, c := range e.Conversions {
		if c.Material == m {
			return c, true
		}
	}
	return ConversionEvaluation{}, false
}

// Evaluate runs every arbitrage check for prices under recipe.
func Evaluate(prices market.MarketPrices, recipe market.Recipe) (Evaluation, error) {
	if err := validate(prices, recipe); err != nil {
		return Evaluation{}, err
	}

	eval := Evaluation{Purchase: craftPurchase(prices, recipe)}
	for _, m := range []Material{Timber, Tender} {
		eval.Conversions = append(eval.Conversions, conversion(m, prices, recipe))
	}
	return eval, nil
}

func validate(prices market.MarketPrices, recipe market.Recipe) error {
	if err := prices.Validate(); err != nil {
		return err
	}
	return recipe.Validate()
}

// UnitsPerExchange returns how many units of m feed one powder-to-Abidos
// exchange. The recipe must be valid.
func UnitsPerExchange(m Material, recipe market.Recipe) decimal.Decimal {
	batch := recipe.TimberPowderBatch
	if m == Tender {
		batch = recipe.TenderPowderBatch
	}
	batches := decimal.NewFromInt(int64(recipe.PowderAbidosBatch)).
		Div(decimal.NewFromInt(int64(recipe.PowderPerBatch)))
	return batches.Mul(decimal.NewFromInt(int64(batch)))
}

// EvaluateConversion compares converting m into Abidos with selling m and
// buying the Abidos. Converting wins only when strictly cheaper.
func EvaluateConversion(m Material, prices market.MarketPrices, recipe market.Recipe) (ConversionEvaluation, error) {
	if m != Timber && m != Tender {
		return ConversionEvaluation{}, market.NewInvalidInput("material", "must be %s or %s, got %q", Timber, Tender, m)
	}
	if err := validate(prices, recipe); err != nil {
		return ConversionEvaluation{}, err
	}
	return conversion(m, prices, recipe), nil
}

func conversion(m Material, prices market.MarketPrices, recipe market.Recipe) ConversionEvaluation {
	packagePrice := prices.TimberPackagePrice
	if m == Tender {
		packagePrice = prices.TenderPackagePrice
	}
	units := UnitsPerExchange(m, recipe)
	afterTax := decimal.NewFromInt(1).Sub(decimal.NewFromFloat(prices.TaxRate))

	eval := ConversionEvaluation{
		Material:        m,
		UnitsRequired:   units,
		AbidosYield:     recipe.AbidosPerPowder,
		OpportunityCost: units.Mul(unitPrice(packagePrice)).Mul(afterTax),
		MarketCost:      decimal.NewFromInt(int64(recipe.AbidosPerPowder)).Mul(unitPrice(prices.AbidosPackagePrice)),
		Decision:        DecisionSellAndBuy,
	}
	if eval.OpportunityCost.LessThan(eval.MarketCost) {
		eval.Decision = DecisionConvert
	}
	return eval
}

// EvaluateCraftPurchase prices one craft made entirely from bought materials.
func EvaluateCraftPurchase(prices market.MarketPrices, recipe market.Recipe) (CraftPurchase, error) {
	if err := validate(prices, recipe); err != nil {
		return CraftPurchase{}, err
	}
	return craftPurchase(prices, recipe), nil
}

func craftPurchase(prices market.MarketPrices, recipe market.Recipe) CraftPurchase {
	materials := decimal.NewFromInt(int64(recipe.TimberPerCraft)).Mul(unitPrice(prices.TimberPackagePrice)).
		Add(decimal.NewFromInt(int64(recipe.TenderPerCraft)).Mul(unitPrice(prices.TenderPackagePrice))).
		Add(decimal.NewFromInt(int64(recipe.AbidosPerCraft)).Mul(unitPrice(prices.AbidosPackagePrice)))
	craftCost := decimal.NewFromFloat(prices.CraftCost)
	afterTax := decimal.NewFromInt(1).Sub(decimal.NewFromFloat(prices.TaxRate))

	p := CraftPurchase{
		MaterialCost: materials,
		CraftCost:    craftCost,
		TotalCost:    materials.Add(craftCost),
		Revenue: decimal.NewFromInt(int64(recipe.OrehaPerCraft)).
			Mul(decimal.NewFromFloat(prices.OrehaUnitPrice)).
			Mul(afterTax),
	}
	p.Profit = p.Revenue.Sub(p.TotalCost)
	p.Profitable = p.Profit.IsPositive()
	return p
}

func unitPrice(packagePrice float64) decimal.Decimal {
	return decimal.NewFromFloat(packagePrice).Div(decimal.NewFromFloat(constants.PackageSize))
}
