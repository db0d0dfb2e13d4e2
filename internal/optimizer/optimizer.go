// Package optimizer decides whether a batch of collected materials is worth
// more sold raw or crafted into Oreha.
package optimizer

import (
	"github.com/iwvelando/oreha-calculator/internal/energy"
	"github.com/iwvelando/oreha-calculator/internal/market"
	"github.com/iwvelando/oreha-calculator/pkg/mathutil"
)

// Strategy is the recommended use of the materials.
type Strategy string

const (
	// StrategySellRaw sells every complete lot on the market.
	StrategySellRaw Strategy = "SELL_RAW"
	// StrategyCraft crafts Oreha, converting leftovers into extra Abidos.
	StrategyCraft Strategy = "CRAFT"
)

// Options tunes the evaluation.
type Options struct {
	// StrictExtraCrafts caps the crafts unlocked by converted Abidos by the
	// Timber and Tender still held after the powder exchange.
	StrictExtraCrafts bool
}

// Result is the outcome of one evaluation.
type Result struct {
	BestValue                 float64  `json:"bestValue"`
	Strategy                  Strategy `json:"strategy"`
	TotalCrafts               int      `json:"totalCrafts"`
	AlternativeValue          float64  `json:"alternativeValue"`
	EnergyCostPerUnit         float64  `json:"energyCostPerUnit"`
	PowderGenerated           int      `json:"powderGenerated"`
	NewAbidosFromConversion   int      `json:"newAbidosFromConversion"`
	ExtraCraftsFromConversion int      `json:"extraCraftsFromConversion"`

	SellValue       float64 `json:"sellValue"`
	CraftValue      float64 `json:"craftValue"`
	CraftRevenue    float64 `json:"craftRevenue"`
	CraftGoldCost   float64 `json:"craftGoldCost"`
	BaseCrafts      int     `json:"baseCrafts"`
	RemainingTimber float64 `json:"remainingTimber"`
	RemainingTender float64 `json:"remainingTender"`
}

// CraftAdvantage returns how much more crafting yields than selling raw. It is
// negative when selling wins.
func (r Result) CraftAdvantage() float64 {
	return r.CraftValue - r.SellValue
}

// Evaluate computes the best use of inv at prices under recipe.
func Evaluate(inv market.Inventory, prices market.MarketPrices, recipe market.Recipe) (Result, error) {
	return EvaluateWithOptions(inv, prices, recipe, Options{})
}

// EvaluateWithOptions is Evaluate with explicit options.
func EvaluateWithOptions(inv market.Inventory, prices market.MarketPrices, recipe market.Recipe, opts Options) (Result, error) {
	if err := inv.Validate(); err != nil {
		return Result{}, err
	}
	if err := prices.Validate(); err != nil {
		return Result{}, err
	}
	if err := recipe.Validate(); err != nil {
		return Result{}, err
	}

	var res Result
	res.SellValue = SellValue(inv, prices, recipe)

	// The scarcest material caps the number of crafts.
	res.BaseCrafts = min(
		mathutil.FloorDiv(inv.Timber, recipe.TimberPerCraft),
		mathutil.FloorDiv(inv.Tender, recipe.TenderPerCraft),
		mathutil.FloorDiv(inv.Abidos, recipe.AbidosPerCraft),
	)
	res.RemainingTimber = inv.Timber - float64(res.BaseCrafts*recipe.TimberPerCraft)
	res.RemainingTender = inv.Tender - float64(res.BaseCrafts*recipe.TenderPerCraft)

	timberBatches := mathutil.FloorDiv(res.RemainingTimber, recipe.TimberPowderBatch)
	tenderBatches := mathutil.FloorDiv(res.RemainingTender, recipe.TenderPowderBatch)
	powder, ok := mathutil.MulCount(timberBatches+tenderBatches, recipe.PowderPerBatch)
	if !ok {
		return Result{}, market.NewInvalidInput("inventory", "powder from leftovers overflows under the recipe")
	}
	res.PowderGenerated = powder
	newAbidos, ok := mathutil.MulCount(powder/recipe.PowderAbidosBatch, recipe.AbidosPerPowder)
	if !ok {
		return Result{}, market.NewInvalidInput("inventory", "abidos from powder overflows under the recipe")
	}
	res.NewAbidosFromConversion = newAbidos
	res.ExtraCraftsFromConversion = res.NewAbidosFromConversion / recipe.AbidosPerCraft

	if opts.StrictExtraCrafts {
		timberLeft := res.RemainingTimber - float64(timberBatches*recipe.TimberPowderBatch)
		tenderLeft := res.RemainingTender - float64(tenderBatches*recipe.TenderPowderBatch)
		res.ExtraCraftsFromConversion = min(
			res.ExtraCraftsFromConversion,
			mathutil.FloorDiv(timberLeft, recipe.TimberPerCraft),
			mathutil.FloorDiv(tenderLeft, recipe.TenderPerCraft),
		)
	}

	res.TotalCrafts = res.BaseCrafts + res.ExtraCraftsFromConversion

	crafts := float64(res.TotalCrafts)
	res.CraftRevenue = crafts * float64(recipe.OrehaPerCraft) * prices.OrehaUnitPrice * prices.AfterTax()
	res.CraftGoldCost = crafts * prices.CraftCost
	res.CraftValue = res.CraftRevenue - res.CraftGoldCost

	if res.CraftValue > res.SellValue {
		res.Strategy = StrategyCraft
		res.BestValue = res.CraftValue
		res.AlternativeValue = res.SellValue
	} else {
		res.Strategy = StrategySellRaw
		res.BestValue = res.SellValue
		res.AlternativeValue = res.CraftValue
	}

	res.EnergyCostPerUnit = energy.CostPerDose(prices.CrystalPrice, energy.PreferredTier())
	return res, nil
}

// SellValue returns the after-tax proceeds of selling every complete lot of
// inv. Units that do not fill a lot stay unsold.
func SellValue(inv market.Inventory, prices market.MarketPrices, recipe market.Recipe) float64 {
	gross := mathutil.Lots(inv.Timber, recipe.SaleLot)*prices.TimberUnit() +
		mathutil.Lots(inv.Tender, recipe.SaleLot)*prices.TenderUnit() +
		mathutil.Lots(inv.Abidos, recipe.SaleLot)*prices.AbidosUnit()
	return gross * prices.AfterTax()
}
