package output

import (
	"github.com/iwvelando/oreha-calculator/internal/optimizer"
	"github.com/iwvelando/oreha-calculator/internal/report"
)

// View is the JSON shape of a report shared by the CLI and the HTTP API.
type View struct {
	Holdings      optimizer.Result `json:"holdings"`
	EnergyCosts   []EnergyView     `json:"energyCosts"`
	Arbitrage     ArbitrageView    `json:"arbitrage"`
	MaxCrystalBid float64          `json:"maxCrystalBid"`
	BidMargin     float64          `json:"bidMargin"`
	Experiment    *ExperimentView  `json:"experiment,omitempty"`
}

// EnergyView is the potion cost for one package tier.
type EnergyView struct {
	Tier        string  `json:"tier"`
	CostPerDose float64 `json:"costPerDose"`
}

// ArbitrageView carries exact decimal amounts as strings.
type ArbitrageView struct {
	Conversions []ConversionView `json:"conversions"`
	Purchase    PurchaseView     `json:"purchase"`
}

// ConversionView is one conversion-versus-buy comparison.
type ConversionView struct {
	Material        string `json:"material"`
	UnitsRequired   string `json:"unitsRequired"`
	AbidosYield     int    `json:"abidosYield"`
	OpportunityCost string `json:"opportunityCost"`
	MarketCost      string `json:"marketCost"`
	Decision        string `json:"decision"`
}

// PurchaseView is the buy-everything-for-one-craft evaluation.
type PurchaseView struct {
	MaterialCost string `json:"materialCost"`
	TotalCost    string `json:"totalCost"`
	Revenue      string `json:"revenue"`
	Profit       string `json:"profit"`
	Profitable   bool   `json:"profitable"`
}

// ExperimentView is the backtest of a completed collection run.
type ExperimentView struct {
	Doses        int              `json:"doses"`
	Result       optimizer.Result `json:"result"`
	GoldPerDose  float64          `json:"goldPerDose"`
	Tiers        []BreakEvenView  `json:"tiers"`
	EnergyCost   float64          `json:"energyCost"`
	NetAfterCost float64          `json:"netAfterCost"`
}

// BreakEvenView is the fair crystal price for one package tier.
type BreakEvenView struct {
	Tier        string  `json:"tier"`
	CostPerDose float64 `json:"costPerDose"`
	FairPrice   float64 `json:"fairPrice"`
	Margin      float64 `json:"margin"`
	Favorable   bool    `json:"favorable"`
}

// NewView converts a report into its JSON shape.
func NewView(rep report.Report) View {
	v := View{
		Holdings:      rep.Holdings,
		EnergyCosts:   make([]EnergyView, 0, len(rep.EnergyCosts)),
		MaxCrystalBid: rep.MaxCrystalBid,
		BidMargin:     rep.BidMargin(),
	}
	for _, cost := range rep.EnergyCosts {
		v.EnergyCosts = append(v.EnergyCosts, EnergyView{Tier: cost.Tier.String(), CostPerDose: cost.CostPerDose})
	}

	for _, c := range rep.Arbitrage.Conversions {
		v.Arbitrage.Conversions = append(v.Arbitrage.Conversions, ConversionView{
			Material:        string(c.Material),
			UnitsRequired:   c.UnitsRequired.String(),
			AbidosYield:     c.AbidosYield,
			OpportunityCost: c.OpportunityCost.String(),
			MarketCost:      c.MarketCost.String(),
			Decision:        string(c.Decision),
		})
	}
	p := rep.Arbitrage.Purchase
	v.Arbitrage.Purchase = PurchaseView{
		MaterialCost: p.MaterialCost.String(),
		TotalCost:    p.TotalCost.String(),
		Revenue:      p.Revenue.String(),
		Profit:       p.Profit.String(),
		Profitable:   p.Profitable,
	}

	if bt := rep.Backtest; bt != nil {
		exp := &ExperimentView{
			Doses:        bt.Estimate.Doses,
			Result:       bt.Result,
			GoldPerDose:  bt.Estimate.GoldPerDose,
			EnergyCost:   bt.Estimate.EnergyCost,
			NetAfterCost: bt.Estimate.NetAfterCost,
		}
		for _, te := range bt.Estimate.Tiers {
			exp.Tiers = append(exp.Tiers, BreakEvenView{
				Tier:        te.Tier.String(),
				CostPerDose: te.CostPerDose,
				FairPrice:   te.FairPrice,
				Margin:      te.Margin,
				Favorable:   te.Favorable,
			})
		}
		v.Experiment = exp
	}

	return v
}
