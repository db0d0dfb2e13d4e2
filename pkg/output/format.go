// Package output provides utilities for formatting and displaying calculation reports.
package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/iwvelando/oreha-calculator/internal/report"
	"github.com/iwvelando/oreha-calculator/pkg/format"
	"github.com/iwvelando/oreha-calculator/pkg/mathutil"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat writes a human-readable rather than machine-readable summary.
func PrettyFormat(w io.Writer, rep report.Report) {
	p := message.NewPrinter(language.English)
	h := rep.Holdings

	_, _ = p.Fprintf(w, "--- Best decision: %s ---\n", h.Strategy)
	_, _ = p.Fprintf(w, "Best value         | %s\n", format.Gold(h.BestValue))
	_, _ = p.Fprintf(w, "Alternative value  | %s\n", format.Gold(h.AlternativeValue))
	_, _ = p.Fprintf(w, "Sell raw           | %s\n", format.Gold(h.SellValue))
	_, _ = p.Fprintf(w, "Craft (net)        | %s\n", format.Gold(h.CraftValue))
	_, _ = p.Fprintf(w, "Total crafts       | %d (base %d + conversion %d)\n", h.TotalCrafts, h.BaseCrafts, h.ExtraCraftsFromConversion)
	_, _ = p.Fprintf(w, "Max crystal bid    | %.0f (margin %.0f)\n", rep.MaxCrystalBid, rep.BidMargin())
	fmt.Fprintf(w, "\n")

	_, _ = p.Fprintf(w, "--- Leftover conversion ---\n")
	_, _ = p.Fprintf(w, "Leftover timber    | %.0f\n", h.RemainingTimber)
	_, _ = p.Fprintf(w, "Leftover tender    | %.0f\n", h.RemainingTender)
	_, _ = p.Fprintf(w, "Powder generated   | %d\n", h.PowderGenerated)
	_, _ = p.Fprintf(w, "New abidos         | %d\n", h.NewAbidosFromConversion)
	fmt.Fprintf(w, "\n")

	_, _ = p.Fprintf(w, "--- Energy ---\n")
	for _, cost := range rep.EnergyCosts {
		_, _ = p.Fprintf(w, "%-18s | %s per potion\n", cost.Tier.String()+" package", format.Gold(cost.CostPerDose))
	}
	fmt.Fprintf(w, "\n")

	_, _ = p.Fprintf(w, "--- Arbitrage ---\n")
	for _, c := range rep.Arbitrage.Conversions {
		_, _ = p.Fprintf(w, "%-18s | sell %s vs buy %d abidos %s: %s\n",
			fmt.Sprintf("%s x%s", c.Material, c.UnitsRequired.String()),
			format.Gold(c.OpportunityCost.InexactFloat64()),
			c.AbidosYield,
			format.Gold(c.MarketCost.InexactFloat64()),
			c.Decision)
	}
	purchase := rep.Arbitrage.Purchase
	verdict := "unprofitable"
	if purchase.Profitable {
		verdict = "profitable"
	}
	_, _ = p.Fprintf(w, "Buy one craft      | cost %s, revenue %s, profit %s (%s)\n",
		format.Gold(purchase.TotalCost.InexactFloat64()),
		format.Gold(purchase.Revenue.InexactFloat64()),
		format.Gold(purchase.Profit.InexactFloat64()),
		verdict)

	if bt := rep.Backtest; bt != nil {
		fmt.Fprintf(w, "\n")
		_, _ = p.Fprintf(w, "--- Experiment (%d doses) ---\n", bt.Estimate.Doses)
		_, _ = p.Fprintf(w, "Run value          | %s (%s)\n", format.Gold(bt.Result.BestValue), bt.Result.Strategy)
		_, _ = p.Fprintf(w, "Gold per dose      | %s\n", format.Gold(bt.Estimate.GoldPerDose))
		for _, te := range bt.Estimate.Tiers {
			_, _ = p.Fprintf(w, "%-18s | fair price %.0f (margin %.0f, favorable %t)\n",
				te.Tier.String()+" package", te.FairPrice, te.Margin, te.Favorable)
		}
		_, _ = p.Fprintf(w, "Net after energy   | %s\n", format.Gold(bt.Estimate.NetAfterCost))
	}
}

// CsvFormat writes the report as metric/value rows.
func CsvFormat(w io.Writer, rep report.Report) error {
	cw := csv.NewWriter(w)
	for _, row := range csvRows(rep) {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// CsvString returns the CSV rendering of a report.
func CsvString(rep report.Report) string {
	var buf bytes.Buffer
	if err := CsvFormat(&buf, rep); err != nil {
		return ""
	}
	return buf.String()
}

// JSONFormat writes the report view as indented JSON.
func JSONFormat(w io.Writer, rep report.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewView(rep))
}

func csvRows(rep report.Report) [][]string {
	h := rep.Holdings
	rows := [][]string{
		{"metric", "value"},
		{"strategy", string(h.Strategy)},
		{"best_value", money(h.BestValue)},
		{"alternative_value", money(h.AlternativeValue)},
		{"sell_value", money(h.SellValue)},
		{"craft_value", money(h.CraftValue)},
		{"base_crafts", strconv.Itoa(h.BaseCrafts)},
		{"extra_crafts", strconv.Itoa(h.ExtraCraftsFromConversion)},
		{"total_crafts", strconv.Itoa(h.TotalCrafts)},
		{"powder_generated", strconv.Itoa(h.PowderGenerated)},
		{"new_abidos", strconv.Itoa(h.NewAbidosFromConversion)},
		{"energy_cost_per_unit", money(h.EnergyCostPerUnit)},
		{"max_crystal_bid", money(rep.MaxCrystalBid)},
	}
	for _, cost := range rep.EnergyCosts {
		rows = append(rows, []string{"energy_cost_" + cost.Tier.String(), money(cost.CostPerDose)})
	}
	for _, c := range rep.Arbitrage.Conversions {
		rows = append(rows,
			[]string{"arbitrage_" + string(c.Material) + "_opportunity_cost", c.OpportunityCost.StringFixed(2)},
			[]string{"arbitrage_" + string(c.Material) + "_market_cost", c.MarketCost.StringFixed(2)},
			[]string{"arbitrage_" + string(c.Material) + "_decision", string(c.Decision)},
		)
	}
	rows = append(rows,
		[]string{"buy_craft_profit", rep.Arbitrage.Purchase.Profit.StringFixed(2)},
		[]string{"buy_craft_profitable", strconv.FormatBool(rep.Arbitrage.Purchase.Profitable)},
	)
	if bt := rep.Backtest; bt != nil {
		rows = append(rows,
			[]string{"experiment_doses", strconv.Itoa(bt.Estimate.Doses)},
			[]string{"experiment_value", money(bt.Result.BestValue)},
			[]string{"experiment_gold_per_dose", money(bt.Estimate.GoldPerDose)},
		)
		for _, te := range bt.Estimate.Tiers {
			rows = append(rows,
				[]string{"fair_price_" + te.Tier.String(), money(te.FairPrice)},
				[]string{"favorable_" + te.Tier.String(), strconv.FormatBool(te.Favorable)},
			)
		}
	}
	return rows
}

func money(v float64) string {
	return strconv.FormatFloat(mathutil.Round(v), 'f', 2, 64)
}
