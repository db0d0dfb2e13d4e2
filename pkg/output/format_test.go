package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/iwvelando/oreha-calculator/internal/report"
	"github.com/iwvelando/oreha-calculator/pkg/testutil"
	"go.uber.org/zap"
)

func buildReport(t *testing.T, withExperiment bool) report.Report {
	t.Helper()
	conf := testutil.ScenarioConfiguration(withExperiment)
	rep, err := report.Build(zap.NewNop(), conf)
	if err != nil {
		t.Fatalf("report.Build() error = %v", err)
	}
	return rep
}

func TestPrettyFormat(t *testing.T) {
	var buf bytes.Buffer
	PrettyFormat(&buf, buildReport(t, true))
	out := buf.String()

	expected := []string{
		"--- Best decision: SELL_RAW ---",
		"Best value         | 11,134.00g",
		"Total crafts       | 19 (base 6 + conversion 13)",
		"Powder generated   | 4,640",
		"timber x125",
		"tender x62.5",
		"SELL_AND_BUY",
		"(unprofitable)",
		"--- Experiment (10 doses) ---",
		"large package",
	}
	for _, want := range expected {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q\n%s", want, out)
		}
	}
}

func TestPrettyFormatWithoutExperiment(t *testing.T) {
	var buf bytes.Buffer
	PrettyFormat(&buf, buildReport(t, false))
	if strings.Contains(buf.String(), "Experiment") {
		t.Error("did not expect an experiment section")
	}
}

func TestCsvFormat(t *testing.T) {
	out := CsvString(buildReport(t, true))

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("CSV output did not parse: %v", err)
	}

	values := make(map[string]string, len(records))
	for _, r := range records {
		if len(r) != 2 {
			t.Fatalf("expected 2 columns, got %v", r)
		}
		values[r[0]] = r[1]
	}

	expected := map[string]string{
		"strategy":                          "SELL_RAW",
		"best_value":                        "11134.00",
		"craft_value":                       "-1368.00",
		"total_crafts":                      "19",
		"powder_generated":                  "4640",
		"new_abidos":                        "460",
		"arbitrage_timber_opportunity_cost": "146.06",
		"arbitrage_timber_market_cost":      "145.00",
		"arbitrage_timber_decision":         "SELL_AND_BUY",
		"buy_craft_profit":                  "-776.43",
		"buy_craft_profitable":              "false",
		"experiment_doses":                  "10",
	}
	for key, want := range expected {
		if got := values[key]; got != want {
			t.Errorf("%s = %q, expected %q", key, got, want)
		}
	}
	if _, ok := values["fair_price_large"]; !ok {
		t.Error("expected a large-tier fair price row")
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := JSONFormat(&buf, buildReport(t, true)); err != nil {
		t.Fatalf("JSONFormat() error = %v", err)
	}

	var view View
	if err := json.Unmarshal(buf.Bytes(), &view); err != nil {
		t.Fatalf("failed to decode JSON: %v", err)
	}
	if view.Holdings.TotalCrafts != 19 {
		t.Errorf("expected 19 total crafts, got %d", view.Holdings.TotalCrafts)
	}
	if len(view.Arbitrage.Conversions) != 2 || view.Arbitrage.Conversions[0].OpportunityCost != "146.0625" {
		t.Errorf("unexpected conversions %+v", view.Arbitrage.Conversions)
	}
	if view.Experiment == nil || len(view.Experiment.Tiers) != 2 {
		t.Fatalf("expected experiment with two tiers, got %+v", view.Experiment)
	}
}
