package testutil

import "testing"

func TestScenarioConfiguration(t *testing.T) {
	conf := ScenarioConfiguration(false)
	if conf.Experiment != nil {
		t.Error("expected no experiment")
	}
	if err := conf.Validate(); err != nil {
		t.Fatalf("scenario should validate: %v", err)
	}

	conf = ScenarioConfiguration(true)
	if conf.Experiment == nil || conf.Experiment.Doses != 10 {
		t.Fatalf("unexpected experiment %+v", conf.Experiment)
	}
	if err := conf.Validate(); err != nil {
		t.Fatalf("scenario with experiment should validate: %v", err)
	}
}

func TestScenarioFixturesAreIndependent(t *testing.T) {
	a := ScenarioConfiguration(true)
	a.Experiment.Doses = 99
	a.Inventory.Timber = 1

	b := ScenarioConfiguration(true)
	if b.Experiment.Doses != 10 || b.Inventory.Timber != 5000 {
		t.Error("fixtures must not share state")
	}
}

func TestAlmostEqual(t *testing.T) {
	tests := []struct {
		name      string
		a, b, tol float64
		expected  bool
	}{
		{"Exact", 146.0625, 146.0625, 0, true},
		{"Within tolerance", 1080.43, 1080.4300001, 1e-6, true},
		{"Outside tolerance", 145, 146.0625, 0.5, false},
		{"Negative values", -776.43, -776.44, 0.02, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AlmostEqual(tt.a, tt.b, tt.tol); got != tt.expected {
				t.Errorf("AlmostEqual(%v, %v, %v) = %v, expected %v", tt.a, tt.b, tt.tol, got, tt.expected)
			}
		})
	}
}

func TestContainsWarning(t *testing.T) {
	warnings := []string{"timber quantity 50 is below one sale lot of 100 and cannot be sold raw"}

	if !ContainsWarning(warnings, "sale lot") {
		t.Error("expected warning to be found")
	}
	if ContainsWarning(warnings, "tax") {
		t.Error("expected no tax warning")
	}
	if ContainsWarning(nil, "") {
		t.Error("expected no match on empty warnings")
	}
}
