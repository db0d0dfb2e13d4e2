package integration

import (
	"testing"
	"time"

	"github.com/iwvelando/oreha-calculator/internal/report"
	"github.com/iwvelando/oreha-calculator/pkg/testutil"
	"go.uber.org/zap"
)

// TestBuildPerformance guards against the report build becoming expensive.
func TestBuildPerformance(t *testing.T) {
	conf := testutil.ScenarioConfiguration(true)
	logger := zap.NewNop()

	start := time.Now()
	for i := 0; i < 1000; i++ {
		if _, err := report.Build(logger, conf); err != nil {
			t.Fatalf("Build() error = %v", err)
		}
	}
	elapsed := time.Since(start)

	if elapsed > 2*time.Second {
		t.Errorf("1000 report builds took %v", elapsed)
	}
}

func BenchmarkBuild(b *testing.B) {
	conf := testutil.ScenarioConfiguration(true)
	logger := zap.NewNop()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := report.Build(logger, conf); err != nil {
			b.Fatalf("Build() error = %v", err)
		}
	}
}
