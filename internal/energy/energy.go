// Package energy prices the potions consumed by collection runs and back-solves
// the highest crystal price at which a run still pays for its potions.
package energy

import (
	"fmt"
	"math"

	"github.com/iwvelando/oreha-calculator/internal/market"
	"github.com/iwvelando/oreha-calculator/pkg/constants"
)

// Tier identifies a potion package.
type Tier int

const (
	// Small is the 10-potion package.
	Small Tier = iota
	// Large is the 15-potion package. It never costs more per dose than Small.
	Large
)

// Tiers lists every package in display order.
var Tiers = []Tier{Small, Large}

func (t Tier) String() string {
	switch t {
	case Small:
		return "small"
	case Large:
		return "large"
	default:
		return fmt.Sprintf("tier(%d)", int(t))
	}
}

// CrystalsPerDose returns the crystal consumption rate of a tier.
func (t Tier) CrystalsPerDose() float64 {
	if t == Small {
		return constants.SmallPackageCrystalsPerDose
	}
	return constants.LargePackageCrystalsPerDose
}

// PreferredTier returns the package to buy when both are available.
func PreferredTier() Tier {
	return Large
}

// CostPerDose converts a crystal price into the gold cost of one potion.
func CostPerDose(crystalPrice float64, tier Tier) float64 {
	return crystalPrice / constants.CrystalLotSize * tier.CrystalsPerDose()
}

// GoldPerDose spreads the value of a run over the potions it consumed.
func GoldPerDose(value float64, doses int) (float64, error) {
	if doses == 0 {
		return 0, market.NewDivisionByZero("doses")
	}
	if doses < 0 {
		return 0, market.NewInvalidInput("doses", "must be positive, got %d", doses)
	}
	return value / float64(doses), nil
}

// FairPrice returns the crystal price at which one potion of tier costs exactly
// goldPerDose.
func FairPrice(goldPerDose float64, tier Tier) float64 {
	return goldPerDose / tier.CrystalsPerDose() * constants.CrystalLotSize
}

// Favorable reports whether buying crystals at actual still leaves the run
// profitable.
func Favorable(actual, fair float64) bool {
	return actual < fair
}

// TierEstimate is the break-even analysis for one package tier.
type TierEstimate struct {
	Tier        Tier
	CostPerDose float64
	FairPrice   float64
	Margin      float64 // FairPrice minus the market crystal price
	Favorable   bool
}

// Estimate is the break-even analysis of a completed run.
type Estimate struct {
	Doses        int
	RunValue     float64
	GoldPerDose  float64
	Tiers        []TierEstimate
	EnergyCost   float64 // potions bought in the preferred tier
	NetAfterCost float64
}

// Tier returns the estimate for t.
func (e Estimate) Tier(t Tier) TierEstimate {
	for _, te := range e.Tiers {
		if te.Tier == t {
			return te
		}
	}
	return TierEstimate{Tier: t}
}

// EstimateRun evaluates a run that produced value gold from doses potions while
// crystals trade at crystalPrice.
func EstimateRun(value float64, doses int, crystalPrice float64) (Estimate, error) {
	if err := market.NonNegative("crystalPrice", crystalPrice); err != nil {
		return Estimate{}, err
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Estimate{}, market.NewInvalidInput("value", "must be a finite number, got %v", value)
	}
	perDose, err := GoldPerDose(value, doses)
	if err != nil {
		return Estimate{}, err
	}

	est := Estimate{
		Doses:       doses,
		RunValue:    value,
		GoldPerDose: perDose,
		Tiers:       make([]TierEstimate, 0, len(Tiers)),
	}
	for _, tier := range Tiers {
		fair := FairPrice(perDose, tier)
		est.Tiers = append(est.Tiers, TierEstimate{
			Tier:        tier,
			CostPerDose: CostPerDose(crystalPrice, tier),
			FairPrice:   fair,
			Margin:      fair - crystalPrice,
			Favorable:   Favorable(crystalPrice, fair),
		})
	}
	est.EnergyCost = float64(doses) * CostPerDose(crystalPrice, PreferredTier())
	est.NetAfterCost = value - est.EnergyCost
	return est, nil
}
