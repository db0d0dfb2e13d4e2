// Package report defines the result of a full calculation and includes the
// function that runs every calculation for a configuration.
package report

import (
	"fmt"

	"github.com/iwvelando/oreha-calculator/internal/arbitrage"
	"github.com/iwvelando/oreha-calculator/internal/config"
	"github.com/iwvelando/oreha-calculator/internal/energy"
	"github.com/iwvelando/oreha-calculator/internal/optimizer"
	"github.com/iwvelando/oreha-calculator/pkg/constants"
	"go.uber.org/zap"
)

// EnergyCost is the gold price of one potion in a package tier.
type EnergyCost struct {
	Tier        energy.Tier
	CostPerDose float64
}

// Backtest is the evaluation of a completed collection run.
type Backtest struct {
	Result   optimizer.Result
	Estimate energy.Estimate
}

// Report holds everything computed for one configuration.
type Report struct {
	Holdings      optimizer.Result
	EnergyCosts   []EnergyCost
	Arbitrage     arbitrage.Evaluation
	MaxCrystalBid float64 // crystal price at which one large-package potion costs the holdings' best value
	CrystalPrice  float64
	Backtest      *Backtest
}

// BidMargin returns how far the market crystal price sits below MaxCrystalBid.
func (r Report) BidMargin() float64 {
	return r.MaxCrystalBid - r.CrystalPrice
}

// Build runs the optimizer, energy estimator and arbitrage evaluator for conf.
// Any failure aborts the whole report.
func Build(logger *zap.Logger, conf config.Configuration) (Report, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := optimizer.Options{StrictExtraCrafts: conf.Options.StrictExtraCrafts}

	holdings, err := optimizer.EvaluateWithOptions(conf.Inventory, conf.Market, conf.Recipe, opts)
	if err != nil {
		return Report{}, fmt.Errorf("failed to evaluate holdings: %w", err)
	}
	logger.Debug("evaluated holdings",
		zap.String("op", "report.Build"),
		zap.String("strategy", string(holdings.Strategy)),
		zap.Int("totalCrafts", holdings.TotalCrafts),
		zap.Float64("bestValue", holdings.BestValue),
	)

	arb, err := arbitrage.Evaluate(conf.Market, conf.Recipe)
	if err != nil {
		return Report{}, fmt.Errorf("failed to evaluate arbitrage: %w", err)
	}

	rep := Report{
		Holdings:      holdings,
		Arbitrage:     arb,
		CrystalPrice:  conf.Market.CrystalPrice,
		MaxCrystalBid: energy.FairPrice(holdings.BestValue, energy.PreferredTier()),
	}
	for _, tier := range energy.Tiers {
		rep.EnergyCosts = append(rep.EnergyCosts, EnergyCost{
			Tier:        tier,
			CostPerDose: energy.CostPerDose(conf.Market.CrystalPrice, tier),
		})
	}

	if conf.Experiment != nil {
		backtest, err := runBacktest(logger, conf, opts)
		if err != nil {
			return Report{}, err
		}
		rep.Backtest = backtest
	} else {
		logger.Debug("skipping backtest because no experiment is configured",
			zap.String("op", "report.Build"),
		)
	}

	return rep, nil
}

func runBacktest(logger *zap.Logger, conf config.Configuration, opts optimizer.Options) (*Backtest, error) {
	exp := conf.Experiment

	res, err := optimizer.EvaluateWithOptions(exp.Collected, conf.Market, conf.Recipe, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate experiment: %w", err)
	}

	est, err := energy.EstimateRun(res.BestValue, exp.Doses, conf.Market.CrystalPrice)
	if err != nil {
		return nil, fmt.Errorf("failed to estimate experiment break-even: %w", err)
	}

	large := est.Tier(energy.Large)
	logger.Debug("evaluated experiment",
		zap.String("op", "report.runBacktest"),
		zap.Int("doses", exp.Doses),
		zap.Float64("goldPerDose", est.GoldPerDose),
		zap.Float64("fairPrice", large.FairPrice),
		zap.Bool("favorable", large.Favorable),
	)
	if !large.Favorable {
		logger.Info(fmt.Sprintf("crystals at %.0f exceed the break-even price of %.0f per %.0f",
			conf.Market.CrystalPrice, large.FairPrice, constants.CrystalLotSize),
			zap.String("op", "report.runBacktest"),
		)
	}

	return &Backtest{Result: res, Estimate: est}, nil
}
