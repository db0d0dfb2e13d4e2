// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/oreha-calculator/internal/market"
	"github.com/iwvelando/oreha-calculator/pkg/constants"
	"github.com/iwvelando/oreha-calculator/pkg/logging"
	"github.com/iwvelando/oreha-calculator/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for oreha-calculator.
type Configuration struct {
	Market     market.MarketPrices `yaml:"market"`
	Inventory  market.Inventory    `yaml:"inventory"`
	Recipe     market.Recipe       `yaml:"recipe"`
	Experiment *Experiment         `yaml:"experiment,omitempty"`
	Options    Options             `yaml:"options,omitempty"`
	Logging    LoggingConfig       `yaml:"logging,omitempty"`
	Output     OutputConfig        `yaml:"output,omitempty"`
}

// Experiment describes a completed collection run to backtest: the potions it
// consumed and the materials it brought back.
type Experiment struct {
	Doses     int              `yaml:"doses"`
	Collected market.Inventory `yaml:"collected"`
}

// Options holds calculation switches.
type Options struct {
	StrictExtraCrafts bool `yaml:"strictExtraCrafts,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// Settings converts the logging section for pkg/logging.
func (l LoggingConfig) Settings() logging.Settings {
	return logging.Settings{Level: l.Level, Format: l.Format, OutputFile: l.OutputFile}
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, json
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. Keys may be overridden from the environment, e.g.
// OREHA_MARKET_CRYSTALPRICE.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r. The
// environment is not consulted; r alone describes the configuration.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	setDefaults(v)
	return v
}

// setDefaults registers the game rules so a config only has to carry prices
// and quantities.
func setDefaults(v *viper.Viper) {
	v.SetDefault("market.taxRate", constants.DefaultTaxRate)

	r := market.DefaultRecipe()
	v.SetDefault("recipe.timberPerCraft", r.TimberPerCraft)
	v.SetDefault("recipe.tenderPerCraft", r.TenderPerCraft)
	v.SetDefault("recipe.abidosPerCraft", r.AbidosPerCraft)
	v.SetDefault("recipe.orehaPerCraft", r.OrehaPerCraft)
	v.SetDefault("recipe.timberPowderBatch", r.TimberPowderBatch)
	v.SetDefault("recipe.tenderPowderBatch", r.TenderPowderBatch)
	v.SetDefault("recipe.powderPerBatch", r.PowderPerBatch)
	v.SetDefault("recipe.powderAbidosBatch", r.PowderAbidosBatch)
	v.SetDefault("recipe.abidosPerPowder", r.AbidosPerPowder)
	v.SetDefault("recipe.saleLot", r.SaleLot)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	return &configuration, nil
}

// Validate returns the first input that no calculation can accept.
func (c *Configuration) Validate() error {
	if err := c.Market.Validate(); err != nil {
		return err
	}
	if err := c.Inventory.Validate(); err != nil {
		return err
	}
	if err := c.Recipe.Validate(); err != nil {
		return err
	}
	if c.Experiment != nil {
		if err := c.Experiment.Collected.Validate(); err != nil {
			return fmt.Errorf("experiment: %w", err)
		}
	}
	return nil
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if !c.Recipe.IsDefault() {
		warnings = append(warnings, "recipe differs from the game's Oreha recipe")
	}
	if warning := validation.ValidateTaxRate(c.Market.TaxRate); warning != "" {
		warnings = append(warnings, warning)
	}

	lot := c.Recipe.SaleLot
	for _, held := range []struct {
		name string
		qty  float64
	}{
		{"timber", c.Inventory.Timber},
		{"tender", c.Inventory.Tender},
		{"abidos", c.Inventory.Abidos},
	} {
		if warning := validation.ValidateSaleLot(held.name, held.qty, lot); warning != "" {
			warnings = append(warnings, warning)
		}
	}

	if c.Experiment != nil {
		collected := c.Experiment.Collected.Timber + c.Experiment.Collected.Tender + c.Experiment.Collected.Abidos
		warnings = append(warnings, validation.ValidateExperiment(c.Experiment.Doses, collected)...)
	}

	return warnings
}
