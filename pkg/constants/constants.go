// Package constants provides shared constants for the oreha-calculator application.
package constants

// Market constants
const (
	// PackageSize is the number of units a material package price refers to.
	PackageSize = 100.0

	// DefaultTaxRate is the share of sale proceeds taken by the market.
	DefaultTaxRate = 0.05

	// CrystalLotSize is the number of Blue Crystals the crystal price is quoted for.
	CrystalLotSize = 95.0

	// MaxQuantity is the largest held quantity accepted. Every whole number up
	// to it is exact in a float64.
	MaxQuantity = 1 << 53
)

// Energy package constants. A small package costs 230 crystals for 10
// potions and a large one 330 crystals for 15 potions.
const (
	// SmallPackageCrystalsPerDose is the crystal cost of one potion in a small package.
	SmallPackageCrystalsPerDose = 23.0

	// LargePackageCrystalsPerDose is the crystal cost of one potion in a large package.
	LargePackageCrystalsPerDose = 22.0
)

// Calculation constants
const (
	// DecimalPrecision is the precision for gold rounding (2 decimal places)
	DecimalPrecision = 100
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the machine-readable JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix is the prefix for environment overrides of configuration keys
	EnvPrefix = "OREHA"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for YAML configs (64 KB)
	DefaultMaxUploadSizeBytes int64 = 64 * 1024
)
