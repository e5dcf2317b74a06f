// Package constants provides shared constants for the omnicalc application.
package constants

// DateLayout is the format accepted for calendar dates in requests and CLI
// arguments and used for date output.
const DateLayout = "2006-01-02"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01
)

// Health constants
const (
	// CentimetersPerInch converts between metric and imperial heights
	CentimetersPerInch = 2.54

	// ImperialBMIFactor scales lb/in² to kg/m²
	ImperialBMIFactor = 703.0

	// BaseHeightInches is the height the ideal weight formulas are anchored to
	BaseHeightInches = 60.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix is the prefix for environment overrides of config keys
	EnvPrefix = "OMNICALC"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (64 KB)
	DefaultMaxBodySizeBytes int64 = 64 * 1024

	// DefaultRequestTimeoutSeconds bounds the handling of a single API request
	DefaultRequestTimeoutSeconds = 15

	// DefaultRateLimitRPS is the default sustained request rate allowed per client IP
	DefaultRateLimitRPS = 20.0

	// DefaultRateLimitBurst is the default burst allowed per client IP
	DefaultRateLimitBurst = 40

	// HeaderRequestID carries the request correlation ID
	HeaderRequestID = "X-Request-ID"
)

// Currency defaults
const (
	// DefaultRatesEndpoint is the exchange rate API base URL
	DefaultRatesEndpoint = "https://api.exchangerate-api.com/v4"

	// BaseCurrency is the currency all fetched rates are relative to
	BaseCurrency = "USD"

	// DefaultRatesTimeoutSeconds bounds a single rate fetch
	DefaultRatesTimeoutSeconds = 10

	// DefaultRatesCacheSeconds is how long fetched rates are served before refetching
	DefaultRatesCacheSeconds = 3600

	// DefaultRatesPerMinute limits outbound rate fetches
	DefaultRatesPerMinute = 6
)
