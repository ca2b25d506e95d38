package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/garyjia/p2p-dashboard/internal/logistics"
	"github.com/garyjia/p2p-dashboard/internal/models"
	"github.com/garyjia/p2p-dashboard/pkg/utils"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// EnvPrefix prefixes every environment override, e.g. DASHBOARD_REPORT_FORMAT
const EnvPrefix = "DASHBOARD"

// DefaultEnvFile is read before the environment is consulted, when present
const DefaultEnvFile = ".env"

// Config holds all application configuration
type Config struct {
	Data      DataConfig          `mapstructure:"data"`
	Filters   models.FiltersState `mapstructure:"filters"`
	Report    ReportConfig        `mapstructure:"report"`
	Logistics LogisticsConfig     `mapstructure:"logistics"`
	Logger    LoggerConfig        `mapstructure:"logger"`
}

// DataConfig holds dataset location and decoding options
type DataConfig struct {
	Path        string   `mapstructure:"path"`
	Sheet       string   `mapstructure:"sheet"`
	DateLayouts []string `mapstructure:"date_layouts"`
	SkipInvalid bool     `mapstructure:"skip_invalid"`
}

// ReportConfig holds output configuration
type ReportConfig struct {
	Format              string `mapstructure:"format"` // json | text
	OutputDir           string `mapstructure:"output_dir"`
	TopVendors          int    `mapstructure:"top_vendors"`
	TopVendorExceptions int    `mapstructure:"top_vendor_exceptions"`
}

// LogisticsConfig holds the warehouse figures behind the logistics panel
type LogisticsConfig struct {
	Warehouse logistics.WarehouseCapacity `mapstructure:"warehouse"`
	Shifts    []logistics.Shift           `mapstructure:"shifts"`
	Factors   []logistics.Factor          `mapstructure:"factors"`
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"`
}

// Report formats
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Load loads configuration from file and environment variables.
// An empty configPath uses defaults and the environment only.
func Load(configPath string) (*Config, error) {
	return LoadWith(viper.New(), configPath, DefaultEnvFile)
}

// LoadWith loads configuration through v, which may already carry bound
// command line flags. envFile is loaded into the environment first when it
// exists; variables already set are kept.
func LoadWith(v *viper.Viper, configPath, envFile string) (*Config, error) {
	if envFile != "" {
		if err := gotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set defaults
	setDefaults(v)

	// Read config file
	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Override with environment variables
	if err := bindEnvVars(v); err != nil {
		return nil, fmt.Errorf("failed to bind environment: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if len(cfg.Logistics.Shifts) == 0 {
		cfg.Logistics.Shifts = logistics.DefaultShifts()
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Data defaults
	v.SetDefault("data.path", "data/invoices.json")
	v.SetDefault("data.sheet", "")
	v.SetDefault("data.date_layouts", []string{})
	v.SetDefault("data.skip_invalid", false)

	// Filter defaults: all unset
	for _, key := range filterKeys {
		v.SetDefault("filters."+key, "")
	}

	// Report defaults
	v.SetDefault("report.format", FormatText)
	v.SetDefault("report.output_dir", "reports")
	v.SetDefault("report.top_vendors", 5)
	v.SetDefault("report.top_vendor_exceptions", 7)

	// Logistics defaults
	w := logistics.DefaultWarehouse()
	v.SetDefault("logistics.warehouse.depot", w.Depot)
	v.SetDefault("logistics.warehouse.current_staff", w.CurrentStaff)
	v.SetDefault("logistics.warehouse.required_staff", w.RequiredStaff)
	v.SetDefault("logistics.warehouse.max_capacity", w.MaxCapacity)
	v.SetDefault("logistics.warehouse.carrier100_orders", w.Carrier100Orders)
	v.SetDefault("logistics.warehouse.carrier100_target", w.Carrier100Target)
	v.SetDefault("logistics.warehouse.delay_per_missing_staff", w.DelayPerMissingStaff)
	v.SetDefault("logistics.warehouse.critical_threshold", w.CriticalThreshold)

	// Logger defaults
	logDefaults := utils.DefaultLoggerConfig()
	v.SetDefault("logger.level", logDefaults.Level)
	v.SetDefault("logger.output_path", logDefaults.OutputPath)
	v.SetDefault("logger.format", logDefaults.Format)
}

var filterKeys = []string{
	"start_date", "end_date", "vendor", "plant", "material", "po_type",
	"match_status", "exception_type", "block_reason", "responsible_team",
}

// bindEnvVars binds the short environment names
func bindEnvVars(v *viper.Viper) error {
	binds := map[string]string{
		"data.path":    "DASHBOARD_DATA",
		"logger.level": "DASHBOARD_LOG_LEVEL",
	}
	for key, env := range binds {
		if err := v.BindEnv(key, env); err != nil {
			return err
		}
	}
	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	// Validate report
	if c.Report.Format != FormatJSON && c.Report.Format != FormatText {
		return fmt.Errorf("report.format must be %q or %q: %q", FormatJSON, FormatText, c.Report.Format)
	}
	if c.Report.TopVendors <= 0 {
		return fmt.Errorf("report.top_vendors must be positive")
	}
	if c.Report.TopVendorExceptions <= 0 {
		return fmt.Errorf("report.top_vendor_exceptions must be positive")
	}

	// Validate default filters
	if err := utils.ValidateDateRange(c.Filters.StartDate, c.Filters.EndDate); err != nil {
		return fmt.Errorf("filters: %w", err)
	}
	if err := ValidateMatchStatus(c.Filters.MatchStatus); err != nil {
		return fmt.Errorf("filters: %w", err)
	}

	// Validate warehouse figures
	w := c.Logistics.Warehouse
	if w.CurrentStaff < 0 || w.RequiredStaff < 0 || w.MaxCapacity < 0 || w.Carrier100Orders < 0 {
		return fmt.Errorf("logistics.warehouse figures must not be negative")
	}
	if w.DelayPerMissingStaff < 0 {
		return fmt.Errorf("logistics.warehouse.delay_per_missing_staff must not be negative")
	}
	if err := utils.ValidatePercent("logistics.warehouse.critical_threshold", float64(w.CriticalThreshold)); err != nil {
		return err
	}
	for _, s := range c.Logistics.Shifts {
		if s.Name == "" {
			return fmt.Errorf("logistics.shifts: name is required")
		}
	}

	// Validate logger
	if _, err := utils.ParseLogLevel(c.Logger.Level); err != nil {
		return fmt.Errorf("logger.level: %w", err)
	}
	if c.Logger.Format != "console" && c.Logger.Format != "json" {
		return fmt.Errorf("logger.format must be \"console\" or \"json\": %q", c.Logger.Format)
	}

	return nil
}

// ValidateMatchStatus accepts the evaluated statuses, ALL and unset
func ValidateMatchStatus(s models.MatchStatus) error {
	if s == "" || s == models.MatchStatusAll {
		return nil
	}
	for _, known := range models.MatchStatuses {
		if s == known {
			return nil
		}
	}
	return fmt.Errorf("unknown match status %q", s)
}
