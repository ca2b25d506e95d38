package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/garyjia/p2p-dashboard/internal/models"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := LoadWith(viper.New(), "", "")
	require.NoError(t, err)

	assert.Equal(t, FormatText, cfg.Report.Format)
	assert.Equal(t, 5, cfg.Report.TopVendors)
	assert.Equal(t, 7, cfg.Report.TopVendorExceptions)
	assert.True(t, cfg.Filters.IsEmpty())
	assert.Equal(t, 72, cfg.Logistics.Warehouse.CurrentStaff)
	assert.Equal(t, 3.5, cfg.Logistics.Warehouse.DelayPerMissingStaff)
	assert.Len(t, cfg.Logistics.Shifts, 3)
	assert.Equal(t, "stderr", cfg.Logger.OutputPath)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
data:
  path: exports/p2p.xlsx
  sheet: Invoices
  date_layouts: ["02/01/2006"]
filters:
  vendor: V1
  match_status: FAIL
  start_date: "2024-01-01"
report:
  format: json
  top_vendors: 3
logistics:
  warehouse:
    current_staff: 80
  shifts:
    - name: Night
      current: 10
      planned: 12
  factors:
    - factor: Strike
      impact: Critical
`)

	cfg, err := LoadWith(viper.New(), path, "")
	require.NoError(t, err)

	assert.Equal(t, "exports/p2p.xlsx", cfg.Data.Path)
	assert.Equal(t, "Invoices", cfg.Data.Sheet)
	assert.Equal(t, []string{"02/01/2006"}, cfg.Data.DateLayouts)
	assert.Equal(t, models.FiltersState{Vendor: "V1", MatchStatus: models.MatchStatusFail, StartDate: "2024-01-01"}, cfg.Filters)
	assert.Equal(t, FormatJSON, cfg.Report.Format)
	assert.Equal(t, 3, cfg.Report.TopVendors)
	assert.Equal(t, 80, cfg.Logistics.Warehouse.CurrentStaff)
	assert.Equal(t, 80, cfg.Logistics.Warehouse.RequiredStaff)
	require.Len(t, cfg.Logistics.Shifts, 1)
	assert.Equal(t, 12, cfg.Logistics.Shifts[0].Planned)
	require.Len(t, cfg.Logistics.Factors, 1)
	assert.Equal(t, "Strike", cfg.Logistics.Factors[0].Name)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DASHBOARD_REPORT_FORMAT", "json")
	t.Setenv("DASHBOARD_DATA", "from-env.csv")
	t.Setenv("DASHBOARD_FILTERS_PLANT", "P7")

	cfg, err := LoadWith(viper.New(), "", "")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, cfg.Report.Format)
	assert.Equal(t, "from-env.csv", cfg.Data.Path)
	assert.Equal(t, "P7", cfg.Filters.Plant)
}

func TestLoad_EnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("DASHBOARD_LOG_LEVEL=debug\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("DASHBOARD_LOG_LEVEL") })

	cfg, err := LoadWith(viper.New(), "", envFile)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logger.Level)

	_, err = LoadWith(viper.New(), "", filepath.Join(t.TempDir(), "missing.env"))
	assert.NoError(t, err, "a missing env file is not an error")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		yaml   string
		errMsg string
	}{
		{"bad format", "report:\n  format: pdf\n", "report.format"},
		{"non positive top vendors", "report:\n  top_vendors: 0\n", "report.top_vendors"},
		{"inverted filter range", "filters:\n  start_date: \"2024-02-01\"\n  end_date: \"2024-01-01\"\n", "after end date"},
		{"unparseable filter date", "filters:\n  end_date: someday\n", "invalid end date"},
		{"unknown match status", "filters:\n  match_status: MAYBE\n", "unknown match status"},
		{"negative staff", "logistics:\n  warehouse:\n    current_staff: -1\n", "must not be negative"},
		{"threshold out of range", "logistics:\n  warehouse:\n    critical_threshold: 150\n", "critical_threshold"},
		{"bad log level", "logger:\n  level: loud\n", "logger.level"},
		{"bad log format", "logger:\n  format: xml\n", "logger.format"},
		{"unnamed shift", "logistics:\n  shifts:\n    - current: 1\n      planned: 2\n", "name is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadWith(viper.New(), writeConfig(t, tt.yaml), "")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestValidateMatchStatus(t *testing.T) {
	assert.NoError(t, ValidateMatchStatus(""))
	assert.NoError(t, ValidateMatchStatus(models.MatchStatusAll))
	assert.NoError(t, ValidateMatchStatus(models.MatchStatusTolerancePass))
	assert.Error(t, ValidateMatchStatus("pass"))
}
