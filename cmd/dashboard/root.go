package main

import (
	"context"
	"fmt"

	"github.com/garyjia/p2p-dashboard/internal/config"
	"github.com/garyjia/p2p-dashboard/internal/dashboard"
	"github.com/garyjia/p2p-dashboard/internal/dataset"
	"github.com/garyjia/p2p-dashboard/pkg/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// app carries what every command needs once the root command has run
type app struct {
	v       *viper.Viper
	cfgFile string
	envFile string
	cfg     *config.Config
	logger  *zap.Logger
	loader  dataset.Loader // FileLoader unless injected
}

// filterFlags maps filter flags to their config keys
var filterFlags = []struct {
	flag, key, usage string
}{
	{"start", "filters.start_date", "earliest reference date (inclusive)"},
	{"end", "filters.end_date", "latest reference date (inclusive)"},
	{"vendor", "filters.vendor", "vendor number"},
	{"plant", "filters.plant", "plant"},
	{"material", "filters.material", "material number"},
	{"po-type", "filters.po_type", "PO type"},
	{"match-status", "filters.match_status", "PASS, TOLERANCE_PASS, FAIL or ALL"},
	{"exception-type", "filters.exception_type", "exception type"},
	{"block-reason", "filters.block_reason", "payment block reason"},
	{"team", "filters.responsible_team", "responsible team"},
}

func newRootCmd(a *app) *cobra.Command {
	if a.v == nil {
		a.v = viper.New()
	}
	if a.envFile == "" {
		a.envFile = config.DefaultEnvFile
	}

	root := &cobra.Command{
		Use:   "dashboard",
		Short: "Procure-to-pay invoice exception dashboard",
		Long: `dashboard derives the P2P exception dashboard panels from an exported
invoice dataset: the executive summary, the three agent panels, the
Decision Center and the warehouse logistics view.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.init,
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	// Global flags
	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (yaml)")
	flags.String("data", "", "dataset file (.json, .csv or .xlsx)")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("format", "", "output format (json, text)")
	for _, f := range filterFlags {
		flags.String(f.flag, "", f.usage)
	}

	// Bind flags to viper
	_ = a.v.BindPFlag("data.path", flags.Lookup("data"))
	_ = a.v.BindPFlag("logger.level", flags.Lookup("log-level"))
	_ = a.v.BindPFlag("report.format", flags.Lookup("format"))
	for _, f := range filterFlags {
		_ = a.v.BindPFlag(f.key, flags.Lookup(f.flag))
	}

	// Add commands
	root.AddCommand(summaryCmd(a))
	root.AddCommand(agent1Cmd(a))
	root.AddCommand(agent2Cmd(a))
	root.AddCommand(agent3Cmd(a))
	root.AddCommand(decisionsCmd(a))
	root.AddCommand(optionsCmd(a))
	root.AddCommand(logisticsCmd(a))
	root.AddCommand(exportCmd(a))
	root.AddCommand(versionCmd())

	return root
}

func (a *app) init(_ *cobra.Command, _ []string) error {
	cfg, err := config.LoadWith(a.v, a.cfgFile, a.envFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	a.logger = logger

	if a.loader == nil {
		a.loader = dataset.NewFileLoader(dataset.Options{
			Sheet:       cfg.Data.Sheet,
			DateLayouts: cfg.Data.DateLayouts,
			SkipInvalid: cfg.Data.SkipInvalid,
		}, logger)
	}
	return nil
}

// open loads the dataset and applies the configured filters
func (a *app) open(ctx context.Context) (*dashboard.Service, error) {
	return dashboard.Open(ctx, a.loader, a.cfg.Data.Path, dashboard.Options{
		TopVendors:          a.cfg.Report.TopVendors,
		TopVendorExceptions: a.cfg.Report.TopVendorExceptions,
		DefaultFilters:      a.cfg.Filters,
	}, a.logger)
}
