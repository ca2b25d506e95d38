// Package dashboard ties the filter, metrics and decision packages together
// behind one stateful service driven by a single caller.
package dashboard

import (
	"context"
	"fmt"
	"slices"

	"github.com/garyjia/p2p-dashboard/internal/dataset"
	"github.com/garyjia/p2p-dashboard/internal/decision"
	"github.com/garyjia/p2p-dashboard/internal/filter"
	"github.com/garyjia/p2p-dashboard/internal/metrics"
	"github.com/garyjia/p2p-dashboard/internal/models"
	"github.com/garyjia/p2p-dashboard/pkg/utils"
	"go.uber.org/zap"
)

// Options tunes the panels
type Options struct {
	TopVendors          int                 // executive top vendor list
	TopVendorExceptions int                 // agent 1 vendor exception list
	DefaultFilters      models.FiltersState // applied on construction and Reset
}

// DefaultOptions returns the panel sizes the dashboard shows
func DefaultOptions() Options {
	return Options{TopVendors: 5, TopVendorExceptions: 7}
}

// Service holds the records, the active filters and the decision selection.
// Derived panels are memoized per filter state. Not safe for concurrent use.
type Service struct {
	records   []models.InvoiceRecord
	opts      Options
	filters   models.FiltersState
	selection decision.Selection
	filtered  []models.InvoiceRecord
	memo      *metrics.Memo
	logger    *zap.Logger
}

// NewService creates a dashboard over records
func NewService(records []models.InvoiceRecord, opts Options, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	defaults := DefaultOptions()
	if opts.TopVendors <= 0 {
		opts.TopVendors = defaults.TopVendors
	}
	if opts.TopVendorExceptions <= 0 {
		opts.TopVendorExceptions = defaults.TopVendorExceptions
	}

	s := &Service{
		records: slices.Clone(records),
		opts:    opts,
		memo:    metrics.NewMemo(),
		logger:  logger,
	}
	s.SetFilters(opts.DefaultFilters)

	logger.Info("Dashboard initialized",
		zap.Int("records", len(records)),
		zap.Int("filtered", len(s.filtered)))
	return s
}

// Open loads path through loader and builds a dashboard over the records
func Open(ctx context.Context, loader dataset.Loader, path string, opts Options, logger *zap.Logger) (*Service, error) {
	records, err := loader.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}
	return NewService(records, opts, logger), nil
}

// Filters returns the active filters
func (s *Service) Filters() models.FiltersState {
	return s.filters
}

// SetFilters replaces the active filters wholesale
func (s *Service) SetFilters(f models.FiltersState) {
	if err := utils.ValidateDateRange(f.StartDate, f.EndDate); err != nil {
		s.logger.Warn("Date filter not applied as a bound", zap.Error(err))
	}

	s.filters = f
	s.filtered = filter.Apply(s.records, f)
	s.memo.Reset(fingerprint(f))

	s.logger.Debug("Filters applied",
		zap.Any("filters", f),
		zap.Int("matched", len(s.filtered)))
}

// Navigate merges next into the active filters, as a drill-down does
func (s *Service) Navigate(next models.FiltersState) {
	s.SetFilters(s.filters.Merge(next))
}

// Reset restores the configured default filters
func (s *Service) Reset() {
	s.SetFilters(s.opts.DefaultFilters)
}

// Filtered returns a copy of the records matching the active filters
func (s *Service) Filtered() []models.InvoiceRecord {
	return slices.Clone(s.filtered)
}

// Records returns a copy of every loaded record
func (s *Service) Records() []models.InvoiceRecord {
	return slices.Clone(s.records)
}

// Options lists the filter choices available in the full dataset
func (s *Service) Options() models.FilterOptions {
	return metrics.Memoize(s.memo, s.memo.Key(), metrics.KindOptions, func() models.FilterOptions {
		return models.CollectFilterOptions(s.records)
	})
}

// ExecutiveSummary returns the executive panel
func (s *Service) ExecutiveSummary() metrics.ExecutiveSummary {
	return metrics.Memoize(s.memo, s.memo.Key(), metrics.KindExecutive, func() metrics.ExecutiveSummary {
		s.logger.Debug("Computing executive summary", zap.Int("records", len(s.filtered)))
		return metrics.Executive(s.filtered, s.opts.TopVendors)
	})
}

// Agent1 returns the invoice matching panel
func (s *Service) Agent1() metrics.MatchPanel {
	return metrics.Memoize(s.memo, s.memo.Key(), metrics.KindMatch, func() metrics.MatchPanel {
		s.logger.Debug("Computing match panel", zap.Int("records", len(s.filtered)))
		return metrics.Match(s.filtered, s.opts.TopVendorExceptions)
	})
}

// Agent2 returns the root cause panel
func (s *Service) Agent2() metrics.RootCausePanel {
	return metrics.Memoize(s.memo, s.memo.Key(), metrics.KindRootCause, func() metrics.RootCausePanel {
		s.logger.Debug("Computing root cause panel", zap.Int("records", len(s.filtered)))
		return metrics.RootCause(s.filtered)
	})
}

// Agent3 returns the payment block panel
func (s *Service) Agent3() metrics.BlockPanel {
	return metrics.Memoize(s.memo, s.memo.Key(), metrics.KindBlock, func() metrics.BlockPanel {
		s.logger.Debug("Computing block panel", zap.Int("records", len(s.filtered)))
		return metrics.Block(s.filtered)
	})
}

// DecisionCenter returns the active exceptions with the current selection.
// The board depends on the selection, so it is rebuilt on every call.
func (s *Service) DecisionCenter() decision.Board {
	return decision.BuildBoard(s.filtered, s.selection)
}

// Selection returns the current selection
func (s *Service) Selection() decision.Selection {
	return s.selection
}

// Toggle flips the selection state of id
func (s *Service) Toggle(id string) decision.Selection {
	s.selection = s.selection.Toggle(id)
	return s.selection
}

// ClearSelection empties the selection
func (s *Service) ClearSelection() {
	s.selection = s.selection.Clear()
}

// Bulk runs a bulk action over the current selection
func (s *Service) Bulk(kind decision.ActionKind) (decision.ActionResult, error) {
	res, err := decision.Bulk(kind, s.selection)
	if err != nil {
		s.logger.Warn("Bulk action rejected", zap.String("action", string(kind)), zap.Error(err))
		return res, err
	}
	s.logger.Info("Bulk action executed",
		zap.String("action", string(kind)),
		zap.String("action_id", res.ID),
		zap.Int("count", res.Count))
	return res, nil
}

// RowAction runs a per-invoice action on a record of the dataset
func (s *Service) RowAction(kind decision.ActionKind, invoiceID string) (decision.ActionResult, error) {
	for _, r := range s.records {
		if r.InvoiceID != invoiceID {
			continue
		}
		res, err := decision.Row(kind, r)
		if err != nil {
			return res, err
		}
		s.logger.Info("Invoice action executed",
			zap.String("action", string(kind)),
			zap.String("invoice_id", invoiceID))
		return res, nil
	}
	return decision.ActionResult{}, fmt.Errorf("%w: %s", ErrInvoiceNotFound, invoiceID)
}

// CacheStats reports memo hits and misses
func (s *Service) CacheStats() (hits, misses int) {
	return s.memo.Stats()
}

func fingerprint(f models.FiltersState) string {
	return fmt.Sprintf("%q|%q|%q|%q|%q|%q|%q|%q|%q|%q",
		f.StartDate, f.EndDate, f.Vendor, f.Plant, f.Material,
		f.POType, f.MatchStatus, f.ExceptionType, f.BlockReason, f.ResponsibleTeam)
}
