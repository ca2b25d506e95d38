package models

// FiltersState is the sparse criteria set driving every panel.
// An empty field is an unset criterion. A state is replaced wholesale
// on every interaction; use Merge to derive a new one.
type FiltersState struct {
	StartDate       string      `json:"startDate,omitempty" mapstructure:"start_date"`
	EndDate         string      `json:"endDate,omitempty" mapstructure:"end_date"`
	Vendor          string      `json:"vendor,omitempty" mapstructure:"vendor"`
	Plant           string      `json:"plant,omitempty" mapstructure:"plant"`
	Material        string      `json:"material,omitempty" mapstructure:"material"`
	POType          string      `json:"poType,omitempty" mapstructure:"po_type"`
	MatchStatus     MatchStatus `json:"matchStatus,omitempty" mapstructure:"match_status"`
	ExceptionType   string      `json:"exceptionType,omitempty" mapstructure:"exception_type"`
	BlockReason     string      `json:"blockReason,omitempty" mapstructure:"block_reason"`
	ResponsibleTeam string      `json:"responsibleTeam,omitempty" mapstructure:"responsible_team"`
}

// IsEmpty reports whether no criterion constrains the result
func (f FiltersState) IsEmpty() bool {
	return f.StartDate == "" && f.EndDate == "" &&
		f.Vendor == "" && f.Plant == "" && f.Material == "" && f.POType == "" &&
		(f.MatchStatus == "" || f.MatchStatus == MatchStatusAll) &&
		f.ExceptionType == "" && f.BlockReason == "" && f.ResponsibleTeam == ""
}

// HasDateRange reports whether either date bound is set
func (f FiltersState) HasDateRange() bool {
	return f.StartDate != "" || f.EndDate != ""
}

// Merge returns a new state where every field set in next overrides f.
// Neither input is modified.
func (f FiltersState) Merge(next FiltersState) FiltersState {
	out := f
	override := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	override(&out.StartDate, next.StartDate)
	override(&out.EndDate, next.EndDate)
	override(&out.Vendor, next.Vendor)
	override(&out.Plant, next.Plant)
	override(&out.Material, next.Material)
	override(&out.POType, next.POType)
	if next.MatchStatus != "" {
		out.MatchStatus = next.MatchStatus
	}
	override(&out.ExceptionType, next.ExceptionType)
	override(&out.BlockReason, next.BlockReason)
	override(&out.ResponsibleTeam, next.ResponsibleTeam)
	return out
}

// FilterOptions holds the distinct selectable values per filter field,
// in first-seen order of the source collection.
type FilterOptions struct {
	Vendors        []string      `json:"vendors"`
	Plants         []string      `json:"plants"`
	Materials      []string      `json:"materials"`
	POTypes        []string      `json:"poTypes"`
	MatchStatuses  []MatchStatus `json:"matchStatuses"`
	ExceptionTypes []string      `json:"exceptionTypes"`
	BlockReasons   []string      `json:"blockReasons"`
	Teams          []string      `json:"teams"`
}

// CollectFilterOptions gathers the distinct non-empty values of every
// filterable field.
func CollectFilterOptions(records []InvoiceRecord) FilterOptions {
	var opts FilterOptions
	seen := make(map[string]map[string]bool)
	add := func(field string, dst *[]string, v string) {
		if v == "" {
			return
		}
		if seen[field] == nil {
			seen[field] = make(map[string]bool)
		}
		if seen[field][v] {
			return
		}
		seen[field][v] = true
		*dst = append(*dst, v)
	}

	var statuses []string
	for _, r := range records {
		add("vendor", &opts.Vendors, r.VendorNumber)
		add("plant", &opts.Plants, r.Plant)
		add("material", &opts.Materials, r.MaterialNumber)
		add("po_type", &opts.POTypes, r.POType)
		add("match_status", &statuses, string(r.MatchStatus))
		add("exception_type", &opts.ExceptionTypes, r.ExceptionType)
		add("block_reason", &opts.BlockReasons, r.BlockReason)
		add("team", &opts.Teams, r.ResponsibleTeam)
	}
	for _, s := range statuses {
		opts.MatchStatuses = append(opts.MatchStatuses, MatchStatus(s))
	}
	return opts
}
