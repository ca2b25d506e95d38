// Package logistics derives the warehouse and delivery indicators shown on
// the logistics panels.
package logistics

import (
	"fmt"
	"math"
	"sort"
)

// Status of a capacity metric card
type Status string

// Status values
const (
	StatusSuccess  Status = "success"
	StatusCritical Status = "critical"
	StatusWarning  Status = "warning"
	StatusInfo     Status = "info"
)

// WarehouseCapacity holds the staffing figures of one depot
type WarehouseCapacity struct {
	Depot                string  `json:"depot" mapstructure:"depot"`
	CurrentStaff         int     `json:"currentStaff" mapstructure:"current_staff"`
	RequiredStaff        int     `json:"requiredStaff" mapstructure:"required_staff"`
	MaxCapacity          int     `json:"maxCapacity" mapstructure:"max_capacity"`
	Carrier100Orders     int     `json:"carrier100Orders" mapstructure:"carrier100_orders"`
	Carrier100Target     int     `json:"carrier100Target" mapstructure:"carrier100_target"`
	DelayPerMissingStaff float64 `json:"delayPerMissingStaff" mapstructure:"delay_per_missing_staff"` // minutes per missing operator
	CriticalThreshold    int     `json:"criticalThreshold" mapstructure:"critical_threshold"`
}

// CapacityMetric is one metric card
type CapacityMetric struct {
	Title  string `json:"title"`
	Value  int    `json:"value"`
	Target int    `json:"target"`
	Unit   string `json:"unit"`
	Status Status `json:"status"`
}

// CapacityReport is the derived warehouse view
type CapacityReport struct {
	Depot              string           `json:"depot"`
	StaffingProgress   float64          `json:"staffingProgress"`
	MissingStaff       int              `json:"missingStaff"`
	EstimatedDelayMins int              `json:"estimatedDelayMins"`
	Utilization        int              `json:"utilization"`
	CriticalAlert      bool             `json:"criticalAlert"`
	Alert              string           `json:"alert,omitempty"`
	Metrics            []CapacityMetric `json:"metrics"`
}

func percentOf(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

// Metrics derives the staffing progress, shortfall and delay impact.
// Zero denominators yield 0 rather than an infinite percentage.
func (w WarehouseCapacity) Metrics() CapacityReport {
	missing := w.RequiredStaff - w.CurrentStaff
	if missing < 0 {
		missing = 0
	}
	delay := int(math.Round(float64(missing) * w.DelayPerMissingStaff))

	rep := CapacityReport{
		Depot:              w.Depot,
		StaffingProgress:   percentOf(w.CurrentStaff, w.RequiredStaff),
		MissingStaff:       missing,
		EstimatedDelayMins: delay,
		Utilization:        int(math.Round(percentOf(w.CurrentStaff, w.MaxCapacity))),
		CriticalAlert:      w.CurrentStaff < w.RequiredStaff,
	}
	if rep.CriticalAlert {
		rep.Alert = fmt.Sprintf("%d operators short - estimated delay +%d minutes per order", missing, delay)
	}

	operators := StatusCritical
	if w.CurrentStaff >= w.RequiredStaff {
		operators = StatusSuccess
	}
	delayStatus := StatusSuccess
	if delay > 0 {
		delayStatus = StatusCritical
	}
	rep.Metrics = []CapacityMetric{
		{Title: "Current Operators", Value: w.CurrentStaff, Target: w.RequiredStaff, Unit: "operators", Status: operators},
		{Title: "Carrier 100 Orders", Value: w.Carrier100Orders, Target: w.Carrier100Target, Unit: "orders", Status: StatusWarning},
		{Title: "Estimated Delay Impact", Value: delay, Target: 0, Unit: "minutes", Status: delayStatus},
		{Title: "Capacity Utilization", Value: rep.Utilization, Target: 100, Unit: "%", Status: StatusInfo},
	}
	return rep
}

// Shift is the staffing of one shift
type Shift struct {
	Name    string `json:"name" mapstructure:"name"`
	Current int    `json:"current" mapstructure:"current"`
	Planned int    `json:"planned" mapstructure:"planned"`
}

// ShiftReport is the staffing verdict for one shift
type ShiftReport struct {
	Shift
	Adequate  bool `json:"adequate"`
	Shortfall int  `json:"shortfall"`
}

// ShiftStatus compares current against planned staffing
func ShiftStatus(current, planned int) (adequate bool, shortfall int) {
	if current >= planned {
		return true, 0
	}
	return false, planned - current
}

// Status reports the staffing verdict of the shift
func (s Shift) Status() ShiftReport {
	ok, short := ShiftStatus(s.Current, s.Planned)
	return ShiftReport{Shift: s, Adequate: ok, Shortfall: short}
}

// Severity classifies a delay or impact
type Severity string

// Severity levels
const (
	SeverityLow      Severity = "Low"
	SeverityMedium   Severity = "Medium"
	SeverityHigh     Severity = "High"
	SeverityCritical Severity = "Critical"
)

var severityRank = map[Severity]int{
	SeverityCritical: 4,
	SeverityHigh:     3,
	SeverityMedium:   2,
	SeverityLow:      1,
}

// DelaySeverity classifies a predicted delay in minutes:
// up to 5 is low, up to 15 medium, anything longer high.
func DelaySeverity(minutes float64) Severity {
	switch {
	case minutes <= 5:
		return SeverityLow
	case minutes <= 15:
		return SeverityMedium
	default:
		return SeverityHigh
	}
}

// ImpactRank orders severities, Critical highest. Unknown levels rank 0.
func ImpactRank(s Severity) int {
	return severityRank[s]
}

// Factor is an external factor affecting deliveries
type Factor struct {
	Name     string   `json:"factor" mapstructure:"factor"`
	Impact   Severity `json:"impact" mapstructure:"impact"`
	Affected string   `json:"affected" mapstructure:"affected"`
	Effect   string   `json:"effect" mapstructure:"effect"`
}

// SortByImpact returns factors ordered from most to least severe,
// keeping input order within a level.
func SortByImpact(factors []Factor) []Factor {
	out := make([]Factor, len(factors))
	copy(out, factors)
	sort.SliceStable(out, func(i, j int) bool {
		return ImpactRank(out[i].Impact) > ImpactRank(out[j].Impact)
	})
	return out
}
