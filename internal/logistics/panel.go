package logistics

// DefaultWarehouse returns the figures of the reference depot
func DefaultWarehouse() WarehouseCapacity {
	return WarehouseCapacity{
		Depot:                "Zellik",
		CurrentStaff:         72,
		RequiredStaff:        80,
		MaxCapacity:          120,
		Carrier100Orders:     45,
		Carrier100Target:     50,
		DelayPerMissingStaff: 3.5,
		CriticalThreshold:    80,
	}
}

// DefaultShifts returns the reference shift plan
func DefaultShifts() []Shift {
	return []Shift{
		{Name: "Morning", Current: 28, Planned: 32},
		{Name: "Day", Current: 24, Planned: 28},
		{Name: "Night", Current: 20, Planned: 20},
	}
}

// Panel is the complete logistics view
type Panel struct {
	Capacity CapacityReport `json:"capacity"`
	Shifts   []ShiftReport  `json:"shifts"`
	Factors  []Factor       `json:"factors,omitempty"`
}

// BuildPanel derives the logistics view from the configured figures
func BuildPanel(w WarehouseCapacity, shifts []Shift, factors []Factor) Panel {
	p := Panel{
		Capacity: w.Metrics(),
		Shifts:   make([]ShiftReport, 0, len(shifts)),
		Factors:  SortByImpact(factors),
	}
	for _, s := range shifts {
		p.Shifts = append(p.Shifts, s.Status())
	}
	return p
}
