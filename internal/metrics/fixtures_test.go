package metrics

import (
	"github.com/garyjia/p2p-dashboard/internal/models"
)

func rec(id, vendor string, status models.MatchStatus, matchDate string) models.InvoiceRecord {
	return models.InvoiceRecord{
		InvoiceID:    id,
		VendorNumber: vendor,
		MatchStatus:  status,
		MatchDate:    matchDate,
	}
}

// scenarioRecords has 6 PASS, 2 TOLERANCE_PASS and 2 FAIL across vendors
// V1 and V2, matched in January and February 2024. V1 holds 6 records of
// which 2 failed.
func scenarioRecords() []models.InvoiceRecord {
	records := []models.InvoiceRecord{
		rec("INV-01", "V1", models.MatchStatusPass, "2024-01-05"),
		rec("INV-02", "V1", models.MatchStatusPass, "2024-01-10"),
		rec("INV-03", "V1", models.MatchStatusPass, "2024-02-03"),
		rec("INV-04", "V1", models.MatchStatusTolerancePass, "2024-02-11"),
		rec("INV-05", "V1", models.MatchStatusFail, "2024-01-20"),
		rec("INV-06", "V1", models.MatchStatusFail, "2024-02-25"),
		rec("INV-07", "V2", models.MatchStatusPass, "2024-01-07"),
		rec("INV-08", "V2", models.MatchStatusPass, "2024-02-08"),
		rec("INV-09", "V2", models.MatchStatusPass, "2024-02-14"),
		rec("INV-10", "V2", models.MatchStatusTolerancePass, "2024-01-30"),
	}
	records[3].TolerancePassFlag = true
	records[9].TolerancePassFlag = true
	return records
}

func labels(dist []models.CategoryCount) []string {
	out := make([]string, 0, len(dist))
	for _, c := range dist {
		out = append(out, c.Label)
	}
	return out
}

func periods(points []models.TrendPoint) []string {
	out := make([]string, 0, len(points))
	for _, p := range points {
		out = append(out, p.Period)
	}
	return out
}

func kpi(kpis []models.KPI, label string) string {
	for _, k := range kpis {
		if k.Label == label {
			return k.Value
		}
	}
	return ""
}
