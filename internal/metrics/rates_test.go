package metrics

import (
	"testing"

	"github.com/garyjia/p2p-dashboard/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestRate(t *testing.T) {
	tests := []struct {
		name         string
		count, total int
		want         int
	}{
		{"zero total", 3, 0, 0},
		{"empty", 0, 0, 0},
		{"third", 1, 3, 33},
		{"two thirds", 2, 3, 67},
		{"half rounds up", 1, 8, 13},
		{"five eighths", 5, 8, 63},
		{"all", 4, 4, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Rate(tt.count, tt.total))
		})
	}
}

func TestRoundMean(t *testing.T) {
	assert.Equal(t, 0, RoundMean(0, 0))
	assert.Equal(t, 30, RoundMean(30, 0))
	assert.Equal(t, 38, RoundMean(75, 2))
	assert.Equal(t, 35, RoundMean(105, 3))
}

func TestStatusRates(t *testing.T) {
	t.Run("empty collection", func(t *testing.T) {
		b := StatusRates(nil)
		assert.Equal(t, StatusBreakdown{}, b)
	})

	t.Run("scenario", func(t *testing.T) {
		b := StatusRates(scenarioRecords())
		assert.Equal(t, 10, b.Total)
		assert.Equal(t, 6, b.Pass)
		assert.Equal(t, 2, b.TolerancePass)
		assert.Equal(t, 2, b.Fail)
		assert.Equal(t, 60, b.PassRate)
		assert.Equal(t, 20, b.TolerancePassRate)
		assert.Equal(t, 20, b.FailRate)
	})

	t.Run("missing status counts toward total", func(t *testing.T) {
		b := StatusRates([]models.InvoiceRecord{
			rec("A", "V1", models.MatchStatusFail, ""),
			rec("B", "V1", "", ""),
		})
		assert.Equal(t, 50, b.FailRate)
	})
}

func TestAverageDuration(t *testing.T) {
	withDates := func(gr, match string) models.InvoiceRecord {
		return models.InvoiceRecord{GRDate: gr, MatchDate: match}
	}

	tests := []struct {
		name    string
		records []models.InvoiceRecord
		want    string
	}{
		{"empty", nil, NoDuration},
		{"no complete pair", []models.InvoiceRecord{withDates("2024-01-01", ""), withDates("", "2024-01-02")}, NoDuration},
		{"mean over complete pairs only", []models.InvoiceRecord{
			withDates("2024-01-01", "2024-01-02"),
			withDates("2024-01-01", "2024-01-03"),
			withDates("2024-01-01", ""),
		}, "1.5"},
		{"negative span kept", []models.InvoiceRecord{withDates("2024-01-10", "2024-01-05")}, "-5.0"},
		{"unparseable ignored", []models.InvoiceRecord{
			withDates("not a date", "2024-01-05"),
			withDates("2024-01-01", "2024-01-05"),
		}, "4.0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AverageDuration(tt.records, models.GRDate, models.MatchDate))
		})
	}
}

func TestAverageScore(t *testing.T) {
	assert.Zero(t, AverageScore(nil))
	assert.InDelta(t, 0.5, AverageScore([]models.InvoiceRecord{{ConfidenceScore: 1}, {}}), 1e-9)
}

func TestFormatScorePercent(t *testing.T) {
	assert.Equal(t, "0%", FormatScorePercent(0))
	assert.Equal(t, "93%", FormatScorePercent(0.925))
	assert.Equal(t, "100%", FormatScorePercent(1))
}
