package talent

import (
	"time"
)

type StageDwellStats struct {
	Stage   Stage
	Samples int
	P50     float64
	P90     float64
}

type VelocityReport struct {
	FilledReqs int
	MeanTTF    float64
	MedianTTF  float64
	P90TTF     float64
	StageDwell []StageDwellStats
	Trend      string
}

type VelocityParams struct {
	// TrendWindowDays sets the trailing window compared against the window
	// before it when classifying the trend.
	TrendWindowDays int
	AsOf            time.Time
}

// Velocity reports time-to-fill over filled requisitions plus per-stage dwell
// percentiles from the event log.
func Velocity(reqs []Requisition, events []StageEvent, params VelocityParams) VelocityReport {
	var ttf []float64
	var recent, previous []float64

	window := params.TrendWindowDays
	if window <= 0 {
		window = 30
	}
	recentCutoff := params.AsOf.AddDate(0, 0, -window)
	previousCutoff := params.AsOf.AddDate(0, 0, -2*window)

	for _, req := range reqs {
		if req.Status != ReqFilled || req.FilledAt == nil {
			continue
		}
		days := DaysBetween(req.OpenedAt, *req.FilledAt)
		if days < 0 {
			continue
		}
		ttf = append(ttf, days)

		switch {
		case !req.FilledAt.Before(recentCutoff):
			recent = append(recent, days)
		case !req.FilledAt.Before(previousCutoff):
			previous = append(previous, days)
		}
	}

	history := BuildStageHistory(events)
	dwellStats := make([]StageDwellStats, 0, len(PipelineStages))
	for _, stage := range PipelineStages {
		samples := history.Dwells[stage]
		if len(samples) == 0 {
			continue
		}
		dwellStats = append(dwellStats, StageDwellStats{
			Stage:   stage,
			Samples: len(samples),
			P50:     Round(Percentile(samples, 50), 1),
			P90:     Round(Percentile(samples, 90), 1),
		})
	}

	return VelocityReport{
		FilledReqs: len(ttf),
		MeanTTF:    Round(Mean(ttf), 1),
		MedianTTF:  Round(Median(ttf), 1),
		P90TTF:     Round(Percentile(ttf, 90), 1),
		StageDwell: dwellStats,
		Trend:      classifyTTFTrend(recent, previous),
	}
}

// classifyTTFTrend compares trailing-window median TTF against the prior
// window; a 10% swing either way counts as movement.
func classifyTTFTrend(recent, previous []float64) string {
	if len(recent) == 0 || len(previous) == 0 {
		return "insufficient_data"
	}

	recentMedian := Median(recent)
	previousMedian := Median(previous)
	if previousMedian == 0 {
		return "insufficient_data"
	}

	change := (recentMedian - previousMedian) / previousMedian
	switch {
	case change <= -0.1:
		return "improving"
	case change >= 0.1:
		return "slowing"
	default:
		return "stable"
	}
}
