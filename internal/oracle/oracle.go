// Package oracle is the Monte Carlo hiring forecaster: a seeded simulator
// that races a requisition's active candidates through the remaining funnel
// stages and reads completion percentiles off the empirical distribution.
package oracle

import (
	"math/rand"
	"sort"
	"time"

	"hireboard/internal/domain/talent"
)

// FallbackDays is the sentinel horizon reported when the simulation has
// nothing to work with.
const FallbackDays = 365

const (
	ConfidenceLow    = "LOW"
	ConfidenceMedium = "MEDIUM"
	ConfidenceHigh   = "HIGH"
)

// CandidateState places one active candidate at a working stage.
type CandidateState struct {
	Key   string
	Stage talent.Stage
}

// Params controls one forecast run. The same seed and params always produce
// the same result.
type Params struct {
	Trials          int
	HorizonDays     int
	Seed            int64
	AsOf            time.Time
	ArrivalsPerWeek float64
}

type Forecast struct {
	P10Days    float64   `json:"p10_days"`
	P50Days    float64   `json:"p50_days"`
	P90Days    float64   `json:"p90_days"`
	P10Date    time.Time `json:"p10_date"`
	P50Date    time.Time `json:"p50_date"`
	P90Date    time.Time `json:"p90_date"`
	Trials     int       `json:"trials"`
	Successes  int       `json:"successes"`
	HitRate    float64   `json:"hit_rate"`
	Confidence string    `json:"confidence"`
	Fallback   bool      `json:"fallback"`
}

// ForecastRequisition runs the first-to-hire race: every trial simulates each
// active candidate's remaining journey (plus an optional synthetic arrival
// stream) and keeps the earliest hire. Percentiles come from sorted-array
// indexing over the successful trials.
func ForecastRequisition(model PipelineModel, actives []CandidateState, params Params) Forecast {
	params = normalizeParams(params)

	if len(actives) == 0 && params.ArrivalsPerWeek <= 0 {
		return fallbackForecast(model, params)
	}

	rng := rand.New(rand.NewSource(params.Seed))

	startIdx := make([]int, 0, len(actives))
	for _, cand := range actives {
		idx := stageIdx(model, cand.Stage)
		if idx < 0 {
			continue
		}
		startIdx = append(startIdx, idx)
	}
	if len(startIdx) == 0 && params.ArrivalsPerWeek <= 0 {
		return fallbackForecast(model, params)
	}

	horizon := float64(params.HorizonDays)
	outcomes := make([]float64, 0, params.Trials)
	for trial := 0; trial < params.Trials; trial++ {
		best := horizon + 1

		for _, idx := range startIdx {
			days, hired := simulateJourney(model, idx, horizon, rng)
			if hired && days < best {
				best = days
			}
		}

		if params.ArrivalsPerWeek > 0 {
			gap := 7 / params.ArrivalsPerWeek
			for arrival := gap; arrival <= horizon; arrival += gap {
				days, hired := simulateJourney(model, 0, horizon-arrival, rng)
				if hired && arrival+days < best {
					best = arrival + days
				}
			}
		}

		if best <= horizon {
			outcomes = append(outcomes, best)
		}
	}

	if len(outcomes) == 0 {
		return fallbackForecast(model, params)
	}

	sort.Float64s(outcomes)
	p10 := indexPercentile(outcomes, 10)
	p50 := indexPercentile(outcomes, 50)
	p90 := indexPercentile(outcomes, 90)
	hitRate := float64(len(outcomes)) / float64(params.Trials)

	return Forecast{
		P10Days:    talent.Round(p10, 1),
		P50Days:    talent.Round(p50, 1),
		P90Days:    talent.Round(p90, 1),
		P10Date:    addDays(params.AsOf, p10),
		P50Date:    addDays(params.AsOf, p50),
		P90Date:    addDays(params.AsOf, p90),
		Trials:     params.Trials,
		Successes:  len(outcomes),
		HitRate:    talent.Round(hitRate, 3),
		Confidence: confidence(hitRate, model.SampleDepth),
	}
}

// simulateJourney walks one candidate from a stage index through the rest of
// the funnel: a Bernoulli pass trial then a sampled duration per stage.
// Failure at any stage ends the journey unsuccessfully.
func simulateJourney(model PipelineModel, startIdx int, horizon float64, rng *rand.Rand) (float64, bool) {
	total := 0.0
	for idx := startIdx; idx < len(model.Stages); idx++ {
		stage := model.Stages[idx]
		if rng.Float64() >= stage.PassRate {
			// Duration is still consumed so the RNG stream stays aligned
			// across pass and fail outcomes.
			stage.Duration.Sample(rng)
			return 0, false
		}
		total += stage.Duration.Sample(rng)
		if total > horizon {
			return 0, false
		}
	}
	return total, true
}

func fallbackForecast(model PipelineModel, params Params) Forecast {
	date := addDays(params.AsOf, FallbackDays)
	return Forecast{
		P10Days:    FallbackDays,
		P50Days:    FallbackDays,
		P90Days:    FallbackDays,
		P10Date:    date,
		P50Date:    date,
		P90Date:    date,
		Trials:     params.Trials,
		Confidence: ConfidenceLow,
		Fallback:   true,
	}
}

func normalizeParams(params Params) Params {
	if params.Trials <= 0 {
		params.Trials = 1000
	}
	if params.HorizonDays <= 0 {
		params.HorizonDays = FallbackDays
	}
	if params.AsOf.IsZero() {
		params.AsOf = time.Now().UTC()
	}
	return params
}

func confidence(hitRate float64, sampleDepth int) string {
	switch {
	case hitRate < 0.2 || sampleDepth < 10:
		return ConfidenceLow
	case hitRate >= 0.6 && sampleDepth >= 30:
		return ConfidenceHigh
	default:
		return ConfidenceMedium
	}
}

func stageIdx(model PipelineModel, stage talent.Stage) int {
	for i, s := range model.Stages {
		if s.Stage == stage {
			return i
		}
	}
	return -1
}

// indexPercentile reads a percentile off an already-sorted slice.
func indexPercentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	pos := int(p / 100 * float64(len(sorted)-1))
	if pos < 0 {
		pos = 0
	}
	if pos >= len(sorted) {
		pos = len(sorted) - 1
	}
	return sorted[pos]
}

func addDays(from time.Time, days float64) time.Time {
	return from.Add(time.Duration(days * 24 * float64(time.Hour)))
}
