package oracle

import (
	"math"

	"hireboard/internal/domain/talent"
)

// maxCapacityMultiplier caps the queuing penalty so a saturated recruiter
// inflates durations instead of blowing the horizon out entirely.
const maxCapacityMultiplier = 4.0

// CapacityMultiplier converts recruiter utilization into a duration inflation
// factor using the M/M/1-style 1/(1-rho) penalty, capped.
func CapacityMultiplier(utilization float64) float64 {
	if utilization <= 0 {
		return 1
	}
	if utilization >= 1 {
		return maxCapacityMultiplier
	}
	m := 1 / (1 - utilization)
	if m < 1 {
		return 1
	}
	if m > maxCapacityMultiplier {
		return maxCapacityMultiplier
	}
	return m
}

// WithCapacityPenalty returns a copy of the model with every stage duration
// inflated by the multiplier.
func (m PipelineModel) WithCapacityPenalty(multiplier float64) PipelineModel {
	if multiplier <= 1 {
		return m
	}

	out := PipelineModel{
		Stages:      make([]StageSpec, len(m.Stages)),
		SampleDepth: m.SampleDepth,
	}
	for i, stage := range m.Stages {
		stage.Duration = inflate(stage.Duration, multiplier)
		out.Stages[i] = stage
	}
	return out
}

func inflate(spec DurationSpec, multiplier float64) DurationSpec {
	switch spec.Kind {
	case DistConstant:
		spec.Days *= multiplier
	case DistEmpirical:
		buckets := make([]Bucket, len(spec.Buckets))
		for i, b := range spec.Buckets {
			b.Days *= multiplier
			buckets[i] = b
		}
		spec.Buckets = buckets
	case DistLogNormal:
		// Scaling a lognormal by c shifts mu by log(c).
		spec.Mu += math.Log(multiplier)
	}
	return spec
}

// Comparison holds the pipeline-only forecast next to the capacity-aware one.
type Comparison struct {
	Pipeline      Forecast `json:"pipeline"`
	CapacityAware Forecast `json:"capacity_aware"`
	Multiplier    float64  `json:"multiplier"`
	P50DelayDays  float64  `json:"p50_delay_days"`
}

// CompareForecast runs the same seeded simulation twice, with and without the
// capacity penalty, and reports the median delay capacity adds.
func CompareForecast(model PipelineModel, actives []CandidateState, params Params, utilization float64) Comparison {
	multiplier := CapacityMultiplier(utilization)

	pipeline := ForecastRequisition(model, actives, params)
	capacityAware := ForecastRequisition(model.WithCapacityPenalty(multiplier), actives, params)

	return Comparison{
		Pipeline:      pipeline,
		CapacityAware: capacityAware,
		Multiplier:    talent.Round(multiplier, 2),
		P50DelayDays:  talent.Round(capacityAware.P50Days-pipeline.P50Days, 1),
	}
}
