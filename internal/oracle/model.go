package oracle

import (
	"math"

	"hireboard/internal/domain/talent"
)

// StageSpec is one funnel stage as the simulator sees it: a Bernoulli pass
// rate and a duration distribution.
type StageSpec struct {
	Stage    talent.Stage
	PassRate float64
	Duration DurationSpec
}

// PipelineModel is the full stage sequence plus how much history backs it.
type PipelineModel struct {
	Stages      []StageSpec
	SampleDepth int
}

// ModelOptions tunes how observed history is turned into a model.
type ModelOptions struct {
	// PriorStrength is the pseudo-trial count k in the shrinkage formula.
	PriorStrength float64
	// MinDwellSamples is the observation count below which a stage falls back
	// to its lognormal default instead of an empirical distribution.
	MinDwellSamples int
}

// Default pass-rate priors per stage; thin samples shrink toward these.
var defaultPassPrior = map[talent.Stage]float64{
	talent.StageApplied:   0.40,
	talent.StageScreen:    0.45,
	talent.StageInterview: 0.50,
	talent.StageOnsite:    0.50,
	talent.StageOffer:     0.80,
}

// Default lognormal dwell parameters per stage (log of median days).
var defaultDwell = map[talent.Stage]DurationSpec{
	talent.StageApplied:   {Kind: DistLogNormal, Mu: math.Log(3), Sigma: 0.6},
	talent.StageScreen:    {Kind: DistLogNormal, Mu: math.Log(5), Sigma: 0.6},
	talent.StageInterview: {Kind: DistLogNormal, Mu: math.Log(7), Sigma: 0.5},
	talent.StageOnsite:    {Kind: DistLogNormal, Mu: math.Log(7), Sigma: 0.5},
	talent.StageOffer:     {Kind: DistLogNormal, Mu: math.Log(5), Sigma: 0.4},
}

// ShrinkRate applies Bayesian shrinkage toward a prior:
// (successes + k*prior) / (trials + k). With no trials the prior wins
// outright; with many trials the observed rate dominates.
func ShrinkRate(successes, trials int, prior, strength float64) float64 {
	if strength < 0 {
		strength = 0
	}
	denominator := float64(trials) + strength
	if denominator == 0 {
		return prior
	}
	return (float64(successes) + strength*prior) / denominator
}

// DeriveModel builds a pipeline model from observed stage history, shrinking
// conversion rates and preferring empirical dwell distributions where the
// sample is deep enough.
func DeriveModel(history talent.StageHistory, opts ModelOptions) PipelineModel {
	if opts.PriorStrength <= 0 {
		opts.PriorStrength = 10
	}
	if opts.MinDwellSamples <= 0 {
		opts.MinDwellSamples = 5
	}

	model := PipelineModel{Stages: make([]StageSpec, 0, len(talent.PipelineStages))}
	for _, stage := range talent.PipelineStages {
		prior := defaultPassPrior[stage]
		passRate := ShrinkRate(history.Passes[stage], history.Trials(stage), prior, opts.PriorStrength)

		duration := defaultDwell[stage]
		dwells := history.Dwells[stage]
		if len(dwells) >= opts.MinDwellSamples {
			duration = empiricalFromDwells(dwells)
		}
		model.SampleDepth += len(dwells)

		model.Stages = append(model.Stages, StageSpec{
			Stage:    stage,
			PassRate: passRate,
			Duration: duration,
		})
	}

	return model
}

// empiricalFromDwells buckets observed dwell days by whole-day value.
func empiricalFromDwells(dwells []float64) DurationSpec {
	weights := make(map[float64]float64)
	for _, d := range dwells {
		day := math.Round(d)
		if day < 0 {
			continue
		}
		weights[day]++
	}

	buckets := make([]Bucket, 0, len(weights))
	for day := 0.0; day <= maxKey(weights); day++ {
		if w, ok := weights[day]; ok {
			buckets = append(buckets, Bucket{Days: day, Weight: w})
		}
	}

	return DurationSpec{Kind: DistEmpirical, Buckets: buckets}
}

func maxKey(weights map[float64]float64) float64 {
	max := 0.0
	for k := range weights {
		if k > max {
			max = k
		}
	}
	return max
}
