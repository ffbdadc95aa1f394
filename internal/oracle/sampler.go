package oracle

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

// DistKind selects how a stage duration is sampled.
type DistKind string

const (
	DistConstant  DistKind = "constant"
	DistEmpirical DistKind = "empirical"
	DistLogNormal DistKind = "lognormal"
)

// Bucket is one observed duration value with a sampling weight.
type Bucket struct {
	Days   float64
	Weight float64
}

// DurationSpec describes the duration distribution of one stage.
type DurationSpec struct {
	Kind    DistKind
	Days    float64  // constant
	Buckets []Bucket // empirical
	Mu      float64  // lognormal: mean of log-days
	Sigma   float64  // lognormal: stddev of log-days
}

func (s DurationSpec) Validate() error {
	switch s.Kind {
	case DistConstant:
		if s.Days < 0 {
			return errors.New("constant duration must be >= 0")
		}
	case DistEmpirical:
		if len(s.Buckets) == 0 {
			return errors.New("empirical duration needs at least one bucket")
		}
		total := 0.0
		for _, b := range s.Buckets {
			if b.Weight < 0 || b.Days < 0 {
				return errors.New("empirical bucket days and weight must be >= 0")
			}
			total += b.Weight
		}
		if total <= 0 {
			return errors.New("empirical bucket weights must sum above zero")
		}
	case DistLogNormal:
		if s.Sigma < 0 {
			return errors.New("lognormal sigma must be >= 0")
		}
	default:
		return fmt.Errorf("unknown duration kind %q", s.Kind)
	}
	return nil
}

// Sample draws one duration in days. Empirical sampling only ever returns a
// day value present in the configured buckets.
func (s DurationSpec) Sample(rng *rand.Rand) float64 {
	switch s.Kind {
	case DistConstant:
		return s.Days
	case DistEmpirical:
		total := 0.0
		for _, b := range s.Buckets {
			total += b.Weight
		}
		if total <= 0 {
			return 0
		}
		pick := rng.Float64() * total
		for _, b := range s.Buckets {
			pick -= b.Weight
			if pick <= 0 {
				return b.Days
			}
		}
		return s.Buckets[len(s.Buckets)-1].Days
	case DistLogNormal:
		return math.Exp(s.Mu + s.Sigma*rng.NormFloat64())
	default:
		return 0
	}
}
