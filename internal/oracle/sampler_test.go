package oracle

import (
	"math/rand"
	"testing"
)

func TestEmpiricalSampleStaysInBuckets(t *testing.T) {
	spec := DurationSpec{
		Kind: DistEmpirical,
		Buckets: []Bucket{
			{Days: 2, Weight: 1},
			{Days: 5, Weight: 3},
			{Days: 11, Weight: 0.5},
		},
	}
	allowed := map[float64]bool{2: true, 5: true, 11: true}

	rng := rand.New(rand.NewSource(99))
	for i := 0; i < 10000; i++ {
		got := spec.Sample(rng)
		if !allowed[got] {
			t.Fatalf("sample %d: got %v, not a bucket value", i, got)
		}
	}
}

func TestEmpiricalSampleRespectsWeights(t *testing.T) {
	spec := DurationSpec{
		Kind: DistEmpirical,
		Buckets: []Bucket{
			{Days: 1, Weight: 9},
			{Days: 100, Weight: 1},
		},
	}

	rng := rand.New(rand.NewSource(5))
	heavy := 0
	const n = 20000
	for i := 0; i < n; i++ {
		if spec.Sample(rng) == 1 {
			heavy++
		}
	}
	ratio := float64(heavy) / n
	if ratio < 0.85 || ratio > 0.95 {
		t.Fatalf("heavy bucket ratio = %v, want about 0.9", ratio)
	}
}

func TestConstantSample(t *testing.T) {
	spec := DurationSpec{Kind: DistConstant, Days: 4.5}
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		if got := spec.Sample(rng); got != 4.5 {
			t.Fatalf("constant sample = %v", got)
		}
	}
}

func TestLogNormalSamplePositive(t *testing.T) {
	spec := DurationSpec{Kind: DistLogNormal, Mu: 1.6, Sigma: 0.5}
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 1000; i++ {
		if got := spec.Sample(rng); got <= 0 {
			t.Fatalf("lognormal sample = %v, want > 0", got)
		}
	}
}

func TestDurationSpecValidate(t *testing.T) {
	cases := []struct {
		name    string
		spec    DurationSpec
		wantErr bool
	}{
		{"constant ok", DurationSpec{Kind: DistConstant, Days: 3}, false},
		{"constant negative", DurationSpec{Kind: DistConstant, Days: -1}, true},
		{"empirical ok", DurationSpec{Kind: DistEmpirical, Buckets: []Bucket{{Days: 1, Weight: 1}}}, false},
		{"empirical empty", DurationSpec{Kind: DistEmpirical}, true},
		{"empirical zero weights", DurationSpec{Kind: DistEmpirical, Buckets: []Bucket{{Days: 1, Weight: 0}}}, true},
		{"lognormal ok", DurationSpec{Kind: DistLogNormal, Mu: 1, Sigma: 0.5}, false},
		{"lognormal bad sigma", DurationSpec{Kind: DistLogNormal, Mu: 1, Sigma: -0.1}, true},
		{"unknown kind", DurationSpec{Kind: "weibull"}, true},
	}
	for _, tc := range cases {
		err := tc.spec.Validate()
		if (err != nil) != tc.wantErr {
			t.Fatalf("%s: Validate() error = %v, wantErr %v", tc.name, err, tc.wantErr)
		}
	}
}
