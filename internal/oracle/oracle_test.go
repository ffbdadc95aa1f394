package oracle

import (
	"testing"
	"time"

	"hireboard/internal/domain/talent"
)

func testModel() PipelineModel {
	return PipelineModel{
		SampleDepth: 50,
		Stages: []StageSpec{
			{Stage: talent.StageApplied, PassRate: 0.5, Duration: DurationSpec{Kind: DistConstant, Days: 3}},
			{Stage: talent.StageScreen, PassRate: 0.6, Duration: DurationSpec{Kind: DistConstant, Days: 5}},
			{Stage: talent.StageInterview, PassRate: 0.6, Duration: DurationSpec{Kind: DistLogNormal, Mu: 1.9, Sigma: 0.5}},
			{Stage: talent.StageOnsite, PassRate: 0.7, Duration: DurationSpec{Kind: DistConstant, Days: 7}},
			{Stage: talent.StageOffer, PassRate: 0.8, Duration: DurationSpec{Kind: DistConstant, Days: 4}},
		},
	}
}

func testParams(seed int64) Params {
	return Params{
		Trials:      2000,
		HorizonDays: 365,
		Seed:        seed,
		AsOf:        time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestForecastSeedDeterminism(t *testing.T) {
	model := testModel()
	actives := []CandidateState{
		{Key: "c1", Stage: talent.StageApplied},
		{Key: "c2", Stage: talent.StageScreen},
		{Key: "c3", Stage: talent.StageOnsite},
	}

	first := ForecastRequisition(model, actives, testParams(42))
	second := ForecastRequisition(model, actives, testParams(42))
	if first != second {
		t.Fatalf("same seed produced different forecasts:\n%+v\n%+v", first, second)
	}

	other := ForecastRequisition(model, actives, testParams(43))
	if first == other {
		t.Fatalf("different seeds produced identical forecasts: %+v", first)
	}
}

func TestForecastPercentileMonotonicity(t *testing.T) {
	model := testModel()
	actives := []CandidateState{
		{Key: "c1", Stage: talent.StageApplied},
		{Key: "c2", Stage: talent.StageInterview},
	}

	for seed := int64(1); seed <= 20; seed++ {
		f := ForecastRequisition(model, actives, testParams(seed))
		if f.Fallback {
			continue
		}
		if f.P10Days > f.P50Days || f.P50Days > f.P90Days {
			t.Fatalf("seed %d: percentiles not monotone: p10=%v p50=%v p90=%v",
				seed, f.P10Days, f.P50Days, f.P90Days)
		}
		if f.P10Date.After(f.P50Date) || f.P50Date.After(f.P90Date) {
			t.Fatalf("seed %d: percentile dates not monotone", seed)
		}
	}
}

func TestForecastNoActivesFallsBack(t *testing.T) {
	f := ForecastRequisition(testModel(), nil, testParams(7))

	if !f.Fallback {
		t.Fatalf("expected fallback forecast, got %+v", f)
	}
	if f.P10Days != FallbackDays || f.P50Days != FallbackDays || f.P90Days != FallbackDays {
		t.Fatalf("fallback percentiles = %v/%v/%v, want %d each", f.P10Days, f.P50Days, f.P90Days, FallbackDays)
	}
	if f.Confidence != ConfidenceLow {
		t.Fatalf("fallback confidence = %q, want %q", f.Confidence, ConfidenceLow)
	}
	if f.Successes != 0 {
		t.Fatalf("fallback successes = %d", f.Successes)
	}
}

func TestForecastZeroSuccessesFallsBack(t *testing.T) {
	// Pass rates of zero mean no trial can ever reach hired.
	model := testModel()
	for i := range model.Stages {
		model.Stages[i].PassRate = 0
	}

	f := ForecastRequisition(model, []CandidateState{{Key: "c1", Stage: talent.StageApplied}}, testParams(7))
	if !f.Fallback {
		t.Fatalf("expected fallback when no trial succeeds, got %+v", f)
	}
	if f.P50Days != FallbackDays || f.Confidence != ConfidenceLow {
		t.Fatalf("fallback = %v days / %s, want %d / %s", f.P50Days, f.Confidence, FallbackDays, ConfidenceLow)
	}
}

func TestForecastArrivalStreamWithoutActives(t *testing.T) {
	params := testParams(11)
	params.ArrivalsPerWeek = 2

	f := ForecastRequisition(testModel(), nil, params)
	if f.Fallback {
		t.Fatalf("arrival stream should produce hires without actives")
	}
	if f.Successes == 0 {
		t.Fatalf("expected some successful trials")
	}
}

func TestForecastDatesAnchorOnAsOf(t *testing.T) {
	params := testParams(3)
	f := ForecastRequisition(testModel(), []CandidateState{{Key: "c1", Stage: talent.StageOffer}}, params)
	if f.Fallback {
		t.Fatalf("unexpected fallback")
	}

	wantEarliest := params.AsOf
	if f.P10Date.Before(wantEarliest) {
		t.Fatalf("p10 date %v before as-of %v", f.P10Date, wantEarliest)
	}
	if f.P90Date.After(params.AsOf.AddDate(0, 0, params.HorizonDays+1)) {
		t.Fatalf("p90 date %v beyond horizon", f.P90Date)
	}
}

func TestConfidenceBands(t *testing.T) {
	cases := []struct {
		name    string
		hitRate float64
		depth   int
		want    string
	}{
		{"low hit rate", 0.1, 100, ConfidenceLow},
		{"shallow history", 0.9, 5, ConfidenceLow},
		{"high", 0.7, 40, ConfidenceHigh},
		{"medium hit rate", 0.4, 40, ConfidenceMedium},
		{"medium depth", 0.7, 20, ConfidenceMedium},
	}
	for _, tc := range cases {
		if got := confidence(tc.hitRate, tc.depth); got != tc.want {
			t.Fatalf("%s: confidence(%v, %d) = %q, want %q", tc.name, tc.hitRate, tc.depth, got, tc.want)
		}
	}
}

func TestIndexPercentile(t *testing.T) {
	sorted := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	if got := indexPercentile(sorted, 0); got != 1 {
		t.Fatalf("p0 = %v", got)
	}
	if got := indexPercentile(sorted, 50); got != 5 {
		t.Fatalf("p50 = %v", got)
	}
	if got := indexPercentile(sorted, 100); got != 10 {
		t.Fatalf("p100 = %v", got)
	}
	if got := indexPercentile(nil, 50); got != 0 {
		t.Fatalf("empty p50 = %v", got)
	}
}
