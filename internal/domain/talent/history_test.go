package talent

import (
	"sort"
	"testing"
	"time"
)

var historyBase = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

func day(n int) time.Time {
	return historyBase.AddDate(0, 0, n)
}

func TestBuildStageHistory(t *testing.T) {
	events := []StageEvent{
		{CandidateKey: "c1", ReqKey: "r1", Type: EventCandidateAdded, To: "applied", OccurredAt: day(0)},
		{CandidateKey: "c2", ReqKey: "r1", Type: EventCandidateAdded, To: "applied", OccurredAt: day(0)},
		{CandidateKey: "c3", ReqKey: "r2", Type: EventCandidateAdded, To: "screen", OccurredAt: day(1)},
		{CandidateKey: "c1", ReqKey: "r1", Type: EventStageChanged, From: "applied", To: "screen", OccurredAt: day(3)},
		{CandidateKey: "c2", ReqKey: "r1", Type: EventCandidateDropped, From: "applied", OccurredAt: day(4)},
		{CandidateKey: "c3", ReqKey: "r2", Type: EventStageChanged, From: "screen", To: "rejected", OccurredAt: day(6)},
		{CandidateKey: "c1", ReqKey: "r1", Type: EventStageChanged, From: "screen", To: "hired", OccurredAt: day(10)},
	}

	history := BuildStageHistory(events)

	applied := append([]float64{}, history.Dwells[StageApplied]...)
	sort.Float64s(applied)
	if len(applied) != 2 || applied[0] != 3 || applied[1] != 4 {
		t.Fatalf("applied dwells = %v, want [3 4]", applied)
	}
	screen := append([]float64{}, history.Dwells[StageScreen]...)
	sort.Float64s(screen)
	if len(screen) != 2 || screen[0] != 5 || screen[1] != 7 {
		t.Fatalf("screen dwells = %v, want [5 7]", screen)
	}

	if history.Passes[StageApplied] != 1 || history.Exits[StageApplied] != 1 {
		t.Fatalf("applied passes/exits = %d/%d, want 1/1",
			history.Passes[StageApplied], history.Exits[StageApplied])
	}
	if history.Trials(StageApplied) != 2 {
		t.Fatalf("applied trials = %d, want 2", history.Trials(StageApplied))
	}
	if history.Passes[StageScreen] != 1 || history.Exits[StageScreen] != 1 {
		t.Fatalf("screen passes/exits = %d/%d, want 1/1",
			history.Passes[StageScreen], history.Exits[StageScreen])
	}

	if len(history.DaysToHire) != 1 || history.DaysToHire[0] != 10 {
		t.Fatalf("days to hire = %v, want [10]", history.DaysToHire)
	}
}

func TestBuildStageHistoryIgnoresReqEventsAndUnknownStages(t *testing.T) {
	events := []StageEvent{
		{ReqKey: "r1", Type: EventReqOpened, OccurredAt: day(0)},
		{CandidateKey: "c1", ReqKey: "r1", Type: EventCandidateAdded, To: "applied", OccurredAt: day(0)},
		{CandidateKey: "c1", ReqKey: "r1", Type: EventStageChanged, From: "applied", To: "take_home", OccurredAt: day(2)},
		{ReqKey: "r1", Type: EventReqFilled, OccurredAt: day(5)},
	}

	history := BuildStageHistory(events)
	if len(history.Dwells[StageApplied]) != 0 {
		t.Fatalf("unknown target stage should not record a dwell: %v", history.Dwells[StageApplied])
	}
	if history.Trials(StageApplied) != 0 {
		t.Fatalf("applied trials = %d, want 0", history.Trials(StageApplied))
	}
}

func TestBuildStageHistoryEmpty(t *testing.T) {
	history := BuildStageHistory(nil)
	if len(history.Dwells) != 0 || len(history.DaysToHire) != 0 {
		t.Fatalf("empty history not empty: %+v", history)
	}
}
