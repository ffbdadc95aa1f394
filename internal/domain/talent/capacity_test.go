package talent

import (
	"testing"
)

func TestRequisitionWU(t *testing.T) {
	cases := []struct {
		priority Priority
		actives  int
		want     float64
	}{
		{PriorityLow, 1, 0.95},
		{PriorityMedium, 0, 1.0},
		{PriorityHigh, 5, 2.25},
		{PriorityCritical, 12, 3.5}, // pipeline component capped at 2
	}
	for _, tc := range cases {
		req := Requisition{Priority: tc.priority}
		if got := RequisitionWU(req, tc.actives); got != tc.want {
			t.Fatalf("RequisitionWU(%s, %d) = %v, want %v", tc.priority, tc.actives, got, tc.want)
		}
	}
}

func TestCapacityPlanRebalances(t *testing.T) {
	reqs := []Requisition{
		{Key: "r1", Recruiter: "ana", Priority: PriorityMedium, Status: ReqOpen},
		{Key: "r2", Recruiter: "ana", Priority: PriorityMedium, Status: ReqOpen},
		{Key: "r3", Recruiter: "ana", Priority: PriorityMedium, Status: ReqOpen},
		{Key: "r4", Recruiter: "bo", Priority: PriorityMedium, Status: ReqOpen},
	}

	report := CapacityPlan(reqs, nil, 2.0)

	if len(report.Moves) != 1 {
		t.Fatalf("move count = %d, want 1 (%+v)", len(report.Moves), report.Moves)
	}
	move := report.Moves[0]
	if move.From != "ana" || move.To != "bo" || move.WU != 1 {
		t.Fatalf("move = %+v", move)
	}

	if len(report.Loads) != 2 {
		t.Fatalf("load rows = %d, want 2", len(report.Loads))
	}
	for _, load := range report.Loads {
		if load.WU != 2 || load.OpenReqs != 2 {
			t.Fatalf("load after rebalance = %+v, want 2 WU over 2 reqs", load)
		}
		if load.Overloaded {
			t.Fatalf("%s still overloaded after rebalance", load.Recruiter)
		}
		if load.Utilization != 1 {
			t.Fatalf("%s utilization = %v, want 1", load.Recruiter, load.Utilization)
		}
	}
}

func TestCapacityPlanNoMovesWhenBalanced(t *testing.T) {
	reqs := []Requisition{
		{Key: "r1", Recruiter: "ana", Priority: PriorityMedium, Status: ReqOpen},
		{Key: "r2", Recruiter: "bo", Priority: PriorityMedium, Status: ReqOpen},
	}

	report := CapacityPlan(reqs, nil, 8.0)
	if len(report.Moves) != 0 {
		t.Fatalf("moves = %+v, want none", report.Moves)
	}
}

func TestCapacityPlanSingleRecruiterCannotRebalance(t *testing.T) {
	reqs := []Requisition{
		{Key: "r1", Recruiter: "solo", Priority: PriorityCritical, Status: ReqOpen},
		{Key: "r2", Recruiter: "solo", Priority: PriorityCritical, Status: ReqOpen},
	}

	report := CapacityPlan(reqs, nil, 1.0)
	if len(report.Moves) != 0 {
		t.Fatalf("moves = %+v, want none", report.Moves)
	}
	if len(report.Loads) != 1 || !report.Loads[0].Overloaded {
		t.Fatalf("solo load = %+v, want overloaded", report.Loads)
	}
}

func TestRecruiterUtilization(t *testing.T) {
	reqs := []Requisition{
		{Key: "r1", Recruiter: "ana", Priority: PriorityMedium, Status: ReqOpen},
		{Key: "r2", Recruiter: "ana", Priority: PriorityMedium, Status: ReqOpen},
	}

	got := RecruiterUtilization(reqs, nil, 4.0)
	if got["ana"] != 0.5 {
		t.Fatalf("ana utilization = %v, want 0.5", got["ana"])
	}

	if len(RecruiterUtilization(reqs, nil, 0)) != 0 {
		t.Fatalf("zero capacity should yield empty map")
	}
}
