package ingest

import (
	"testing"

	"hireboard/internal/ports"
)

func diffFixture() (DiffInput, DiffInput) {
	prev := DiffInput{
		Snapshot: ports.Snapshot{SnapshotID: "snap-1", TakenAt: "2026-01-10T00:00:00Z"},
		Requisitions: []ports.RequisitionRow{
			{ReqKey: "ENG-1", Status: "open"},
			{ReqKey: "ENG-2", Status: "open"},
			{ReqKey: "ENG-3", Status: "cancelled"},
		},
		Candidates: []ports.CandidateRow{
			{CandidateKey: "c1", ReqKey: "ENG-1", Stage: "applied"},
			{CandidateKey: "c2", ReqKey: "ENG-1", Stage: "screen"},
		},
	}
	curr := DiffInput{
		Snapshot: ports.Snapshot{SnapshotID: "snap-2", TakenAt: "2026-01-17T00:00:00Z"},
		Requisitions: []ports.RequisitionRow{
			{ReqKey: "ENG-1", Status: "filled"},
			{ReqKey: "ENG-2", Status: "open"},
			{ReqKey: "ENG-3", Status: "open"},
			{ReqKey: "ENG-4", Status: "open"},
		},
		Candidates: []ports.CandidateRow{
			{CandidateKey: "c1", ReqKey: "ENG-1", Stage: "hired"},
			{CandidateKey: "c3", ReqKey: "ENG-2", Stage: "applied"},
		},
	}
	return prev, curr
}

func TestDiffSnapshots(t *testing.T) {
	prev, curr := diffFixture()
	events := DiffSnapshots(prev, curr)

	want := []struct {
		eventType    string
		reqKey       string
		candidateKey string
		from         string
		to           string
	}{
		{"req_filled", "ENG-1", "", "open", "filled"},
		{"req_reopened", "ENG-3", "", "cancelled", "open"},
		{"req_opened", "ENG-4", "", "", "open"},
		{"stage_changed", "ENG-1", "c1", "applied", "hired"},
		{"candidate_added", "ENG-2", "c3", "", "applied"},
		{"candidate_dropped", "ENG-1", "c2", "screen", ""},
	}

	if len(events) != len(want) {
		t.Fatalf("event count = %d, want %d: %+v", len(events), len(want), events)
	}
	for i, w := range want {
		got := events[i]
		if got.EventType != w.eventType || got.ReqKey != w.reqKey || got.CandidateKey != w.candidateKey ||
			got.FromValue != w.from || got.ToValue != w.to {
			t.Fatalf("event %d = %+v, want %+v", i, got, w)
		}
		if got.OccurredAt != curr.Snapshot.TakenAt {
			t.Fatalf("event %d occurred_at = %q, want snapshot taken_at", i, got.OccurredAt)
		}
		if got.FromSnapshotID != "snap-1" || got.ToSnapshotID != "snap-2" {
			t.Fatalf("event %d snapshot ids = %q/%q", i, got.FromSnapshotID, got.ToSnapshotID)
		}
	}
}

func TestDiffSnapshotsSelfDiffEmpty(t *testing.T) {
	_, curr := diffFixture()
	if events := DiffSnapshots(curr, curr); len(events) != 0 {
		t.Fatalf("self diff produced %+v", events)
	}
}

func TestDiffSnapshotsEmptyPrevious(t *testing.T) {
	_, curr := diffFixture()
	prev := DiffInput{Snapshot: ports.Snapshot{SnapshotID: "", TakenAt: ""}}

	events := DiffSnapshots(prev, curr)
	// Every requisition opens and every candidate is added.
	opened, added := 0, 0
	for _, event := range events {
		switch event.EventType {
		case "req_opened":
			opened++
		case "candidate_added":
			added++
		default:
			t.Fatalf("unexpected event %+v against empty previous", event)
		}
	}
	if opened != 4 || added != 2 {
		t.Fatalf("opened/added = %d/%d, want 4/2", opened, added)
	}
}

func TestDiffSnapshotsHoldTransitionsSilent(t *testing.T) {
	prev := DiffInput{
		Snapshot:     ports.Snapshot{SnapshotID: "s1", TakenAt: "2026-01-10T00:00:00Z"},
		Requisitions: []ports.RequisitionRow{{ReqKey: "ENG-1", Status: "open"}},
	}
	curr := DiffInput{
		Snapshot:     ports.Snapshot{SnapshotID: "s2", TakenAt: "2026-01-17T00:00:00Z"},
		Requisitions: []ports.RequisitionRow{{ReqKey: "ENG-1", Status: "on_hold"}},
	}

	if events := DiffSnapshots(prev, curr); len(events) != 0 {
		t.Fatalf("open -> on_hold should not emit events, got %+v", events)
	}
}
