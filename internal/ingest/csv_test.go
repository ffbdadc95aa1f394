package ingest

import (
	"strings"
	"testing"
)

func TestParseRequisitionsCSV(t *testing.T) {
	input := strings.Join([]string{
		"req_key,title,recruiter,priority,status,opened_at,target_date,department",
		"ENG-1,Backend Engineer,dana,High,open,2026-01-05,2026-02-20,Engineering",
		"ENG-2,Data Engineer,erin,medium,filled,2026-01-10T09:30:00Z,,Engineering",
	}, "\n")

	rows, warnings, err := ParseRequisitionsCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseRequisitionsCSV() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("warnings = %v", warnings)
	}
	if len(rows) != 2 {
		t.Fatalf("row count = %d, want 2", len(rows))
	}

	first := rows[0]
	if first.ReqKey != "ENG-1" || first.Title != "Backend Engineer" || first.Department != "Engineering" {
		t.Fatalf("first row = %+v", first)
	}
	if first.Priority != "high" {
		t.Fatalf("priority = %q, want normalized high", first.Priority)
	}
	if first.OpenedAt != "2026-01-05T00:00:00Z" {
		t.Fatalf("opened_at = %q", first.OpenedAt)
	}
	if first.TargetDate == nil || *first.TargetDate != "2026-02-20T00:00:00Z" {
		t.Fatalf("target_date = %v", first.TargetDate)
	}

	second := rows[1]
	if second.OpenedAt != "2026-01-10T09:30:00Z" {
		t.Fatalf("second opened_at = %q", second.OpenedAt)
	}
	if second.TargetDate != nil {
		t.Fatalf("empty target_date should stay nil")
	}
}

func TestParseRequisitionsCSVDuplicateKeepsLast(t *testing.T) {
	input := strings.Join([]string{
		"req_key,title,recruiter,priority,status,opened_at",
		"ENG-1,First Title,dana,low,open,2026-01-05",
		"ENG-1,Second Title,dana,low,open,2026-01-05",
	}, "\n")

	rows, warnings, err := ParseRequisitionsCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseRequisitionsCSV() error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("row count = %d, want 1", len(rows))
	}
	if rows[0].Title != "Second Title" {
		t.Fatalf("title = %q, want last occurrence", rows[0].Title)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "ENG-1") {
		t.Fatalf("warnings = %v", warnings)
	}
}

func TestParseRequisitionsCSVRejectsBadInput(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"missing column", "req_key,title,recruiter,priority,opened_at\nENG-1,T,d,low,2026-01-05"},
		{"empty key", "req_key,title,recruiter,priority,status,opened_at\n ,T,d,low,open,2026-01-05"},
		{"bad priority", "req_key,title,recruiter,priority,status,opened_at\nENG-1,T,d,urgent,open,2026-01-05"},
		{"bad status", "req_key,title,recruiter,priority,status,opened_at\nENG-1,T,d,low,paused,2026-01-05"},
		{"bad date", "req_key,title,recruiter,priority,status,opened_at\nENG-1,T,d,low,open,Jan 5"},
		{"empty file", ""},
	}
	for _, tc := range cases {
		if _, _, err := ParseRequisitionsCSV(strings.NewReader(tc.input)); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}

func TestParseCandidatesCSV(t *testing.T) {
	input := strings.Join([]string{
		"candidate_key,req_key,source,stage,stage_entered_at,active",
		"cand-1,ENG-1,Referral,screen,2026-01-12,",
		"cand-2,ENG-1,linkedin,hired,2026-01-20,",
		"cand-3,ENG-2,agency,onsite,2026-01-18,false",
	}, "\n")

	rows, warnings, err := ParseCandidatesCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseCandidatesCSV() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("warnings = %v", warnings)
	}
	if len(rows) != 3 {
		t.Fatalf("row count = %d", len(rows))
	}

	if rows[0].Source != "referral" {
		t.Fatalf("source = %q, want normalized referral", rows[0].Source)
	}
	if !rows[0].Active {
		t.Fatalf("working-stage candidate should default to active")
	}
	if rows[1].Active {
		t.Fatalf("hired candidate should default to inactive")
	}
	if rows[2].Active {
		t.Fatalf("explicit active=false should win")
	}
}

func TestParseCandidatesCSVRejectsUnknownStage(t *testing.T) {
	input := strings.Join([]string{
		"candidate_key,req_key,source,stage,stage_entered_at",
		"cand-1,ENG-1,referral,phone_screen,2026-01-12",
	}, "\n")

	if _, _, err := ParseCandidatesCSV(strings.NewReader(input)); err == nil {
		t.Fatalf("expected error for unknown stage")
	}
}

func TestParseCandidatesCSVDuplicateKeepsLast(t *testing.T) {
	input := strings.Join([]string{
		"candidate_key,req_key,source,stage,stage_entered_at",
		"cand-1,ENG-1,referral,screen,2026-01-12",
		"cand-1,ENG-1,referral,interview,2026-01-15",
	}, "\n")

	rows, warnings, err := ParseCandidatesCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseCandidatesCSV() error = %v", err)
	}
	if len(rows) != 1 || rows[0].Stage != "interview" {
		t.Fatalf("rows = %+v, want single interview row", rows)
	}
	if len(warnings) != 1 {
		t.Fatalf("warnings = %v", warnings)
	}
}
