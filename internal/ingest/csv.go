// Package ingest parses pipeline CSV exports into snapshot rows and derives
// change events by diffing successive snapshots.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"hireboard/internal/domain/talent"
	"hireboard/internal/errs"
	"hireboard/internal/ports"
)

// ParsedSnapshot is the outcome of reading one requisitions/candidates CSV
// pair, before any snapshot ID is assigned.
type ParsedSnapshot struct {
	Requisitions []ports.RequisitionRow
	Candidates   []ports.CandidateRow
	Warnings     []string
}

var requisitionColumns = []string{"req_key", "title", "recruiter", "priority", "status", "opened_at"}
var candidateColumns = []string{"candidate_key", "req_key", "source", "stage", "stage_entered_at"}

// ParseRequisitionsCSV reads a header-mapped requisition export. Column order
// is free; dates accept RFC3339 or YYYY-MM-DD.
func ParseRequisitionsCSV(r io.Reader) ([]ports.RequisitionRow, []string, error) {
	records, index, err := readAll(r, requisitionColumns)
	if err != nil {
		return nil, nil, errs.Wrap(err, "read requisitions csv")
	}

	var warnings []string
	byKey := make(map[string]int)
	rows := make([]ports.RequisitionRow, 0, len(records))
	for i, record := range records {
		get := func(col string) string { return field(record, index, col) }

		key := strings.TrimSpace(get("req_key"))
		if key == "" {
			return nil, nil, fmt.Errorf("requisitions csv line %d: req_key is required", i+2)
		}

		priority, err := talent.ParsePriority(get("priority"))
		if err != nil {
			return nil, nil, errs.Wrapf(err, "requisitions csv line %d", i+2)
		}
		status, err := talent.ParseReqStatus(get("status"))
		if err != nil {
			return nil, nil, errs.Wrapf(err, "requisitions csv line %d", i+2)
		}
		openedAt, err := parseDate(get("opened_at"))
		if err != nil {
			return nil, nil, errs.Wrapf(err, "requisitions csv line %d: opened_at", i+2)
		}

		row := ports.RequisitionRow{
			ReqKey:     key,
			Title:      strings.TrimSpace(get("title")),
			Department: strings.TrimSpace(get("department")),
			Level:      strings.TrimSpace(get("level")),
			Location:   strings.TrimSpace(get("location")),
			Recruiter:  strings.TrimSpace(get("recruiter")),
			Priority:   string(priority),
			Status:     string(status),
			OpenedAt:   formatTime(openedAt),
		}

		if raw := strings.TrimSpace(get("target_date")); raw != "" {
			t, err := parseDate(raw)
			if err != nil {
				return nil, nil, errs.Wrapf(err, "requisitions csv line %d: target_date", i+2)
			}
			formatted := formatTime(t)
			row.TargetDate = &formatted
		}
		if raw := strings.TrimSpace(get("filled_at")); raw != "" {
			t, err := parseDate(raw)
			if err != nil {
				return nil, nil, errs.Wrapf(err, "requisitions csv line %d: filled_at", i+2)
			}
			formatted := formatTime(t)
			row.FilledAt = &formatted
		}

		if prev, seen := byKey[key]; seen {
			warnings = append(warnings, fmt.Sprintf("duplicate req_key %q, keeping last occurrence", key))
			rows[prev] = row
			continue
		}
		byKey[key] = len(rows)
		rows = append(rows, row)
	}

	return rows, warnings, nil
}

// ParseCandidatesCSV reads a header-mapped candidate export. Duplicate
// candidate keys keep the last occurrence with a warning; unknown stages are
// rejected.
func ParseCandidatesCSV(r io.Reader) ([]ports.CandidateRow, []string, error) {
	records, index, err := readAll(r, candidateColumns)
	if err != nil {
		return nil, nil, errs.Wrap(err, "read candidates csv")
	}

	var warnings []string
	byKey := make(map[string]int)
	rows := make([]ports.CandidateRow, 0, len(records))
	for i, record := range records {
		get := func(col string) string { return field(record, index, col) }

		key := strings.TrimSpace(get("candidate_key"))
		if key == "" {
			return nil, nil, fmt.Errorf("candidates csv line %d: candidate_key is required", i+2)
		}

		stage, err := talent.ParseStage(get("stage"))
		if err != nil {
			return nil, nil, errs.Wrapf(err, "candidates csv line %d", i+2)
		}
		enteredAt, err := parseDate(get("stage_entered_at"))
		if err != nil {
			return nil, nil, errs.Wrapf(err, "candidates csv line %d: stage_entered_at", i+2)
		}

		active := !talent.IsTerminalStage(stage)
		if raw := strings.TrimSpace(get("active")); raw != "" {
			parsed, err := strconv.ParseBool(raw)
			if err != nil {
				return nil, nil, errs.Wrapf(err, "candidates csv line %d: active", i+2)
			}
			active = parsed
		}

		row := ports.CandidateRow{
			CandidateKey:   key,
			ReqKey:         strings.TrimSpace(get("req_key")),
			Name:           strings.TrimSpace(get("name")),
			Source:         strings.ToLower(strings.TrimSpace(get("source"))),
			Stage:          string(stage),
			StageEnteredAt: formatTime(enteredAt),
			Active:         active,
		}

		if prev, seen := byKey[key]; seen {
			warnings = append(warnings, fmt.Sprintf("duplicate candidate_key %q, keeping last occurrence", key))
			rows[prev] = row
			continue
		}
		byKey[key] = len(rows)
		rows = append(rows, row)
	}

	return rows, warnings, nil
}

func readAll(r io.Reader, required []string) ([][]string, map[string]int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, errors.New("csv is empty")
		}
		return nil, nil, err
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, col := range required {
		if _, ok := index[col]; !ok {
			return nil, nil, fmt.Errorf("csv is missing required column %q", col)
		}
	}

	var records [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		records = append(records, record)
	}
	return records, index, nil
}

func field(record []string, index map[string]int, col string) string {
	idx, ok := index[col]
	if !ok || idx >= len(record) {
		return ""
	}
	return record[idx]
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02",
}

func parseDate(value string) (time.Time, error) {
	normalized := strings.TrimSpace(value)
	if normalized == "" {
		return time.Time{}, errors.New("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, normalized); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", value)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
