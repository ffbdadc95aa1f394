package ingest

import (
	"sort"

	"hireboard/internal/domain/talent"
	"hireboard/internal/ports"
)

// DiffInput pairs a snapshot with its rows for diffing.
type DiffInput struct {
	Snapshot     ports.Snapshot
	Requisitions []ports.RequisitionRow
	Candidates   []ports.CandidateRow
}

// DiffSnapshots derives change events by comparing a previous snapshot to the
// current one. Events carry the current snapshot's taken-at time. Diffing a
// snapshot against itself yields no events.
func DiffSnapshots(prev, curr DiffInput) []ports.StageEventCreate {
	occurredAt := curr.Snapshot.TakenAt
	var events []ports.StageEventCreate

	appendEvent := func(event ports.StageEventCreate) {
		event.OccurredAt = occurredAt
		event.FromSnapshotID = prev.Snapshot.SnapshotID
		event.ToSnapshotID = curr.Snapshot.SnapshotID
		events = append(events, event)
	}

	prevReqs := make(map[string]ports.RequisitionRow, len(prev.Requisitions))
	for _, row := range prev.Requisitions {
		prevReqs[row.ReqKey] = row
	}
	currReqKeys := make([]string, 0, len(curr.Requisitions))
	currReqs := make(map[string]ports.RequisitionRow, len(curr.Requisitions))
	for _, row := range curr.Requisitions {
		currReqs[row.ReqKey] = row
		currReqKeys = append(currReqKeys, row.ReqKey)
	}
	sort.Strings(currReqKeys)

	for _, key := range currReqKeys {
		currRow := currReqs[key]
		prevRow, existed := prevReqs[key]
		if !existed {
			appendEvent(ports.StageEventCreate{
				ReqKey:    key,
				EventType: string(talent.EventReqOpened),
				ToValue:   currRow.Status,
			})
			continue
		}
		if prevRow.Status == currRow.Status {
			continue
		}
		switch currRow.Status {
		case string(talent.ReqFilled):
			appendEvent(ports.StageEventCreate{
				ReqKey:    key,
				EventType: string(talent.EventReqFilled),
				FromValue: prevRow.Status,
				ToValue:   currRow.Status,
			})
		case string(talent.ReqCancelled):
			appendEvent(ports.StageEventCreate{
				ReqKey:    key,
				EventType: string(talent.EventReqCancelled),
				FromValue: prevRow.Status,
				ToValue:   currRow.Status,
			})
		case string(talent.ReqOpen):
			if prevRow.Status == string(talent.ReqFilled) || prevRow.Status == string(talent.ReqCancelled) {
				appendEvent(ports.StageEventCreate{
					ReqKey:    key,
					EventType: string(talent.EventReqReopened),
					FromValue: prevRow.Status,
					ToValue:   currRow.Status,
				})
			}
		}
	}

	prevCands := make(map[string]ports.CandidateRow, len(prev.Candidates))
	for _, row := range prev.Candidates {
		prevCands[row.CandidateKey] = row
	}
	currCandKeys := make([]string, 0, len(curr.Candidates))
	currCands := make(map[string]ports.CandidateRow, len(curr.Candidates))
	for _, row := range curr.Candidates {
		currCands[row.CandidateKey] = row
		currCandKeys = append(currCandKeys, row.CandidateKey)
	}
	sort.Strings(currCandKeys)

	for _, key := range currCandKeys {
		currRow := currCands[key]
		prevRow, existed := prevCands[key]
		if !existed {
			appendEvent(ports.StageEventCreate{
				ReqKey:       currRow.ReqKey,
				CandidateKey: key,
				EventType:    string(talent.EventCandidateAdded),
				ToValue:      currRow.Stage,
			})
			continue
		}
		if prevRow.Stage != currRow.Stage {
			appendEvent(ports.StageEventCreate{
				ReqKey:       currRow.ReqKey,
				CandidateKey: key,
				EventType:    string(talent.EventStageChanged),
				FromValue:    prevRow.Stage,
				ToValue:      currRow.Stage,
			})
		}
	}

	droppedKeys := make([]string, 0)
	for key := range prevCands {
		if _, stillThere := currCands[key]; !stillThere {
			droppedKeys = append(droppedKeys, key)
		}
	}
	sort.Strings(droppedKeys)
	for _, key := range droppedKeys {
		prevRow := prevCands[key]
		appendEvent(ports.StageEventCreate{
			ReqKey:       prevRow.ReqKey,
			CandidateKey: key,
			EventType:    string(talent.EventCandidateDropped),
			FromValue:    prevRow.Stage,
		})
	}

	return events
}
