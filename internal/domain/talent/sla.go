package talent

import (
	"sort"
	"time"
)

// Owner is the party accountable for time spent in a stage.
type Owner string

const (
	OwnerRecruiter     Owner = "recruiter"
	OwnerHiringManager Owner = "hiring_manager"
	OwnerCandidate     Owner = "candidate"
	OwnerProcess       Owner = "process"
)

// OwnerForStage maps funnel stages to the party that drives them forward.
func OwnerForStage(s Stage) Owner {
	switch s {
	case StageApplied, StageScreen:
		return OwnerRecruiter
	case StageInterview, StageOnsite:
		return OwnerHiringManager
	case StageOffer:
		return OwnerCandidate
	default:
		return OwnerProcess
	}
}

type SLABreach struct {
	ReqKey       string
	CandidateKey string
	Stage        Stage
	Owner        Owner
	DwellDays    float64
	SLADays      int
	OverageDays  float64
}

// SLAAttribution splits a requisition's elapsed candidate time across the
// owning parties and lists every stage dwell that blew through its SLA.
type SLAAttribution struct {
	ReqKey      string
	DaysByOwner map[Owner]float64
	Breaches    []SLABreach
}

// AttributeSLA replays the event log per candidate, measuring dwell time per
// stage. Open dwells (the candidate is still sitting in the stage) are closed
// at asOf.
func AttributeSLA(events []StageEvent, slaDays map[Stage]int, asOf time.Time) []SLAAttribution {
	type openDwell struct {
		reqKey    string
		stage     Stage
		enteredAt time.Time
		open      bool
	}

	ordered := append([]StageEvent{}, events...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].OccurredAt.Before(ordered[j].OccurredAt)
	})

	byReq := make(map[string]*SLAAttribution)
	dwells := make(map[string]*openDwell)

	record := func(reqKey, candidateKey string, stage Stage, entered, left time.Time) {
		dwell := DaysBetween(entered, left)
		if dwell < 0 {
			return
		}

		attribution, ok := byReq[reqKey]
		if !ok {
			attribution = &SLAAttribution{
				ReqKey:      reqKey,
				DaysByOwner: make(map[Owner]float64),
			}
			byReq[reqKey] = attribution
		}

		owner := OwnerForStage(stage)
		attribution.DaysByOwner[owner] += dwell

		sla, ok := slaDays[stage]
		if ok && sla > 0 && dwell > float64(sla) {
			attribution.Breaches = append(attribution.Breaches, SLABreach{
				ReqKey:       reqKey,
				CandidateKey: candidateKey,
				Stage:        stage,
				Owner:        owner,
				DwellDays:    Round(dwell, 1),
				SLADays:      sla,
				OverageDays:  Round(dwell-float64(sla), 1),
			})
		}
	}

	for _, event := range ordered {
		if event.CandidateKey == "" {
			continue
		}

		state, ok := dwells[event.CandidateKey]
		if !ok {
			state = &openDwell{}
			dwells[event.CandidateKey] = state
		}

		switch event.Type {
		case EventCandidateAdded:
			stage, err := ParseStage(event.To)
			if err != nil {
				continue
			}
			state.reqKey = event.ReqKey
			state.stage = stage
			state.enteredAt = event.OccurredAt
			state.open = true

		case EventStageChanged:
			if state.open {
				record(state.reqKey, event.CandidateKey, state.stage, state.enteredAt, event.OccurredAt)
			}
			to, err := ParseStage(event.To)
			if err != nil || IsTerminalStage(to) {
				state.open = false
				continue
			}
			state.reqKey = event.ReqKey
			state.stage = to
			state.enteredAt = event.OccurredAt
			state.open = true

		case EventCandidateDropped:
			if state.open {
				record(state.reqKey, event.CandidateKey, state.stage, state.enteredAt, event.OccurredAt)
			}
			state.open = false
		}
	}

	// Close out candidates still sitting in a stage.
	keys := make([]string, 0, len(dwells))
	for key := range dwells {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		state := dwells[key]
		if state.open {
			record(state.reqKey, key, state.stage, state.enteredAt, asOf)
		}
	}

	out := make([]SLAAttribution, 0, len(byReq))
	for _, attribution := range byReq {
		for owner, days := range attribution.DaysByOwner {
			attribution.DaysByOwner[owner] = Round(days, 1)
		}
		sort.Slice(attribution.Breaches, func(i, j int) bool {
			return attribution.Breaches[i].OverageDays > attribution.Breaches[j].OverageDays
		})
		out = append(out, *attribution)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ReqKey < out[j].ReqKey })

	return out
}
