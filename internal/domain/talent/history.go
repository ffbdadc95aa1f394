package talent

import (
	"sort"
	"time"
)

// StageHistory aggregates what the event log says about how candidates move
// through the funnel: completed dwell times, pass/exit tallies per working
// stage, and end-to-end days-to-hire samples.
type StageHistory struct {
	Dwells     map[Stage][]float64
	Passes     map[Stage]int
	Exits      map[Stage]int
	DaysToHire []float64
}

// Trials returns how many candidates resolved (advanced or exited) a stage.
func (h StageHistory) Trials(s Stage) int {
	return h.Passes[s] + h.Exits[s]
}

type journeyState struct {
	stage     Stage
	enteredAt time.Time
	addedAt   time.Time
	hasStage  bool
	hasAdded  bool
}

// BuildStageHistory replays candidate events in occurrence order and tallies
// per-stage outcomes. Requisition-level events are ignored.
func BuildStageHistory(events []StageEvent) StageHistory {
	history := StageHistory{
		Dwells: make(map[Stage][]float64),
		Passes: make(map[Stage]int),
		Exits:  make(map[Stage]int),
	}

	ordered := append([]StageEvent{}, events...)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].OccurredAt.Equal(ordered[j].OccurredAt) {
			return ordered[i].OccurredAt.Before(ordered[j].OccurredAt)
		}
		return ordered[i].CandidateKey < ordered[j].CandidateKey
	})

	states := make(map[string]*journeyState)
	for _, event := range ordered {
		if event.CandidateKey == "" {
			continue
		}

		state, ok := states[event.CandidateKey]
		if !ok {
			state = &journeyState{}
			states[event.CandidateKey] = state
		}

		switch event.Type {
		case EventCandidateAdded:
			stage, err := ParseStage(event.To)
			if err != nil {
				continue
			}
			state.stage = stage
			state.enteredAt = event.OccurredAt
			state.addedAt = event.OccurredAt
			state.hasStage = true
			state.hasAdded = true

		case EventStageChanged:
			to, err := ParseStage(event.To)
			if err != nil {
				continue
			}

			if state.hasStage && StageOrder(state.stage) >= 0 {
				dwell := DaysBetween(state.enteredAt, event.OccurredAt)
				if dwell >= 0 {
					history.Dwells[state.stage] = append(history.Dwells[state.stage], dwell)
				}
				if to == StageRejected || to == StageWithdrawn {
					history.Exits[state.stage]++
				} else {
					history.Passes[state.stage]++
				}
			}

			if to == StageHired && state.hasAdded {
				days := DaysBetween(state.addedAt, event.OccurredAt)
				if days >= 0 {
					history.DaysToHire = append(history.DaysToHire, days)
				}
			}

			if IsTerminalStage(to) {
				state.hasStage = false
				continue
			}
			state.stage = to
			state.enteredAt = event.OccurredAt
			state.hasStage = true

		case EventCandidateDropped:
			if state.hasStage && StageOrder(state.stage) >= 0 {
				dwell := DaysBetween(state.enteredAt, event.OccurredAt)
				if dwell >= 0 {
					history.Dwells[state.stage] = append(history.Dwells[state.stage], dwell)
				}
				history.Exits[state.stage]++
			}
			state.hasStage = false
		}
	}

	return history
}
