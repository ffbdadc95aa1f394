package talent

import (
	"sort"
)

// SourceReport grades one sourcing channel.
type SourceReport struct {
	Source           string
	Candidates       int
	Hires            int
	HireRate         float64
	PassThroughRate  float64
	MedianDaysToHire float64
	Score            float64
}

// SourceEffectiveness ranks sourcing channels by a composite of hire
// conversion (60%), interview pass-through (25%) and speed to hire (15%).
func SourceEffectiveness(cands []Candidate, events []StageEvent) []SourceReport {
	sourceByCandidate := make(map[string]string, len(cands))
	volume := make(map[string]int)
	hires := make(map[string]int)
	maxOrder := make(map[string]int)

	for _, cand := range cands {
		source := cand.Source
		if source == "" {
			source = "unknown"
		}
		sourceByCandidate[cand.Key] = source
		volume[source]++
		if cand.Stage == StageHired {
			hires[source]++
			maxOrder[cand.Key] = len(PipelineStages)
		} else if order := StageOrder(cand.Stage); order > maxOrder[cand.Key] {
			maxOrder[cand.Key] = order
		}
	}

	hireDays := make(map[string][]float64)
	addedAt := make(map[string]StageEvent)
	for _, event := range events {
		if event.CandidateKey == "" {
			continue
		}
		switch event.Type {
		case EventCandidateAdded:
			addedAt[event.CandidateKey] = event
			if stage, err := ParseStage(event.To); err == nil {
				if order := StageOrder(stage); order > maxOrder[event.CandidateKey] {
					maxOrder[event.CandidateKey] = order
				}
			}
		case EventStageChanged:
			stage, err := ParseStage(event.To)
			if err != nil {
				continue
			}
			if stage == StageHired {
				source, ok := sourceByCandidate[event.CandidateKey]
				if !ok {
					continue
				}
				if added, ok := addedAt[event.CandidateKey]; ok {
					days := DaysBetween(added.OccurredAt, event.OccurredAt)
					if days >= 0 {
						hireDays[source] = append(hireDays[source], days)
					}
				}
				maxOrder[event.CandidateKey] = len(PipelineStages)
			} else if order := StageOrder(stage); order > maxOrder[event.CandidateKey] {
				maxOrder[event.CandidateKey] = order
			}
		}
	}

	interviewOrder := StageOrder(StageInterview)
	passed := make(map[string]int)
	for key, order := range maxOrder {
		source, ok := sourceByCandidate[key]
		if !ok {
			continue
		}
		if order >= interviewOrder {
			passed[source]++
		}
	}

	reports := make([]SourceReport, 0, len(volume))
	for source, count := range volume {
		hireRate := float64(hires[source]) / float64(count)
		passThrough := float64(passed[source]) / float64(count)
		median := Median(hireDays[source])

		speedBonus := 0.0
		if len(hireDays[source]) > 0 {
			ratio := median / 90
			if ratio > 1 {
				ratio = 1
			}
			speedBonus = (1 - ratio) * 15
		}

		reports = append(reports, SourceReport{
			Source:           source,
			Candidates:       count,
			Hires:            hires[source],
			HireRate:         Round(hireRate, 3),
			PassThroughRate:  Round(passThrough, 3),
			MedianDaysToHire: Round(median, 1),
			Score:            Round(hireRate*60+passThrough*25+speedBonus, 2),
		})
	}

	sort.SliceStable(reports, func(i, j int) bool {
		if reports[i].Score != reports[j].Score {
			return reports[i].Score > reports[j].Score
		}
		return reports[i].Source < reports[j].Source
	})

	return reports
}
