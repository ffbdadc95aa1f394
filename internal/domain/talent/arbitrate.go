package talent

import (
	"sort"
	"time"
)

type ArbitrationEntry struct {
	Rank             int
	ReqKey           string
	Title            string
	Priority         Priority
	Score            float64
	RiskScore        float64
	AgePressure      float64
	PipelineStrength float64
}

type ArbitrationParams struct {
	TargetFillDays int
	AsOf           time.Time
}

// Arbitrate orders open requisitions by where recruiter attention pays off
// most: declared priority, pre-mortem risk, and age pressure push a
// requisition up; a healthy pipeline pushes it down. Ties break on key.
func Arbitrate(reqs []Requisition, cands []Candidate, risks []RiskAssessment, params ArbitrationParams) []ArbitrationEntry {
	riskByReq := make(map[string]float64, len(risks))
	for _, risk := range risks {
		riskByReq[risk.ReqKey] = risk.Score
	}

	activeCount := make(map[string]int)
	for _, cand := range cands {
		if cand.Active && !IsTerminalStage(cand.Stage) {
			activeCount[cand.ReqKey]++
		}
	}

	entries := make([]ArbitrationEntry, 0, len(reqs))
	for _, req := range reqs {
		if req.Status != ReqOpen && req.Status != ReqOnHold {
			continue
		}

		target := params.TargetFillDays
		if req.TargetDate != nil {
			target = int(DaysBetween(req.OpenedAt, *req.TargetDate))
		}
		agePressure := 0.0
		if target > 0 {
			ratio := DaysBetween(req.OpenedAt, params.AsOf) / float64(target)
			if ratio > 2 {
				ratio = 2
			}
			if ratio > 0 {
				agePressure = ratio * 15
			}
		}

		active := activeCount[req.Key]
		if active > 5 {
			active = 5
		}
		pipelineStrength := float64(active) * 3

		risk := riskByReq[req.Key]
		score := PriorityWeight(req.Priority) + 0.4*risk + agePressure - pipelineStrength

		entries = append(entries, ArbitrationEntry{
			ReqKey:           req.Key,
			Title:            req.Title,
			Priority:         req.Priority,
			Score:            Round(score, 2),
			RiskScore:        risk,
			AgePressure:      Round(agePressure, 2),
			PipelineStrength: pipelineStrength,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].ReqKey < entries[j].ReqKey
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}

	return entries
}
