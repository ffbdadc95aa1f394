package talent

import (
	"fmt"
	"sort"
	"time"
)

// RiskFactor is one named contributor to a pre-mortem score.
type RiskFactor struct {
	Code   string
	Detail string
	Points float64
}

type RiskAssessment struct {
	ReqKey    string
	Title     string
	Recruiter string
	Score     float64
	Band      string
	Factors   []RiskFactor
}

type PreMortemParams struct {
	TargetFillDays int
	StageSLADays   map[Stage]int
	RecruiterWU    float64
	AsOf           time.Time
}

// PreMortem scores every open or on-hold requisition for failure risk before
// it happens. Higher scores mean the requisition is more likely to miss its
// target; scores are capped at 100.
func PreMortem(reqs []Requisition, cands []Candidate, params PreMortemParams) []RiskAssessment {
	activeByReq := make(map[string][]Candidate)
	for _, cand := range cands {
		if cand.Active && !IsTerminalStage(cand.Stage) {
			activeByReq[cand.ReqKey] = append(activeByReq[cand.ReqKey], cand)
		}
	}

	loads := recruiterLoads(reqs, cands)

	assessments := make([]RiskAssessment, 0, len(reqs))
	for _, req := range reqs {
		if req.Status != ReqOpen && req.Status != ReqOnHold {
			continue
		}

		var factors []RiskFactor

		target := params.TargetFillDays
		if req.TargetDate != nil {
			target = int(DaysBetween(req.OpenedAt, *req.TargetDate))
		}
		if target > 0 {
			ageRatio := DaysBetween(req.OpenedAt, params.AsOf) / float64(target)
			switch {
			case ageRatio > 1.25:
				factors = append(factors, RiskFactor{
					Code:   "age_past_target",
					Detail: fmt.Sprintf("open %.0f%% of target window", ageRatio*100),
					Points: 30,
				})
			case ageRatio > 1.0:
				factors = append(factors, RiskFactor{
					Code:   "age_at_target",
					Detail: fmt.Sprintf("open %.0f%% of target window", ageRatio*100),
					Points: 22,
				})
			case ageRatio > 0.75:
				factors = append(factors, RiskFactor{
					Code:   "age_approaching_target",
					Detail: fmt.Sprintf("open %.0f%% of target window", ageRatio*100),
					Points: 12,
				})
			}
		}

		active := activeByReq[req.Key]
		switch {
		case len(active) == 0:
			factors = append(factors, RiskFactor{
				Code:   "empty_pipeline",
				Detail: "no active candidates",
				Points: 25,
			})
		case len(active) < 3:
			factors = append(factors, RiskFactor{
				Code:   "thin_pipeline",
				Detail: fmt.Sprintf("%d active candidates", len(active)),
				Points: 15,
			})
		case len(active) < 5:
			factors = append(factors, RiskFactor{
				Code:   "shallow_pipeline",
				Detail: fmt.Sprintf("%d active candidates", len(active)),
				Points: 8,
			})
		}

		if stale, stage, dwell := stalenessSignal(active, params.StageSLADays, params.AsOf); stale > 0 {
			factors = append(factors, RiskFactor{
				Code:   "stale_stage",
				Detail: fmt.Sprintf("candidate in %s for %.0f days", stage, dwell),
				Points: stale,
			})
		}

		if params.RecruiterWU > 0 && loads[req.Recruiter] > params.RecruiterWU {
			factors = append(factors, RiskFactor{
				Code:   "recruiter_overloaded",
				Detail: fmt.Sprintf("%s carries %.1f WU of %.1f", req.Recruiter, loads[req.Recruiter], params.RecruiterWU),
				Points: 15,
			})
		}

		if req.Status == ReqOnHold {
			factors = append(factors, RiskFactor{
				Code:   "on_hold",
				Detail: "requisition is on hold",
				Points: 15,
			})
		}

		score := 0.0
		for _, f := range factors {
			score += f.Points
		}
		if score > 100 {
			score = 100
		}

		assessments = append(assessments, RiskAssessment{
			ReqKey:    req.Key,
			Title:     req.Title,
			Recruiter: req.Recruiter,
			Score:     score,
			Band:      riskBand(score),
			Factors:   factors,
		})
	}

	sort.SliceStable(assessments, func(i, j int) bool {
		if assessments[i].Score != assessments[j].Score {
			return assessments[i].Score > assessments[j].Score
		}
		return assessments[i].ReqKey < assessments[j].ReqKey
	})

	return assessments
}

func riskBand(score float64) string {
	switch {
	case score >= 75:
		return "critical"
	case score >= 50:
		return "elevated"
	case score >= 25:
		return "guarded"
	default:
		return "low"
	}
}

// stalenessSignal finds the worst stage dwell among active candidates
// relative to the stage SLA.
func stalenessSignal(active []Candidate, slaDays map[Stage]int, asOf time.Time) (points float64, stage Stage, dwell float64) {
	for _, cand := range active {
		sla, ok := slaDays[cand.Stage]
		if !ok || sla <= 0 {
			continue
		}
		d := DaysBetween(cand.StageEnteredAt, asOf)
		var p float64
		switch {
		case d > 2*float64(sla):
			p = 15
		case d > float64(sla):
			p = 8
		}
		if p > points || (p == points && d > dwell) {
			points = p
			stage = cand.Stage
			dwell = d
		}
	}
	return points, stage, dwell
}

func recruiterLoads(reqs []Requisition, cands []Candidate) map[string]float64 {
	activeCount := make(map[string]int)
	for _, cand := range cands {
		if cand.Active && !IsTerminalStage(cand.Stage) {
			activeCount[cand.ReqKey]++
		}
	}

	loads := make(map[string]float64)
	for _, req := range reqs {
		if req.Status != ReqOpen && req.Status != ReqOnHold {
			continue
		}
		loads[req.Recruiter] += RequisitionWU(req, activeCount[req.Key])
	}
	return loads
}
