package talent

import (
	"math"
	"sort"
)

// RecruiterLoad summarizes one recruiter's workload in Workload Units.
type RecruiterLoad struct {
	Recruiter   string
	OpenReqs    int
	WU          float64
	Capacity    float64
	Utilization float64
	Overloaded  bool
}

type RebalanceMove struct {
	ReqKey string
	From   string
	To     string
	WU     float64
}

type CapacityReport struct {
	Loads []RecruiterLoad
	Moves []RebalanceMove
}

// RequisitionWU estimates the capacity demand of one open requisition:
// a priority-scaled base plus a pipeline-size component.
func RequisitionWU(req Requisition, activeCandidates int) float64 {
	base := 1.0
	switch req.Priority {
	case PriorityLow:
		base = 0.75
	case PriorityHigh:
		base = 1.25
	case PriorityCritical:
		base = 1.5
	}

	pipeline := 0.2 * float64(activeCandidates)
	if pipeline > 2 {
		pipeline = 2
	}
	return base + pipeline
}

// CapacityPlan computes per-recruiter loads against a uniform WU capacity and
// proposes greedy moves from the most overloaded recruiter to the least
// loaded one until no recruiter sits above capacity or no move helps.
func CapacityPlan(reqs []Requisition, cands []Candidate, recruiterWU float64) CapacityReport {
	activeCount := make(map[string]int)
	for _, cand := range cands {
		if cand.Active && !IsTerminalStage(cand.Stage) {
			activeCount[cand.ReqKey]++
		}
	}

	type openReq struct {
		key string
		wu  float64
	}
	byRecruiter := make(map[string][]openReq)
	for _, req := range reqs {
		if req.Status != ReqOpen && req.Status != ReqOnHold {
			continue
		}
		byRecruiter[req.Recruiter] = append(byRecruiter[req.Recruiter], openReq{
			key: req.Key,
			wu:  RequisitionWU(req, activeCount[req.Key]),
		})
	}

	loads := make(map[string]float64, len(byRecruiter))
	for recruiter, open := range byRecruiter {
		for _, r := range open {
			loads[recruiter] += r.wu
		}
	}

	var moves []RebalanceMove
	for i := 0; i < len(reqs); i++ {
		from, to := extremes(loads)
		if from == "" || to == "" || from == to {
			break
		}
		if loads[from] <= recruiterWU {
			break
		}

		candidates := byRecruiter[from]
		if len(candidates) <= 1 {
			break
		}
		// Move the smallest requisition that still helps.
		sort.Slice(candidates, func(a, b int) bool { return candidates[a].wu < candidates[b].wu })
		pick := candidates[0]

		// A move only helps when it narrows the spread between the two.
		if loads[to]+pick.wu >= loads[from] {
			break
		}

		loads[from] -= pick.wu
		loads[to] += pick.wu
		byRecruiter[from] = candidates[1:]
		byRecruiter[to] = append(byRecruiter[to], pick)
		moves = append(moves, RebalanceMove{
			ReqKey: pick.key,
			From:   from,
			To:     to,
			WU:     Round(pick.wu, 2),
		})
	}

	report := CapacityReport{Moves: moves}
	for recruiter := range byRecruiter {
		wu := loads[recruiter]
		utilization := 0.0
		if recruiterWU > 0 {
			utilization = wu / recruiterWU
		}
		report.Loads = append(report.Loads, RecruiterLoad{
			Recruiter:   recruiter,
			OpenReqs:    len(byRecruiter[recruiter]),
			WU:          Round(wu, 2),
			Capacity:    recruiterWU,
			Utilization: Round(utilization, 3),
			Overloaded:  wu > recruiterWU,
		})
	}

	sort.Slice(report.Loads, func(i, j int) bool {
		if report.Loads[i].WU != report.Loads[j].WU {
			return report.Loads[i].WU > report.Loads[j].WU
		}
		return report.Loads[i].Recruiter < report.Loads[j].Recruiter
	})

	return report
}

// RecruiterUtilization returns utilization per recruiter, for the forecast
// capacity penalty.
func RecruiterUtilization(reqs []Requisition, cands []Candidate, recruiterWU float64) map[string]float64 {
	if recruiterWU <= 0 {
		return map[string]float64{}
	}
	loads := recruiterLoads(reqs, cands)
	out := make(map[string]float64, len(loads))
	for recruiter, wu := range loads {
		out[recruiter] = wu / recruiterWU
	}
	return out
}

func extremes(loads map[string]float64) (highest string, lowest string) {
	high := -math.MaxFloat64
	low := math.MaxFloat64
	keys := make([]string, 0, len(loads))
	for k := range loads {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, recruiter := range keys {
		wu := loads[recruiter]
		if wu > high {
			high = wu
			highest = recruiter
		}
		if wu < low {
			low = wu
			lowest = recruiter
		}
	}
	return highest, lowest
}
