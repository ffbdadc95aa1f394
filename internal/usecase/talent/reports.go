package talent

import (
	"context"
	"sort"

	domain "hireboard/internal/domain/talent"
)

func (s *Service) PreMortem(ctx context.Context) ([]domain.RiskAssessment, error) {
	state, err := s.loadLatest(ctx)
	if err != nil {
		return nil, err
	}
	return s.preMortem(state), nil
}

func (s *Service) preMortem(state pipelineState) []domain.RiskAssessment {
	return domain.PreMortem(state.Requisitions, state.Candidates, domain.PreMortemParams{
		TargetFillDays: s.cfg.Pipeline.TargetFillDays,
		StageSLADays:   s.stageSLADays(),
		RecruiterWU:    s.cfg.Capacity.RecruiterWU,
		AsOf:           state.AsOf,
	})
}

func (s *Service) SLAReport(ctx context.Context) ([]domain.SLAAttribution, error) {
	state, err := s.loadLatest(ctx)
	if err != nil {
		return nil, err
	}
	return domain.AttributeSLA(state.Events, s.stageSLADays(), state.AsOf), nil
}

func (s *Service) Arbitrate(ctx context.Context) ([]domain.ArbitrationEntry, error) {
	state, err := s.loadLatest(ctx)
	if err != nil {
		return nil, err
	}
	risks := s.preMortem(state)
	return domain.Arbitrate(state.Requisitions, state.Candidates, risks, domain.ArbitrationParams{
		TargetFillDays: s.cfg.Pipeline.TargetFillDays,
		AsOf:           state.AsOf,
	}), nil
}

func (s *Service) SourceReport(ctx context.Context) ([]domain.SourceReport, error) {
	state, err := s.loadLatest(ctx)
	if err != nil {
		return nil, err
	}
	return domain.SourceEffectiveness(state.Candidates, state.Events), nil
}

func (s *Service) VelocityReport(ctx context.Context) (domain.VelocityReport, error) {
	state, err := s.loadLatest(ctx)
	if err != nil {
		return domain.VelocityReport{}, err
	}
	return domain.Velocity(state.Requisitions, state.Events, domain.VelocityParams{
		TrendWindowDays: 30,
		AsOf:            state.AsOf,
	}), nil
}

func (s *Service) CapacityReport(ctx context.Context) (domain.CapacityReport, error) {
	state, err := s.loadLatest(ctx)
	if err != nil {
		return domain.CapacityReport{}, err
	}
	return domain.CapacityPlan(state.Requisitions, state.Candidates, s.cfg.Capacity.RecruiterWU), nil
}

// Overview is the command-center composite: the riskiest requisitions, the
// worst SLA breaches, the arbitration head and any capacity alerts.
type Overview struct {
	SnapshotLabel string
	AsOf          string
	OpenReqs      int
	ActiveCands   int
	TopRisks      []domain.RiskAssessment
	TopBreaches   []domain.SLABreach
	NextUp        []domain.ArbitrationEntry
	Overloaded    []domain.RecruiterLoad
}

func (s *Service) Overview(ctx context.Context) (Overview, error) {
	state, err := s.loadLatest(ctx)
	if err != nil {
		return Overview{}, err
	}

	risks := s.preMortem(state)
	attributions := domain.AttributeSLA(state.Events, s.stageSLADays(), state.AsOf)
	arbitration := domain.Arbitrate(state.Requisitions, state.Candidates, risks, domain.ArbitrationParams{
		TargetFillDays: s.cfg.Pipeline.TargetFillDays,
		AsOf:           state.AsOf,
	})
	capacity := domain.CapacityPlan(state.Requisitions, state.Candidates, s.cfg.Capacity.RecruiterWU)

	overview := Overview{
		SnapshotLabel: state.Snapshot.Label,
		AsOf:          state.Snapshot.TakenAt,
	}
	for _, req := range state.Requisitions {
		if req.Status == domain.ReqOpen || req.Status == domain.ReqOnHold {
			overview.OpenReqs++
		}
	}
	for _, cand := range state.Candidates {
		if cand.Active && !domain.IsTerminalStage(cand.Stage) {
			overview.ActiveCands++
		}
	}

	overview.TopRisks = head(risks, 5)

	var breaches []domain.SLABreach
	for _, attribution := range attributions {
		breaches = append(breaches, attribution.Breaches...)
	}
	sortBreaches(breaches)
	overview.TopBreaches = head(breaches, 5)

	overview.NextUp = head(arbitration, 5)

	for _, load := range capacity.Loads {
		if load.Overloaded {
			overview.Overloaded = append(overview.Overloaded, load)
		}
	}

	return overview, nil
}

func head[T any](items []T, n int) []T {
	if len(items) <= n {
		return items
	}
	return items[:n]
}

func sortBreaches(breaches []domain.SLABreach) {
	sort.SliceStable(breaches, func(i, j int) bool {
		return breaches[i].OverageDays > breaches[j].OverageDays
	})
}
