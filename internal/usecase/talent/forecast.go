package talent

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"hireboard/internal/bootstrap/logging"
	domain "hireboard/internal/domain/talent"
	"hireboard/internal/errs"
	"hireboard/internal/oracle"
)

type ForecastInput struct {
	ReqKey          string
	Seed            int64
	Trials          int
	ArrivalsPerWeek float64
	SkipCache       bool
}

type ForecastOutput struct {
	ReqKey       string            `json:"req_key"`
	SnapshotID   string            `json:"snapshot_id"`
	AsOf         string            `json:"as_of"`
	Actives      int               `json:"actives"`
	Utilization  float64           `json:"utilization"`
	Comparison   oracle.Comparison `json:"comparison"`
	FromCache    bool              `json:"-"`
}

var ErrRequisitionNotFound = errors.New("requisition not found in latest snapshot")

// Forecast runs the Oracle for one requisition against the latest snapshot:
// pipeline-only and capacity-aware, side by side. Results are memoized by a
// digest of every input that feeds the simulation.
func (s *Service) Forecast(ctx context.Context, input ForecastInput) (ForecastOutput, error) {
	reqKey := strings.TrimSpace(input.ReqKey)
	if reqKey == "" {
		return ForecastOutput{}, errors.New("requisition key is required")
	}

	state, err := s.loadLatest(ctx)
	if err != nil {
		return ForecastOutput{}, err
	}

	var req *domain.Requisition
	for i := range state.Requisitions {
		if state.Requisitions[i].Key == reqKey {
			req = &state.Requisitions[i]
			break
		}
	}
	if req == nil {
		return ForecastOutput{}, ErrRequisitionNotFound
	}

	trials := input.Trials
	if trials <= 0 {
		trials = s.cfg.Forecast.Trials
	}
	params := oracle.Params{
		Trials:          trials,
		HorizonDays:     s.cfg.Forecast.HorizonDays,
		Seed:            input.Seed,
		AsOf:            state.AsOf,
		ArrivalsPerWeek: input.ArrivalsPerWeek,
	}

	cacheKey := forecastCacheKey(state.Snapshot.SnapshotID, reqKey, params, s.cfg.Forecast.PriorStrength)
	if !input.SkipCache {
		if cached, found, err := s.cache.Get(ctx, cacheKey); err == nil && found {
			var output ForecastOutput
			if err := json.Unmarshal([]byte(cached), &output); err == nil {
				output.FromCache = true
				return output, nil
			}
			// A corrupt entry is dropped and recomputed.
			_ = s.cache.Delete(ctx, cacheKey)
		}
	}

	history := domain.BuildStageHistory(state.Events)
	model := oracle.DeriveModel(history, oracle.ModelOptions{
		PriorStrength: s.cfg.Forecast.PriorStrength,
	})

	var actives []oracle.CandidateState
	for _, cand := range state.Candidates {
		if cand.ReqKey != reqKey || !cand.Active || domain.IsTerminalStage(cand.Stage) {
			continue
		}
		actives = append(actives, oracle.CandidateState{Key: cand.Key, Stage: cand.Stage})
	}

	utilization := domain.RecruiterUtilization(state.Requisitions, state.Candidates, s.cfg.Capacity.RecruiterWU)[req.Recruiter]

	comparison := oracle.CompareForecast(model, actives, params, utilization)

	output := ForecastOutput{
		ReqKey:      reqKey,
		SnapshotID:  state.Snapshot.SnapshotID,
		AsOf:        state.Snapshot.TakenAt,
		Actives:     len(actives),
		Utilization: domain.Round(utilization, 3),
		Comparison:  comparison,
	}

	if payload, err := json.Marshal(output); err == nil {
		if err := s.cache.Set(ctx, cacheKey, string(payload), 0); err != nil {
			logging.Warn(ctx, "forecast cache write failed", slog.Any("err", errs.Loggable(err)))
		}
	}

	return output, nil
}

func forecastCacheKey(snapshotID, reqKey string, params oracle.Params, priorStrength float64) string {
	digest := sha256.Sum256([]byte(fmt.Sprintf(
		"%s|%s|%d|%d|%d|%g|%g",
		snapshotID, reqKey, params.Trials, params.HorizonDays, params.Seed, params.ArrivalsPerWeek, priorStrength,
	)))
	return "forecast:" + hex.EncodeToString(digest[:])
}
