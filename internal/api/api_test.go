package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"hireboard/internal/bootstrap/config"
	"hireboard/internal/infrastructure/cache"
	"hireboard/internal/infrastructure/persistence/sqlite/model"
	"hireboard/internal/infrastructure/persistence/sqlite/repository"
	"hireboard/internal/infrastructure/persistence/sqlite/uow"
	"hireboard/internal/usecase/talent"
)

const apiReqsCSV = `req_key,title,recruiter,priority,status,opened_at
ENG-1,Backend Engineer,dana,high,open,2026-01-01
`

const apiCandsCSV = `candidate_key,req_key,source,stage,stage_entered_at
c1,ENG-1,referral,screen,2026-01-05
`

func setupRouter(t *testing.T, seed bool) http.Handler {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "hireboard.sqlite")
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	if err := db.AutoMigrate(
		&model.Snapshot{},
		&model.SnapshotRequisition{},
		&model.SnapshotCandidate{},
		&model.StageEvent{},
		&model.AppKV{},
	); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}

	cfg := config.Config{}
	cfg.Pipeline.TargetFillDays = 45
	cfg.Pipeline.StageSLADays = map[string]int{"applied": 5, "screen": 7, "interview": 10, "onsite": 10, "offer": 7}
	cfg.Capacity.RecruiterWU = 8.0
	cfg.Forecast.Trials = 200
	cfg.Forecast.HorizonDays = 365
	cfg.Forecast.PriorStrength = 10.0

	svc := talent.NewService(cfg, repository.NewSnapshotRepository(db), uow.NewUnitOfWork(db), cache.NewSQLiteCache(db))

	if seed {
		dir := t.TempDir()
		reqsPath := filepath.Join(dir, "reqs.csv")
		candsPath := filepath.Join(dir, "cands.csv")
		if err := os.WriteFile(reqsPath, []byte(apiReqsCSV), 0o644); err != nil {
			t.Fatalf("write reqs: %v", err)
		}
		if err := os.WriteFile(candsPath, []byte(apiCandsCSV), 0o644); err != nil {
			t.Fatalf("write cands: %v", err)
		}
		if _, err := svc.ImportSnapshot(context.Background(), talent.ImportSnapshotInput{
			RequisitionsPath: reqsPath,
			CandidatesPath:   candsPath,
			TakenAt:          time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		}); err != nil {
			t.Fatalf("seed snapshot: %v", err)
		}
	}

	return NewRouter(svc)
}

func doRequest(t *testing.T, router http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestHealthz(t *testing.T) {
	router := setupRouter(t, false)

	rec := doRequest(t, router, http.MethodGet, "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestOverviewEndpoint(t *testing.T) {
	router := setupRouter(t, true)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/overview")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var overview struct {
		OpenReqs    int `json:"OpenReqs"`
		ActiveCands int `json:"ActiveCands"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &overview); err != nil {
		t.Fatalf("decode overview: %v", err)
	}
	if overview.OpenReqs != 1 || overview.ActiveCands != 1 {
		t.Fatalf("overview = %+v", overview)
	}
}

func TestOverviewWithoutSnapshots(t *testing.T) {
	router := setupRouter(t, false)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/overview")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestForecastEndpoint(t *testing.T) {
	router := setupRouter(t, true)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/forecast/ENG-1?seed=42")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("X-Forecast-Cache"); got != "false" {
		t.Fatalf("cache header = %q on cold run", got)
	}

	rec = doRequest(t, router, http.MethodGet, "/api/v1/forecast/ENG-1?seed=42")
	if got := rec.Header().Get("X-Forecast-Cache"); got != "true" {
		t.Fatalf("cache header = %q on warm run", got)
	}
}

func TestForecastUnknownReq(t *testing.T) {
	router := setupRouter(t, true)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/forecast/NOPE")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestForecastBadQuery(t *testing.T) {
	router := setupRouter(t, true)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/forecast/ENG-1?trials=zero")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestDiffRequiresBothIDs(t *testing.T) {
	router := setupRouter(t, true)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/snapshots/diff?from=abc")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestUnknownRoute(t *testing.T) {
	router := setupRouter(t, false)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/not-a-thing")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
