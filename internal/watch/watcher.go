package watch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"hireboard/internal/bootstrap/logging"
	"hireboard/internal/errs"
	"hireboard/internal/usecase/talent"
)

const (
	requisitionsSuffix = "_requisitions.csv"
	candidatesSuffix   = "_candidates.csv"

	// settleDelay gives the exporting process time to finish writing the
	// second file of a pair before we read both.
	settleDelay = 500 * time.Millisecond
)

// Watcher ingests CSV export pairs dropped into a directory. A pair shares a
// prefix: <prefix>_requisitions.csv and <prefix>_candidates.csv. The prefix
// becomes the snapshot label, and each prefix is imported at most once per
// run.
type Watcher struct {
	dir      string
	svc      *talent.Service
	imported map[string]bool
}

func New(dir string, svc *talent.Service) *Watcher {
	return &Watcher{
		dir:      dir,
		svc:      svc,
		imported: make(map[string]bool),
	}
}

// Run watches the drop directory until the context is cancelled. Pairs that
// already exist at startup are imported first, oldest prefix first.
func (w *Watcher) Run(ctx context.Context) error {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errs.Wrap(err, "create fs watcher")
	}
	defer fsWatcher.Close()

	if err := fsWatcher.Add(w.dir); err != nil {
		return errs.Wrapf(err, "watch directory %s", w.dir)
	}

	if err := w.scanExisting(ctx); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsWatcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			prefix, matched := pairPrefix(filepath.Base(event.Name))
			if !matched || w.imported[prefix] {
				continue
			}
			time.Sleep(settleDelay)
			w.tryImport(ctx, prefix)
		case err, ok := <-fsWatcher.Errors:
			if !ok {
				return nil
			}
			logging.Warn(ctx, "fs watcher error", slog.Any("err", errs.Loggable(err)))
		}
	}
}

func (w *Watcher) scanExisting(ctx context.Context) error {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return errs.Wrapf(err, "read directory %s", w.dir)
	}

	var prefixes []string
	seen := make(map[string]bool)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		prefix, matched := pairPrefix(entry.Name())
		if matched && !seen[prefix] {
			seen[prefix] = true
			prefixes = append(prefixes, prefix)
		}
	}

	// Lexicographic order makes date-prefixed exports import oldest first.
	sort.Strings(prefixes)
	for _, prefix := range prefixes {
		if ctx.Err() != nil {
			return nil
		}
		w.tryImport(ctx, prefix)
	}
	return nil
}

// tryImport imports the pair for prefix if both files exist. Missing halves
// are left for a later event; import errors are logged and the prefix stays
// eligible for retry on the next write.
func (w *Watcher) tryImport(ctx context.Context, prefix string) {
	reqsPath := filepath.Join(w.dir, prefix+requisitionsSuffix)
	candsPath := filepath.Join(w.dir, prefix+candidatesSuffix)

	if _, err := os.Stat(reqsPath); err != nil {
		return
	}
	if _, err := os.Stat(candsPath); err != nil {
		return
	}

	result, err := w.svc.ImportSnapshot(ctx, talent.ImportSnapshotInput{
		Label:            prefix,
		Source:           "watch",
		RequisitionsPath: reqsPath,
		CandidatesPath:   candsPath,
	})
	if err != nil {
		logging.Error(ctx, "watched import failed",
			slog.String("prefix", prefix),
			slog.Any("err", errs.Loggable(err)))
		return
	}

	w.imported[prefix] = true
	for _, warning := range result.Warnings {
		logging.Warn(ctx, "import warning",
			slog.String("prefix", prefix),
			slog.String("warning", warning))
	}
	logging.Info(ctx, "snapshot imported",
		slog.String("prefix", prefix),
		slog.String("snapshot_id", result.SnapshotID),
		slog.Int("requisitions", result.Requisitions),
		slog.Int("candidates", result.Candidates),
		slog.Int("events", result.Events))
}

func pairPrefix(name string) (string, bool) {
	switch {
	case strings.HasSuffix(name, requisitionsSuffix):
		return strings.TrimSuffix(name, requisitionsSuffix), true
	case strings.HasSuffix(name, candidatesSuffix):
		return strings.TrimSuffix(name, candidatesSuffix), true
	default:
		return "", false
	}
}
