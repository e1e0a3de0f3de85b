package book

import (
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/bookgen/internal/foundation/errors"
	"git.home.luguber.info/inful/bookgen/internal/logfields"
)

// stagingSuffix names the sibling directory pages are staged in: book/src -> book/src.staging.
const stagingSuffix = ".staging"

// StagingDir returns the staging directory used for src in atomic mode.
func StagingDir(src string) string {
	return filepath.Clean(src) + stagingSuffix
}

// beginStaging creates an empty staging directory next to src, discarding
// leftovers of an interrupted run.
func beginStaging(src string) (string, error) {
	stage := StagingDir(src)
	if err := os.RemoveAll(stage); err != nil {
		return "", errors.WrapError(err, errors.CategoryFileAccess, "failed to clear staging directory").
			Fatal().
			WithContext("path", stage).
			Build()
	}
	if err := os.MkdirAll(stage, 0o755); err != nil {
		return "", errors.WrapError(err, errors.CategoryFileAccess, "failed to create staging directory").
			Fatal().
			WithContext("path", stage).
			Build()
	}
	slog.Debug("Initialized staging directory", slog.String("staging", stage), slog.String("final", src))
	return stage, nil
}

// finalizeStaging moves every staged page into src and removes the staging
// directory. Pages in src that were not generated are left alone.
func finalizeStaging(stage, src string, names []string) error {
	for _, name := range names {
		from := filepath.Join(stage, name)
		to := filepath.Join(src, name)
		if err := os.MkdirAll(filepath.Dir(to), 0o755); err != nil {
			return errors.WrapError(err, errors.CategoryFileAccess, "failed to create page directory").
				Fatal().
				WithContext("page", name).
				WithContext("path", to).
				Build()
		}
		if err := os.Rename(from, to); err != nil {
			return errors.WrapError(err, errors.CategoryFileAccess, "failed to promote staged page").
				Fatal().
				WithContext("page", name).
				WithContext("path", to).
				Build()
		}
	}
	if err := os.RemoveAll(stage); err != nil {
		slog.Warn("Failed to remove staging directory", logfields.Path(stage), logfields.Error(err))
	}
	slog.Debug("Promoted staged pages", logfields.Path(src), logfields.Count(len(names)))
	return nil
}

// abortStaging discards the staging directory after a failed run.
func abortStaging(stage string) {
	if stage == "" {
		return
	}
	if err := os.RemoveAll(stage); err != nil {
		slog.Warn("Failed to remove staging directory", logfields.Path(stage), logfields.Error(err))
		return
	}
	slog.Info("Discarded staged pages", logfields.Path(stage))
}
