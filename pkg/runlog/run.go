// Package runlog records confusion matrices of a training run, and exports them into a log store.
//
// A Run has Folds and one FoldLog for each Fold.
// Training code appends a confusion matrix to FoldLogs at every epoch,
// and calls Run.Export at the end.
//
// Run is not goroutine-safe. Only one Run should write into a logdir at a time.
package runlog

import (
	"github.com/opst/confusionflow/pkg/dataset"
	xe "github.com/opst/confusionflow/pkg/errors"
	"github.com/opst/confusionflow/pkg/logstore"
	kpath "github.com/opst/confusionflow/pkg/utils/path"
	"github.com/rs/zerolog"
)

// RunDetail is the JSON form of Run, stored as runs/{runId}.json .
type RunDetail struct {
	RunId       string           `json:"runId"`
	TrainFoldId string           `json:"trainfoldId"`
	HyperParam  map[string]any   `json:"hyperparam"`
	FoldLogs    []FoldLogSummary `json:"foldlogs"`
}

type Run struct {
	runId       string
	trainfoldId string
	folds       []Fold
	foldlogs    []*FoldLog
	logger      zerolog.Logger
}

type Option func(*Run) *Run

// WithLogger sets logger for export events.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Run) *Run {
		r.logger = logger
		return r
	}
}

// NewRun creates Run with one FoldLog for each fold, in order of folds.
//
// It fails with ErrDuplicateFoldId when folds share a foldId,
// and with ErrInvalidId when runId or a foldId can not be a file name in the log store.
func NewRun(runId string, folds []Fold, trainfoldId string, opts ...Option) (*Run, error) {
	if !kpath.IsPlainName(runId) {
		return nil, xe.Wrapf(xe.ErrInvalidId, "runId %q can not be used as a file name", runId)
	}

	seen := map[string]struct{}{}
	fs := make([]Fold, len(folds))
	foldlogs := make([]*FoldLog, len(folds))
	for nth, f := range folds {
		if _, ok := seen[f.FoldId]; ok {
			return nil, xe.Wrapf(xe.ErrDuplicateFoldId, "run %s: foldId %s appears twice", runId, f.FoldId)
		}
		if !kpath.IsPlainName(f.FoldId) || !kpath.IsPlainName(FoldLogId(runId, f.FoldId)) {
			return nil, xe.Wrapf(xe.ErrInvalidId, "run %s: foldId %q can not be used as a file name", runId, f.FoldId)
		}
		seen[f.FoldId] = struct{}{}
		fs[nth] = f
		foldlogs[nth] = newFoldLog(runId, f.FoldId, f.Description)
	}

	r := &Run{
		runId:       runId,
		trainfoldId: trainfoldId,
		folds:       fs,
		foldlogs:    foldlogs,
		logger:      zerolog.Nop(),
	}
	for _, opt := range opts {
		r = opt(r)
	}
	return r, nil
}

func (r *Run) RunId() string {
	return r.runId
}

func (r *Run) TrainFoldId() string {
	return r.trainfoldId
}

func (r *Run) Folds() []Fold {
	fs := make([]Fold, len(r.folds))
	copy(fs, r.folds)
	return fs
}

// FoldLogs returns FoldLogs in order of Folds.
func (r *Run) FoldLogs() []*FoldLog {
	fls := make([]*FoldLog, len(r.foldlogs))
	copy(fls, r.foldlogs)
	return fls
}

// FoldLog returns FoldLog for the fold.
func (r *Run) FoldLog(foldId string) (*FoldLog, bool) {
	for _, fl := range r.foldlogs {
		if fl.foldId == foldId {
			return fl, true
		}
	}
	return nil, false
}

func (r *Run) Detail() RunDetail {
	summaries := make([]FoldLogSummary, 0, len(r.foldlogs))
	for _, fl := range r.foldlogs {
		summaries = append(summaries, fl.Summary())
	}
	return RunDetail{
		RunId:       r.runId,
		TrainFoldId: r.trainfoldId,
		HyperParam:  map[string]any{},
		FoldLogs:    summaries,
	}
}

// Export writes the run into logdir.
//
// Steps are:
//
// 1. create logdir with its folders, if logdir does not exist.
//
// 2. write runs/{runId}.json, and rebuild runs/index.json .
//
// 3. import dataset description of each fold, and rebuild datasets/index.json .
//
// 4. write foldlogs/{foldlogId}.json and foldlogdata/{foldlogId}_data.json for each FoldLog.
//
// When a folder is missing at writing, it fails with ErrInvalidLogDir.
// Exporting again overwrites files.
func (r *Run) Export(logdir string) error {
	store, err := logstore.Create(logdir, logstore.WithLogger(r.logger))
	if err != nil {
		return err
	}
	logger := r.logger.With().Str("runId", r.runId).Str("logdir", store.Root()).Logger()

	path, err := store.WriteJSON(logstore.Runs, r.runId+".json", r.Detail())
	if err != nil {
		return xe.WrapWithNote("run "+r.runId, err)
	}
	logger.Info().Str("path", path).Msg("run exported")
	if err := store.RebuildIndex(logstore.Runs); err != nil {
		return err
	}

	for _, f := range r.folds {
		conf, err := dataset.Import(store, f.DatasetConfig)
		if err != nil {
			return xe.WrapWithNote("fold "+f.FoldId, err)
		}
		logger.Debug().Str("foldId", f.FoldId).Str("datasetId", conf.DatasetId).Msg("dataset imported")
	}
	if err := store.RebuildIndex(logstore.Datasets); err != nil {
		return err
	}

	for _, fl := range r.foldlogs {
		if err := fl.export(store); err != nil {
			return xe.WrapWithNote("foldlog "+fl.foldlogId, err)
		}
		logger.Debug().
			Str("foldlogId", fl.foldlogId).Int("numepochs", fl.data.NumEpochs()).
			Msg("foldlog exported")
	}
	return nil
}
