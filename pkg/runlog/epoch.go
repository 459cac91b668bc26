package runlog

import (
	"context"

	"github.com/opst/confusionflow/pkg/confmat"
	xe "github.com/opst/confusionflow/pkg/errors"
)

// Predictor evaluates the model on the fold.
//
// It returns true class labels and predicted class labels of each instance in the fold.
type Predictor func(ctx context.Context, fold Fold) (truth []int, predicted []int, err error)

// LogEpoch evaluates every fold with predictor, and appends confusion matrices to FoldLogs.
//
// Folds are evaluated in order. When one of them fails, LogEpoch stops there;
// FoldLogs of the folds evaluated before keep the new epoch.
func (r *Run) LogEpoch(ctx context.Context, epochId int, numclass int, predictor Predictor) error {
	for nth, fold := range r.folds {
		if err := ctx.Err(); err != nil {
			return err
		}
		foldlog := r.foldlogs[nth]

		truth, predicted, err := predictor(ctx, fold)
		if err != nil {
			return xe.WrapWithNote("fold "+fold.FoldId, err)
		}
		cm, err := confmat.FromLabels(numclass, truth, predicted)
		if err != nil {
			return xe.WrapWithNote("fold "+fold.FoldId, err)
		}
		if err := foldlog.AddEpochData(epochId, cm.Flatten()); err != nil {
			return err
		}
		r.logger.Debug().
			Str("foldlogId", foldlog.FoldLogId()).Int("epochId", epochId).
			Float64("accuracy", cm.Accuracy()).
			Msg("epoch logged")
	}
	return nil
}
