package runlog

// Fold is a subset of a dataset, evaluated at every epoch.
type Fold struct {
	FoldId string

	// Data is a handle to samples of the fold. It is passed to Predictor as it is, and never persisted.
	Data any

	// DatasetConfig is a path to the dataset description which the fold belongs to.
	DatasetConfig string

	// Description is copied into the FoldLog of the fold.
	Description string
}

func NewFold(data any, foldId string, datasetConfig string) Fold {
	return Fold{
		FoldId:        foldId,
		Data:          data,
		DatasetConfig: datasetConfig,
	}
}
