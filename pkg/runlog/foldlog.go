package runlog

import "github.com/opst/confusionflow/pkg/logstore"

// FoldLogSummary is the JSON form of FoldLog.
//
// It is stored as foldlogs/{foldlogId}.json, and embedded in the Run.
type FoldLogSummary struct {
	FoldLogId     string `json:"foldlogId"`
	Description   string `json:"description"`
	RunId         string `json:"runId"`
	FoldId        string `json:"foldId"`
	FoldLogDataId string `json:"foldlogdataId"`
	NumEpochs     int    `json:"numepochs"`
}

// FoldLog is a performance log of a model for a fold.
type FoldLog struct {
	foldlogId   string
	runId       string
	foldId      string
	description string
	data        *FoldLogData
}

// FoldLogId is the identifier of FoldLog of the fold in the run.
func FoldLogId(runId, foldId string) string {
	return runId + "_" + foldId
}

func newFoldLog(runId, foldId, description string) *FoldLog {
	id := FoldLogId(runId, foldId)
	return &FoldLog{
		foldlogId:   id,
		runId:       runId,
		foldId:      foldId,
		description: description,
		data:        newFoldLogData(id),
	}
}

func (fl *FoldLog) FoldLogId() string {
	return fl.foldlogId
}

func (fl *FoldLog) RunId() string {
	return fl.runId
}

func (fl *FoldLog) FoldId() string {
	return fl.foldId
}

func (fl *FoldLog) Data() *FoldLogData {
	return fl.data
}

func (fl *FoldLog) AddEpochData(epochId int, confmat []int) error {
	return fl.data.AddEpochData(epochId, confmat)
}

func (fl *FoldLog) Summary() FoldLogSummary {
	return FoldLogSummary{
		FoldLogId:     fl.foldlogId,
		Description:   fl.description,
		RunId:         fl.runId,
		FoldId:        fl.foldId,
		FoldLogDataId: DataId(fl.data.FoldLogId()),
		NumEpochs:     fl.data.NumEpochs(),
	}
}

// export writes FoldLog, then its FoldLogData.
func (fl *FoldLog) export(store *logstore.Store) error {
	if _, err := store.WriteJSON(logstore.FoldLogs, fl.foldlogId+".json", fl.Summary()); err != nil {
		return err
	}
	_, err := fl.data.export(store)
	return err
}
