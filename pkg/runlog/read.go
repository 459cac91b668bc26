package runlog

import (
	xe "github.com/opst/confusionflow/pkg/errors"
	"github.com/opst/confusionflow/pkg/logstore"
	kpath "github.com/opst/confusionflow/pkg/utils/path"
)

// ReadRun reads runs/{runId}.json from the store.
func ReadRun(store *logstore.Store, runId string) (RunDetail, error) {
	var d RunDetail
	if err := store.ReadJSON(logstore.Runs, runId+".json", &d); err != nil {
		return RunDetail{}, xe.WrapWithNote("run "+runId, err)
	}
	return d, nil
}

// ReadFoldLog reads foldlogs/{foldlogId}.json from the store.
func ReadFoldLog(store *logstore.Store, foldlogId string) (FoldLogSummary, error) {
	var s FoldLogSummary
	if err := store.ReadJSON(logstore.FoldLogs, foldlogId+".json", &s); err != nil {
		return FoldLogSummary{}, xe.WrapWithNote("foldlog "+foldlogId, err)
	}
	return s, nil
}

// ReadFoldLogData reads foldlogdata/{foldlogId}_data.json from the store.
func ReadFoldLogData(store *logstore.Store, foldlogId string) (FoldLogDataDetail, error) {
	if !kpath.IsPlainName(foldlogId) {
		return FoldLogDataDetail{}, xe.New("invalid foldlogId: " + foldlogId)
	}
	var d FoldLogDataDetail
	if err := store.ReadJSON(logstore.FoldLogData, DataId(foldlogId)+".json", &d); err != nil {
		return FoldLogDataDetail{}, xe.WrapWithNote("foldlogdata "+foldlogId, err)
	}
	if d.EpochData == nil {
		d.EpochData = []EpochData{}
	}
	return d, nil
}
