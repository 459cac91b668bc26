package runlog

import (
	"github.com/opst/confusionflow/pkg/confmat"
	xe "github.com/opst/confusionflow/pkg/errors"
	"github.com/opst/confusionflow/pkg/logstore"
)

type EpochData struct {
	EpochId int   `json:"epochId"`
	Confmat []int `json:"confmat"`
}

// FoldLogDataDetail is the JSON form of FoldLogData.
type FoldLogDataDetail struct {
	FoldLogId string      `json:"foldlogId"`
	NumEpochs int         `json:"numepochs"`
	EpochData []EpochData `json:"epochdata"`
}

// FoldLogData is a series of confusion matrices of a FoldLog, in order of addition.
type FoldLogData struct {
	foldlogId string
	epochdata []EpochData
}

func newFoldLogData(foldlogId string) *FoldLogData {
	return &FoldLogData{foldlogId: foldlogId, epochdata: []EpochData{}}
}

// DataId is the identifier of FoldLogData made from its foldlogId.
func DataId(foldlogId string) string {
	return foldlogId + "_data"
}

func (d *FoldLogData) FoldLogId() string {
	return d.foldlogId
}

func (d *FoldLogData) NumEpochs() int {
	return len(d.epochdata)
}

// AddEpochData appends a confusion matrix of the epoch.
//
// Epochs are neither sorted nor deduplicated.
// confmat should be a flat, row-major square matrix. Otherwise, it fails with ErrInvalidConfmat.
func (d *FoldLogData) AddEpochData(epochId int, flat []int) error {
	if _, ok := confmat.Side(len(flat)); !ok {
		return xe.Wrapf(
			xe.ErrInvalidConfmat,
			"%s: epoch %d: length of confmat is %d, not a positive perfect square",
			d.foldlogId, epochId, len(flat),
		)
	}
	cm := make([]int, len(flat))
	copy(cm, flat)
	d.epochdata = append(d.epochdata, EpochData{EpochId: epochId, Confmat: cm})
	return nil
}

func (d *FoldLogData) Detail() FoldLogDataDetail {
	ed := make([]EpochData, len(d.epochdata))
	copy(ed, d.epochdata)
	return FoldLogDataDetail{
		FoldLogId: d.foldlogId,
		NumEpochs: len(ed),
		EpochData: ed,
	}
}

func (d *FoldLogData) export(store *logstore.Store) (string, error) {
	return store.WriteJSON(logstore.FoldLogData, DataId(d.foldlogId)+".json", d.Detail())
}
