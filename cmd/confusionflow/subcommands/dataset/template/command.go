package template

import (
	"context"
	"log"

	"github.com/opst/confusionflow/cmd/confusionflow/subcommands/common"
	"github.com/opst/confusionflow/pkg/dataset"
	kpath "github.com/opst/confusionflow/pkg/utils/path"
	"github.com/youta-t/flarc"
)

type Flag struct {
	Class []string `flag:"class" metavar:"CLASSNAME" help:"Class in the dataset. Repeat it for each class."`
	Fold  []string `flag:"fold" metavar:"FOLDNAME" help:"Fold in the dataset. Repeat it for each fold. (default: train and test)"`
}

const ARG_DATASET_ID = "DATASET_ID"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Print a skeleton of dataset description.",
		Flag{},
		flarc.Args{
			{
				Name: ARG_DATASET_ID, Required: true,
				Help: "Name of the dataset. It is used as a file name in logdir.",
			},
		},
		common.NewTask(Task),
		flarc.WithDescription(`
Print a skeleton of dataset description into stdout.

	{{ .Command }} --class cat --class dog --fold train --fold test pets > pets.yaml

Fill descriptions and class frequencies, then import it.
`),
	)
}

func Task(
	_ context.Context,
	_ *log.Logger,
	cl flarc.Commandline[Flag],
	_ []any,
) error {
	flags := cl.Flags()
	datasetId := cl.Args()[ARG_DATASET_ID][0]
	if !kpath.IsPlainName(datasetId + ".json") {
		return flarc.ErrUsage
	}

	folds := flags.Fold
	if len(folds) == 0 {
		folds = []string{"train", "test"}
	}
	classes := flags.Class
	if len(classes) == 0 {
		classes = []string{"class0", "class1"}
	}
	return dataset.WriteTemplate(cl.Stdout(), datasetId, classes, folds)
}
