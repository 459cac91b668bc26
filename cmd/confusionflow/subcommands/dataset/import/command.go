package dsimport

import (
	"context"
	"fmt"
	"log"

	"github.com/opst/confusionflow/cmd/confusionflow/subcommands/common"
	"github.com/opst/confusionflow/pkg/dataset"
	"github.com/opst/confusionflow/pkg/logstore"
	"github.com/youta-t/flarc"
)

type Flag struct {
	Logdir  string `flag:"logdir" metavar:"path/to/logdir" help:"Directory of logs. It is created when missing. (default: $CONFUSIONFLOW_LOGDIR)"`
	Verbose bool   `flag:"verbose" alias:"v" help:"Report each file written."`
}

const ARG_FILE = "FILE"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Import dataset descriptions into logdir.",
		Flag{},
		flarc.Args{
			{
				Name: ARG_FILE, Required: true, Repeatable: true,
				Help: "YAML file describing a dataset.",
			},
		},
		common.NewTask(Task),
		flarc.WithDescription(`
Import dataset descriptions into logdir, and rebuild datasets/index.json .

	{{ .Command }} --logdir ./logs ./mnist.yaml ./cifar.yaml

Importing a dataset again overwrites the previous one.
Datasets are imported in order, and it stops at the first failure.

To start a new description, see "template" command.
`),
	)
}

func Task(
	ctx context.Context,
	logger *log.Logger,
	cl flarc.Commandline[Flag],
	_ []any,
) error {
	flags := cl.Flags()
	logdir, err := common.ResolveLogdir(flags.Logdir, "")
	if err != nil {
		return err
	}
	store, err := logstore.Create(
		logdir, logstore.WithLogger(common.EventLogger(cl.Stderr(), flags.Verbose)),
	)
	if err != nil {
		return err
	}

	for _, file := range cl.Args()[ARG_FILE] {
		if err := ctx.Err(); err != nil {
			return err
		}
		conf, err := dataset.Import(store, file)
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		logger.Printf("imported %s (%d classes, %d folds)", file, conf.NumClass, conf.NumFolds)
		fmt.Fprintln(cl.Stdout(), conf.DatasetId)
	}
	return nil
}
