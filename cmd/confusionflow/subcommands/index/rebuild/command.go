package rebuild

import (
	"context"
	"log"

	"github.com/opst/confusionflow/cmd/confusionflow/subcommands/common"
	"github.com/opst/confusionflow/pkg/logstore"
	"github.com/youta-t/flarc"
)

type Flag struct {
	Logdir  string `flag:"logdir" metavar:"path/to/logdir" help:"Directory of logs. (default: $CONFUSIONFLOW_LOGDIR)"`
	Verbose bool   `flag:"verbose" alias:"v" help:"Report each file written."`
}

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Rebuild runs/index.json and datasets/index.json.",
		Flag{},
		flarc.Args{},
		common.NewTask(Task),
		flarc.WithDescription(`
Rebuild index files from files in runs/ and datasets/ .

	{{ .Command }} --logdir ./logs

Use it after files in logdir are removed or edited by hand.
When a file is not valid JSON, the index is left as it was.
`),
	)
}

func Task(
	_ context.Context,
	logger *log.Logger,
	cl flarc.Commandline[Flag],
	_ []any,
) error {
	flags := cl.Flags()
	logdir, err := common.ResolveLogdir(flags.Logdir, "")
	if err != nil {
		return err
	}
	store, err := logstore.Open(
		logdir, logstore.WithLogger(common.EventLogger(cl.Stderr(), flags.Verbose)),
	)
	if err != nil {
		return err
	}
	if err := store.RebuildIndexes(); err != nil {
		return err
	}
	logger.Printf("indexes in %s are rebuilt", store.Root())
	return nil
}
