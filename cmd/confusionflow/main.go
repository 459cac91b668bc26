package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path"

	subdataset "github.com/opst/confusionflow/cmd/confusionflow/subcommands/dataset"
	subindex "github.com/opst/confusionflow/cmd/confusionflow/subcommands/index"
	"github.com/opst/confusionflow/cmd/confusionflow/subcommands/logger"
	subplot "github.com/opst/confusionflow/cmd/confusionflow/subcommands/plot"
	subserve "github.com/opst/confusionflow/cmd/confusionflow/subcommands/serve"
	subver "github.com/opst/confusionflow/cmd/confusionflow/subcommands/version"
	"github.com/opst/confusionflow/pkg/utils/try"
	"github.com/youta-t/flarc"
)

func main() {
	name := path.Base(os.Args[0])
	logger := logger.Default()
	logger.SetPrefix(fmt.Sprintf("[%s] ", name))

	ctx, cancel := signal.NotifyContext(
		context.Background(), os.Interrupt, os.Kill,
	)
	defer cancel()

	serve := try.To(subserve.New()).OrFatal(logger)
	dataset := try.To(subdataset.New()).OrFatal(logger)
	index := try.To(subindex.New()).OrFatal(logger)
	plot := try.To(subplot.New()).OrFatal(logger)
	version := try.To(subver.New()).OrFatal(logger)

	cf := try.To(
		flarc.NewCommandGroup(
			"ConfusionFlow: browse confusion matrices of classifiers over epochs",
			struct{}{},
			flarc.WithSubcommand("serve", serve),
			flarc.WithSubcommand("dataset", dataset),
			flarc.WithSubcommand("index", index),
			flarc.WithSubcommand("plot", plot),
			flarc.WithSubcommand("version", version),
		),
	).OrFatal(logger)

	os.Exit(flarc.Run(ctx, cf, flarc.WithHelp(true)))
}
