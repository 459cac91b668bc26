package plot

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/opst/confusionflow/cmd/confusionflow/subcommands/common"
	xe "github.com/opst/confusionflow/pkg/errors"
	"github.com/opst/confusionflow/pkg/logstore"
	"github.com/opst/confusionflow/pkg/render"
	"github.com/opst/confusionflow/pkg/runlog"
	"github.com/youta-t/flarc"
	"gonum.org/v1/plot/vg"
)

type Flag struct {
	Logdir string `flag:"logdir" metavar:"path/to/logdir" help:"Directory of logs. (default: $CONFUSIONFLOW_LOGDIR)"`
	Output string `flag:"output" alias:"o" metavar:"path/to/chart" help:"Where the chart is written. \"-\" means stdout."`
	Format string `flag:"format" metavar:"png|svg|pdf" help:"Image format. (default: by extension of --output, or png)"`
	Title  string `flag:"title" help:"Title of the chart."`
	Width  int    `flag:"width" metavar:"CENTIMETERS" help:"Width of the chart."`
	Height int    `flag:"height" metavar:"CENTIMETERS" help:"Height of the chart."`
}

const ARG_FOLDLOG_ID = "FOLDLOG_ID"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Plot accuracy of foldlogs over epochs.",
		Flag{
			Output: "-",
			Title:  "accuracy",
			Width:  int(render.DefaultWidth / vg.Centimeter),
			Height: int(render.DefaultHeight / vg.Centimeter),
		},
		flarc.Args{
			{
				Name: ARG_FOLDLOG_ID, Required: true, Repeatable: true,
				Help: "FoldLog to be plotted, like {runId}_{foldId}.",
			},
		},
		common.NewTask(Task),
		flarc.WithDescription(`
Plot accuracy of each epoch, computed from confusion matrices in foldlogdata.

	{{ .Command }} --logdir ./logs -o accuracy.svg run1_mnist_test run2_mnist_test

Each foldlog is drawn as a line.
`),
	)
}

// FormatOf decides image format from the flag, or from the extension of output.
func FormatOf(format string, output string) (string, error) {
	if format == "" {
		format = strings.TrimPrefix(filepath.Ext(output), ".")
		if !slices.Contains(render.Formats, strings.ToLower(format)) {
			format = "png"
		}
	}
	format = strings.ToLower(format)
	if !slices.Contains(render.Formats, format) {
		return "", xe.Wrapf(
			flarc.ErrUsage, "unsupported format %q: should be one of %s",
			format, strings.Join(render.Formats, "|"),
		)
	}
	return format, nil
}

func Task(
	ctx context.Context,
	logger *log.Logger,
	cl flarc.Commandline[Flag],
	_ []any,
) error {
	flags := cl.Flags()
	format, err := FormatOf(flags.Format, flags.Output)
	if err != nil {
		return err
	}
	if flags.Width <= 0 || flags.Height <= 0 {
		return xe.Wrapf(flarc.ErrUsage, "size should be positive: %dx%d", flags.Width, flags.Height)
	}

	logdir, err := common.ResolveLogdir(flags.Logdir, "")
	if err != nil {
		return err
	}
	store, err := logstore.Open(logdir)
	if err != nil {
		return err
	}

	ids := cl.Args()[ARG_FOLDLOG_ID]
	data := make([]runlog.FoldLogDataDetail, 0, len(ids))
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return err
		}
		d, err := runlog.ReadFoldLogData(store, id)
		if err != nil {
			return xe.WrapWithNote("foldlog "+id, err)
		}
		if len(d.EpochData) == 0 {
			logger.Printf("foldlog %s has no epochs. skipped.", id)
		}
		data = append(data, d)
	}

	chart, err := render.AccuracyChart(flags.Title, data...)
	if err != nil {
		return err
	}

	var w io.Writer = cl.Stdout()
	if flags.Output != "-" {
		f, err := os.Create(flags.Output)
		if err != nil {
			return xe.Wrap(err)
		}
		defer f.Close()
		w = f
	}
	return render.Write(
		w, chart, format,
		vg.Length(flags.Width)*vg.Centimeter, vg.Length(flags.Height)*vg.Centimeter,
	)
}
