package plot_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/opst/confusionflow/cmd/confusionflow/subcommands/internal/commandline"
	"github.com/opst/confusionflow/cmd/confusionflow/subcommands/logger"
	"github.com/opst/confusionflow/cmd/confusionflow/subcommands/plot"
	xe "github.com/opst/confusionflow/pkg/errors"
	"github.com/opst/confusionflow/pkg/logstore"
	"github.com/opst/confusionflow/pkg/runlog"
	"github.com/opst/confusionflow/pkg/utils/try"
	"github.com/youta-t/flarc"
)

func TestFormatOf(t *testing.T) {
	for name, testcase := range map[string]struct {
		format   string
		output   string
		expected string
	}{
		"flag has priority":             {format: "pdf", output: "chart.svg", expected: "pdf"},
		"flag is case insensitive":      {format: "SVG", output: "-", expected: "svg"},
		"extension decides":             {output: "out/chart.svg", expected: "svg"},
		"extension is case insensitive": {output: "chart.PDF", expected: "pdf"},
		"stdout is png":                 {output: "-", expected: "png"},
		"unknown extension is png":      {output: "chart.txt", expected: "png"},
	} {
		t.Run(name, func(t *testing.T) {
			actual := try.To(plot.FormatOf(testcase.format, testcase.output)).OrFatal(t)
			if actual != testcase.expected {
				t.Errorf("(actual, expected) = (%s, %s)", actual, testcase.expected)
			}
		})
	}

	t.Run("unknown format flag is a usage error", func(t *testing.T) {
		_, err := plot.FormatOf("gif", "-")
		if !xe.Is(err, flarc.ErrUsage) {
			t.Errorf("expected ErrUsage, but got %v", err)
		}
	})
}

func prepare(t *testing.T) string {
	t.Helper()
	logdir := filepath.Join(t.TempDir(), "logs")
	store := try.To(logstore.Create(logdir)).OrFatal(t)
	for _, d := range []runlog.FoldLogDataDetail{
		{
			FoldLogId: "r1_f1", NumEpochs: 2,
			EpochData: []runlog.EpochData{
				{EpochId: 0, Confmat: []int{4, 1, 0, 5}},
				{EpochId: 1, Confmat: []int{5, 0, 1, 4}},
			},
		},
		{FoldLogId: "r2_f1", NumEpochs: 0, EpochData: []runlog.EpochData{}},
	} {
		if _, err := store.WriteJSON(logstore.FoldLogData, runlog.DataId(d.FoldLogId)+".json", d); err != nil {
			t.Fatal(err)
		}
	}
	return logdir
}

func flags(logdir string) plot.Flag {
	return plot.Flag{Logdir: logdir, Output: "-", Title: "accuracy", Width: 16, Height: 10}
}

func TestTask(t *testing.T) {
	t.Run("it writes a chart into stdout", func(t *testing.T) {
		logdir := prepare(t)
		stdout := new(bytes.Buffer)
		f := flags(logdir)
		f.Format = "svg"
		cl := commandline.MockCommandline[plot.Flag]{
			Fullname_: "confusionflow plot",
			Flags_:    f,
			Args_:     map[string][]string{plot.ARG_FOLDLOG_ID: {"r1_f1", "r2_f1"}},
			Stdout_:   stdout,
			Stderr_:   io.Discard,
		}
		if err := plot.Task(context.Background(), logger.Null(), cl, nil); err != nil {
			t.Fatalf("unexpected error: %+v", err)
		}
		if !bytes.Contains(stdout.Bytes(), []byte("<svg")) {
			t.Errorf("output is not svg: %.64s", stdout.String())
		}
	})

	t.Run("it writes a chart into the file in format by extension", func(t *testing.T) {
		logdir := prepare(t)
		out := filepath.Join(t.TempDir(), "accuracy.png")
		f := flags(logdir)
		f.Output = out
		cl := commandline.MockCommandline[plot.Flag]{
			Fullname_: "confusionflow plot",
			Flags_:    f,
			Args_:     map[string][]string{plot.ARG_FOLDLOG_ID: {"r1_f1"}},
			Stdout_:   io.Discard,
			Stderr_:   io.Discard,
		}
		if err := plot.Task(context.Background(), logger.Null(), cl, nil); err != nil {
			t.Fatalf("unexpected error: %+v", err)
		}
		content := try.To(os.ReadFile(out)).OrFatal(t)
		if !bytes.HasPrefix(content, []byte("\x89PNG")) {
			t.Errorf("output is not png: %q", content[:min(8, len(content))])
		}
	})

	t.Run("it fails when foldlogs have no epochs", func(t *testing.T) {
		logdir := prepare(t)
		cl := commandline.MockCommandline[plot.Flag]{
			Fullname_: "confusionflow plot",
			Flags_:    flags(logdir),
			Args_:     map[string][]string{plot.ARG_FOLDLOG_ID: {"r2_f1"}},
			Stdout_:   io.Discard,
			Stderr_:   io.Discard,
		}
		if err := plot.Task(context.Background(), logger.Null(), cl, nil); err == nil {
			t.Error("no error")
		}
	})

	t.Run("it fails when the foldlog is missing", func(t *testing.T) {
		logdir := prepare(t)
		cl := commandline.MockCommandline[plot.Flag]{
			Fullname_: "confusionflow plot",
			Flags_:    flags(logdir),
			Args_:     map[string][]string{plot.ARG_FOLDLOG_ID: {"r1_f1", "r9_f1"}},
			Stdout_:   io.Discard,
			Stderr_:   io.Discard,
		}
		if err := plot.Task(context.Background(), logger.Null(), cl, nil); !xe.Is(err, os.ErrNotExist) {
			t.Errorf("expected ErrNotExist, but got %v", err)
		}
	})

	t.Run("it fails with ErrUsage for non-positive size", func(t *testing.T) {
		logdir := prepare(t)
		f := flags(logdir)
		f.Width = 0
		cl := commandline.MockCommandline[plot.Flag]{
			Fullname_: "confusionflow plot",
			Flags_:    f,
			Args_:     map[string][]string{plot.ARG_FOLDLOG_ID: {"r1_f1"}},
			Stdout_:   io.Discard,
			Stderr_:   io.Discard,
		}
		if err := plot.Task(context.Background(), logger.Null(), cl, nil); !xe.Is(err, flarc.ErrUsage) {
			t.Errorf("expected ErrUsage, but got %v", err)
		}
	})
}
