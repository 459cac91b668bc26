package render_test

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/opst/confusionflow/pkg/render"
	"github.com/opst/confusionflow/pkg/runlog"
	"github.com/opst/confusionflow/pkg/utils/try"
)

func data(foldlogId string, epochs ...runlog.EpochData) runlog.FoldLogDataDetail {
	return runlog.FoldLogDataDetail{FoldLogId: foldlogId, NumEpochs: len(epochs), EpochData: epochs}
}

func TestAccuracy(t *testing.T) {
	t.Run("it computes accuracy for each epoch, in recorded order", func(t *testing.T) {
		xys := try.To(render.Accuracy(data(
			"r1_f1",
			runlog.EpochData{EpochId: 1, Confmat: []int{4, 1, 0, 5}},
			runlog.EpochData{EpochId: 0, Confmat: []int{0, 5, 5, 0}},
			runlog.EpochData{EpochId: 2, Confmat: []int{0, 0, 0, 0}},
		))).OrFatal(t)

		expected := [][2]float64{{1, 0.9}, {0, 0}, {2, 0}}
		if len(xys) != len(expected) {
			t.Fatalf("(actual, expected) = (%v, %v)", xys, expected)
		}
		for nth := range xys {
			if xys[nth].X != expected[nth][0] || math.Abs(xys[nth].Y-expected[nth][1]) > 1e-9 {
				t.Errorf("#%d: (actual, expected) = (%v, %v)", nth, xys[nth], expected[nth])
			}
		}
	})

	t.Run("it fails when a confmat is not square", func(t *testing.T) {
		_, err := render.Accuracy(data("r1_f1", runlog.EpochData{EpochId: 0, Confmat: []int{1, 2, 3}}))
		if err == nil {
			t.Error("error is not returned")
		}
	})
}

func TestAccuracyChart(t *testing.T) {
	series := []runlog.FoldLogDataDetail{
		data(
			"r1_train",
			runlog.EpochData{EpochId: 0, Confmat: []int{3, 2, 2, 3}},
			runlog.EpochData{EpochId: 1, Confmat: []int{4, 1, 0, 5}},
		),
		data("r1_empty"),
		data(
			"r1_test",
			runlog.EpochData{EpochId: 0, Confmat: []int{2, 3, 3, 2}},
			runlog.EpochData{EpochId: 1, Confmat: []int{3, 2, 1, 4}},
		),
	}

	for _, testcase := range []struct {
		format string
		check  func([]byte) bool
	}{
		{format: "svg", check: func(b []byte) bool { return bytes.Contains(b, []byte("<svg")) }},
		{format: "PNG", check: func(b []byte) bool { return bytes.HasPrefix(b, []byte("\x89PNG")) }},
		{format: "pdf", check: func(b []byte) bool { return bytes.HasPrefix(b, []byte("%PDF")) }},
	} {
		t.Run("it renders the chart as "+testcase.format, func(t *testing.T) {
			p := try.To(render.AccuracyChart("r1", series...)).OrFatal(t)

			buf := new(bytes.Buffer)
			if err := render.Write(buf, p, testcase.format, render.DefaultWidth, render.DefaultHeight); err != nil {
				t.Fatalf("unexpected error: %+v", err)
			}
			if !testcase.check(buf.Bytes()) {
				t.Errorf("unexpected output: %q...", buf.Bytes()[:min(32, buf.Len())])
			}
		})
	}

	t.Run("svg has legends for each foldlog with epochs", func(t *testing.T) {
		p := try.To(render.AccuracyChart("r1", series...)).OrFatal(t)
		buf := new(bytes.Buffer)
		if err := render.Write(buf, p, "svg", render.DefaultWidth, render.DefaultHeight); err != nil {
			t.Fatal(err)
		}
		svg := buf.String()
		for _, want := range []string{"r1_train", "r1_test"} {
			if !strings.Contains(svg, want) {
				t.Errorf("legend %s is missing", want)
			}
		}
		if strings.Contains(svg, "r1_empty") {
			t.Error("foldlog without epochs is plotted")
		}
	})

	t.Run("it fails when there are no epochs", func(t *testing.T) {
		if _, err := render.AccuracyChart("r1", data("r1_empty")); err == nil {
			t.Error("error is not returned")
		}
	})

	t.Run("it fails for unknown format", func(t *testing.T) {
		p := try.To(render.AccuracyChart("r1", series...)).OrFatal(t)
		if err := render.Write(new(bytes.Buffer), p, "bmp", render.DefaultWidth, render.DefaultHeight); err == nil {
			t.Error("error is not returned")
		}
	})
}
