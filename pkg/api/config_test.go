package api_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/opst/confusionflow/pkg/api"
	xe "github.com/opst/confusionflow/pkg/errors"
	"github.com/opst/confusionflow/pkg/utils/try"
)

func TestNewConfig(t *testing.T) {
	t.Run("it resolves logdir and static directory", func(t *testing.T) {
		logdir := t.TempDir()
		testee := try.To(api.NewConfig(
			logdir,
			api.WithStaticDir("./testdata/static"),
			api.WithStrictNotFound(true),
		)).OrFatal(t)

		if want := try.To(filepath.EvalSymlinks(logdir)).OrFatal(t); testee.Logdir() != want {
			t.Errorf("logdir: (actual, expected) = (%s, %s)", testee.Logdir(), want)
		}
		if want := try.To(filepath.Abs("./testdata/static")).OrFatal(t); testee.StaticDir() != want {
			t.Errorf("static: (actual, expected) = (%s, %s)", testee.StaticDir(), want)
		}
		if !testee.StrictNotFound() {
			t.Error("strictNotFound is not set")
		}
	})

	t.Run("it has no static directory and is not strict by default", func(t *testing.T) {
		testee := try.To(api.NewConfig(t.TempDir())).OrFatal(t)
		if testee.StaticDir() != "" || testee.StrictNotFound() {
			t.Errorf("(static, strict) = (%s, %v)", testee.StaticDir(), testee.StrictNotFound())
		}
	})

	t.Run("it fails with ErrInvalidLogDir when logdir is missing", func(t *testing.T) {
		_, err := api.NewConfig(filepath.Join(t.TempDir(), "nowhere"))
		if !xe.Is(err, xe.ErrInvalidLogDir) {
			t.Errorf("expected ErrInvalidLogDir, but got %v", err)
		}
	})

	t.Run("it fails with ErrInvalidLogDir when logdir is a file", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "file")
		if err := os.WriteFile(file, nil, 0o644); err != nil {
			t.Fatal(err)
		}
		_, err := api.NewConfig(file)
		if !xe.Is(err, xe.ErrInvalidLogDir) {
			t.Errorf("expected ErrInvalidLogDir, but got %v", err)
		}
	})

	t.Run("it fails when static directory is missing", func(t *testing.T) {
		_, err := api.NewConfig(t.TempDir(), api.WithStaticDir(filepath.Join(t.TempDir(), "nowhere")))
		if err == nil {
			t.Error("error is not returned")
		}
	})
}
