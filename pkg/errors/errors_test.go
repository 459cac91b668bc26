package errors_test

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"

	xe "github.com/opst/confusionflow/pkg/errors"
)

type MyErr struct{}

func (MyErr) Error() string {
	return "error type for test"
}

func createError(message string) error {
	return xe.New(message)
}

func TestNewError(t *testing.T) {
	t.Run("it knows location where it is created.", func(t *testing.T) {
		testee := createError("test error")
		detail := fmt.Sprintf("%+v", testee)

		if !strings.Contains(detail, "createError") {
			t.Errorf("it does not know function name: %s", detail)
		}
		if !strings.Contains(detail, "errors_test.go") {
			t.Errorf("it does not know file: %s", detail)
		}
	})

	t.Run("it supports errors protocol", func(t *testing.T) {
		rootError := MyErr{}

		err := xe.Wrap(
			fmt.Errorf(
				"%w",
				fmt.Errorf("%w", rootError),
			),
		)

		if !errors.Is(err, rootError) {
			t.Error("it does not support unwrapping.")
		}
	})

	t.Run("wrapping nil gives nil", func(t *testing.T) {
		if err := xe.Wrap(nil); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if err := xe.WrapWithNote("note", nil); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestWrapWithNote(t *testing.T) {
	t.Run("it prepends note to the message", func(t *testing.T) {
		err := xe.WrapWithNote("while reading", MyErr{})
		if !strings.HasPrefix(err.Error(), "while reading") {
			t.Errorf("note is not found: %s", err.Error())
		}
		if !errors.Is(err, MyErr{}) {
			t.Error("it does not support unwrapping.")
		}
	})
}

func TestTaxonomy(t *testing.T) {
	kinds := []error{
		xe.ErrInvalidLogDir,
		xe.ErrConfigNotFound,
		xe.ErrMalformedConfig,
		xe.ErrCorruptIndexEntry,
		xe.ErrDuplicateFoldId,
		xe.ErrInvalidId,
		xe.ErrInvalidConfmat,
	}

	t.Run("Wrapf keeps its kind", func(t *testing.T) {
		for _, kind := range kinds {
			err := xe.Wrapf(kind, "detail %d", 1)
			if !xe.Is(err, kind) {
				t.Errorf("%v is not %v", err, kind)
			}
			for _, other := range kinds {
				if other == kind {
					continue
				}
				if xe.Is(err, other) {
					t.Errorf("%v is %v, unexpectedly", err, other)
				}
			}
		}
	})

	t.Run("Because keeps both of kind and cause", func(t *testing.T) {
		err := xe.Because(xe.ErrConfigNotFound, fs.ErrNotExist, "%s", "dataset.yaml")
		if !xe.Is(err, xe.ErrConfigNotFound) {
			t.Errorf("%v is not ErrConfigNotFound", err)
		}
		if !xe.Is(err, fs.ErrNotExist) {
			t.Errorf("%v is not fs.ErrNotExist", err)
		}
		if !strings.Contains(err.Error(), "dataset.yaml") {
			t.Errorf("message is lost: %s", err.Error())
		}
	})
}
