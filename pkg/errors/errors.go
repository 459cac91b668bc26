// Error taxonomy of ConfusionFlow, and wrappers recording where errors pass through.
//
// Usage:
//
// ```
// wrapped := xerrors.Wrap(err)
// ```
//
// `wrapped` knows the stack where itself is created. Print it with "%+v" to see it.
//
// Every failure raised by the log store, the dataset importer and the run logger
// is marked with one of sentinels below, so callers can classify errors with `errors.Is`.

package errors

import (
	"github.com/cockroachdb/errors"
)

var (
	// a target directory in the log store is missing or is not a directory.
	ErrInvalidLogDir = errors.New("invalid logdir")

	// a configuration file (dataset description or server config) does not exist.
	ErrConfigNotFound = errors.New("config not found")

	// a configuration file (dataset description or server config)
	// lacks required fields or has ill-typed ones.
	ErrMalformedConfig = errors.New("malformed config")

	// a file in an indexed folder is not a valid JSON.
	ErrCorruptIndexEntry = errors.New("corrupt index entry")

	// two folds in one run share a foldId.
	ErrDuplicateFoldId = errors.New("duplicated foldId")

	// runId or foldId can not be used as a file name in the log store.
	ErrInvalidId = errors.New("invalid id")

	// a confusion matrix is not a flattened square matrix.
	ErrInvalidConfmat = errors.New("invalid confusion matrix")
)

func New(text string) error {
	return errors.NewWithDepth(1, text)
}

func Wrap(err error) error {
	if err == nil {
		return nil
	}
	return errors.WithStackDepth(err, 1)
}

func WrapAsOuter(err error, depth int) error {
	if err == nil {
		return nil
	}
	return errors.WithStackDepth(err, depth+1)
}

func WrapWithNote(note string, err error) error {
	if err == nil {
		return nil
	}
	return errors.WrapWithDepth(1, err, note)
}

// Wrapf creates an error which is one of `kind` with formatted message.
//
// `kind` should be one of sentinels defined in this package.
func Wrapf(kind error, format string, args ...any) error {
	return errors.WrapWithDepthf(1, kind, format, args...)
}

// Because creates an error which is one of `kind`, caused by `cause`.
//
// Both of `errors.Is(err, kind)` and `errors.Is(err, cause)` hold for the returned error.
func Because(kind error, cause error, format string, args ...any) error {
	return errors.Mark(errors.WrapWithDepthf(1, cause, format, args...), kind)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
