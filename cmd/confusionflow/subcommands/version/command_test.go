package version_test

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/opst/confusionflow/cmd/confusionflow/subcommands/internal/commandline"
	"github.com/opst/confusionflow/cmd/confusionflow/subcommands/version"
	"github.com/opst/confusionflow/pkg/buildtime"
)

func TestVersion(t *testing.T) {
	stdout := new(bytes.Buffer)
	cl := commandline.MockCommandline[struct{}]{
		Fullname_: "confusionflow version",
		Stdout_:   stdout,
		Stderr_:   io.Discard,
	}
	if err := version.Task(context.Background(), cl, nil); err != nil {
		t.Fatal(err)
	}
	if expected := buildtime.VersionString() + "\n"; stdout.String() != expected {
		t.Errorf("(actual, expected) = (%q, %q)", stdout.String(), expected)
	}
}
