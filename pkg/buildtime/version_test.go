package buildtime_test

import (
	"strings"
	"testing"

	"github.com/opst/confusionflow/pkg/buildtime"
)

func TestVersionString(t *testing.T) {
	v := buildtime.VersionString()
	if !strings.HasPrefix(v, buildtime.VERSION()+" ") {
		t.Errorf("version is not leading: %s", v)
	}
	if !strings.HasSuffix(v, "(commit: "+buildtime.GIT_REVISION()+")") {
		t.Errorf("revision is not trailing: %s", v)
	}
	if strings.ContainsAny(buildtime.VERSION(), "\r\n") {
		t.Errorf("VERSION has line breaks: %q", buildtime.VERSION())
	}
}
