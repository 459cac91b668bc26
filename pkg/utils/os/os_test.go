package os_test

import (
	"testing"

	kos "github.com/opst/confusionflow/pkg/utils/os"
)

func TestLookupEnv(t *testing.T) {
	key := "CONFUSIONFLOW_TEST_ENVVAR"

	t.Run("it returns value of envvar, if existing", func(t *testing.T) {
		t.Setenv(key, "test value")

		actual, ok := kos.LookupEnv(key)
		if !ok || actual != "test value" {
			t.Errorf("wrong value returned: (actual, ok) = (%s, %v)", actual, ok)
		}
	})

	t.Run("it treats empty value as missing", func(t *testing.T) {
		t.Setenv(key, "")

		if _, ok := kos.LookupEnv(key); ok {
			t.Error("empty envvar is found")
		}
	})
}
