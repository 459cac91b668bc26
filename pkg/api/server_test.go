package api_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	testctx "github.com/opst/confusionflow/internal/testutils/context"
	"github.com/opst/confusionflow/pkg/api"
	"github.com/opst/confusionflow/pkg/utils/try"
)

func TestStart(t *testing.T) {
	t.Run("it serves the API until the context is canceled", func(t *testing.T) {
		logdir := exported(t)
		conf := try.To(api.NewConfig(logdir)).OrFatal(t)

		ctx, cancel := context.WithCancel(testctx.WithTest(context.Background(), t))
		defer cancel()

		server := api.Start(ctx, api.OnLocalPort(0), conf, api.Silent(), api.WithLogLevel("off"))
		if server.Port == 0 {
			t.Fatalf("server is not started: %v", <-server.ServerStop)
		}

		resp, err := http.Get(fmt.Sprintf("http://localhost:%d/api/foldlog/r1_f1/data/", server.Port))
		if err != nil {
			t.Fatal(err)
		}
		body := try.To(io.ReadAll(resp.Body)).OrFatal(t)
		resp.Body.Close()

		expected := `{"foldlogId":"r1_f1","numepochs":1,"epochdata":[{"epochId":0,"confmat":[4,1,0,5]}]}`
		if resp.StatusCode != http.StatusOK || string(body) != expected {
			t.Errorf("(status, body) = (%d, %s)", resp.StatusCode, body)
		}
		if cc := resp.Header.Get("Cache-Control"); cc != "no-cache, no-store, must-revalidate, max-age=0" {
			t.Errorf("Cache-Control: %s", cc)
		}

		cancel()
		select {
		case err := <-server.ServerStop:
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		case <-time.After(10 * time.Second):
			t.Fatal("server does not stop")
		}
	})

	t.Run("it reports an error when the server can not listen", func(t *testing.T) {
		conf := try.To(api.NewConfig(t.TempDir())).OrFatal(t)
		ctx := testctx.WithTest(context.Background(), t)

		first := api.Start(ctx, api.OnLocalPort(0), conf, api.Silent(), api.WithLogLevel("off"))
		if first.Port == 0 {
			t.Fatalf("server is not started: %v", <-first.ServerStop)
		}

		second := api.Start(ctx, api.OnLocalPort(first.Port), conf, api.Silent(), api.WithLogLevel("off"))
		if second.Port != 0 {
			t.Errorf("second server listens on %d", second.Port)
		}
		if err := <-second.ServerStop; err == nil {
			t.Error("error is not reported")
		}
	})
}
