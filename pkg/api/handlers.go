package api

import (
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/labstack/echo/v4"
	"github.com/opst/confusionflow/pkg/logstore"
	"github.com/opst/confusionflow/pkg/runlog"
	kpath "github.com/opst/confusionflow/pkg/utils/path"
)

const (
	Greeting       = "Welcome to ConfusionFlow API"
	NotImplemented = "not implemented yet"

	MsgRunsNotFound        = "Could not load runs."
	MsgRunNotFound         = "runId not found"
	MsgFoldLogNotFound     = "foldlogId not found"
	MsgFoldLogDataNotFound = "data for foldlogId not found"
	MsgDatasetsNotFound    = "Could not load datasets."
	MsgDatasetNotFound     = "datasetId not found."
)

// FileName tells which file in a folder answers the request.
//
// It returns false when the request names no file.
type FileName func(c echo.Context) (string, bool)

// Fixed names a file regardless of the request.
func Fixed(name string) FileName {
	return func(echo.Context) (string, bool) {
		return name, true
	}
}

// ByParam names a file by a path parameter, converted with toName.
//
// Parameters which are not plain names (containing separators, "..", or NUL) name no file.
func ByParam(param string, toName func(string) string) FileName {
	return func(c echo.Context) (string, bool) {
		v := c.Param(param)
		if !kpath.IsPlainName(v) {
			return "", false
		}
		return toName(v), true
	}
}

func jsonFile(id string) string {
	return id + ".json"
}

// ServeFile answers a JSON file in the folder of the log store,
// or the message when the file is missing.
func ServeFile(conf Config, folder logstore.Folder, name FileName, notFound string) echo.HandlerFunc {
	return func(c echo.Context) error {
		n, ok := name(c)
		if !ok {
			return NotFound(c, conf, notFound)
		}
		p := filepath.Join(conf.logdir, string(folder), n)
		if fi, err := os.Stat(p); err != nil || !fi.Mode().IsRegular() {
			return NotFound(c, conf, notFound)
		}

		f, err := os.Open(p)
		if err != nil {
			// removed after stat
			return NotFound(c, conf, notFound)
		}
		defer f.Close()
		return c.Stream(http.StatusOK, echo.MIMEApplicationJSON, f)
	}
}

// NotFound answers the message as plain text.
//
// The status is 200, or 404 when the config is strict.
func NotFound(c echo.Context, conf Config, message string) error {
	status := http.StatusOK
	if conf.strictNotFound {
		status = http.StatusNotFound
	}
	return c.String(status, message)
}

// Text answers a fixed message.
func Text(message string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.String(http.StatusOK, message)
	}
}

func RunsHandler(conf Config) echo.HandlerFunc {
	return ServeFile(conf, logstore.Runs, Fixed(logstore.IndexFile), MsgRunsNotFound)
}

func RunHandler(conf Config, param string) echo.HandlerFunc {
	return ServeFile(conf, logstore.Runs, ByParam(param, jsonFile), MsgRunNotFound)
}

func FoldLogHandler(conf Config, param string) echo.HandlerFunc {
	return ServeFile(conf, logstore.FoldLogs, ByParam(param, jsonFile), MsgFoldLogNotFound)
}

func FoldLogDataHandler(conf Config, param string) echo.HandlerFunc {
	return ServeFile(
		conf, logstore.FoldLogData,
		ByParam(param, func(foldlogId string) string { return jsonFile(runlog.DataId(foldlogId)) }),
		MsgFoldLogDataNotFound,
	)
}

func DatasetsHandler(conf Config) echo.HandlerFunc {
	return ServeFile(conf, logstore.Datasets, Fixed(logstore.IndexFile), MsgDatasetsNotFound)
}

func DatasetHandler(conf Config, param string) echo.HandlerFunc {
	return ServeFile(conf, logstore.Datasets, ByParam(param, jsonFile), MsgDatasetNotFound)
}

// StaticHandler serves files of the web UI. "/" is index.html.
//
// Missing files are answered with an empty body.
func StaticHandler(conf Config) echo.HandlerFunc {
	return func(c echo.Context) error {
		rel := path.Clean("/" + c.Param("*"))
		if rel == "/" {
			rel = "/index.html"
		}
		p := filepath.Join(conf.staticDir, filepath.FromSlash(rel))
		if fi, err := os.Stat(p); err != nil || !fi.Mode().IsRegular() {
			return c.String(http.StatusOK, "")
		}
		return c.File(p)
	}
}
