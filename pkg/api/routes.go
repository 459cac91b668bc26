package api

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// NoCache tells clients not to cache responses.
func NoCache(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		h := c.Response().Header()
		h.Set("Cache-Control", "no-cache, no-store, must-revalidate, max-age=0")
		h.Set("Pragma", "no-cache")
		h.Set("Expires", "0")
		return next(c)
	}
}

// Register adds routes of the API service into e.
//
//	GET /api/                          greeting
//	GET /api/runs/                     runs/index.json
//	GET /api/run/:runId/               runs/{runId}.json
//	GET /api/foldlog/:foldlogId/       foldlogs/{foldlogId}.json
//	GET /api/foldlog/:foldlogId/data/  foldlogdata/{foldlogId}_data.json
//	GET /api/datasets/                 datasets/index.json
//	GET /api/dataset/:datasetId/       datasets/{datasetId}.json
//	GET /api/views/, /api/view/:viewId/ (not implemented)
//
// Trailing slashes are optional. When the config has a static directory,
// the web UI is served at "/".
func Register(e *echo.Echo, conf Config) {
	e.Pre(middleware.RemoveTrailingSlash())

	api := func(p string) string { return "/api" + p }

	e.GET(api(""), Text(Greeting), NoCache)
	e.GET(api("/runs"), RunsHandler(conf), NoCache)
	e.GET(api("/run/:runId"), RunHandler(conf, "runId"), NoCache)
	e.GET(api("/foldlog/:foldlogId"), FoldLogHandler(conf, "foldlogId"), NoCache)
	e.GET(api("/foldlog/:foldlogId/data"), FoldLogDataHandler(conf, "foldlogId"), NoCache)
	e.GET(api("/datasets"), DatasetsHandler(conf), NoCache)
	e.GET(api("/dataset/:datasetId"), DatasetHandler(conf, "datasetId"), NoCache)
	e.GET(api("/views"), Text(NotImplemented), NoCache)
	e.GET(api("/view/:viewId"), Text(NotImplemented), NoCache)

	if conf.staticDir != "" {
		e.GET("/", StaticHandler(conf))
		e.GET("/*", StaticHandler(conf))
	}
}
