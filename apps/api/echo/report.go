package echoapi

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core/report"
)

const mimeTextCSV = "text/csv; charset=utf-8"

type reportApi struct {
	svc *report.Service
}

func registerReportAPI(g *echo.Group, svc *report.Service) {
	api := reportApi{svc: svc}

	g.GET("/grades/averages", api.averages)
	g.GET("/grades/export", api.export)
}

func (api *reportApi) averages(ctx echo.Context) error {
	avgs, err := api.svc.Averages(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "computing averages")
	}
	return ctx.JSON(http.StatusOK, avgs)
}

func (api *reportApi) export(ctx echo.Context) error {
	// buffered so a failing query still gets a proper error response
	var buf bytes.Buffer
	if err := api.svc.ExportGrades(ctx.Request().Context(), &buf); err != nil {
		return errors.Wrap(err, "exporting grades")
	}
	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", report.ExportFilename))
	return ctx.Blob(http.StatusOK, mimeTextCSV, buf.Bytes())
}
