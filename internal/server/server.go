package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"inventory/internal/handler"
	"inventory/internal/metrics"
	mid "inventory/internal/middleware"
	"inventory/pkg/logger"
)

// New はミドルウェアとルートを組み付けたechoを返す
func New(productH *handler.ProductHandler, stockH *handler.StockHandler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Recover())
	e.Use(mid.RequestIDMiddleware())
	e.Use(logger.Middleware())
	e.Use(metrics.NewHTTPMetrics("inventory").Middleware())

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(metrics.GetPrometheusHandler()))

	productH.RegisterRoutes(e)
	stockH.RegisterRoutes(e)

	return e
}

func Start(addr string, productH *handler.ProductHandler, stockH *handler.StockHandler) error {
	return New(productH, stockH).Start(addr)
}
