// Package server exposes the bundle generator over HTTP for interactive use
// and for wiring into load scripts. Every generation endpoint is stateless;
// determinism is entirely in the seed.
package server

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/miabis/bundlegen/internal/config"
	"github.com/miabis/bundlegen/internal/platform/middleware"
)

// New assembles the echo instance with the standard middleware stack and
// all generator routes registered.
func New(cfg *config.Config, logger zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))

	NewHandler(cfg, logger).RegisterRoutes(e)
	return e
}
