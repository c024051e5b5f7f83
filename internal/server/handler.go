package server

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/miabis/bundlegen/internal/config"
	"github.com/miabis/bundlegen/internal/generator"
	"github.com/miabis/bundlegen/internal/platform/random"
	"github.com/miabis/bundlegen/internal/registry"
	"github.com/miabis/bundlegen/pkg/fhirmodels"
)

type Handler struct {
	cfg *config.Config
	log zerolog.Logger
}

func NewHandler(cfg *config.Config, log zerolog.Logger) *Handler {
	return &Handler{cfg: cfg, log: log}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.Health)
	e.POST("/generate", h.Generate)
	e.GET("/export/bundle", h.ExportBundle)
	e.GET("/registries", h.ListRegistries)
	e.GET("/registries/:name", h.GetRegistry)
}

// generateRequest carries per-request overrides of the server defaults.
// Zero values fall back to the configuration the server was started with.
type generateRequest struct {
	Donors                 int      `json:"donors"`
	Biobanks               int      `json:"biobanks"`
	Collections            int      `json:"collections"`
	Seed                   int64    `json:"seed"`
	SpecimensMin           int      `json:"specimensMin"`
	SpecimensMax           int      `json:"specimensMax"`
	ObservationProbability *float64 `json:"observationProbability"`
}

type generateResponse struct {
	Summary *generator.Summary `json:"summary"`
	Bundle  *fhirmodels.Bundle `json:"bundle"`
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Generate(c echo.Context) error {
	var req generateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	cfg := h.merge(req)
	bundle, sum, err := h.run(cfg)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	h.log.Info().
		Int("donors", cfg.Donors).
		Int64("seed", sum.Seed).
		Int("resources", sum.TotalResources).
		Msg("bundle generated")

	return c.JSON(http.StatusOK, generateResponse{Summary: sum, Bundle: bundle})
}

// ExportBundle streams a bundle as a download. Parameters come from the
// query string so the endpoint works from a plain browser link.
func (h *Handler) ExportBundle(c echo.Context) error {
	var req generateRequest
	for param, dst := range map[string]*int{
		"donors":      &req.Donors,
		"biobanks":    &req.Biobanks,
		"collections": &req.Collections,
	} {
		if v := c.QueryParam(param); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "invalid "+param)
			}
			*dst = n
		}
	}
	if v := c.QueryParam("seed"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid seed")
		}
		req.Seed = n
	}

	cfg := h.merge(req)
	bundle, sum, err := h.run(cfg)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// Encode fully before touching the response: a failure mid-stream would
	// otherwise hand the client a truncated body under a 200.
	var buf bytes.Buffer
	if err := generator.Encode(&buf, bundle); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.log.Info().
		Int("donors", cfg.Donors).
		Int64("seed", sum.Seed).
		Int("resources", sum.TotalResources).
		Msg("bundle exported")

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="miabis-bundle-%ddonors.json"`, cfg.Donors))
	return c.Blob(http.StatusOK, "application/fhir+json", buf.Bytes())
}

func (h *Handler) ListRegistries(c echo.Context) error {
	sets := registry.Registries()
	names := make([]string, len(sets))
	for i, s := range sets {
		names[i] = s.Name
	}
	return c.JSON(http.StatusOK, map[string]any{"registries": names})
}

func (h *Handler) GetRegistry(c echo.Context) error {
	name := c.Param("name")
	for _, s := range registry.Registries() {
		if s.Name == name {
			return c.JSON(http.StatusOK, s)
		}
	}
	return echo.NewHTTPError(http.StatusNotFound, "unknown registry "+name)
}

// merge folds request overrides onto a copy of the server configuration.
func (h *Handler) merge(req generateRequest) *config.Config {
	cfg := *h.cfg
	if req.Donors > 0 {
		cfg.Donors = req.Donors
	}
	if req.Biobanks > 0 {
		cfg.Biobanks = req.Biobanks
	}
	if req.Collections > 0 {
		cfg.Collections = req.Collections
	}
	if req.Seed != 0 {
		cfg.Seed = req.Seed
	}
	if req.SpecimensMin > 0 {
		cfg.SpecimensMin = req.SpecimensMin
	}
	if req.SpecimensMax > 0 {
		cfg.SpecimensMax = req.SpecimensMax
	}
	if req.ObservationProbability != nil {
		cfg.ObservationProbability = *req.ObservationProbability
	}
	return &cfg
}

func (h *Handler) run(cfg *config.Config) (*fhirmodels.Bundle, *generator.Summary, error) {
	seed := cfg.Seed
	var p *random.Provider
	if seed == 0 {
		var err error
		p, seed, err = random.NewFromEntropy()
		if err != nil {
			return nil, nil, err
		}
		h.log.Info().Int64("seed", seed).Msg("no seed supplied, drew one from system entropy")
	} else {
		p = random.New(seed)
	}
	return generator.New(cfg, p, seed).Assemble()
}
