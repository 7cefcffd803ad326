// Package api implements the palette conversion REST API.
package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"

	"github.com/pish-pish/bmc2json/internal/palstore"
	"github.com/pish-pish/bmc2json/internal/version"
	"github.com/pish-pish/bmc2json/internal/webui"
	"github.com/pish-pish/bmc2json/pkg/bmc"
)

// maxBodyBytes caps conversion request bodies. The largest valid
// container is just over 256 KiB; indented documents for it stay well
// under this.
const maxBodyBytes = 4 << 20

// Server handles palette conversion and library routes. The store may be
// nil, in which case the library routes answer 404 and only the
// conversion routes are live.
type Server struct {
	store   *palstore.Store
	limiter *convertLimiter
	clock   func() time.Time
}

// NewServer creates a Server. A non-positive rps disables rate limiting
// on the conversion routes.
func NewServer(store *palstore.Store, rps float64) *Server {
	return &Server{
		store:   store,
		limiter: newConvertLimiter(rps),
		clock:   time.Now,
	}
}

// Register adds the API routes to the Echo instance.
func (s *Server) Register(e *echo.Echo) {
	// GET  /                        - palette viewer page
	// GET  /healthz                 - liveness probe
	// GET  /v1/palettes             - list the palette library
	// GET  /v1/palettes/:name       - one palette as a document
	// POST /v1/convert/export       - BMC body in, document out
	// POST /v1/convert/build        - document body in, BMC out
	e.GET("/", s.handleIndex)
	e.GET("/healthz", s.handleHealth)
	e.GET("/v1/palettes", s.handleListPalettes)
	e.GET("/v1/palettes/:name", s.handleGetPalette)
	e.POST("/v1/convert/export", s.handleConvertExport)
	e.POST("/v1/convert/build", s.handleConvertBuild)
}

func (s *Server) handleIndex(c *echo.Context) error {
	return c.Blob(http.StatusOK, "text/html; charset=utf-8", webui.Index())
}

func (s *Server) handleHealth(c *echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":  "ok",
		"version": version.String(),
		"time":    s.clock().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleListPalettes(c *echo.Context) error {
	if s.store == nil {
		return writeNotFound(c, "no palette library configured")
	}
	entries, err := s.store.List()
	if err != nil {
		return writeServerError(c, err)
	}
	out := make([]PaletteInfo, 0, len(entries))
	for _, e := range entries {
		out = append(out, PaletteInfo{
			Name:    e.Name,
			Bytes:   e.Size,
			Entries: e.Entries,
		})
	}
	return c.JSON(http.StatusOK, PaletteListResponse{Palettes: out})
}

func (s *Server) handleGetPalette(c *echo.Context) error {
	if s.store == nil {
		return writeNotFound(c, "no palette library configured")
	}
	name := c.Param("name")
	cont, err := s.store.Load(name)
	if err != nil {
		if errors.Is(err, palstore.ErrNotFound) {
			return writeNotFound(c, err.Error())
		}
		return writeServerError(c, err)
	}
	group := parseGroup(c.QueryParam("group"))
	return c.JSON(http.StatusOK, PaletteResponse{
		Name:     name,
		Entries:  len(cont.Table.Colors),
		Document: cont.Document(group),
	})
}

// handleConvertExport decodes a binary container body and answers with
// its document form.
func (s *Server) handleConvertExport(c *echo.Context) error {
	if !s.limiter.allow() {
		return writeRateLimited(c)
	}
	body, err := readBody(c)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	cont, err := bmc.Decode(body)
	if err != nil {
		return writeConvertError(c, err)
	}
	group := parseGroup(c.QueryParam("group"))
	return c.JSON(http.StatusOK, ExportResponse{
		ID:       newConversionID(),
		Entries:  len(cont.Table.Colors),
		Document: cont.Document(group),
	})
}

// handleConvertBuild imports a document body and answers with the binary
// container.
func (s *Server) handleConvertBuild(c *echo.Context) error {
	if !s.limiter.allow() {
		return writeRateLimited(c)
	}
	body, err := readBody(c)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	cont, err := bmc.ImportDocument(body)
	if err != nil {
		return writeConvertError(c, err)
	}
	data, err := cont.Encode()
	if err != nil {
		return writeConvertError(c, err)
	}
	c.Response().Header().Set(headerConversionID, newConversionID())
	return c.Blob(http.StatusOK, "application/octet-stream", data)
}
