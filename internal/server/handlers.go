// Package server handles HTTP requests and middleware.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/woozymasta/coordsuite/internal/converter"
	"github.com/woozymasta/coordsuite/internal/export"
	"github.com/woozymasta/coordsuite/internal/geo"
	"github.com/woozymasta/coordsuite/internal/metrics"
	"github.com/woozymasta/coordsuite/internal/parser"
	"github.com/woozymasta/coordsuite/internal/preview"

	"github.com/rs/zerolog/log"
)

type convertRequest struct {
	Text         string `json:"text"`
	Direction    string `json:"direction"`
	Hemisphere   string `json:"hemisphere"`
	Zone         int    `json:"zone"`
	SpecialZones *bool  `json:"special_zones"`
}

type convertResponse struct {
	*converter.Result
	View    geo.View `json:"view"`
	TileURL string   `json:"tile_url,omitempty"`
}

type errorResponse struct {
	Error string         `json:"error"`
	Kind  converter.Kind `json:"kind,omitempty"`
}

// Routes wires every handler into a mux wrapped by the request logger.
func (s *ServerContext) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/convert", s.HandleConvert)
	mux.HandleFunc("POST /api/export", s.HandleExport)
	mux.HandleFunc("GET /api/ellipsoids", s.HandleEllipsoids)
	mux.Handle("GET /metrics", metrics.Handler())
	mux.HandleFunc("GET /", s.HandleIndex)

	return RequestLogger(mux)
}

// HandleIndex serves the main HTML application.
func (s *ServerContext) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" && strings.Contains(r.URL.Path, ".") {
		http.NotFound(w, r)
		return
	}

	etag := fmt.Sprintf(`"%x"`, len(s.IndexHTML))

	if match := r.Header.Get("If-None-Match"); match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, no-cache")
	_, _ = w.Write(s.IndexHTML)
}

// HandleEllipsoids lists the reference ellipsoids the server knows.
func (s *ServerContext) HandleEllipsoids(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, geo.Ellipsoids())
}

// HandleConvert converts the posted text block and returns every outcome
// together with the map view of the converted points.
func (s *ServerContext) HandleConvert(w http.ResponseWriter, r *http.Request) {
	res, ok := s.convert(w, r)
	if !ok {
		return
	}

	view := geo.NewView(res.Points())
	resp := convertResponse{Result: res, View: view}
	if s.Config.Server.TileURL != "" {
		resp.TileURL = geo.TileURL(s.Config.Server.TileURL, view.Tile)
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleExport converts the posted block and answers with the export file
// named by the format query parameter.
func (s *ServerContext) HandleExport(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	res, ok := s.convert(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, res, s.Config.ExportOptions()); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, preview.ErrNoPoints) {
			status = http.StatusUnprocessableEntity
		}
		log.Error().Err(err).Str("format", string(format)).Msg("Export failed")
		writeError(w, status, err)
		return
	}
	metrics.ObserveExport(string(format))

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", "attachment; filename="+format.Filename())
	_, _ = buf.WriteTo(w)
}

// convert decodes the request and runs the converter. It writes the error
// response itself and reports whether the caller should continue.
func (s *ServerContext) convert(w http.ResponseWriter, r *http.Request) (*converter.Result, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.Config.Server.MaxBodyBytes)

	var req convertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, err)
			return nil, false
		}
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return nil, false
	}

	opts, err := s.options(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return nil, false
	}

	res, err := s.Converter.Convert(req.Text, opts)
	metrics.ObserveResult(res, err)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, parser.ErrUndetectableFormat) {
			status = http.StatusUnprocessableEntity
		}
		writeError(w, status, err)
		return nil, false
	}

	log.Debug().
		Str("detection", res.Detection.String()).
		Str("direction", res.Direction.String()).
		Int("outcomes", len(res.Outcomes)).
		Int("failed", len(res.Failures())).
		Msg("Block converted")

	return res, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Ignoring error as we cannot handle client disconnects
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error(), Kind: converter.KindOf(err)})
}
