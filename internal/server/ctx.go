package server

import (
	"bytes"
	"fmt"
	"regexp"
	"text/template"

	"github.com/woozymasta/coordsuite/assets"
	"github.com/woozymasta/coordsuite/internal/config"
	"github.com/woozymasta/coordsuite/internal/converter"
	"github.com/woozymasta/coordsuite/internal/export"

	"github.com/rs/zerolog/log"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
)

// ServerContext holds dependencies for request handlers.
type ServerContext struct {
	Config    *config.Config
	Converter *converter.Converter
	IndexHTML []byte
}

// PageData is passed to the index template.
type PageData struct {
	Attribution string
	Formats     []export.Format
}

// NewServerContext validates the configuration, builds the converter and
// renders the minified index page.
func NewServerContext(cfg *config.Config) (*ServerContext, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	proj, err := cfg.Projection()
	if err != nil {
		return nil, err
	}

	index, err := renderIndex(PageData{
		Attribution: cfg.Server.Attribution,
		Formats:     export.Formats(),
	})
	if err != nil {
		return nil, fmt.Errorf("index page: %w", err)
	}

	log.Info().
		Str("ellipsoid", proj.Ellipsoid().Name).
		Str("direction", cfg.Convert.Direction).
		Int("index_bytes", len(index)).
		Msg("Server context initialized successfully")

	return &ServerContext{
		Config:    cfg,
		Converter: converter.New(proj),
		IndexHTML: index,
	}, nil
}

func renderIndex(data PageData) ([]byte, error) {
	tmpl, err := template.New("index").Parse(assets.IndexTemplate)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, err
	}

	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("text/html", html.Minify)
	m.AddFuncRegexp(regexp.MustCompile("^(application|text)/(x-)?(java|ecma)script$"), js.Minify)

	return m.Bytes("text/html", buf.Bytes())
}

// options merges request fields over the configured defaults. A request
// that names neither zone nor hemisphere inherits both, and an absent
// special_zones inherits the configured toggle.
func (s *ServerContext) options(req convertRequest) (converter.Options, error) {
	def := s.Config.Convert

	direction := req.Direction
	if direction == "" {
		direction = def.Direction
	}

	zone, hemisphere := req.Zone, req.Hemisphere
	if zone == 0 && hemisphere == "" {
		zone, hemisphere = def.Zone, def.Hemisphere
	}

	special := def.SpecialZones
	if req.SpecialZones != nil {
		special = *req.SpecialZones
	}

	return converter.ParseOptions(direction, zone, hemisphere, special)
}
