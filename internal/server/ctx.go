package server

import (
	"net/http"

	"github.com/woozymasta/geoshape/internal/codec"
	"github.com/woozymasta/geoshape/internal/config"

	"github.com/rs/zerolog/log"
)

const defaultMaxBody = 8 << 20

// ServerContext holds dependencies for request handlers.
type ServerContext struct {
	Config  *config.Config
	Codec   codec.Options
	Format  codec.Format
	MaxBody int64
}

// NewServerContext resolves the encoder defaults of cfg.
func NewServerContext(cfg *config.Config) (*ServerContext, error) {
	opts, err := codec.OptionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	format := codec.GeoJSON
	if cfg.Format != "" {
		if format, err = codec.ParseFormat(cfg.Format); err != nil {
			return nil, err
		}
	}

	log.Info().
		Str("format", format.String()).
		Int("srid", opts.SRID).
		Int("render_width", opts.Render.Width).
		Int("render_height", opts.Render.Height).
		Msg("Server context initialized successfully")

	return &ServerContext{
		Config:  cfg,
		Codec:   opts,
		Format:  format,
		MaxBody: defaultMaxBody,
	}, nil
}

// Routes registers every handler and wraps the mux with RequestLogger.
func (s *ServerContext) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/shape", s.HandleShape)
	mux.HandleFunc("GET /api/box", s.HandleBox)
	mux.HandleFunc("GET /api/empty/{kind}", s.HandleEmpty)
	mux.HandleFunc("POST /api/render", s.HandleRender)
	mux.HandleFunc("GET /api/kinds", s.HandleKinds)
	mux.HandleFunc("GET /api/formats", s.HandleFormats)
	return RequestLogger(mux)
}
