// Package server handles HTTP requests and middleware.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"io"
	"net/http"
	"strconv"

	"github.com/woozymasta/geoshape/internal/codec"
	"github.com/woozymasta/geoshape/internal/geo"

	"github.com/rs/zerolog/log"
	"github.com/twpayne/go-geom"
)

// HandleShape decodes the request body and answers with the geometry in the
// requested format.
func (s *ServerContext) HandleShape(w http.ResponseWriter, r *http.Request) {
	f, err := s.outputFormat(r, s.Format)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	g, err := s.readGeometry(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s.writeGeometry(w, r, g, f)
}

// HandleBox builds a rectangle from the minx, miny, maxx and maxy parameters.
func (s *ServerContext) HandleBox(w http.ResponseWriter, r *http.Request) {
	f, err := s.outputFormat(r, s.Format)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	q := r.URL.Query()
	var bounds [4]float64
	for i, key := range []string{"minx", "miny", "maxx", "maxy"} {
		v, err := strconv.ParseFloat(q.Get(key), 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid %s: %q", key, q.Get(key)))
			return
		}
		bounds[i] = v
	}

	ccw := s.Config.Box.CCW
	if raw := q.Get("ccw"); raw != "" {
		if ccw, err = strconv.ParseBool(raw); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid ccw: %q", raw))
			return
		}
	}

	s.writeGeometry(w, r, geo.Box(bounds[0], bounds[1], bounds[2], bounds[3], ccw), f)
}

// HandleEmpty answers with the empty geometry of the kind path value.
func (s *ServerContext) HandleEmpty(w http.ResponseWriter, r *http.Request) {
	f, err := s.outputFormat(r, s.Format)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	g, err := geo.EmptyOf(r.PathValue("kind"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s.writeGeometry(w, r, g, f)
}

// HandleRender draws a preview of the request body, svg unless format=webp.
func (s *ServerContext) HandleRender(w http.ResponseWriter, r *http.Request) {
	f, err := s.outputFormat(r, codec.SVG)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if f != codec.SVG && f != codec.WebP {
		writeError(w, http.StatusBadRequest, fmt.Errorf("render format must be svg or webp, got %s", f))
		return
	}

	opts := s.Codec
	q := r.URL.Query()
	for key, dst := range map[string]*int{"width": &opts.Render.Width, "height": &opts.Render.Height} {
		raw := q.Get(key)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 || v > 4096 {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid %s: %q", key, raw))
			return
		}
		*dst = v
	}

	g, err := s.readGeometry(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	data, err := codec.Encode(g, f, opts)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	writeBody(w, r, f.ContentType(), data)
}

// HandleKinds lists the supported geometry type names.
func (s *ServerContext) HandleKinds(w http.ResponseWriter, r *http.Request) {
	kinds := geo.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	writeJSON(w, http.StatusOK, names)
}

// HandleFormats lists the output formats with their content types.
func (s *ServerContext) HandleFormats(w http.ResponseWriter, r *http.Request) {
	type format struct {
		Name        string `json:"name"`
		Extension   string `json:"extension"`
		ContentType string `json:"content_type"`
		OutputOnly  bool   `json:"output_only,omitempty"`
	}
	list := make([]format, 0, len(codec.Formats()))
	for _, f := range codec.Formats() {
		list = append(list, format{f.String(), f.Extension(), f.ContentType(), f.OutputOnly()})
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *ServerContext) outputFormat(r *http.Request, def codec.Format) (codec.Format, error) {
	raw := r.URL.Query().Get("format")
	if raw == "" {
		return def, nil
	}
	return codec.ParseFormat(raw)
}

func (s *ServerContext) readGeometry(w http.ResponseWriter, r *http.Request) (geom.T, error) {
	limit := s.MaxBody
	if limit <= 0 {
		limit = defaultMaxBody
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
	if err != nil {
		return nil, err
	}

	g, in, err := codec.DecodeAny(body)
	if err != nil {
		return nil, err
	}
	log.Debug().
		Str("from", in.String()).
		Str("kind", geo.KindOf(g).String()).
		Msg("Request geometry decoded")
	return g, nil
}

func (s *ServerContext) writeGeometry(w http.ResponseWriter, r *http.Request, g geom.T, f codec.Format) {
	data, err := codec.Encode(g, f, s.Codec)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	writeBody(w, r, f.ContentType(), data)
}

// writeBody sends data with a content hash ETag and answers conditional
// requests with 304.
func writeBody(w http.ResponseWriter, r *http.Request, contentType string, data []byte) {
	h := fnv.New64a()
	_, _ = h.Write(data)
	etag := fmt.Sprintf(`"%x"`, h.Sum64())

	if match := r.Header.Get("If-None-Match"); match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, no-cache")
	// Ignoring error as we cannot handle client disconnects
	_, _ = w.Write(data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		status = http.StatusRequestEntityTooLarge
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
