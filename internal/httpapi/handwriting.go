package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"maps"
	"net/http"
	"slices"
	"strconv"

	"github.com/gogpu/ink"
	"github.com/gogpu/ink/document"
	"github.com/gogpu/ink/handwriting"
)

// styleRequest selects a handwriting style. Unset fields keep the preset.
type styleRequest struct {
	Preset     string   `json:"preset"`
	FontFamily string   `json:"fontFamily"`
	Ink        string   `json:"ink"`
	Chaos      *float64 `json:"chaos"`
	Seed       *uint64  `json:"seed"`
}

type generateRequest struct {
	styleRequest
	Text         string   `json:"text"`
	Paper        string   `json:"paper"`
	Tint         string   `json:"tint"`
	Density      *float64 `json:"density"`
	Misalignment *float64 `json:"misalignment"`

	// Format is "png" (default) or "pdf".
	Format string `json:"format"`
	// Page selects the page returned as PNG, 1-based.
	Page int `json:"page"`
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %w", errBadRequest, err)
	}
	return nil
}

// style resolves a style request against the configuration. fallbackInk
// is used when the request names no ink.
func (s *Server) style(req styleRequest, fallbackInk string) (handwriting.Style, error) {
	st, err := s.cfg.Style(req.Preset)
	if err != nil {
		return handwriting.Style{}, fmt.Errorf("%w: %w", errBadRequest, err)
	}
	inkHex := req.Ink
	if inkHex == "" {
		inkHex = fallbackInk
	}
	if inkHex != "" {
		c, err := ink.ParseHex(inkHex)
		if err != nil {
			return handwriting.Style{}, fmt.Errorf("%w: %w", errBadRequest, err)
		}
		st.Color = c
	}
	if req.FontFamily != "" {
		if !slices.Contains(s.engine.Families(), req.FontFamily) {
			return handwriting.Style{}, fmt.Errorf("%w: unknown font family %q", errBadRequest, req.FontFamily)
		}
		st.FontFamily = req.FontFamily
	}
	if req.Chaos != nil {
		st = handwriting.FromChaos(st, *req.Chaos)
	}
	return st, nil
}

// fork returns a per-request engine seeded from the request, then the
// configuration, then the clock.
func (s *Server) fork(seed *uint64) *handwriting.Engine {
	if seed == nil {
		seed = s.cfg.Handwriting.Seed
	}
	if seed == nil {
		return s.engine.Fork(nil)
	}
	return s.engine.Fork(handwriting.NewRand(*seed))
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	type preset struct {
		Name  string            `json:"name"`
		Style handwriting.Style `json:"style"`
		Ink   string            `json:"ink"`
	}
	var out []preset
	for _, name := range slices.Sorted(maps.Keys(s.cfg.Handwriting.Presets)) {
		st, err := s.cfg.Style(name)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		out = append(out, preset{Name: name, Style: st, Ink: st.Color.HexString()})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"presets":  out,
		"families": slices.Sorted(slices.Values(s.engine.Families())),
		"default":  s.cfg.Generator.Preset,
	})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	opts, err := s.cfg.PageOptions()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if req.Preset != "" || req.Ink != "" || req.Chaos != nil || req.FontFamily != "" {
		if opts.Style, err = s.style(req.styleRequest, s.cfg.Generator.Ink); err != nil {
			s.fail(w, r, err)
			return
		}
	}
	if req.Paper != "" {
		if opts.Paper, err = handwriting.ParsePaper(req.Paper); err != nil {
			s.fail(w, r, fmt.Errorf("%w: %w", errBadRequest, err))
			return
		}
	}
	if req.Tint != "" {
		if opts.Tint, err = handwriting.ParseTint(req.Tint); err != nil {
			s.fail(w, r, fmt.Errorf("%w: %w", errBadRequest, err))
			return
		}
	}
	if req.Density != nil {
		opts.Density = *req.Density
	}
	if req.Misalignment != nil {
		opts.Misalignment = *req.Misalignment
	}

	pages, err := handwriting.NewGenerator(s.fork(req.Seed)).Generate(req.Text, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("X-Page-Count", strconv.Itoa(len(pages)))

	switch req.Format {
	case "", "png":
		page := max(req.Page, 1)
		if page > len(pages) {
			s.fail(w, r, fmt.Errorf("%w: page %d of %d", errBadRequest, page, len(pages)))
			return
		}
		s.writePNG(w, r, pages[page-1])
	case "pdf":
		imgs := make([]image.Image, len(pages))
		for i, p := range pages {
			imgs[i] = p
		}
		var buf bytes.Buffer
		if err := document.FromImages(r.Context(), &buf, imgs...); err != nil {
			s.fail(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write(buf.Bytes())
	default:
		s.fail(w, r, fmt.Errorf("%w: unknown format %q", errBadRequest, req.Format))
	}
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	var req styleRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	st, err := s.style(req, "")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writePNG(w, r, s.fork(req.Seed).Preview(st))
}

func (s *Server) writePNG(w http.ResponseWriter, r *http.Request, pb *ink.PixelBuffer) {
	var buf bytes.Buffer
	if err := pb.EncodePNG(&buf); err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(buf.Bytes())
}
