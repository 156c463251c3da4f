package httpapi

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gogpu/ink/signature"
)

func (s *Server) handleKey(w http.ResponseWriter, r *http.Request) {
	threshold := uint8(signature.DefaultThreshold)
	if q := r.URL.Query().Get("threshold"); q != "" {
		v, err := strconv.ParseUint(q, 10, 8)
		if err != nil {
			s.fail(w, r, fmt.Errorf("%w: threshold: %w", errBadRequest, err))
			return
		}
		threshold = uint8(v)
	}
	a, err := signature.DecodeLimit(r.Body, threshold, s.cfg.Server.MaxImagePixels)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeAsset(w, r, a)
}

type typedRequest struct {
	styleRequest
	Name string `json:"name"`
}

func (s *Server) handleTyped(w http.ResponseWriter, r *http.Request) {
	var req typedRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	st, err := s.style(req.styleRequest, "")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	a, err := signature.FromText(s.fork(req.Seed), req.Name, st)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeAsset(w, r, a)
}

func (s *Server) writeAsset(w http.ResponseWriter, r *http.Request, a *signature.Asset) {
	var buf bytes.Buffer
	if err := a.EncodePNG(&buf); err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Asset-Size", fmt.Sprintf("%dx%d", a.Width(), a.Height()))
	_, _ = w.Write(buf.Bytes())
}
