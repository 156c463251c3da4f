package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gogpu/ink"
	"github.com/gogpu/ink/ocr"
)

var errNoRecognizer = errors.New("ocr is not configured")

func (s *Server) handleOCR(w http.ResponseWriter, r *http.Request) {
	if s.recognizer == nil {
		s.fail(w, r, errNoRecognizer)
		return
	}
	img, _, err := ink.DecodeImage(r.Body, s.cfg.Server.MaxImagePixels)
	if err != nil {
		s.fail(w, r, fmt.Errorf("%w: %w", errBadRequest, err))
		return
	}
	res, err := ocr.Analyze(r.Context(), s.recognizer, img)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
