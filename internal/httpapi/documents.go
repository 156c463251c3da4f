package httpapi

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gogpu/ink/document"
)

func (s *Server) openDocument(w http.ResponseWriter, r *http.Request) (*document.PDF, bool) {
	d, err := document.Open(r.Body)
	if err != nil {
		s.fail(w, r, err)
		return nil, false
	}
	return d, true
}

func (s *Server) writeDocument(w http.ResponseWriter, r *http.Request, d *document.PDF) {
	var buf bytes.Buffer
	if err := d.Export(&buf); err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("X-Document-Id", d.ID())
	w.Header().Set("X-Page-Count", strconv.Itoa(d.PageCount()))
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	d, ok := s.openDocument(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": d.ID(), "pages": d.PageCount()})
}

func (s *Server) handleRotate(w http.ResponseWriter, r *http.Request) {
	d, ok := s.openDocument(w, r)
	if !ok {
		return
	}
	deg, err := strconv.Atoi(r.URL.Query().Get("degrees"))
	if err != nil {
		s.fail(w, r, fmt.Errorf("%w: degrees: %w", errBadRequest, err))
		return
	}
	pages, err := pageQuery(r, d.PageCount(), true)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	for _, p := range pages {
		if err := d.Rotate(r.Context(), p, deg); err != nil {
			s.fail(w, r, err)
			return
		}
	}
	s.writeDocument(w, r, d)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	d, ok := s.openDocument(w, r)
	if !ok {
		return
	}
	pages, err := pageQuery(r, d.PageCount(), false)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := d.Delete(r.Context(), pages...); err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeDocument(w, r, d)
}

func (s *Server) handleReorder(w http.ResponseWriter, r *http.Request) {
	d, ok := s.openDocument(w, r)
	if !ok {
		return
	}
	var order []int
	for _, f := range strings.Split(r.URL.Query().Get("order"), ",") {
		p, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			s.fail(w, r, fmt.Errorf("%w: order: %w", errBadRequest, err))
			return
		}
		order = append(order, p)
	}
	if err := d.Reorder(r.Context(), order); err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeDocument(w, r, d)
}

func (s *Server) handleSplit(w http.ResponseWriter, r *http.Request) {
	d, ok := s.openDocument(w, r)
	if !ok {
		return
	}
	pages, err := pageQuery(r, d.PageCount(), false)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	out, err := d.Split(r.Context(), pages)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	part, err := document.Open(bytes.NewReader(out))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeDocument(w, r, part)
}

func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	d, ok := s.openDocument(w, r)
	if !ok {
		return
	}
	if err := d.Optimize(r.Context()); err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeDocument(w, r, d)
}

func (s *Server) handleMerge(w http.ResponseWriter, r *http.Request) {
	files, err := readParts(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if len(files) < 2 {
		s.fail(w, r, fmt.Errorf("%w: merge needs at least two files", errBadRequest))
		return
	}
	d, err := document.Open(bytes.NewReader(files[0]))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	rest := make([]io.ReadSeeker, 0, len(files)-1)
	for _, f := range files[1:] {
		rest = append(rest, bytes.NewReader(f))
	}
	if err := d.Merge(r.Context(), rest...); err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeDocument(w, r, d)
}

func (s *Server) handleFromImages(w http.ResponseWriter, r *http.Request) {
	files, err := readParts(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	imgs := make([]io.Reader, len(files))
	for i, f := range files {
		imgs[i] = bytes.NewReader(f)
	}
	var buf bytes.Buffer
	if err := document.ImagesToPDF(r.Context(), &buf, imgs...); err != nil {
		s.fail(w, r, err)
		return
	}
	d, err := document.Open(&buf)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeDocument(w, r, d)
}

// pageQuery parses the "pages" query parameter. When it is absent, all
// pages are selected if allowAll is set.
func pageQuery(r *http.Request, pageCount int, allowAll bool) ([]int, error) {
	q := r.URL.Query().Get("pages")
	if q == "" && allowAll {
		q = "1-"
	}
	return document.ParseRange(q, pageCount)
}

// readParts returns the contents of every file part of a multipart body,
// in order.
func readParts(r *http.Request) ([][]byte, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errBadRequest, err)
	}
	var files [][]byte
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return files, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errBadRequest, err)
		}
		if part.FileName() == "" {
			_ = part.Close()
			continue
		}
		data, err := readPart(part)
		if err != nil {
			return nil, err
		}
		files = append(files, data)
	}
}

func readPart(p *multipart.Part) ([]byte, error) {
	defer p.Close()
	data, err := io.ReadAll(p)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", p.FileName(), err)
	}
	return data, nil
}
