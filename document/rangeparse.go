package document

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidRange is wrapped by every RangeError.
var ErrInvalidRange = errors.New("document: invalid page range")

// RangeError describes the first bad token in a page range expression.
type RangeError struct {
	Expr   string
	Token  string
	Reason string
}

func (e *RangeError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("document: page range %q: %s", e.Expr, e.Reason)
	}
	return fmt.Sprintf("document: page range %q: %q: %s", e.Expr, e.Token, e.Reason)
}

func (e *RangeError) Unwrap() error {
	return ErrInvalidRange
}

// ParseRange parses a comma-separated list of pages and inclusive ranges
// such as "1-3, 5, 8-" against a document of pageCount pages. An open
// range runs to the last page. Pages are returned in expression order with
// repeats removed.
func ParseRange(expr string, pageCount int) ([]int, error) {
	fail := func(tok, reason string) ([]int, error) {
		return nil, &RangeError{Expr: expr, Token: tok, Reason: reason}
	}
	if strings.TrimSpace(expr) == "" {
		return fail("", "empty")
	}

	var pages []int
	seen := map[int]bool{}
	add := func(p int) {
		if !seen[p] {
			seen[p] = true
			pages = append(pages, p)
		}
	}
	page := func(s string) (int, bool) {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || n < 1 || n > pageCount {
			return 0, false
		}
		return n, true
	}

	for _, tok := range strings.Split(expr, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			return fail(tok, "empty entry")
		}
		lo, hi, isRange := strings.Cut(tok, "-")
		first, ok := page(lo)
		if !ok {
			return fail(tok, fmt.Sprintf("not a page in [1, %d]", pageCount))
		}
		if !isRange {
			add(first)
			continue
		}
		last := pageCount
		if strings.TrimSpace(hi) != "" {
			if last, ok = page(hi); !ok {
				return fail(tok, fmt.Sprintf("not a page in [1, %d]", pageCount))
			}
		}
		if last < first {
			return fail(tok, "range runs backwards")
		}
		for p := first; p <= last; p++ {
			add(p)
		}
	}
	return pages, nil
}

// selection converts pages into a pdfcpu page selection.
func selection(pages []int) []string {
	out := make([]string, len(pages))
	for i, p := range pages {
		out[i] = strconv.Itoa(p)
	}
	return out
}
