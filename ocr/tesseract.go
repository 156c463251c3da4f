package ocr

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os/exec"
	"strconv"
	"strings"
)

// Tesseract runs the tesseract command line engine.
type Tesseract struct {
	// Path is the executable, "tesseract" when empty.
	Path string
	// Lang is the traineddata language, "eng" when empty.
	Lang string
}

// Recognize pipes img to tesseract as PNG and parses its TSV output.
func (t Tesseract) Recognize(ctx context.Context, img image.Image) (Result, error) {
	path := t.Path
	if path == "" {
		path = "tesseract"
	}
	lang := t.Lang
	if lang == "" {
		lang = "eng"
	}

	var in bytes.Buffer
	if err := png.Encode(&in, img); err != nil {
		return Result{}, &Error{Op: "encode", Err: err}
	}
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, "stdin", "stdout", "-l", lang, "tsv")
	cmd.Stdin = &in
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		} else if msg := strings.TrimSpace(stderr.String()); msg != "" {
			err = fmt.Errorf("%w: %s", err, msg)
		}
		return Result{}, &Error{Op: "tesseract", Err: err}
	}
	return ParseTSV(bytes.NewReader(out))
}

// tsvFields is the column count of tesseract TSV output.
const tsvFields = 12

// ParseTSV reads tesseract TSV output. Word rows (level 5) become Words;
// FullText joins words with spaces and lines with newlines.
func ParseTSV(r io.Reader) (Result, error) {
	var (
		res      Result
		text     strings.Builder
		lastLine string
	)
	sc := bufio.NewScanner(r)
	header := true
	for n := 1; sc.Scan(); n++ {
		line := sc.Text()
		if header {
			header = false
			if strings.HasPrefix(line, "level\t") {
				continue
			}
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		f := strings.SplitN(line, "\t", tsvFields)
		if len(f) < tsvFields-1 {
			return Result{}, &Error{Op: "parse", Err: fmt.Errorf("line %d: %d fields", n, len(f))}
		}
		if f[0] != "5" || len(f) < tsvFields {
			continue
		}
		word := strings.TrimSpace(f[11])
		if word == "" {
			continue
		}

		var nums [4]int
		for i := range nums {
			v, err := strconv.Atoi(f[6+i])
			if err != nil {
				return Result{}, &Error{Op: "parse", Err: fmt.Errorf("line %d: %w", n, err)}
			}
			nums[i] = v
		}
		conf, err := strconv.ParseFloat(f[10], 64)
		if err != nil {
			return Result{}, &Error{Op: "parse", Err: fmt.Errorf("line %d: %w", n, err)}
		}

		key := strings.Join(f[1:5], ".")
		switch {
		case text.Len() == 0:
		case key != lastLine:
			text.WriteByte('\n')
		default:
			text.WriteByte(' ')
		}
		lastLine = key
		text.WriteString(word)

		left, top, w, h := nums[0], nums[1], nums[2], nums[3]
		res.Words = append(res.Words, Word{
			Text:       word,
			Confidence: conf,
			Box:        image.Rect(left, top, left+w, top+h),
		})
	}
	if err := sc.Err(); err != nil {
		return Result{}, &Error{Op: "parse", Err: err}
	}
	res.FullText = text.String()
	return res, nil
}

// ErrNotInstalled reports that the tesseract executable was not found.
var ErrNotInstalled = errors.New("ocr: tesseract not installed")

// Available checks that the engine's executable can be found.
func (t Tesseract) Available() error {
	path := t.Path
	if path == "" {
		path = "tesseract"
	}
	if _, err := exec.LookPath(path); err != nil {
		return fmt.Errorf("%w: %w", ErrNotInstalled, err)
	}
	return nil
}
