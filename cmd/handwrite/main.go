// Command handwrite renders text as handwriting on paper and writes the
// pages as PNG files or a single PDF.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/ink"
	"github.com/gogpu/ink/config"
	"github.com/gogpu/ink/document"
	"github.com/gogpu/ink/handwriting"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML config file")
		in         = flag.String("in", "", "text file to render, - for stdin")
		text       = flag.String("text", "", "text to render")
		output     = flag.String("output", "page.png", "output file; .pdf writes one document, otherwise name-N.png per page")
		preset     = flag.String("preset", "", "handwriting preset")
		paper      = flag.String("paper", "", "paper: plain, lined or grid")
		tint       = flag.String("tint", "", "tint: standard, vintage or legal")
		seed       = flag.Uint64("seed", 0, "random seed, 0 for time-based")
		verbose    = flag.Bool("v", false, "log progress")
	)
	flag.Parse()

	if *verbose {
		ink.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *preset != "" {
		cfg.Generator.Preset = *preset
	}
	if *paper != "" {
		cfg.Generator.Paper = *paper
	}
	if *tint != "" {
		cfg.Generator.Tint = *tint
	}
	if *seed != 0 {
		cfg.Handwriting.Seed = seed
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	body, err := readText(*in, *text)
	if err != nil {
		log.Fatal(err)
	}

	pages, err := render(cfg, body)
	if err != nil {
		log.Fatal(err)
	}
	if err := write(*output, pages); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Wrote %d page(s) to %s\n", len(pages), *output)
}

func readText(path, text string) (string, error) {
	switch {
	case path == "" && text == "":
		return "", fmt.Errorf("one of -in or -text is required")
	case path == "":
		return text, nil
	case path == "-":
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	default:
		data, err := os.ReadFile(path)
		return string(data), err
	}
}

func render(cfg *config.Config, text string) ([]*ink.PixelBuffer, error) {
	e, err := cfg.Engine()
	if err != nil {
		return nil, err
	}
	opts, err := cfg.PageOptions()
	if err != nil {
		return nil, err
	}
	return handwriting.NewGenerator(e).Generate(text, opts)
}

func write(output string, pages []*ink.PixelBuffer) error {
	ext := filepath.Ext(output)
	if strings.EqualFold(ext, ".pdf") {
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		imgs := make([]image.Image, len(pages))
		for i, p := range pages {
			imgs[i] = p
		}
		if err := document.FromImages(context.Background(), f, imgs...); err != nil {
			_ = f.Close()
			return err
		}
		return f.Close()
	}

	if len(pages) == 1 {
		return pages[0].SavePNG(output)
	}
	base := strings.TrimSuffix(output, ext)
	for i, p := range pages {
		if err := p.SavePNG(fmt.Sprintf("%s-%d.png", base, i+1)); err != nil {
			return err
		}
	}
	return nil
}
