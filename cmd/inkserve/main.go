// Command inkserve serves the handwriting, signature and document API.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gogpu/ink"
	"github.com/gogpu/ink/config"
	"github.com/gogpu/ink/internal/httpapi"
	"github.com/gogpu/ink/ocr"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML config file")
		addr       = flag.String("addr", "", "listen address, overrides the config")
		tesseract  = flag.String("tesseract", "", "tesseract binary; enables /v1/ocr")
		lang       = flag.String("lang", "eng", "OCR language")
		debug      = flag.Bool("debug", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	ink.SetLogger(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	var opts []httpapi.Option
	if *tesseract != "" {
		t := ocr.Tesseract{Path: *tesseract, Lang: *lang}
		if err := t.Available(); err != nil {
			log.Fatal(err)
		}
		opts = append(opts, httpapi.WithRecognizer(t))
	}
	api, err := httpapi.New(cfg, opts...)
	if err != nil {
		log.Fatal(err)
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      api.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		ink.Logger().Info("inkserve: listening", "addr", srv.Addr, "ocr", *tesseract != "")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
		ink.Logger().Info("inkserve: stopped")
	}
}
