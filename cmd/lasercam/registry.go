package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/labfab/lasercam/registry"
)

func runRegistry(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("registry", flag.ExitOnError)
	listen := fs.String("listen", "", "Registry API address")
	cfg := loadConfig(fs, args)

	if *listen != "" {
		cfg.Registry.Listen = *listen
	}

	api := registry.NewAPI()
	router, err := api.Router()
	if err != nil {
		log.Fatalf("error creating registry router: %v", err)
	}

	server := &http.Server{
		Addr:              cfg.Registry.Listen,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Printf("registry listening on %s", cfg.Registry.Listen)
	err = server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("error running registry: %v", err)
	}
}
