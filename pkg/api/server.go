// Package api exposes the record codec over HTTP. Raw record images are
// posted as application/octet-stream and come back as JSON summaries, so
// firmware dumps can be inspected without shipping the tooling to the
// machine that produced them.
package api

import (
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// StartServer starts the HTTP server with all routes configured
func StartServer(config ServerConfig) error {
	// Initialize metrics
	metrics := NewMetrics()

	server := NewServer(config, metrics)

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		// Health check
		r.Get("/health", metrics.InstrumentHandler("GET", "/api/v1/health", server.handleHealth))

		// Record decoding
		r.Post("/decode/header", metrics.InstrumentHandler("POST", "/api/v1/decode/header", server.handleDecodeHeader))
		r.Post("/decode/device", metrics.InstrumentHandler("POST", "/api/v1/decode/device", server.handleDecodeDevice))
		r.Post("/decode/manager", metrics.InstrumentHandler("POST", "/api/v1/decode/manager", server.handleDecodeManager))

		// Checksum verification
		r.Post("/verify/header", metrics.InstrumentHandler("POST", "/api/v1/verify/header", server.handleVerifyHeader))
		r.Post("/verify/device", metrics.InstrumentHandler("POST", "/api/v1/verify/device", server.handleVerifyDevice))
		r.Post("/verify/manager", metrics.InstrumentHandler("POST", "/api/v1/verify/manager", server.handleVerifyManager))

		// Layout tables
		r.Get("/layout", metrics.InstrumentHandler("GET", "/api/v1/layout", server.handleLayouts))
	})

	addr := fmt.Sprintf("%s:%d", config.Bind, config.Port)
	fmt.Printf("Starting Brokkr REST API server on %s\n", addr)
	fmt.Printf("Metrics available at: http://%s/metrics\n", addr)
	log.Fatal(http.ListenAndServe(addr, r))

	return nil
}
