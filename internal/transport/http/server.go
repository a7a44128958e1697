package httptransport

import (
	"log"
	"net/http"

	"example.com/signup/internal/config"
)

// NewServer builds the public *http.Server for the signup API from cfg.
// Server-level errors go to errorLog; a nil errorLog uses the standard logger.
func NewServer(cfg config.Config, handler http.Handler, errorLog *log.Logger) *http.Server {
	return &http.Server{
		Addr:              cfg.HTTPAddress,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		ErrorLog:          errorLog,
	}
}
