// Package api provides the Lectionarium REST API server.
package api

import (
	"net/http"

	"github.com/FocuswithJustin/Lectionarium/core/books"
	"github.com/FocuswithJustin/Lectionarium/internal/lectionary"
	"github.com/FocuswithJustin/Lectionarium/internal/logging"
)

// Server answers passage and lectionary queries over HTTP. The canon
// must be loaded before the server starts; the lectionary is optional
// and its endpoints answer 404 when absent.
type Server struct {
	canon *books.Canon
	lect  *lectionary.Lectionary
}

// NewServer returns a server over a loaded canon. lect may be nil.
func NewServer(canon *books.Canon, lect *lectionary.Lectionary) *Server {
	return &Server{canon: canon, lect: lect}
}

// Handler builds the server's route table with request-ID and logging
// middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/passage", s.handlePassage)
	mux.HandleFunc("/masses", s.handleMasses)
	mux.HandleFunc("/readings", s.handleReadings)
	mux.HandleFunc("/ws/passage", s.handlePassageSocket)
	return logging.CombinedMiddleware(mux)
}

// Start runs the server on addr until it fails.
func (s *Server) Start(addr string) error {
	logging.ServerStartup("rest_api", "http", addr,
		"websocket_protocol", "ws")
	return http.ListenAndServe(addr, s.Handler())
}
