package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"GestureLink/internal/config"
	"GestureLink/internal/sessionlog"
	"GestureLink/internal/signaling"
)

type Server struct {
	cfg      *config.Config
	handler  *signaling.Handler
	sessions *sessionlog.Log
}

func New(cfg *config.Config, handler *signaling.Handler, sessions *sessionlog.Log) *Server {
	return &Server{cfg: cfg, handler: handler, sessions: sessions}
}

func (s *Server) Start() error {
	r := mux.NewRouter()

	r.HandleFunc("/ws", s.handler.HandleWebSocket)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.HandleFunc("/sessions", s.handleSessions).Methods(http.MethodGet)
	r.PathPrefix("/static/").Handler(
		http.StripPrefix("/static/", http.FileServer(http.Dir(s.cfg.StaticDir))))

	log.Printf("Starting signaling server on %s", s.cfg.ServerAddress)
	return http.ListenAndServe(s.cfg.ServerAddress, r)
}

func (s *Server) handleSessions(w http.ResponseWriter, _ *http.Request) {
	entries, err := s.sessions.Recent(50)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}
