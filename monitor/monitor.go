// Package monitor serves a read-only live view of the running
// session: a JSON snapshot endpoint and a server-sent-events stream.
package monitor

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"sync"

	sse "github.com/alexandrevicenzi/go-sse"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/mastercactapus/cmm/session"
)

// Server publishes session snapshots over HTTP. Update is called from
// the session's control loop; HTTP handlers run on their own
// goroutines, so the last snapshot is guarded.
type Server struct {
	http.Handler
	sse *sse.Server
	log zerolog.Logger

	mx   sync.Mutex
	last session.Snapshot
}

func NewServer(logger zerolog.Logger) *Server {
	r := mux.NewRouter()

	s := &Server{
		Handler: r,
		log:     logger,
		sse: sse.NewServer(&sse.Options{
			Logger: log.New(io.Discard, "", 0),
		}),
	}

	r.HandleFunc("/api/session", s.getSession).Methods("GET")
	r.PathPrefix("/events/").Handler(s.sse)

	return s
}

// Update records the latest snapshot and pushes it to stream
// subscribers.
func (s *Server) Update(snap session.Snapshot) {
	s.mx.Lock()
	s.last = snap
	s.mx.Unlock()

	data, err := json.Marshal(snap)
	if err != nil {
		s.log.Error().Err(err).Msg("marshal snapshot")
		return
	}
	s.sse.SendMessage("/events/session", sse.SimpleMessage(string(data)))
}

func (s *Server) getSession(w http.ResponseWriter, req *http.Request) {
	s.mx.Lock()
	snap := s.last
	s.mx.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(snap); err != nil {
		s.log.Error().Err(err).Msg("encode snapshot")
	}
}

// ListenAndServe blocks serving the monitor on addr.
func (s *Server) ListenAndServe(addr string) error {
	s.log.Info().Str("addr", addr).Msg("monitor listening")
	return http.ListenAndServe(addr, s)
}

// Shutdown releases stream subscribers.
func (s *Server) Shutdown() {
	s.sse.Shutdown()
}
