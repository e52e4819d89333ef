// Package web serves the panel's control page and actuator endpoints.
// Handlers write actuators and reply "ok"; nothing reads actuator state back.
package web

import (
	"context"
	"log"
	"net"
	"net/http"
	"sync"

	"github.com/sweeney/tinyml-panel/internal/logic"
)

// Actuators is the set of outputs the control page drives.
type Actuators interface {
	SetLED1(c logic.RGB) error
	SetLED2(c logic.RGB) error
	SetBoth(c logic.RGB) error
	SetRelay(on bool) error
}

// Info identifies the access point the page is served on.
type Info struct {
	SSID string
	IP   string
}

// Server serves the control panel over HTTP.
type Server struct {
	httpServer *http.Server
	act        Actuators
	info       Info
}

// New creates a Server that drives act. Requests are handled one at a time.
func New(addr string, act Actuators, info Info) *Server {
	s := &Server{act: act, info: info}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/index.html", s.handleIndex)
	mux.HandleFunc("/led1", s.handleLED(act.SetLED1))
	mux.HandleFunc("/led2", s.handleLED(act.SetLED2))
	mux.HandleFunc("/rgb", s.handleRGB)
	mux.HandleFunc("/relay", s.handleRelay)
	mux.HandleFunc("/info", s.handleInfo)

	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: serialize(mux),
	}
	return s
}

// ListenAndServe starts listening. It blocks until the server is shut down.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Serve accepts connections on the given listener. Useful for tests.
func (s *Server) Serve(ln net.Listener) error {
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// serialize admits one request at a time.
func serialize(next http.Handler) http.Handler {
	var mu sync.Mutex
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" && r.URL.Path != "/index.html" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := renderHTML(w, s.info); err != nil {
		log.Printf("http: render index: %v", err)
	}
}

// handleLED drives one strip: mode=on is white, any other mode is off,
// otherwise the color comes from r, g and b.
func (s *Server) handleLED(set func(logic.RGB) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		c := parseRGB(q)
		if q.Has("mode") {
			c = logic.Off
			if q.Get("mode") == "on" {
				c = logic.White
			}
		}
		if err := set(c); err != nil {
			log.Printf("http: %s %s: %v", r.URL.Path, c.Hex(), err)
		}
		writeOK(w)
	}
}

func (s *Server) handleRGB(w http.ResponseWriter, r *http.Request) {
	c := parseRGB(r.URL.Query())
	if err := s.act.SetBoth(c); err != nil {
		log.Printf("http: /rgb %s: %v", c.Hex(), err)
	}
	writeOK(w)
}

func (s *Server) handleRelay(w http.ResponseWriter, r *http.Request) {
	on := r.URL.Query().Get("state") == "on"
	if err := s.act.SetRelay(on); err != nil {
		log.Printf("http: /relay %v: %v", on, err)
	}
	writeOK(w)
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write(formatInfo(s.info))
}

func writeOK(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("ok"))
}
