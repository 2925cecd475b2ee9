// Package debugsrv is an optional HTTP inspection server for a running
// compiler.Driver: read-only endpoints a host can poll to watch a compiled
// graph without writing a custom protocol. It never drives tick()/flush()
// itself and is safe to expose alongside a host that calls those between
// requests, never concurrently with them.
package debugsrv

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/sarchlab/redpiler/internal/cell"
	"github.com/sarchlab/redpiler/internal/compiler"
)

// Server exposes a compiler.Driver over HTTP.
type Server struct {
	driver *compiler.Driver
	router *mux.Router
}

// New builds a Server around driver. Call ListenAndServe, or mount Router()
// into a larger mux yourself.
func New(driver *compiler.Driver) *Server {
	s := &Server{driver: driver, router: mux.NewRouter()}
	s.router.HandleFunc("/node/{x}/{y}/{z}", s.handleNode).Methods(http.MethodGet)
	s.router.HandleFunc("/scheduler", s.handleScheduler).Methods(http.MethodGet)
	return s
}

// Router returns the underlying mux.Router, for embedding into a host's own
// HTTP server instead of owning the listener outright.
func (s *Server) Router() *mux.Router { return s.router }

// ListenAndServe starts serving on addr. It blocks until the server stops
// or errors, same contract as net/http.Server.ListenAndServe.
func (s *Server) ListenAndServe(addr string) error {
	return (&http.Server{Addr: addr, Handler: s.router}).ListenAndServe()
}

type nodeResponse struct {
	Found   bool   `json:"found"`
	Type    string `json:"type,omitempty"`
	Output  uint8  `json:"output,omitempty"`
	Powered bool   `json:"powered,omitempty"`
	Locked  bool   `json:"locked,omitempty"`
	Facing  string `json:"facing,omitempty"`
	Delay   uint8  `json:"delay,omitempty"`
}

func (s *Server) handleNode(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	pos, ok := parsePos(vars["x"], vars["y"], vars["z"])
	if !ok {
		http.Error(w, "malformed position", http.StatusBadRequest)
		return
	}

	if !s.driver.Active() {
		writeJSON(w, nodeResponse{Found: false})
		return
	}
	n, found := s.driver.Inspect(pos)
	if !found {
		writeJSON(w, nodeResponse{Found: false})
		return
	}
	writeJSON(w, nodeResponse{
		Found:   true,
		Type:    n.Type.String(),
		Output:  n.Output,
		Powered: n.Powered,
		Locked:  n.Locked,
		Facing:  n.Facing.String(),
		Delay:   n.Delay,
	})
}

func parsePos(xs, ys, zs string) (cell.Pos, bool) {
	x, err1 := strconv.Atoi(xs)
	y, err2 := strconv.Atoi(ys)
	z, err3 := strconv.Atoi(zs)
	if err1 != nil || err2 != nil || err3 != nil {
		return cell.Pos{}, false
	}
	return cell.Pos{X: int32(x), Y: int32(y), Z: int32(z)}, true
}

type schedulerResponse struct {
	Active bool `json:"active"`
	Nodes  int  `json:"nodes"`
}

func (s *Server) handleScheduler(w http.ResponseWriter, r *http.Request) {
	resp := schedulerResponse{Active: s.driver.Active()}
	if resp.Active {
		resp.Nodes = s.driver.NodeCount()
	}
	writeJSON(w, resp)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
