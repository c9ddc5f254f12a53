// Package api exposes the engine over REST and streams execution reports
// over WebSocket.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/petalex/engine/pkg/exchange"
	"github.com/petalex/engine/pkg/exchange/instrument"
)

// RecentSource serves the recent-reports view; the pebble archive and the
// memory sink both satisfy it.
type RecentSource interface {
	Recent(limit int) ([]exchange.ExecutionReport, error)
}

// Server handles REST API and WebSocket connections.
type Server struct {
	eng    *exchange.Engine
	recent RecentSource
	router *mux.Router
	hub    *Hub
	log    *zap.SugaredLogger
}

// NewServer creates an API server. recent may be nil, in which case the
// reports endpoint is unavailable. hub may be nil; passing one lets the
// caller register it as an engine sink before the engine is built.
func NewServer(eng *exchange.Engine, recent RecentSource, hub *Hub, logger *zap.SugaredLogger) *Server {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	if hub == nil {
		hub = NewHub(logger)
	}
	s := &Server{
		eng:    eng,
		recent: recent,
		router: mux.NewRouter(),
		hub:    hub,
		log:    logger,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/instruments", s.handleGetInstruments).Methods("GET")
	api.HandleFunc("/instruments/{name}/book", s.handleGetBook).Methods("GET")
	api.HandleFunc("/reports", s.handleGetReports).Methods("GET")
	api.HandleFunc("/orders", s.handleSubmitOrder).Methods("POST")

	s.router.HandleFunc("/ws", s.handleWebSocket)
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")
}

// Start runs the hub and serves HTTP on addr, blocking.
func (s *Server) Start(addr string) error {
	go s.hub.Run()

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	})

	s.log.Infow("api_server_starting", "addr", addr)
	return http.ListenAndServe(addr, c.Handler(s.router))
}

func (s *Server) handleGetInstruments(w http.ResponseWriter, r *http.Request) {
	insts := instrument.List()
	names := make([]string, len(insts))
	for i, inst := range insts {
		names[i] = inst.String()
	}
	respondJSON(w, names)
}

func (s *Server) handleGetBook(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	inst := instrument.FromLabel(name)
	if !inst.Valid() {
		respondError(w, http.StatusNotFound, "unknown instrument", name)
		return
	}

	bids, asks := s.eng.Depth(inst)
	respondJSON(w, BookSnapshot{
		Instrument: inst.String(),
		Bids:       bids,
		Asks:       asks,
		Timestamp:  time.Now().UnixMilli(),
	})
}

func (s *Server) handleGetReports(w http.ResponseWriter, r *http.Request) {
	if s.recent == nil {
		respondError(w, http.StatusServiceUnavailable, "report history disabled", "")
		return
	}

	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			respondError(w, http.StatusBadRequest, "invalid limit", v)
			return
		}
		limit = n
	}

	reports, err := s.recent.Recent(limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "report lookup failed", err.Error())
		return
	}

	out := make([]ReportInfo, len(reports))
	for i := range reports {
		out[i] = toReportInfo(&reports[i])
	}
	respondJSON(w, out)
}

func (s *Server) handleSubmitOrder(w http.ResponseWriter, r *http.Request) {
	var req SubmitOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	// The engine validates everything else; malformed values become Reject
	// reports on the stream, same as file input.
	err := s.eng.Process(exchange.OrderRequest{
		ClientOrderID: req.ClientOrderID,
		Instrument:    instrument.FromLabel(req.Instrument),
		Side:          exchange.Side(req.Side),
		Price:         req.Price,
		Quantity:      req.Quantity,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "report emission failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(SubmitOrderResponse{Status: "processed"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, map[string]string{"status": "ok"})
}

func respondJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, errMsg string, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: errMsg, Message: message})
}
