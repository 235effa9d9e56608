package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/project-explorer/backend/internal/dataset"
	"github.com/project-explorer/backend/internal/engine"
	"github.com/project-explorer/backend/internal/enrich"
	"github.com/project-explorer/backend/internal/match"
)

type Server struct {
	Engine *engine.Engine
	Logger *logrus.Entry
	Router *http.ServeMux
}

func NewServer(eng *engine.Engine, logger *logrus.Entry) *Server {
	s := &Server{
		Engine: eng,
		Logger: logger,
		Router: http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.Router.HandleFunc("/api/similar-projects", s.handleSimilarProjects)
	s.Router.HandleFunc("/api/health", s.handleHealth)
	s.Router.HandleFunc("/api/v1/reload", s.handleReload)
	s.Router.HandleFunc("/api/v1/ecosystem", s.handleEcosystem)
	s.Router.HandleFunc("/api/v1/status", s.handleStatus)
}

func (s *Server) Start(port string) error {
	s.Logger.Infof("Starting API Server on %s", port)
	return http.ListenAndServe(port, s.Router)
}

// Responses

type ErrorResponse struct {
	Error string `json:"error"`
}

type SimilarProjectsResponse struct {
	Success    bool          `json:"success"`
	Matches    []match.Match `json:"matches"`
	TotalFound int           `json:"total_found"`
}

type HealthResponse struct {
	Status        string `json:"status"`
	TotalProjects int    `json:"total_projects"`
}

type ReloadResponse struct {
	Success       bool   `json:"success"`
	TotalProjects int    `json:"total_projects"`
	Path          string `json:"path"`
}

type EcosystemResponse struct {
	Query   string          `json:"query"`
	Lookups []enrich.Lookup `json:"lookups"`
}

type StatusResponse struct {
	TotalProjects int               `json:"total_projects"`
	QueriesServed int64             `json:"queries_served"`
	Uptime        string            `json:"uptime"`
	APIUsage      enrich.UsageStats `json:"api_usage"`
}

// Handlers

func (s *Server) handleSimilarProjects(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Idea  string `json:"idea"`
		Limit int    `json:"limit"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid JSON"})
		return
	}

	if strings.TrimSpace(req.Idea) == "" {
		jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "Please provide an idea"})
		return
	}

	matches, err := s.Engine.FindSimilar(req.Idea, req.Limit)
	if err != nil {
		if errors.Is(err, engine.ErrCorpusNotLoaded) {
			jsonResponse(w, http.StatusServiceUnavailable, ErrorResponse{Error: err.Error()})
			return
		}
		jsonResponse(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	jsonResponse(w, http.StatusOK, SimilarProjectsResponse{
		Success:    true,
		Matches:    matches,
		TotalFound: len(matches),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	status := "healthy"
	if !s.Engine.Loaded() {
		status = "no corpus loaded"
	}

	jsonResponse(w, http.StatusOK, HealthResponse{
		Status:        status,
		TotalProjects: s.Engine.TotalProjects(),
	})
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Path string `json:"path"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid JSON"})
		return
	}

	if req.Path == "" {
		jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "Path is required"})
		return
	}

	records, err := dataset.Load(req.Path)
	if err != nil {
		jsonResponse(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	if err := s.Engine.Reload(records); err != nil {
		jsonResponse(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	jsonResponse(w, http.StatusOK, ReloadResponse{
		Success:       true,
		TotalProjects: s.Engine.TotalProjects(),
		Path:          req.Path,
	})
}

func (s *Server) handleEcosystem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query().Get("q")
	if query == "" {
		jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "Query 'q' is required"})
		return
	}

	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}

	lookups := s.Engine.Ecosystem(r.Context(), query, limit)
	if lookups == nil {
		lookups = []enrich.Lookup{}
	}

	jsonResponse(w, http.StatusOK, EcosystemResponse{
		Query:   query,
		Lookups: lookups,
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	stats := s.Engine.Snapshot()

	resp := StatusResponse{
		TotalProjects: stats.TotalProjects,
		QueriesServed: stats.QueriesServed,
		Uptime:        time.Since(stats.StartTime).String(),
	}
	if s.Engine.Enrichment != nil {
		resp.APIUsage = s.Engine.Enrichment.Usage()
	}

	jsonResponse(w, http.StatusOK, resp)
}

func jsonResponse(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
